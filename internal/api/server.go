package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"socialmedia/internal/logger"
	"socialmedia/internal/metrics"
	"socialmedia/internal/models"
	"socialmedia/internal/service"
)

// AccountService abstracts registration and login.
type AccountService interface {
	Register(ctx context.Context, username, password string) (*models.Account, error)
	Login(ctx context.Context, username, password string) (*models.Account, error)
}

// MessageService abstracts message CRUD.
type MessageService interface {
	Create(ctx context.Context, m models.Message) (*models.Message, error)
	Get(ctx context.Context, id int64) (*models.Message, error)
	List(ctx context.Context) ([]models.Message, error)
	ListByAccount(ctx context.Context, accountID int64) ([]models.Message, error)
	Update(ctx context.Context, id int64, text string) (*models.Message, error)
	Delete(ctx context.Context, id int64) (*models.Message, error)
}

// Producer abstracts event publishing for created messages.
type Producer interface {
	Publish(ctx context.Context, msg models.Message) error
}

// Pinger reports readiness of the backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	router     *mux.Router
	accounts   AccountService
	messages   MessageService
	producer   Producer
	pinger     Pinger
	hub        *Hub
	validator  *RequestValidator
	broadcastC <-chan models.Message
}

// NewServer wires the dispatch table. producer and broadcast may be nil, in
// which case created messages are fanned out to websocket clients directly.
func NewServer(a AccountService, m MessageService, p Producer, pinger Pinger, broadcast <-chan models.Message) *Server {
	s := &Server{
		router:     mux.NewRouter(),
		accounts:   a,
		messages:   m,
		producer:   p,
		pinger:     pinger,
		hub:        NewHub(),
		validator:  NewRequestValidator(),
		broadcastC: broadcast,
	}
	s.routes()
	if broadcast != nil {
		go s.broadcastLoop()
	}
	return s
}

func (s *Server) routes() {
	s.router.Use(s.withRequestLog)
	s.router.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	s.router.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	s.router.HandleFunc("/messages", s.handleCreateMessage).Methods(http.MethodPost)
	s.router.HandleFunc("/messages", s.handleListMessages).Methods(http.MethodGet)
	s.router.HandleFunc("/messages/{id}", s.handleGetMessage).Methods(http.MethodGet)
	s.router.HandleFunc("/messages/{id}", s.handleUpdateMessage).Methods(http.MethodPatch)
	s.router.HandleFunc("/messages/{id}", s.handleDeleteMessage).Methods(http.MethodDelete)
	s.router.HandleFunc("/accounts/{id}/messages", s.handleListByAccount).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.handleWS).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)
	s.router.HandleFunc("/metrics", metrics.Handler).Methods(http.MethodGet)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Hijack keeps websocket upgrades working behind the logging middleware.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return hj.Hijack()
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		metrics.IncHTTPRequest(rec.status)
		logger.Info("request handled",
			logger.FieldKV("request_id", requestID),
			logger.FieldKV("method", r.Method),
			logger.FieldKV("path", r.URL.Path),
			logger.FieldKV("status", rec.status))
	})
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateMessageRequest struct {
	MessageText string `json:"message_text"`
}

// decodeBody validates the raw body against the named schema, then unmarshals
// it. Any failure here is a validation failure.
func (s *Server) decodeBody(r *http.Request, schema string, dst interface{}) error {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if err := s.validator.Validate(schema, body); err != nil {
		return err
	}
	return json.Unmarshal(body, dst)
}

// writeServiceError is the total mapping from the service error taxonomy to
// status codes. Failure responses carry no body.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrMessageNotFound):
		w.WriteHeader(http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		w.WriteHeader(http.StatusUnauthorized)
	default:
		logger.Error("service call failed", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := s.decodeBody(r, schemaCredentials, &req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	acct, err := s.accounts.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	metrics.IncAccountsRegistered()
	writeJSON(w, http.StatusOK, acct)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := s.decodeBody(r, schemaCredentials, &req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	acct, err := s.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

func (s *Server) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	var req models.Message
	if err := s.decodeBody(r, schemaCreateMessage, &req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	msg, err := s.messages.Create(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	metrics.IncMessagesCreated()
	s.publish(r.Context(), *msg)
	writeJSON(w, http.StatusOK, msg)
}

// publish hands the created message to the event stream, falling back to a
// direct websocket broadcast when no producer is configured or publishing
// fails.
func (s *Server) publish(ctx context.Context, msg models.Message) {
	if s.producer == nil {
		s.hub.Broadcast(msg)
		metrics.IncMsgBroadcast()
		return
	}
	if err := s.producer.Publish(ctx, msg); err != nil {
		logger.Error("publish message event failed", err, logger.FieldKV("message_id", msg.MessageID))
		s.hub.Broadcast(msg)
		metrics.IncMsgBroadcast()
	}
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	list, err := s.messages.List(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	msg, err := s.messages.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if msg == nil {
		// absence is success with an empty body, not an error
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (s *Server) handleUpdateMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	var req updateMessageRequest
	if err := s.decodeBody(r, schemaUpdateMessage, &req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	msg, err := s.messages.Update(r.Context(), id, req.MessageText)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	metrics.IncMessagesUpdated()
	writeJSON(w, http.StatusOK, msg)
}

func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	msg, err := s.messages.Delete(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if msg == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	metrics.IncMessagesDeleted()
	writeJSON(w, http.StatusOK, msg)
}

func (s *Server) handleListByAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	list, err := s.messages.ListByAccount(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// handleWS subscribes a client to the live feed of created messages. Clients
// are consumers only; anything they send is drained and discarded.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", err)
		return
	}
	s.hub.Add(conn)
	metrics.IncWSConnections()
	go func() {
		defer func() { s.hub.Remove(conn); metrics.DecWSConnections() }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) broadcastLoop() {
	for m := range s.broadcastC {
		s.hub.Broadcast(m)
		metrics.IncMsgBroadcast()
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
	defer cancel()
	if s.pinger == nil || s.pinger.Ping(ctx) != nil {
		http.Error(w, "store not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
