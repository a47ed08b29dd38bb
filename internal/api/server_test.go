package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"socialmedia/internal/models"
	"socialmedia/internal/service"
)

type mockAccounts struct {
	acct *models.Account
	err  error
}

func (m *mockAccounts) Register(ctx context.Context, username, password string) (*models.Account, error) {
	return m.acct, m.err
}
func (m *mockAccounts) Login(ctx context.Context, username, password string) (*models.Account, error) {
	return m.acct, m.err
}

type mockMessages struct {
	msg  *models.Message
	list []models.Message
	err  error
}

func (m *mockMessages) Create(ctx context.Context, msg models.Message) (*models.Message, error) {
	return m.msg, m.err
}
func (m *mockMessages) Get(ctx context.Context, id int64) (*models.Message, error) {
	return m.msg, m.err
}
func (m *mockMessages) List(ctx context.Context) ([]models.Message, error) {
	return m.list, m.err
}
func (m *mockMessages) ListByAccount(ctx context.Context, accountID int64) ([]models.Message, error) {
	return m.list, m.err
}
func (m *mockMessages) Update(ctx context.Context, id int64, text string) (*models.Message, error) {
	return m.msg, m.err
}
func (m *mockMessages) Delete(ctx context.Context, id int64) (*models.Message, error) {
	return m.msg, m.err
}

func newTestServer(a AccountService, m MessageService) *Server {
	return NewServer(a, m, nil, nil, nil)
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		accounts   *mockAccounts
		messages   *mockMessages
		method     string
		path       string
		body       string
		wantStatus int
		wantEmpty  bool
	}{
		{"register conflict", &mockAccounts{err: service.ErrUsernameTaken}, &mockMessages{}, "POST", "/register", `{"username":"testuser1","password":"x"}`, 400, true},
		{"register invalid", &mockAccounts{err: service.ErrInvalidInput}, &mockMessages{}, "POST", "/register", `{"username":"","password":"x"}`, 400, true},
		{"register malformed body", &mockAccounts{}, &mockMessages{}, "POST", "/register", `{"username":`, 400, true},
		{"register missing field", &mockAccounts{}, &mockMessages{}, "POST", "/register", `{"username":"a"}`, 400, true},
		{"login bad credentials", &mockAccounts{err: service.ErrInvalidCredentials}, &mockMessages{}, "POST", "/login", `{"username":"a","password":"b"}`, 401, true},
		{"create invalid text", &mockAccounts{}, &mockMessages{err: service.ErrInvalidInput}, "POST", "/messages", `{"posted_by":1,"message_text":"","time_posted_epoch":1}`, 400, true},
		{"create wrong field type", &mockAccounts{}, &mockMessages{}, "POST", "/messages", `{"posted_by":"1","message_text":"x","time_posted_epoch":1}`, 400, true},
		{"update missing message", &mockAccounts{}, &mockMessages{err: service.ErrMessageNotFound}, "PATCH", "/messages/99", `{"message_text":"x"}`, 400, true},
		{"update bad id", &mockAccounts{}, &mockMessages{}, "PATCH", "/messages/abc", `{"message_text":"x"}`, 400, true},
		{"get missing is success", &mockAccounts{}, &mockMessages{}, "GET", "/messages/99", "", 200, true},
		{"delete missing is success", &mockAccounts{}, &mockMessages{}, "DELETE", "/messages/99", "", 200, true},
		{"internal error", &mockAccounts{err: context.DeadlineExceeded}, &mockMessages{}, "POST", "/register", `{"username":"a","password":"b"}`, 500, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(tc.accounts, tc.messages)
			w := do(t, srv, tc.method, tc.path, tc.body)
			if w.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, w.Code)
			}
			if tc.wantEmpty && w.Body.Len() != 0 {
				t.Fatalf("expected empty body, got %q", w.Body.String())
			}
		})
	}
}

func TestRegisterSuccessBody(t *testing.T) {
	acct := &models.Account{AccountID: 2, Username: "newuser", Password: "newpassword"}
	srv := newTestServer(&mockAccounts{acct: acct}, &mockMessages{})

	w := do(t, srv, "POST", "/register", `{"username":"newuser","password":"newpassword"}`)
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got models.Account
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got != *acct {
		t.Fatalf("expected %+v, got %+v", acct, got)
	}
}

func TestListMessagesEmptyArray(t *testing.T) {
	srv := newTestServer(&mockAccounts{}, &mockMessages{list: []models.Message{}})

	for _, path := range []string{"/messages", "/accounts/2/messages"} {
		w := do(t, srv, "GET", path, "")
		if w.Code != 200 {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
		if strings.TrimSpace(w.Body.String()) != "[]" {
			t.Fatalf("%s: expected empty array, got %q", path, w.Body.String())
		}
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(&mockAccounts{}, &mockMessages{})

	if w := do(t, srv, "GET", "/healthz", ""); w.Code != 200 {
		t.Fatalf("healthz: expected 200, got %d", w.Code)
	}
	// no pinger wired: not ready
	if w := do(t, srv, "GET", "/readyz", ""); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz: expected 503, got %d", w.Code)
	}
	if w := do(t, srv, "GET", "/metrics", ""); w.Code != 200 || !strings.Contains(w.Body.String(), "socialmedia_http_requests_total") {
		t.Fatalf("metrics: unexpected response %d %q", w.Code, w.Body.String())
	}
}
