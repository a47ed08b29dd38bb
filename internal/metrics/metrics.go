package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

// Prometheus-style counters (via atomic)
var (
	httpRequests2xx    atomic.Uint64
	httpRequests4xx    atomic.Uint64
	httpRequests5xx    atomic.Uint64
	accountsRegistered atomic.Uint64
	messagesCreated    atomic.Uint64
	messagesUpdated    atomic.Uint64
	messagesDeleted    atomic.Uint64
	messagesBroadcast  atomic.Uint64
	wsConnections      atomic.Int64 // gauge semantics
)

func IncHTTPRequest(status int) {
	switch {
	case status >= 500:
		httpRequests5xx.Add(1)
	case status >= 400:
		httpRequests4xx.Add(1)
	default:
		httpRequests2xx.Add(1)
	}
}

func IncAccountsRegistered() { accountsRegistered.Add(1) }
func IncMessagesCreated()    { messagesCreated.Add(1) }
func IncMessagesUpdated()    { messagesUpdated.Add(1) }
func IncMessagesDeleted()    { messagesDeleted.Add(1) }
func IncMsgBroadcast()       { messagesBroadcast.Add(1) }
func IncWSConnections()      { wsConnections.Add(1) }
func DecWSConnections()      { wsConnections.Add(-1) }

// Handler exposes metrics in a minimal Prometheus exposition format.
func Handler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	fmt.Fprintf(w, "# HELP socialmedia_http_requests_total HTTP requests handled, by status class\n")
	fmt.Fprintf(w, "# TYPE socialmedia_http_requests_total counter\n")
	fmt.Fprintf(w, "socialmedia_http_requests_total{class=\"2xx\"} %d\n", httpRequests2xx.Load())
	fmt.Fprintf(w, "socialmedia_http_requests_total{class=\"4xx\"} %d\n", httpRequests4xx.Load())
	fmt.Fprintf(w, "socialmedia_http_requests_total{class=\"5xx\"} %d\n", httpRequests5xx.Load())

	fmt.Fprintf(w, "# HELP socialmedia_accounts_registered_total Accounts created via /register\n")
	fmt.Fprintf(w, "# TYPE socialmedia_accounts_registered_total counter\n")
	fmt.Fprintf(w, "socialmedia_accounts_registered_total %d\n", accountsRegistered.Load())

	fmt.Fprintf(w, "# HELP socialmedia_messages_total Message mutations by operation\n")
	fmt.Fprintf(w, "# TYPE socialmedia_messages_total counter\n")
	fmt.Fprintf(w, "socialmedia_messages_total{op=\"created\"} %d\n", messagesCreated.Load())
	fmt.Fprintf(w, "socialmedia_messages_total{op=\"updated\"} %d\n", messagesUpdated.Load())
	fmt.Fprintf(w, "socialmedia_messages_total{op=\"deleted\"} %d\n", messagesDeleted.Load())

	fmt.Fprintf(w, "# HELP socialmedia_messages_broadcast_total Messages fanned out to websocket clients\n")
	fmt.Fprintf(w, "# TYPE socialmedia_messages_broadcast_total counter\n")
	fmt.Fprintf(w, "socialmedia_messages_broadcast_total %d\n", messagesBroadcast.Load())

	fmt.Fprintf(w, "# HELP socialmedia_ws_connections Currently connected websocket clients\n")
	fmt.Fprintf(w, "# TYPE socialmedia_ws_connections gauge\n")
	fmt.Fprintf(w, "socialmedia_ws_connections %d\n", wsConnections.Load())
}
