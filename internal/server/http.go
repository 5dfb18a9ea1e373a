package server

import (
	"encoding/json"
	"net/http"
	"time"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, /v1 requests must include a valid
// Authorization: Bearer <token> header. The webhook routes are never behind
// bearer auth; they are guarded by the HMAC signature check instead, so the
// external automation tool can reach them.
func (s *PulseServer) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/webhook/ai-performance/{clientId}", s.handleIngestEvent)
	mux.HandleFunc("GET /api/webhook/config/{clientId}", s.handleWebhookConfig)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /v1/clients/{clientId}/metrics", s.handleGetMetrics)
	mux.HandleFunc("GET /v1/clients/{clientId}/events", s.handleListEvents)

	var h http.Handler = mux
	h = AuthMiddleware(authToken, h)
	h = RequestLogger(h)
	h = Recovery(h)
	return h
}

// handleHealth handles GET /api/health.
func (s *PulseServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := s.store.Ping(r.Context()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]string{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   ServiceName,
		"version":   Version,
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response for the dashboard API.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
