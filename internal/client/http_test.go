package client

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/zanclinic/pulse/internal/model"
)

// testHandler captures the incoming request details and returns a canned response.
type testHandler struct {
	// captured from the request
	method      string
	path        string
	query       string
	body        string
	contentType string
	signature   string
	authz       string

	// canned response
	statusCode   int
	responseBody string
}

func (h *testHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.method = r.Method
	h.path = r.URL.Path
	h.query = r.URL.RawQuery
	h.contentType = r.Header.Get("Content-Type")
	h.signature = r.Header.Get("X-Webhook-Signature")
	h.authz = r.Header.Get("Authorization")
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		h.body = string(data)
	}

	w.Header().Set("Content-Type", "application/json")
	if h.statusCode != 0 {
		w.WriteHeader(h.statusCode)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if h.responseBody != "" {
		_, _ = w.Write([]byte(h.responseBody))
	}
}

// newTestClient creates an HTTPClient pointed at a test server with the given handler.
func newTestClient(h http.Handler, token, secret string) (*HTTPClient, *httptest.Server) {
	srv := httptest.NewServer(h)
	c := NewHTTPClient(srv.URL, token, secret)
	return c, srv
}

func TestHTTPClient_IngestEvent(t *testing.T) {
	h := &testHandler{
		responseBody: `{
			"success": true,
			"message": "AI performance data received successfully",
			"data": {"id": "evt-abc123", "conversation_id": "conv_1", "client_id": "demo_clinic"}
		}`,
	}
	c, srv := newTestClient(h, "", "s3cret")
	defer srv.Close()

	payload := &model.EventPayload{
		ConversationID: "conv_1",
		Question:       "What are your operating hours?",
		Response:       "We are open 9 to 6.",
		ResponseTime:   1.2,
	}
	ack, err := c.IngestEvent(context.Background(), "demo_clinic", payload)
	if err != nil {
		t.Fatalf("IngestEvent() error = %v", err)
	}

	if h.method != http.MethodPost {
		t.Errorf("method = %q, want POST", h.method)
	}
	if h.path != "/api/webhook/ai-performance/demo_clinic" {
		t.Errorf("path = %q", h.path)
	}
	if h.contentType != "application/json" {
		t.Errorf("content-type = %q", h.contentType)
	}

	// The signature must cover the exact bytes that were sent.
	mac := hmac.New(sha256.New, []byte("s3cret"))
	mac.Write([]byte(h.body))
	if want := hex.EncodeToString(mac.Sum(nil)); h.signature != want {
		t.Errorf("signature = %q, want %q", h.signature, want)
	}

	if !ack.Success || ack.Data.ID != "evt-abc123" {
		t.Errorf("ack = %+v", ack)
	}
}

func TestHTTPClient_IngestEvent_NoSecretNoSignature(t *testing.T) {
	h := &testHandler{responseBody: `{"success": true, "message": "ok", "data": {}}`}
	c, srv := newTestClient(h, "", "")
	defer srv.Close()

	_, err := c.IngestEvent(context.Background(), "demo_clinic", &model.EventPayload{
		ConversationID: "c", Question: "q", Response: "r", ResponseTime: 1,
	})
	if err != nil {
		t.Fatalf("IngestEvent() error = %v", err)
	}
	if h.signature != "" {
		t.Errorf("signature = %q, want unset", h.signature)
	}
}

func TestHTTPClient_IngestEvent_ValidationError(t *testing.T) {
	h := &testHandler{
		statusCode:   http.StatusBadRequest,
		responseBody: `{"success": false, "message": "Missing required fields: conversation_id, question, response, response_time"}`,
	}
	c, srv := newTestClient(h, "", "")
	defer srv.Close()

	_, err := c.IngestEvent(context.Background(), "demo_clinic", &model.EventPayload{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Missing required fields: conversation_id, question, response, response_time" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestHTTPClient_GetWebhookConfig(t *testing.T) {
	h := &testHandler{
		responseBody: `{
			"webhook_url": "http://localhost:8080/api/webhook/ai-performance/demo_clinic",
			"method": "POST",
			"headers": {"Content-Type": "application/json"},
			"expected_payload": {"conversation_id": "string (required)"},
			"example_payload": {"conversation_id": "conv_123456"}
		}`,
	}
	c, srv := newTestClient(h, "", "")
	defer srv.Close()

	cfg, err := c.GetWebhookConfig(context.Background(), "demo_clinic")
	if err != nil {
		t.Fatalf("GetWebhookConfig() error = %v", err)
	}
	if h.path != "/api/webhook/config/demo_clinic" {
		t.Errorf("path = %q", h.path)
	}
	if cfg.Method != "POST" || cfg.WebhookURL == "" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestHTTPClient_GetMetrics(t *testing.T) {
	h := &testHandler{
		responseBody: `{
			"total_conversations": 3,
			"avg_response_time": 1.7,
			"satisfaction_score": 2.83,
			"booking_conversion_rate": 33.33,
			"language_distribution": {"English": 2, "Spanish": 1},
			"top_questions": [{"question": "hours?", "count": 2, "resolved_rate": 100}],
			"hourly_activity": [{"hour": "09:00", "conversations": 2}]
		}`,
	}
	c, srv := newTestClient(h, "tok-123", "")
	defer srv.Close()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	summary, err := c.GetMetrics(context.Background(), "demo_clinic", &MetricsRequest{
		Start:      &start,
		TZ:         "Europe/Madrid",
		ScoredOnly: true,
	})
	if err != nil {
		t.Fatalf("GetMetrics() error = %v", err)
	}

	if h.path != "/v1/clients/demo_clinic/metrics" {
		t.Errorf("path = %q", h.path)
	}
	if h.authz != "Bearer tok-123" {
		t.Errorf("authorization = %q", h.authz)
	}
	q := h.query
	for _, want := range []string{"start=", "tz=Europe%2FMadrid", "scored_only=true"} {
		if !strings.Contains(q, want) {
			t.Errorf("query %q missing %q", q, want)
		}
	}

	if summary.TotalConversations != 3 {
		t.Errorf("total = %d", summary.TotalConversations)
	}
	if len(summary.TopQuestions) != 1 || summary.TopQuestions[0].Count != 2 {
		t.Errorf("top questions = %+v", summary.TopQuestions)
	}
}

func TestHTTPClient_GetMetrics_ServerError(t *testing.T) {
	h := &testHandler{
		statusCode:   http.StatusInternalServerError,
		responseBody: `{"error": "pq: connection refused"}`,
	}
	c, srv := newTestClient(h, "", "")
	defer srv.Close()

	_, err := c.GetMetrics(context.Background(), "demo_clinic", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Message != "pq: connection refused" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestHTTPClient_ListEvents(t *testing.T) {
	h := &testHandler{
		responseBody: `{"events": [{"id": "evt-1", "conversation_id": "conv_1", "client_id": "demo_clinic"}], "total": 1}`,
	}
	c, srv := newTestClient(h, "", "")
	defer srv.Close()

	resp, err := c.ListEvents(context.Background(), "demo_clinic", &ListEventsRequest{Limit: 50})
	if err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}
	if h.path != "/v1/clients/demo_clinic/events" {
		t.Errorf("path = %q", h.path)
	}
	if !strings.Contains(h.query, "limit=50") {
		t.Errorf("query = %q", h.query)
	}
	if resp.Total != 1 || len(resp.Events) != 1 || resp.Events[0].ID != "evt-1" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestHTTPClient_Health(t *testing.T) {
	h := &testHandler{
		responseBody: `{"status": "healthy", "timestamp": "2025-06-15T09:00:00Z", "service": "pulse-webhook", "version": "1.0.0"}`,
	}
	c, srv := newTestClient(h, "", "")
	defer srv.Close()

	status, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if status != "healthy" {
		t.Errorf("status = %q", status)
	}
	if h.path != "/api/health" {
		t.Errorf("path = %q", h.path)
	}
}

func TestHTTPClient_Health_Degraded(t *testing.T) {
	h := &testHandler{
		statusCode:   http.StatusServiceUnavailable,
		responseBody: `{"status": "degraded", "service": "pulse-webhook"}`,
	}
	c, srv := newTestClient(h, "", "")
	defer srv.Close()

	status, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if status != "degraded" {
		t.Errorf("status = %q", status)
	}
}
