package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/zanclinic/pulse/internal/events"
	"github.com/zanclinic/pulse/internal/idgen"
	"github.com/zanclinic/pulse/internal/model"
)

// signatureHeader carries the hex-encoded HMAC-SHA256 of the raw request body.
const signatureHeader = "X-Webhook-Signature"

// handleIngestEvent handles POST /api/webhook/ai-performance/{clientId}.
// It accepts one event per request: validate, normalize, persist exactly one
// row, acknowledge. The response shapes are load-bearing — the external
// automation tool parses them — and must not change.
func (s *PulseServer) handleIngestEvent(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientId")
	if clientID == "" {
		writeWebhookError(w, http.StatusBadRequest, "Missing client id in path")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeWebhookError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if s.opts.WebhookSecret != "" {
		if !validSignature(s.opts.WebhookSecret, body, r.Header.Get(signatureHeader)) {
			writeWebhookError(w, http.StatusUnauthorized, "Invalid webhook signature")
			return
		}
	}

	var payload model.EventPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		writeWebhookError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	id, err := idgen.Generate()
	if err != nil {
		writeWebhookError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	ev, err := payload.Normalize(clientID, id, time.Now())
	if err != nil {
		var ve *model.ValidationError
		var ce *model.CoercionError
		if errors.As(err, &ve) || errors.As(err, &ce) {
			writeWebhookError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeWebhookError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := s.store.InsertEvent(r.Context(), ev); err != nil {
		slog.Error("failed to insert event", "client_id", clientID, "conversation_id", ev.ConversationID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Database error",
			"error":   err.Error(),
		})
		return
	}

	s.publishRecorded(r.Context(), events.ConversationRecorded{Event: ev})

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "AI performance data received successfully",
		"data": map[string]string{
			"id":              ev.ID,
			"conversation_id": ev.ConversationID,
			"client_id":       ev.ClientID,
		},
	})
}

// handleWebhookConfig handles GET /api/webhook/config/{clientId}.
// Pure documentation for wiring up the automation tool; no side effects.
func (s *PulseServer) handleWebhookConfig(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientId")

	writeJSON(w, http.StatusOK, map[string]any{
		"webhook_url": s.opts.BaseURL + "/api/webhook/ai-performance/" + clientID,
		"method":      "POST",
		"headers": map[string]string{
			"Content-Type":    "application/json",
			signatureHeader:   "hex-encoded HMAC-SHA256 of the request body",
		},
		"expected_payload": map[string]string{
			"conversation_id":    "string (required)",
			"patient_id":         "string (optional)",
			"question":           "string (required)",
			"response":           "string (required)",
			"response_time":      "number (required)",
			"satisfaction_score": "number (optional)",
			"language":           "string (default: English)",
			"source":             "whatsapp | website | phone (default: whatsapp)",
			"resolved":           "boolean (default: false)",
			"booking_conversion": "boolean (default: false)",
		},
		"example_payload": map[string]any{
			"conversation_id":    "conv_123456",
			"patient_id":         "patient_789",
			"question":           "What are your operating hours?",
			"response":           "Our clinic is open Monday to Friday from 9 AM to 6 PM.",
			"response_time":      1.2,
			"satisfaction_score": 4.5,
			"language":           "English",
			"source":             "whatsapp",
			"resolved":           true,
			"booking_conversion": false,
		},
	})
}

// writeWebhookError writes the failure shape the automation tool expects.
func writeWebhookError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}

// validSignature checks a hex-encoded HMAC-SHA256 of body against the
// provided header value in constant time. A "sha256=" prefix is tolerated
// since several webhook senders add one.
func validSignature(secret string, body []byte, provided string) bool {
	provided = strings.TrimPrefix(provided, "sha256=")
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	want := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(provided))
}
