// Package client provides a transport-agnostic interface for the pulse service
// and an HTTP/JSON implementation that talks to the pulse REST API.
package client

import (
	"context"
	"time"

	"github.com/zanclinic/pulse/internal/metrics"
	"github.com/zanclinic/pulse/internal/model"
)

// PulseClient is the interface that all pulsectl commands use to communicate
// with the pulse server. It is implemented by HTTPClient (default) and can be
// backed by any transport.
type PulseClient interface {
	// Webhook ingestion
	IngestEvent(ctx context.Context, clientID string, payload *model.EventPayload) (*IngestResponse, error)
	GetWebhookConfig(ctx context.Context, clientID string) (*WebhookConfig, error)

	// Dashboard API
	GetMetrics(ctx context.Context, clientID string, req *MetricsRequest) (*metrics.Summary, error)
	ListEvents(ctx context.Context, clientID string, req *ListEventsRequest) (*ListEventsResponse, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// IngestResponse is the acknowledgement returned by the webhook endpoint.
type IngestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		ID             string `json:"id"`
		ConversationID string `json:"conversation_id"`
		ClientID       string `json:"client_id"`
	} `json:"data"`
}

// WebhookConfig describes how to wire up the external automation tool.
type WebhookConfig struct {
	WebhookURL      string            `json:"webhook_url"`
	Method          string            `json:"method"`
	Headers         map[string]string `json:"headers"`
	ExpectedPayload map[string]string `json:"expected_payload"`
	ExamplePayload  map[string]any    `json:"example_payload"`
}

// MetricsRequest holds parameters for fetching a dashboard summary.
// Nil time pointers mean "unbounded".
type MetricsRequest struct {
	Start      *time.Time
	End        *time.Time
	TZ         string
	ScoredOnly bool
}

// ListEventsRequest holds parameters for listing raw events.
type ListEventsRequest struct {
	Start *time.Time
	End   *time.Time
	Limit int
}

// ListEventsResponse is the response from ListEvents.
type ListEventsResponse struct {
	Events []*model.ConversationEvent `json:"events"`
	Total  int                        `json:"total"`
}
