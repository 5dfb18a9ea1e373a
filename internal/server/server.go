package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/zanclinic/pulse/internal/events"
	"github.com/zanclinic/pulse/internal/store"
)

// ServiceName identifies this service in health responses and logs.
const ServiceName = "pulse-webhook"

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Options configure a PulseServer.
type Options struct {
	// WebhookSecret enables HMAC-SHA256 verification of the
	// X-Webhook-Signature header on ingestion requests. Empty disables
	// verification (local development only).
	WebhookSecret string

	// BaseURL is the externally visible URL advertised by the webhook
	// config endpoint.
	BaseURL string

	// MetricsTZ is the timezone used for hourly activity bucketing when a
	// request does not specify one. Nil means UTC.
	MetricsTZ *time.Location
}

// PulseServer handles webhook ingestion and the dashboard metrics API.
type PulseServer struct {
	store     store.Store
	publisher events.Publisher
	opts      Options
}

// NewPulseServer returns a new PulseServer backed by the given store and publisher.
func NewPulseServer(s store.Store, p events.Publisher, opts Options) *PulseServer {
	if opts.BaseURL == "" {
		opts.BaseURL = "http://localhost:8080"
	}
	if opts.MetricsTZ == nil {
		opts.MetricsTZ = time.UTC
	}
	return &PulseServer{
		store:     s,
		publisher: p,
		opts:      opts,
	}
}

// publishRecorded emits a conversation-recorded event to the bus.
// Best-effort: ingestion has already persisted the row, so a publish failure
// is logged and never surfaces to the webhook caller.
func (s *PulseServer) publishRecorded(ctx context.Context, event any) {
	if err := s.publisher.Publish(ctx, events.TopicConversationRecorded, event); err != nil {
		slog.Warn("failed to publish event", "topic", events.TopicConversationRecorded, "error", err)
	}
}
