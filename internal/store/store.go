package store

import (
	"context"

	"github.com/zanclinic/pulse/internal/model"
)

// Store defines the persistence interface for conversation events.
// The event log is append-only: there is no update or delete path, and
// every read is scoped to a single tenant via the filter's ClientID.
type Store interface {
	// InsertEvent persists exactly one fully-populated event.
	InsertEvent(ctx context.Context, ev *model.ConversationEvent) error

	// ListEvents returns a tenant's events, newest first, optionally
	// bounded by the filter's inclusive date range.
	ListEvents(ctx context.Context, filter model.EventFilter) ([]*model.ConversationEvent, error)

	// Ping reports whether the backing database is reachable.
	Ping(ctx context.Context) error

	// Lifecycle
	Close() error
}
