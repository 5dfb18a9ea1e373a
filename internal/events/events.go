package events

import (
	"context"

	"github.com/zanclinic/pulse/internal/model"
)

// Event topic constants
const (
	// TopicConversationRecorded fires once per accepted webhook delivery.
	// Subscribers (dashboard refresh, notification workers) receive the
	// stored event; ingestion never waits on them.
	TopicConversationRecorded = "pulse.conversation.recorded"
)

// ConversationRecorded is published when the ingestion endpoint accepts and
// persists a conversation event.
type ConversationRecorded struct {
	Event *model.ConversationEvent `json:"event"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
