package server

import (
	"context"
	"sync"

	"github.com/zanclinic/pulse/internal/model"
)

// mockStore is an in-memory store.Store used by handler tests.
type mockStore struct {
	mu     sync.Mutex
	events []*model.ConversationEvent

	// insertErr, listErr, and pingErr, when non-nil, are returned by the
	// corresponding methods to simulate backend failures.
	insertErr error
	listErr   error
	pingErr   error
}

func newMockStore() *mockStore {
	return &mockStore{}
}

func (m *mockStore) InsertEvent(_ context.Context, ev *model.ConversationEvent) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

func (m *mockStore) ListEvents(_ context.Context, filter model.EventFilter) ([]*model.ConversationEvent, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []*model.ConversationEvent
	for _, ev := range m.events {
		if ev.ClientID != filter.ClientID {
			continue
		}
		if filter.Start != nil && ev.CreatedAt.Before(*filter.Start) {
			continue
		}
		if filter.End != nil && ev.CreatedAt.After(*filter.End) {
			continue
		}
		result = append(result, ev)
		if filter.Limit > 0 && len(result) == filter.Limit {
			break
		}
	}
	return result, nil
}

func (m *mockStore) Ping(_ context.Context) error {
	return m.pingErr
}

func (m *mockStore) Close() error { return nil }

// capturingPublisher records published events for assertions.
type capturingPublisher struct {
	mu        sync.Mutex
	published []publishedEvent
}

type publishedEvent struct {
	topic string
	event any
}

func (p *capturingPublisher) Publish(_ context.Context, topic string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, publishedEvent{topic: topic, event: event})
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func (p *capturingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}
