package sync

import (
	"context"
	"sync"

	"github.com/zanclinic/pulse/internal/model"
)

// mockStore is an in-memory store.Store for export and scheduler tests.
type mockStore struct {
	mu      sync.Mutex
	events  []*model.ConversationEvent
	listErr error
}

func newMockStore() *mockStore {
	return &mockStore{}
}

func (m *mockStore) InsertEvent(_ context.Context, ev *model.ConversationEvent) error {
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
		if filter.ClientID != "" && ev.ClientID != filter.ClientID {
			continue
		}
		result = append(result, ev)
	}
	return result, nil
}

func (m *mockStore) Ping(_ context.Context) error { return nil }

func (m *mockStore) Close() error { return nil }
