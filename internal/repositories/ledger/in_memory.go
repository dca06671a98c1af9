package ledger

import (
	"context"
	"sync"

	"github.com/KirkDiggler/tabletop-ledger/internal/domain/events"
	apperr "github.com/KirkDiggler/tabletop-ledger/internal/errors"
)

type inMemoryStore struct {
	mu      sync.RWMutex
	events  map[string]*events.WorldEvent
	byWorld map[string][]string // worldID -> event ids in append order
}

// NewInMemoryStore creates a new in-memory ledger
func NewInMemoryStore() Store {
	return &inMemoryStore{
		events:  make(map[string]*events.WorldEvent),
		byWorld: make(map[string][]string),
	}
}

func (s *inMemoryStore) Append(ctx context.Context, event *events.WorldEvent) error {
	if event == nil || event.ID == "" {
		return apperr.InvalidArgument("event and event ID are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.events[event.ID]; exists {
		return apperr.Conflictf("event %s already exists", event.ID)
	}

	s.events[event.ID] = copyEvent(event)
	s.byWorld[event.WorldID] = append(s.byWorld[event.WorldID], event.ID)

	return nil
}

func (s *inMemoryStore) Get(ctx context.Context, id string) (*events.WorldEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, exists := s.events[id]
	if !exists {
		return nil, apperr.NotFoundf("event %s not found", id)
	}

	return copyEvent(event), nil
}

func (s *inMemoryStore) ListByWorld(ctx context.Context, worldID string, limit int) ([]*events.WorldEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := tail(s.byWorld[worldID], limit)
	result := make([]*events.WorldEvent, 0, len(ids))
	for _, id := range ids {
		result = append(result, copyEvent(s.events[id]))
	}

	return result, nil
}
