// Package ledger stores world events. The store is append-only: there is no
// update or delete.
package ledger

//go:generate mockgen -destination=mock/mock_store.go -package=mockledger -source=store.go

import (
	"context"

	"github.com/KirkDiggler/tabletop-ledger/internal/domain/events"
)

// Store persists world events
type Store interface {
	// Append stores a new event. Appending an id twice fails with a conflict.
	Append(ctx context.Context, event *events.WorldEvent) error

	// Get retrieves one event by id
	Get(ctx context.Context, id string) (*events.WorldEvent, error)

	// ListByWorld returns the most recent limit events of a world, oldest
	// first, in append order. limit <= 0 returns every event.
	ListByWorld(ctx context.Context, worldID string, limit int) ([]*events.WorldEvent, error)
}

func copyEvent(e *events.WorldEvent) *events.WorldEvent {
	out := *e
	out.Payload = e.Payload.Clone()
	return &out
}

func tail(ids []string, limit int) []string {
	if limit > 0 && len(ids) > limit {
		return ids[len(ids)-limit:]
	}
	return ids
}
