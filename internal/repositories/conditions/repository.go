// Package conditions serves the reference status condition catalog
package conditions

//go:generate mockgen -destination=mock/mock_repository.go -package=mockconditions -source=repository.go

import (
	"context"

	"github.com/KirkDiggler/tabletop-ledger/internal/domain/combat"
)

// Repository looks up condition definitions
type Repository interface {
	// Get retrieves a condition by id
	Get(ctx context.Context, id string) (*combat.Condition, error)

	// GetByKey retrieves a condition by ruleset and key
	GetByKey(ctx context.Context, rulesetID, key string) (*combat.Condition, error)

	// List returns every condition of a ruleset ordered by key
	List(ctx context.Context, rulesetID string) ([]*combat.Condition, error)
}
