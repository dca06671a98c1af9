// Package combats persists combat aggregates together with their history.
package combats

//go:generate mockgen -destination=mock/mock_repository.go -package=mockcombatrepo -source=repository.go

import (
	"context"

	"github.com/KirkDiggler/tabletop-ledger/internal/domain/combat"
	"github.com/KirkDiggler/tabletop-ledger/internal/domain/events"
	apperr "github.com/KirkDiggler/tabletop-ledger/internal/errors"
)

// Commit is the unit of work of one combat command. Everything in it is
// stored together or not at all.
type Commit struct {
	// Combat is the state after the command. On success its Version is set
	// to ExpectedVersion+1.
	Combat *combat.Combat

	// ExpectedVersion is the version the command read; 0 creates the combat
	ExpectedVersion int64

	Event      *combat.Event
	WorldEvent *events.WorldEvent

	// Applied is set by condition commands only
	Applied *combat.AppliedCondition
}

// Repository defines the interface for combat storage operations
type Repository interface {
	// GetByCampaign retrieves the combat of a campaign
	GetByCampaign(ctx context.Context, campaignID string) (*combat.Combat, error)

	// GetByID retrieves a combat by id
	GetByID(ctx context.Context, id string) (*combat.Combat, error)

	// Commit stores a command's result. It fails with a conflict when the
	// stored version no longer matches ExpectedVersion.
	Commit(ctx context.Context, commit *Commit) error

	// ListEvents returns a combat's events in append order
	ListEvents(ctx context.Context, combatID string) ([]*combat.Event, error)

	// ListAppliedConditions returns a combat's applied conditions in append order
	ListAppliedConditions(ctx context.Context, combatID string) ([]*combat.AppliedCondition, error)
}

func validateCommit(c *Commit) error {
	if c == nil || c.Combat == nil {
		return apperr.InvalidArgument("commit requires a combat")
	}
	if c.Combat.ID == "" || c.Combat.CampaignID == "" {
		return apperr.InvalidArgument("combat ID and campaign ID are required")
	}
	if c.Event == nil || c.WorldEvent == nil {
		return apperr.InvalidArgument("commit requires a combat event and its world event")
	}
	return nil
}
