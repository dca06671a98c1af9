package combats

import (
	"context"
	"sync"

	"github.com/KirkDiggler/tabletop-ledger/internal/domain/combat"
	apperr "github.com/KirkDiggler/tabletop-ledger/internal/errors"
	"github.com/KirkDiggler/tabletop-ledger/internal/repositories/ledger"
)

// InMemoryConfig holds configuration for the in-memory repository
type InMemoryConfig struct {
	Ledger ledger.Store
}

type inMemoryRepository struct {
	mu         sync.RWMutex
	ledger     ledger.Store
	combats    map[string]*combat.Combat
	byCampaign map[string]string // campaignID -> combat ID
	events     map[string][]*combat.Event
	conditions map[string][]*combat.AppliedCondition
}

// NewInMemoryRepository creates a new in-memory combat repository. World
// events are appended to cfg.Ledger inside the commit.
func NewInMemoryRepository(cfg *InMemoryConfig) Repository {
	if cfg == nil || cfg.Ledger == nil {
		panic("ledger store is required")
	}

	return &inMemoryRepository{
		ledger:     cfg.Ledger,
		combats:    make(map[string]*combat.Combat),
		byCampaign: make(map[string]string),
		events:     make(map[string][]*combat.Event),
		conditions: make(map[string][]*combat.AppliedCondition),
	}
}

func (r *inMemoryRepository) GetByCampaign(ctx context.Context, campaignID string) (*combat.Combat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byCampaign[campaignID]
	if !ok {
		return nil, apperr.NotFoundf("no combat for campaign %s", campaignID)
	}
	return r.combats[id].Clone(), nil
}

func (r *inMemoryRepository) GetByID(ctx context.Context, id string) (*combat.Combat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.combats[id]
	if !ok {
		return nil, apperr.NotFoundf("combat %s not found", id)
	}
	return c.Clone(), nil
}

func (r *inMemoryRepository) Commit(ctx context.Context, commit *Commit) error {
	if err := validateCommit(commit); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var current int64
	if existing, ok := r.combats[commit.Combat.ID]; ok {
		current = existing.Version
	}
	if current != commit.ExpectedVersion {
		return apperr.Conflictf("combat %s changed: expected version %d, found %d",
			commit.Combat.ID, commit.ExpectedVersion, current)
	}
	if owner, ok := r.byCampaign[commit.Combat.CampaignID]; ok && owner != commit.Combat.ID {
		return apperr.Conflictf("campaign %s already has combat %s", commit.Combat.CampaignID, owner)
	}

	// the ledger append is the only step that can fail, so it goes first
	if err := r.ledger.Append(ctx, commit.WorldEvent); err != nil {
		return err
	}

	stored := commit.Combat.Clone()
	stored.Version = commit.ExpectedVersion + 1
	r.combats[stored.ID] = stored
	r.byCampaign[stored.CampaignID] = stored.ID

	ev := *commit.Event
	ev.Payload = commit.Event.Payload.Clone()
	r.events[stored.ID] = append(r.events[stored.ID], &ev)

	if commit.Applied != nil {
		applied := *commit.Applied
		r.conditions[stored.ID] = append(r.conditions[stored.ID], &applied)
	}

	commit.Combat.Version = stored.Version
	return nil
}

func (r *inMemoryRepository) ListEvents(ctx context.Context, combatID string) ([]*combat.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.events[combatID]
	result := make([]*combat.Event, 0, len(stored))
	for _, ev := range stored {
		cp := *ev
		cp.Payload = ev.Payload.Clone()
		result = append(result, &cp)
	}
	return result, nil
}

func (r *inMemoryRepository) ListAppliedConditions(ctx context.Context, combatID string) ([]*combat.AppliedCondition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.conditions[combatID]
	result := make([]*combat.AppliedCondition, 0, len(stored))
	for _, a := range stored {
		cp := *a
		result = append(result, &cp)
	}
	return result, nil
}
