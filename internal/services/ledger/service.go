// Package ledger is the single write path into the world event ledger.
package ledger

//go:generate mockgen -destination=mock/mock_service.go -package=mockledgerservice -source=service.go

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/KirkDiggler/tabletop-ledger/internal/domain/combat"
	"github.com/KirkDiggler/tabletop-ledger/internal/domain/events"
	apperr "github.com/KirkDiggler/tabletop-ledger/internal/errors"
	"github.com/KirkDiggler/tabletop-ledger/internal/metrics"
	ledgerrepo "github.com/KirkDiggler/tabletop-ledger/internal/repositories/ledger"
	"github.com/KirkDiggler/tabletop-ledger/internal/ulid"
)

// Metric source labels
const (
	SourceGM        = "gm"
	SourceRules     = "rules"
	SourceNarration = "narration"
	SourceCombat    = "combat"
)

// DefaultListLimit bounds ListWorldEvents when the caller passes no limit
const DefaultListLimit = 200

// Service defines the ledger service interface
type Service interface {
	// Dispatch normalizes and appends one event. Unknown types are stored as NOTE.
	Dispatch(ctx context.Context, input *DispatchInput) (*events.WorldEvent, error)

	// ProjectCombatEvent maps a combat event into the world event that mirrors it.
	// It does not store anything.
	ProjectCombatEvent(event *combat.Event, pctx *ProjectionContext) (*events.WorldEvent, error)

	// GetEvent retrieves one event
	GetEvent(ctx context.Context, id string) (*events.WorldEvent, error)

	// ListWorldEvents returns the most recent events of a world, oldest first
	ListWorldEvents(ctx context.Context, worldID string, limit int) ([]*events.WorldEvent, error)
}

// DispatchInput contains data for dispatching an event
type DispatchInput struct {
	Type       string
	WorldID    string
	CampaignID string
	CombatID   string
	ActorID    string
	Scope      events.Scope      // empty uses the type's default
	Visibility events.Visibility // empty means PLAYERS
	Payload    events.Payload

	// Source only labels metrics; it is not stored
	Source string
}

// ProjectionContext carries the identifiers stamped onto a projected event
type ProjectionContext struct {
	WorldID    string
	CampaignID string
	CombatID   string
	ActorID    string
}

type service struct {
	store   ledgerrepo.Store
	ids     ulid.Generator
	clock   func() time.Time
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Store   ledgerrepo.Store
	IDs     ulid.Generator
	Clock   func() time.Time
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// NewService creates a new ledger service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Store == nil {
		panic("ledger store is required")
	}

	svc := &service{
		store:   cfg.Store,
		ids:     cfg.IDs,
		clock:   cfg.Clock,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
	}

	if svc.ids == nil {
		svc.ids = ulid.NewGenerator()
	}
	if svc.clock == nil {
		svc.clock = time.Now
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}

	return svc
}

func (s *service) Dispatch(ctx context.Context, input *DispatchInput) (*events.WorldEvent, error) {
	if input == nil {
		return nil, apperr.Validation("input cannot be nil")
	}
	if strings.TrimSpace(input.WorldID) == "" {
		return nil, apperr.Validation("worldId is required")
	}

	source := input.Source
	if source == "" {
		source = SourceGM
	}

	normalized, err := events.Normalize(input.Type, input.Payload)
	if err != nil {
		return nil, apperr.Validationf("invalid payload for %s: %v", input.Type, err)
	}
	if normalized.Coerced {
		s.metrics.UnknownType(source)
		s.logger.DebugContext(ctx, "coerced unknown event type to NOTE",
			"original_type", input.Type,
			"world_id", input.WorldID,
			"source", source,
		)
	}

	if err := events.ValidatePayload(normalized.Type, normalized.Payload); err != nil {
		return nil, apperr.Validationf("invalid payload for %s: %v", normalized.Type, err)
	}

	scope := input.Scope
	if scope != events.ScopeMicro && scope != events.ScopeMacro {
		scope = events.DefaultScope(normalized.Type)
	}

	now := s.clock().UTC()
	event := &events.WorldEvent{
		ID:         s.ids.New(now),
		WorldID:    input.WorldID,
		CampaignID: input.CampaignID,
		CombatID:   input.CombatID,
		Type:       normalized.Type,
		Scope:      scope,
		Visibility: events.ParseVisibility(string(input.Visibility)),
		ActorID:    input.ActorID,
		Payload:    normalized.Payload,
		TS:         now,
	}

	if err := s.store.Append(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to append event",
			"world_id", event.WorldID,
			"type", event.Type,
			"error", err,
		)
		return nil, apperr.Wrap(err, "failed to dispatch event")
	}

	s.metrics.EventAppended(string(event.Type), source)
	return event, nil
}

func (s *service) ProjectCombatEvent(event *combat.Event, pctx *ProjectionContext) (*events.WorldEvent, error) {
	if event == nil {
		return nil, apperr.Validation("combat event is required")
	}
	if pctx == nil || strings.TrimSpace(pctx.WorldID) == "" {
		return nil, apperr.Validation("worldId is required to project a combat event")
	}

	normalized, err := events.Normalize(string(event.Type), event.Payload)
	if err != nil {
		return nil, apperr.Internalf("combat event %s has a payload that does not encode: %v", event.ID, err)
	}
	if err := events.ValidatePayload(normalized.Type, normalized.Payload); err != nil {
		return nil, apperr.Internalf("combat event %s has an invalid %s payload: %v", event.ID, normalized.Type, err)
	}
	normalized.Payload["combatEventId"] = event.ID

	combatID := pctx.CombatID
	if combatID == "" {
		combatID = event.CombatID
	}
	actorID := pctx.ActorID
	if actorID == "" {
		actorID = event.ActorName
	}
	ts := event.TS
	if ts.IsZero() {
		ts = s.clock()
	}
	ts = ts.UTC()

	return &events.WorldEvent{
		ID:         s.ids.New(ts),
		WorldID:    pctx.WorldID,
		CampaignID: pctx.CampaignID,
		CombatID:   combatID,
		Type:       normalized.Type,
		Scope:      events.DefaultScope(normalized.Type),
		Visibility: events.ParseVisibility(string(event.Visibility)),
		ActorID:    actorID,
		Payload:    normalized.Payload,
		TS:         ts,
	}, nil
}

func (s *service) GetEvent(ctx context.Context, id string) (*events.WorldEvent, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.Validation("event id is required")
	}
	return s.store.Get(ctx, id)
}

func (s *service) ListWorldEvents(ctx context.Context, worldID string, limit int) ([]*events.WorldEvent, error) {
	if strings.TrimSpace(worldID) == "" {
		return nil, apperr.Validation("worldId is required")
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	list, err := s.store.ListByWorld(ctx, worldID, limit)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list world events")
	}

	// stores return append order; ts wins when writers disagree on the clock
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].TS.Before(list[j].TS)
	})
	return list, nil
}
