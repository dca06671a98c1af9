// Package summary builds session digests from the world ledger.
package summary

//go:generate mockgen -destination=mock/mock_service.go -package=mocksummary -source=service.go

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/tabletop-ledger/internal/domain/combat"
	"github.com/KirkDiggler/tabletop-ledger/internal/domain/events"
	apperr "github.com/KirkDiggler/tabletop-ledger/internal/errors"
	"github.com/KirkDiggler/tabletop-ledger/internal/services/ledger"
)

// CombatReader loads the combat of a campaign
type CombatReader interface {
	GetCombat(ctx context.Context, campaignID string) (*combat.Combat, error)
}

// Service defines the summary service interface
type Service interface {
	// SummarizeWorld digests the most recent events of a world together with
	// the campaign's combat, if any
	SummarizeWorld(ctx context.Context, input *SummarizeWorldInput) (*WorldSummary, error)
}

// SummarizeWorldInput contains data for summarizing a world
type SummarizeWorldInput struct {
	WorldID    string
	CampaignID string // optional
	Limit      int    // 0 uses the ledger default

	// IncludeMaster keeps MASTER events in the digest
	IncludeMaster bool
}

// WorldSummary is a digest plus the state of the campaign's combat
type WorldSummary struct {
	WorldID      string  `json:"worldId"`
	Digest       *Digest `json:"digest"`
	CombatActive bool    `json:"combatActive"`
	CombatRound  int     `json:"combatRound,omitempty"`
}

type service struct {
	ledger  ledger.Service
	combats CombatReader
	logger  *slog.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Ledger  ledger.Service
	Combats CombatReader // optional
	Logger  *slog.Logger
}

// NewService creates a new summary service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Ledger == nil {
		panic("ledger service is required")
	}

	svc := &service{
		ledger:  cfg.Ledger,
		combats: cfg.Combats,
		logger:  cfg.Logger,
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}

	return svc
}

func (s *service) SummarizeWorld(ctx context.Context, input *SummarizeWorldInput) (*WorldSummary, error) {
	if input == nil {
		return nil, apperr.Validation("input cannot be nil")
	}
	if strings.TrimSpace(input.WorldID) == "" {
		return nil, apperr.Validation("worldId is required")
	}

	var (
		list []*events.WorldEvent
		c    *combat.Combat
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		list, err = s.ledger.ListWorldEvents(gctx, input.WorldID, input.Limit)
		return err
	})

	if s.combats != nil && strings.TrimSpace(input.CampaignID) != "" {
		g.Go(func() error {
			found, err := s.combats.GetCombat(gctx, input.CampaignID)
			if apperr.IsNotFound(err) {
				return nil
			}
			if err != nil {
				return err
			}
			c = found
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "failed to load summary sources",
			"world_id", input.WorldID,
			"campaign_id", input.CampaignID,
			"error", err,
		)
		return nil, apperr.Wrap(err, "failed to summarize world")
	}

	if !input.IncludeMaster {
		list = playersOnly(list)
	}

	summary := &WorldSummary{
		WorldID: input.WorldID,
		Digest:  Summarize(list),
	}
	if c != nil {
		summary.CombatActive = c.IsActive
		summary.CombatRound = c.Round
	}

	return summary, nil
}

func playersOnly(list []*events.WorldEvent) []*events.WorldEvent {
	out := make([]*events.WorldEvent, 0, len(list))
	for _, ev := range list {
		if ev != nil && ev.Visibility != events.VisibilityMaster {
			out = append(out, ev)
		}
	}
	return out
}
