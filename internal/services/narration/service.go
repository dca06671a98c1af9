// Package narration canonicalizes event candidates proposed by the narration
// analysis collaborator and sends them through the ledger's normal dispatch path.
package narration

//go:generate mockgen -destination=mock/mock_service.go -package=mocknarration -source=service.go

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/tabletop-ledger/internal/domain/events"
	apperr "github.com/KirkDiggler/tabletop-ledger/internal/errors"
	"github.com/KirkDiggler/tabletop-ledger/internal/metrics"
	"github.com/KirkDiggler/tabletop-ledger/internal/services/ledger"
)

// Actor is stamped on every narration event
const Actor = "narrator"

// Candidate is one structured guess returned for a piece of narration
type Candidate struct {
	Type        string         `json:"type"`
	Payload     events.Payload `json:"payload"`
	Description string         `json:"description"`
}

// Canonical is a candidate ready for dispatch
type Canonical struct {
	Type    events.Type
	Payload events.Payload
	Outcome string
}

// Outcome reports what happened to one candidate
type Outcome struct {
	Candidate *Candidate
	Outcome   string
	Event     *events.WorldEvent // nil when dispatch failed
	Err       error
}

// IngestInput contains the candidates of one narration pass
type IngestInput struct {
	WorldID    string
	CampaignID string
	CombatID   string
	Visibility events.Visibility
	Candidates []*Candidate
}

// IngestResult lists the stored events and the outcome of every candidate in input order
type IngestResult struct {
	Events   []*events.WorldEvent
	Outcomes []*Outcome
}

// Service defines the narration service interface
type Service interface {
	// Ingest canonicalizes and dispatches every candidate. A candidate that
	// fails to store does not stop the others; its outcome carries the error.
	Ingest(ctx context.Context, input *IngestInput) (*IngestResult, error)
}

type service struct {
	ledger  ledger.Service
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Ledger  ledger.Service
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// NewService creates a new narration service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Ledger == nil {
		panic("ledger service is required")
	}

	svc := &service{
		ledger:  cfg.Ledger,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}

	return svc
}

func (s *service) Ingest(ctx context.Context, input *IngestInput) (*IngestResult, error) {
	if input == nil {
		return nil, apperr.Validation("input cannot be nil")
	}
	if strings.TrimSpace(input.WorldID) == "" {
		return nil, apperr.Validation("worldId is required")
	}

	result := &IngestResult{
		Events:   make([]*events.WorldEvent, 0, len(input.Candidates)),
		Outcomes: make([]*Outcome, 0, len(input.Candidates)),
	}

	for _, candidate := range input.Candidates {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		canonical := Canonicalize(candidate)
		outcome := &Outcome{Candidate: candidate, Outcome: canonical.Outcome}

		ev, err := s.ledger.Dispatch(ctx, &ledger.DispatchInput{
			Type:       string(canonical.Type),
			WorldID:    input.WorldID,
			CampaignID: input.CampaignID,
			CombatID:   input.CombatID,
			ActorID:    Actor,
			Visibility: input.Visibility,
			Payload:    canonical.Payload,
			Source:     ledger.SourceNarration,
		})
		if err != nil {
			s.logger.WarnContext(ctx, "failed to dispatch narration candidate",
				"world_id", input.WorldID,
				"type", canonical.Type,
				"error", err,
			)
			outcome.Outcome = metrics.OutcomeFailed
			outcome.Err = err
		} else {
			outcome.Event = ev
			result.Events = append(result.Events, ev)
		}

		s.metrics.NarrationCandidate(outcome.Outcome)
		result.Outcomes = append(result.Outcomes, outcome)
	}

	return result, nil
}

// Canonicalize maps a candidate onto the closed event types. Unknown types
// become NOTE; a description replaces payload.text; a known type whose
// payload does not fit its shape is downgraded to NOTE instead of failing.
func Canonicalize(c *Candidate) *Canonical {
	if c == nil {
		c = &Candidate{}
	}

	normalized, err := events.Normalize(c.Type, c.Payload)
	if err != nil {
		// nothing of the payload can be stored, keep the narration text only
		original := strings.TrimSpace(c.Type)
		if original == "" {
			original = string(events.TypeNote)
		}
		payload := events.Payload{}
		if desc := strings.TrimSpace(c.Description); desc != "" {
			payload[events.KeyText] = desc
		}
		return &Canonical{
			Type:    events.TypeNote,
			Payload: events.DowngradeToNote(events.Type(original), payload),
			Outcome: metrics.OutcomeDowngraded,
		}
	}
	payload := normalized.Payload

	if desc := strings.TrimSpace(c.Description); desc != "" {
		payload[events.KeyText] = desc
	} else if strings.TrimSpace(payload.String(events.KeyText)) == "" {
		delete(payload, events.KeyText)
	}
	events.EnsureText(payload, string(normalized.Type))

	if normalized.Coerced {
		return &Canonical{Type: events.TypeNote, Payload: payload, Outcome: metrics.OutcomeCoerced}
	}

	if err := events.ValidatePayload(normalized.Type, payload); err != nil {
		return &Canonical{
			Type:    events.TypeNote,
			Payload: events.DowngradeToNote(normalized.Type, payload),
			Outcome: metrics.OutcomeDowngraded,
		}
	}

	return &Canonical{Type: normalized.Type, Payload: payload, Outcome: metrics.OutcomeAccepted}
}

// ParseCandidates decodes the collaborator's JSON reply, either an array of
// candidates or an object with a "candidates" array
func ParseCandidates(data []byte) ([]*Candidate, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, apperr.Validation("narration reply is empty")
	}

	if strings.HasPrefix(trimmed, "[") {
		var list []*Candidate
		if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
			return nil, apperr.Validationf("invalid narration reply: %v", err)
		}
		return list, nil
	}

	var wrapped struct {
		Candidates []*Candidate `json:"candidates"`
	}
	if err := json.Unmarshal([]byte(trimmed), &wrapped); err != nil {
		return nil, apperr.Validationf("invalid narration reply: %v", err)
	}
	return wrapped.Candidates, nil
}
