package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/tabletop-ledger/internal/dice"
	"github.com/KirkDiggler/tabletop-ledger/internal/domain/events"
	apperr "github.com/KirkDiggler/tabletop-ledger/internal/errors"
	"github.com/KirkDiggler/tabletop-ledger/internal/metrics"
	"github.com/KirkDiggler/tabletop-ledger/internal/services/ledger"
	"github.com/KirkDiggler/tabletop-ledger/internal/services/narration"
	"github.com/KirkDiggler/tabletop-ledger/internal/services/summary"
)

// DefaultSummaryLimit is how many events /summary reads when no limit is given
const DefaultSummaryLimit = 100

// activeCombatID returns the campaign's combat id, or empty when there is none
func (h *Handler) activeCombatID(ctx context.Context, campaignID string) string {
	c, err := h.combat.GetCombat(ctx, campaignID)
	if err != nil || c == nil || !c.IsActive {
		return ""
	}
	return c.ID
}

func (h *Handler) handleRoll(ctx context.Context, req *request) (*discordgo.InteractionResponseData, error) {
	formula := req.String("formula")
	result, err := dice.RollFormula(h.roller, formula)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to roll dice")
	}
	if !result.Valid {
		return nil, apperr.Validationf("%q is not a dice formula, try 2d6+3", formula)
	}

	actor := req.actorName()
	payload, err := events.ToPayload(&events.RollPayload{
		Total:     result.Total,
		Formula:   result.Formula,
		Detail:    result.Detail,
		ActorName: actor,
		Text:      fmt.Sprintf("%s rolled %d on %s", actor, result.Total, result.Formula),
	})
	if err != nil {
		return nil, err
	}

	_, err = h.ledger.Dispatch(ctx, &ledger.DispatchInput{
		Type:       string(events.TypeRollDice),
		WorldID:    req.WorldID,
		CampaignID: req.CampaignID,
		CombatID:   h.activeCombatID(ctx, req.CampaignID),
		ActorID:    req.User.ID,
		Visibility: req.visibility(),
		Payload:    payload,
		Source:     ledger.SourceRules,
	})
	if err != nil {
		return nil, err
	}

	return reply(fmt.Sprintf("🎲 %s rolled **%d** on `%s` (%s)", actor, result.Total, result.Formula, result.Detail)), nil
}

func (h *Handler) handleNote(ctx context.Context, req *request) (*discordgo.InteractionResponseData, error) {
	text := req.String("text")
	if text == "" {
		return nil, apperr.Validation("a note needs text")
	}

	_, err := h.ledger.Dispatch(ctx, &ledger.DispatchInput{
		Type:       string(events.TypeNote),
		WorldID:    req.WorldID,
		CampaignID: req.CampaignID,
		ActorID:    req.User.ID,
		Visibility: req.visibility(),
		Payload:    events.Payload{events.KeyText: text},
		Source:     ledger.SourceGM,
	})
	if err != nil {
		return nil, err
	}

	return reply("📝 Noted."), nil
}

func (h *Handler) handleNarrate(ctx context.Context, req *request) (*discordgo.InteractionResponseData, error) {
	candidates, err := narration.ParseCandidates([]byte(req.String("candidates")))
	if err != nil {
		return nil, err
	}

	result, err := h.narration.Ingest(ctx, &narration.IngestInput{
		WorldID:    req.WorldID,
		CampaignID: req.CampaignID,
		CombatID:   h.activeCombatID(ctx, req.CampaignID),
		Visibility: req.visibility(),
		Candidates: candidates,
	})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, o := range result.Outcomes {
		counts[o.Outcome]++
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📖 Recorded %d of %d events.", len(result.Events), len(result.Outcomes)))
	for _, outcome := range []string{metrics.OutcomeCoerced, metrics.OutcomeDowngraded, metrics.OutcomeFailed} {
		if counts[outcome] > 0 {
			sb.WriteString(fmt.Sprintf(" %s: %d.", outcome, counts[outcome]))
		}
	}
	for _, ev := range result.Events {
		sb.WriteString(fmt.Sprintf("\n• %s %s", ev.Type, ev.Text()))
	}

	return reply(sb.String()), nil
}

func (h *Handler) handleSummary(ctx context.Context, req *request) (*discordgo.InteractionResponseData, error) {
	limit, ok := req.Int("limit")
	if !ok || limit <= 0 {
		limit = DefaultSummaryLimit
	}

	result, err := h.summary.SummarizeWorld(ctx, &summary.SummarizeWorldInput{
		WorldID:       req.WorldID,
		CampaignID:    req.CampaignID,
		Limit:         limit,
		IncludeMaster: req.private(),
	})
	if err != nil {
		return nil, err
	}

	return replyEmbed(buildSummaryEmbed(result)), nil
}
