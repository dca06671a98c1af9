package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/tabletop-ledger/internal/domain/combat"
	apperr "github.com/KirkDiggler/tabletop-ledger/internal/errors"

	combatsvc "github.com/KirkDiggler/tabletop-ledger/internal/services/combat"
)

func (h *Handler) handleCombat(ctx context.Context, req *request) (*discordgo.InteractionResponseData, error) {
	switch req.Sub {
	case "start":
		rulesetID := req.String("ruleset")
		if rulesetID == "" {
			rulesetID = h.ruleset
		}
		c, err := h.combat.StartCombat(ctx, &combatsvc.StartCombatInput{
			CampaignID: req.CampaignID,
			WorldID:    req.WorldID,
			RulesetID:  rulesetID,
			ActorName:  req.actorName(),
			Visibility: req.visibility(),
		})
		if err != nil {
			return nil, err
		}
		data := replyEmbed(buildInitiativeEmbed(c))
		data.Content = "⚔️ Combat started!"
		return data, nil

	case "end":
		c, err := h.combat.EndCombat(ctx, &combatsvc.EndCombatInput{
			CampaignID: req.CampaignID,
			ActorName:  req.actorName(),
			Visibility: req.visibility(),
		})
		if err != nil {
			return nil, err
		}
		return reply(fmt.Sprintf("🏁 Combat ended after %d rounds.", c.Round)), nil

	case "next", "prev":
		dir := combat.DirectionNext
		if req.Sub == "prev" {
			dir = combat.DirectionPrev
		}
		c, err := h.combat.AdvanceTurn(ctx, &combatsvc.AdvanceTurnInput{
			CampaignID: req.CampaignID,
			Direction:  dir,
			Visibility: req.visibility(),
		})
		if err != nil {
			return nil, err
		}
		return replyEmbed(buildInitiativeEmbed(c)), nil

	case "status":
		c, err := h.combat.GetCombat(ctx, req.CampaignID)
		if err != nil && !apperr.IsNotFound(err) {
			return nil, err
		}
		return replyEmbed(buildInitiativeEmbed(c)), nil

	case "initiative":
		specs, err := parseInitiativeEntries(req.String("characters"))
		if err != nil {
			return nil, err
		}
		c, err := h.combat.RollInitiative(ctx, &combatsvc.RollInitiativeInput{
			CampaignID: req.CampaignID,
			Combatants: specs,
			ActorName:  req.actorName(),
			Visibility: req.visibility(),
		})
		if err != nil {
			return nil, err
		}
		return replyEmbed(buildInitiativeEmbed(c)), nil

	case "add":
		hp, _ := req.Int("hp")
		mp, _ := req.Int("mp")
		defense, _ := req.Int("defense")
		bonus, _ := req.Int("attack_bonus")
		cb, err := h.combat.AddCombatant(ctx, &combatsvc.AddCombatantInput{
			CampaignID: req.CampaignID,
			ActorName:  req.actorName(),
			Combatant: &combatsvc.CombatantSpec{
				Kind:          strings.ToUpper(req.String("kind")),
				Name:          req.String("name"),
				HPMax:         hp,
				MPMax:         mp,
				DefenseFinal:  defense,
				AttackBonus:   bonus,
				DamageFormula: req.String("damage"),
			},
			Visibility: req.visibility(),
		})
		if err != nil {
			return nil, err
		}
		return reply(fmt.Sprintf("➕ %s joins the fight with initiative %d.", cb.Name, cb.Initiative)), nil

	case "monster":
		cb, err := h.combat.AddMonster(ctx, &combatsvc.AddMonsterInput{
			CampaignID: req.CampaignID,
			MonsterKey: req.String("key"),
			Name:       req.String("name"),
			ActorName:  req.actorName(),
			Visibility: req.visibility(),
		})
		if err != nil {
			return nil, err
		}
		return reply(fmt.Sprintf("🐉 %s joins the fight with %d HP and initiative %d.", cb.Name, cb.HPMax, cb.Initiative)), nil

	case "attack":
		c, err := h.combat.GetCombat(ctx, req.CampaignID)
		if err != nil {
			return nil, err
		}
		attacker, err := findCombatant(c, req.String("attacker"))
		if err != nil {
			return nil, err
		}
		target, err := findCombatant(c, req.String("target"))
		if err != nil {
			return nil, err
		}

		result, err := h.combat.ResolveAttack(ctx, &combatsvc.ResolveAttackInput{
			CampaignID: req.CampaignID,
			AttackerID: attacker.ID,
			TargetID:   target.ID,
			Attribute:  req.String("attribute"),
			Visibility: req.visibility(),
		})
		if err != nil {
			return nil, err
		}
		return replyEmbed(buildAttackEmbed(attacker.Name, result)), nil
	}

	return nil, apperr.InvalidArgumentf("unknown combat subcommand %s", req.Sub)
}

func (h *Handler) handleHP(ctx context.Context, req *request) (*discordgo.InteractionResponseData, error) {
	deltaHP := req.IntPtr("hp")
	deltaMP := req.IntPtr("mp")
	if deltaHP == nil && deltaMP == nil {
		return nil, apperr.Validation("give an hp or mp change")
	}

	c, err := h.combat.GetCombat(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}
	target, err := findCombatant(c, req.String("target"))
	if err != nil {
		return nil, err
	}

	cb, err := h.combat.ApplyDelta(ctx, &combatsvc.ApplyDeltaInput{
		CampaignID: req.CampaignID,
		TargetID:   target.ID,
		DeltaHP:    deltaHP,
		DeltaMP:    deltaMP,
		Note:       req.String("note"),
		ActorName:  req.actorName(),
		Visibility: req.visibility(),
	})
	if err != nil {
		return nil, err
	}

	return reply(fmt.Sprintf("%s %s: HP %d/%d, MP %d/%d",
		getCompactHPBar(cb.HPCurrent, cb.HPMax), cb.Name,
		cb.HPCurrent, cb.HPMax, cb.MPCurrent, cb.MPMax)), nil
}

func (h *Handler) handleCondition(ctx context.Context, req *request) (*discordgo.InteractionResponseData, error) {
	c, err := h.combat.GetCombat(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}
	target, err := findCombatant(c, req.String("target"))
	if err != nil {
		return nil, err
	}

	result, err := h.combat.ApplyCondition(ctx, &combatsvc.ApplyConditionInput{
		CombatID:          c.ID,
		TargetCombatantID: target.ID,
		ConditionKey:      req.String("condition"),
		ExpiresAtTurn:     req.IntPtr("expires"),
		ActorName:         req.actorName(),
		Visibility:        req.visibility(),
	})
	if err != nil {
		return nil, err
	}

	content := fmt.Sprintf("🌀 %s is now %s.", target.Name, result.Applied.ConditionKey)
	if result.Applied.ExpiresAtTurn != nil {
		content += fmt.Sprintf(" Expires at round %d.", *result.Applied.ExpiresAtTurn)
	}
	return reply(content), nil
}
