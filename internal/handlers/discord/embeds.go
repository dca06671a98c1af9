package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/tabletop-ledger/internal/domain/combat"
	"github.com/KirkDiggler/tabletop-ledger/internal/services/summary"

	combatsvc "github.com/KirkDiggler/tabletop-ledger/internal/services/combat"
)

const (
	colorInfo    = 0x3498db
	colorHit     = 0xe74c3c
	colorCrit    = 0xf1c40f
	colorMiss    = 0x95a5a6
	colorSuccess = 0x2ecc71
)

const maxNameLen = 13

// buildInitiativeEmbed renders the turn order as an ansi table
func buildInitiativeEmbed(c *combat.Combat) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "⚔️ Combat",
		Color: colorInfo,
	}
	if c == nil {
		embed.Description = "No combat in this channel."
		return embed
	}

	state := "ended"
	if c.IsActive {
		state = "active"
	}
	embed.Description = fmt.Sprintf("Round %d, %s", c.Round, state)

	if len(c.Combatants) == 0 {
		embed.Fields = []*discordgo.MessageEmbedField{{
			Name:  "🎯 Initiative Order",
			Value: "No combatants yet. Use `/combat initiative` or `/combat add`.",
		}}
		return embed
	}

	var sb strings.Builder
	sb.WriteString("```ansi\n")
	sb.WriteString("Init│Name          │HP              │MP   │Def\n")
	sb.WriteString("────┼──────────────┼────────────────┼─────┼───\n")

	for i, cb := range c.Combatants {
		if i == c.TurnIndex {
			sb.WriteString(fmt.Sprintf("▶%-3d", cb.Initiative))
		} else {
			sb.WriteString(fmt.Sprintf(" %-3d", cb.Initiative))
		}
		sb.WriteString("│")

		name := cb.Name
		if len(name) > maxNameLen {
			name = name[:maxNameLen-3] + "..."
		}
		sb.WriteString(fmt.Sprintf("%-14s", name))
		sb.WriteString("│")

		sb.WriteString(hpColor(cb.HPCurrent, cb.HPMax))
		sb.WriteString(getCompactHPBar(cb.HPCurrent, cb.HPMax))
		sb.WriteString(fmt.Sprintf(" %3d/%-3d", cb.HPCurrent, cb.HPMax))
		sb.WriteString("\u001b[0m")
		sb.WriteString("│")

		sb.WriteString(fmt.Sprintf("%2d/%-2d", cb.MPCurrent, cb.MPMax))
		sb.WriteString("│")
		sb.WriteString(fmt.Sprintf("%3d", cb.DefenseFinal))

		if cb.HPCurrent == 0 {
			sb.WriteString(" 💀")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("```")

	embed.Fields = []*discordgo.MessageEmbedField{{
		Name:  "🎯 Initiative Order",
		Value: sb.String(),
	}}

	if current := c.Current(); current != nil {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%s's turn", current.Name)}
	}

	return embed
}

func hpColor(current, maxHP int) string {
	if current == 0 || maxHP == 0 {
		return "\u001b[90m"
	}
	percent := float64(current) / float64(maxHP)
	switch {
	case percent > 0.5:
		return "\u001b[32m"
	case percent > 0.25:
		return "\u001b[33m"
	default:
		return "\u001b[31m"
	}
}

// getCompactHPBar returns an 8 character bar using single-width characters
func getCompactHPBar(current, maxHP int) string {
	if maxHP == 0 || current == 0 {
		return "████████"
	}

	filled := int(float64(current) / float64(maxHP) * 8)
	return strings.Repeat("█", filled) + strings.Repeat("░", 8-filled)
}

// buildAttackEmbed reports the outcome of a resolved attack
func buildAttackEmbed(attacker string, result *combatsvc.AttackResult) *discordgo.MessageEmbed {
	target := "target"
	if result.Target != nil {
		target = result.Target.Name
	}

	embed := &discordgo.MessageEmbed{
		Fields: []*discordgo.MessageEmbedField{{
			Name: "🎲 Attack Roll",
			Value: fmt.Sprintf("d20 %d %+d = **%d**",
				result.Attack.D20, result.Attack.Modifier, result.Attack.Total),
			Inline: true,
		}},
	}

	switch {
	case !result.Hit:
		embed.Title = fmt.Sprintf("🛡️ %s misses %s", attacker, target)
		embed.Color = colorMiss
	case result.Damage != nil && result.Damage.IsCrit:
		embed.Title = fmt.Sprintf("💥 %s critically hits %s", attacker, target)
		embed.Color = colorCrit
	default:
		embed.Title = fmt.Sprintf("⚔️ %s hits %s", attacker, target)
		embed.Color = colorHit
	}

	if result.Damage != nil {
		value := fmt.Sprintf("%s = **%d**", result.Damage.Detail, result.Damage.Total)
		if result.Damage.Multiplier > 1 {
			value = fmt.Sprintf("(%s) x%d = **%d**", result.Damage.Detail, result.Damage.Multiplier, result.Damage.Total)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "🩸 Damage",
			Value:  value,
			Inline: true,
		})
	}

	if result.Target != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "❤️ " + result.Target.Name,
			Value: fmt.Sprintf("%s %d/%d",
				getCompactHPBar(result.Target.HPCurrent, result.Target.HPMax),
				result.Target.HPCurrent, result.Target.HPMax),
		})
	}

	return embed
}

// buildSummaryEmbed renders a world digest
func buildSummaryEmbed(s *summary.WorldSummary) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "📜 Session Summary",
		Color: colorSuccess,
	}

	d := s.Digest
	if d == nil || d.EventCount == 0 {
		embed.Description = "Nothing has happened yet."
		return embed
	}

	embed.Description = fmt.Sprintf("%d events", d.EventCount)
	if s.CombatActive {
		embed.Description += fmt.Sprintf(", combat in round %d", s.CombatRound)
	}

	addList := func(name string, items []string) {
		if len(items) == 0 {
			return
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  name,
			Value: "• " + strings.Join(items, "\n• "),
		})
	}

	if len(d.Participants) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "👥 Participants",
			Value: strings.Join(d.Participants, ", "),
		})
	}
	addList("⭐ Highlights", d.Highlights)
	addList("🧙 NPCs", d.NPCs)
	addList("🎒 Items", d.Items)
	addList("🪝 Hooks", d.Hooks)

	return embed
}
