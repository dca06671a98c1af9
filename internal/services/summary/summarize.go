package summary

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/tabletop-ledger/internal/domain/events"
)

// Digest caps
const (
	MaxNotes      = 10
	MaxMentions   = 10
	MaxHighlights = 8
	MaxHooks      = 2
)

// Digest is a read-only aggregation of recent world events
type Digest struct {
	EventCount   int      `json:"eventCount"`
	Participants []string `json:"participants"`
	Notes        []string `json:"notes"`
	NPCs         []string `json:"npcs"`
	Items        []string `json:"items"`
	Highlights   []string `json:"highlights"`
	Hooks        []string `json:"hooks"`
}

// Summarize builds a digest from evs, oldest first. It is deterministic and
// does not modify its input.
func Summarize(evs []*events.WorldEvent) *Digest {
	d := &Digest{
		Participants: []string{},
		Notes:        []string{},
		NPCs:         []string{},
		Items:        []string{},
		Highlights:   []string{},
		Hooks:        []string{},
	}

	participants := newNameSet(0)
	npcs := newNameSet(MaxMentions)
	items := newNameSet(MaxMentions)

	var priority, rest []string

	for _, ev := range evs {
		if ev == nil {
			continue
		}
		d.EventCount++

		participants.add(ev.Payload.String(events.KeyActorName))
		participants.add(ev.Payload.String(events.KeyTargetName))

		switch ev.Type {
		case events.TypeNote:
			if text := strings.TrimSpace(ev.Text()); text != "" && len(d.Notes) < MaxNotes {
				d.Notes = append(d.Notes, text)
			}
		case events.TypeNPCMention:
			npcs.add(ev.Payload.String(events.KeyName))
		case events.TypeItemMention:
			items.add(ev.Payload.String(events.KeyName))
		}

		line := highlight(ev)
		if line == "" {
			continue
		}
		if isPriority(ev.Type) {
			priority = append(priority, line)
		} else {
			rest = append(rest, line)
		}
	}

	d.Participants = participants.names
	d.NPCs = npcs.names
	d.Items = items.names
	d.Highlights = appendCapped(d.Highlights, priority, MaxHighlights)
	d.Highlights = appendCapped(d.Highlights, rest, MaxHighlights)
	d.Hooks = hooks(evs)

	return d
}

func isPriority(t events.Type) bool {
	switch t {
	case events.TypeDamage, events.TypeAttack, events.TypeRoll, events.TypeRollDice:
		return true
	}
	return false
}

func highlight(ev *events.WorldEvent) string {
	p := ev.Payload
	actor := p.String(events.KeyActorName)
	target := p.String(events.KeyTargetName)

	switch ev.Type {
	case events.TypeAttack:
		if hit, _ := p["hit"].(bool); !hit {
			return fmt.Sprintf("%s misses %s", actor, target)
		}
		verb := "hits"
		if crit, _ := p["isCrit"].(bool); crit {
			verb = "critically hits"
		}
		if dmg, ok := p.Int("damage"); ok && dmg > 0 {
			return fmt.Sprintf("%s %s %s for %d damage", actor, verb, target, dmg)
		}
		return fmt.Sprintf("%s %s %s", actor, verb, target)
	case events.TypeDamage:
		amount, _ := p.Int("amount")
		if target == "" {
			target = "someone"
		}
		if actor != "" {
			return fmt.Sprintf("%s takes %d damage from %s", target, amount, actor)
		}
		return fmt.Sprintf("%s takes %d damage", target, amount)
	case events.TypeRoll, events.TypeRollDice:
		total, _ := p.Int("total")
		if actor == "" {
			actor = "someone"
		}
		if formula := p.String("formula"); formula != "" {
			return fmt.Sprintf("%s rolled %d on %s", actor, total, formula)
		}
		return fmt.Sprintf("%s rolled %d", actor, total)
	case events.TypeTurn, events.TypeInitiative:
		// bookkeeping, not story
		return ""
	default:
		return strings.TrimSpace(ev.Text())
	}
}

// hooks returns the newest distinct note or discovery texts, newest first
func hooks(evs []*events.WorldEvent) []string {
	out := []string{}
	seen := make(map[string]bool)
	for i := len(evs) - 1; i >= 0 && len(out) < MaxHooks; i-- {
		ev := evs[i]
		if ev == nil || (ev.Type != events.TypeNote && ev.Type != events.TypeLocationDiscovery) {
			continue
		}
		text := strings.TrimSpace(ev.Text())
		if text == "" || seen[strings.ToLower(text)] {
			continue
		}
		seen[strings.ToLower(text)] = true
		out = append(out, text)
	}
	return out
}

func appendCapped(dst, src []string, limit int) []string {
	for _, s := range src {
		if len(dst) >= limit {
			break
		}
		dst = append(dst, s)
	}
	return dst
}

// nameSet keeps first-seen order and ignores case when deduplicating
type nameSet struct {
	limit int
	seen  map[string]bool
	names []string
}

func newNameSet(limit int) *nameSet {
	return &nameSet{limit: limit, seen: make(map[string]bool), names: []string{}}
}

func (s *nameSet) add(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if s.limit > 0 && len(s.names) >= s.limit {
		return
	}
	key := strings.ToLower(name)
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.names = append(s.names, name)
}
