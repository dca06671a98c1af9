// Package combat holds the combat aggregate of a campaign: its roster,
// initiative order and round/turn cursor, plus the events and conditions
// recorded against it.
package combat

import (
	"time"
)

// Kind is the role a combatant plays
type Kind string

const (
	KindCharacter Kind = "CHARACTER"
	KindNPC       Kind = "NPC"
	KindExtra     Kind = "EXTRA"
)

// ParseKind maps raw to a kind. Empty defaults to NPC.
func ParseKind(raw string) (Kind, bool) {
	switch Kind(raw) {
	case KindCharacter, KindNPC, KindExtra:
		return Kind(raw), true
	case "":
		return KindNPC, true
	default:
		return "", false
	}
}

// Defaults applied to combatants added without full stats
const (
	DefaultDefense       = 10
	DefaultDamageFormula = "1d6"
	DefaultAttribute     = 10
)

// Direction moves the turn cursor
type Direction string

const (
	DirectionNext Direction = "next"
	DirectionPrev Direction = "prev"
)

// Combat is the single combat record of a campaign. It is reused across a
// session and never deleted; ending it only clears IsActive.
type Combat struct {
	ID         string       `json:"id"`
	CampaignID string       `json:"campaign_id"`
	WorldID    string       `json:"world_id"`
	RulesetID  string       `json:"ruleset_id"`
	IsActive   bool         `json:"is_active"`
	Round      int          `json:"round"`
	TurnIndex  int          `json:"turn_index"`
	Combatants []*Combatant `json:"combatants"` // turn order
	Version    int64        `json:"version"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// Combatant is one participant in a combat
type Combatant struct {
	ID             string `json:"id"`
	CombatID       string `json:"combat_id"`
	Kind           Kind   `json:"kind"`
	RefID          string `json:"ref_id,omitempty"`
	Name           string `json:"name"`
	Initiative     int    `json:"initiative"`
	AttributeScore int    `json:"attribute_score"`
	HPCurrent      int    `json:"hp_current"`
	HPMax          int    `json:"hp_max"`
	MPCurrent      int    `json:"mp_current"`
	MPMax          int    `json:"mp_max"`
	DefenseFinal   int    `json:"defense_final"`
	AttackBonus    int    `json:"attack_bonus"`
	DamageFormula  string `json:"damage_formula"`
}

// New creates an active combat at round 1, turn 0
func New(id, campaignID, worldID, rulesetID string, now time.Time) *Combat {
	return &Combat{
		ID:         id,
		CampaignID: campaignID,
		WorldID:    worldID,
		RulesetID:  rulesetID,
		IsActive:   true,
		Round:      1,
		TurnIndex:  0,
		Combatants: []*Combatant{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Clone returns a deep copy so callers can mutate without touching shared state
func (c *Combat) Clone() *Combat {
	if c == nil {
		return nil
	}
	out := *c
	out.Combatants = make([]*Combatant, len(c.Combatants))
	for i, cb := range c.Combatants {
		cp := *cb
		out.Combatants[i] = &cp
	}
	return &out
}

// Start activates the combat. A fresh combat keeps round 1; a reused one
// keeps its cursor, normalized to a valid position.
func (c *Combat) Start() {
	c.IsActive = true
	if c.Round < 1 {
		c.Round = 1
	}
	c.clampCursor()
}

// End deactivates the combat. Roster and history are retained.
func (c *Combat) End() {
	c.IsActive = false
}

// Find returns the combatant with id, or nil
func (c *Combat) Find(id string) *Combatant {
	for _, cb := range c.Combatants {
		if cb.ID == id {
			return cb
		}
	}
	return nil
}

// Current returns the combatant at the turn cursor, falling back to the
// first combatant when the cursor is out of range. Nil with an empty roster.
func (c *Combat) Current() *Combatant {
	if len(c.Combatants) == 0 {
		return nil
	}
	if c.TurnIndex < 0 || c.TurnIndex >= len(c.Combatants) {
		return c.Combatants[0]
	}
	return c.Combatants[c.TurnIndex]
}

// Advance moves the turn cursor one step. With n = max(1, len(roster)):
// next wraps to 0 and starts a new round; prev wraps to n-1 and goes back a
// round, never below 1.
func (c *Combat) Advance(dir Direction) {
	n := len(c.Combatants)
	if n < 1 {
		n = 1
	}

	switch dir {
	case DirectionPrev:
		c.TurnIndex = ((c.TurnIndex-1)%n + n) % n
		if c.TurnIndex == n-1 {
			c.Round--
			if c.Round < 1 {
				c.Round = 1
			}
		}
	default:
		c.TurnIndex = ((c.TurnIndex+1)%n + n) % n
		if c.TurnIndex == 0 {
			c.Round++
		}
	}
}

// Add appends a combatant to the roster and re-sorts by initiative. The turn
// stays with whoever held it before the add, so a newcomer sorted ahead of
// the cursor waits for the next round.
func (c *Combat) Add(cb *Combatant) {
	var currentID string
	if cur := c.Current(); cur != nil {
		currentID = cur.ID
	}

	cb.CombatID = c.ID
	c.Combatants = append(c.Combatants, cb)
	SortByInitiative(c.Combatants)

	if currentID != "" {
		for i, existing := range c.Combatants {
			if existing.ID == currentID {
				c.TurnIndex = i
				break
			}
		}
	}
	c.clampCursor()
}

// ReplaceCharacters drops every CHARACTER combatant, keeps the rest in their
// current order and merges in rolled. The result is sorted by initiative,
// descending; equal initiatives keep preserved combatants first, then the
// rolled ones in input order.
func (c *Combat) ReplaceCharacters(rolled []*Combatant) {
	merged := make([]*Combatant, 0, len(c.Combatants)+len(rolled))
	for _, cb := range c.Combatants {
		if cb.Kind != KindCharacter {
			cb.CombatID = c.ID
			merged = append(merged, cb)
		}
	}
	for _, cb := range rolled {
		cb.CombatID = c.ID
		merged = append(merged, cb)
	}

	SortByInitiative(merged)
	c.Combatants = merged
	c.clampCursor()
}

func (c *Combat) clampCursor() {
	if c.TurnIndex < 0 || c.TurnIndex >= len(c.Combatants) {
		c.TurnIndex = 0
	}
}

// ResourceDelta is a change to a combatant's hit and mana points. Nil means unchanged.
type ResourceDelta struct {
	HP *int
	MP *int
}

// ResourceChange records the before and after values of an applied delta
type ResourceChange struct {
	HPBefore int
	HPAfter  int
	MPBefore int
	MPAfter  int
}

// Apply adds the delta and clamps both resources into [0, max]
func (cb *Combatant) Apply(delta ResourceDelta) ResourceChange {
	change := ResourceChange{HPBefore: cb.HPCurrent, MPBefore: cb.MPCurrent}

	if delta.HP != nil {
		cb.HPCurrent = clamp(cb.HPCurrent+*delta.HP, 0, cb.HPMax)
	}
	if delta.MP != nil {
		cb.MPCurrent = clamp(cb.MPCurrent+*delta.MP, 0, cb.MPMax)
	}

	change.HPAfter = cb.HPCurrent
	change.MPAfter = cb.MPCurrent
	return change
}

// Normalize fills defaults and forces current values into bounds
func (cb *Combatant) Normalize() {
	if cb.HPMax < 0 {
		cb.HPMax = 0
	}
	if cb.MPMax < 0 {
		cb.MPMax = 0
	}
	cb.HPCurrent = clamp(cb.HPCurrent, 0, cb.HPMax)
	cb.MPCurrent = clamp(cb.MPCurrent, 0, cb.MPMax)
	if cb.DefenseFinal == 0 {
		cb.DefenseFinal = DefaultDefense
	}
	if cb.DamageFormula == "" {
		cb.DamageFormula = DefaultDamageFormula
	}
	if cb.AttributeScore == 0 {
		cb.AttributeScore = DefaultAttribute
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
