// Package events defines the canonical world event stored in the ledger.
//
// A WorldEvent is immutable once appended. Its Type is a closed set; anything
// outside it is coerced to NOTE before it reaches storage.
package events

import (
	"strings"
	"time"
)

// Type identifies what happened
type Type string

const (
	TypeWorldCreated      Type = "WORLD_CREATED"
	TypeAttack            Type = "ATTACK"
	TypeDamage            Type = "DAMAGE"
	TypeHeal              Type = "HEAL"
	TypeRoll              Type = "ROLL"
	TypeRollDice          Type = "ROLL_DICE"
	TypeNote              Type = "NOTE"
	TypeNPCMention        Type = "NPC_MENTION"
	TypeItemMention       Type = "ITEM_MENTION"
	TypeLocationDiscovery Type = "LOCATION_DISCOVERY"
	TypeConditionApplied  Type = "CONDITION_APPLIED"
	TypeTurn              Type = "TURN"
	TypeOverride          Type = "OVERRIDE"
	TypeInitiative        Type = "INITIATIVE"
	TypeCombatStarted     Type = "COMBAT_STARTED"
	TypeCombatEnded       Type = "COMBAT_ENDED"
	TypeCombatantAdded    Type = "COMBATANT_ADDED"
)

var knownTypes = map[Type]bool{
	TypeWorldCreated:      true,
	TypeAttack:            true,
	TypeDamage:            true,
	TypeHeal:              true,
	TypeRoll:              true,
	TypeRollDice:          true,
	TypeNote:              true,
	TypeNPCMention:        true,
	TypeItemMention:       true,
	TypeLocationDiscovery: true,
	TypeConditionApplied:  true,
	TypeTurn:              true,
	TypeOverride:          true,
	TypeInitiative:        true,
	TypeCombatStarted:     true,
	TypeCombatEnded:       true,
	TypeCombatantAdded:    true,
}

// Types returns every known event type
func Types() []Type {
	return []Type{
		TypeWorldCreated, TypeAttack, TypeDamage, TypeHeal, TypeRoll, TypeRollDice,
		TypeNote, TypeNPCMention, TypeItemMention, TypeLocationDiscovery,
		TypeConditionApplied, TypeTurn, TypeOverride, TypeInitiative,
		TypeCombatStarted, TypeCombatEnded, TypeCombatantAdded,
	}
}

// IsKnown reports whether t belongs to the closed type set
func (t Type) IsKnown() bool {
	return knownTypes[t]
}

// ParseType matches raw against the known types, ignoring case and
// surrounding space. ok is false for anything else.
func ParseType(raw string) (Type, bool) {
	t := Type(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.IsKnown() {
		return TypeNote, false
	}
	return t, true
}

// Scope is how broadly notable an event is
type Scope string

const (
	ScopeMicro Scope = "MICRO"
	ScopeMacro Scope = "MACRO"
)

// DefaultScope returns the scope an event of type t gets when the producer names none
func DefaultScope(t Type) Scope {
	switch t {
	case TypeWorldCreated, TypeLocationDiscovery, TypeConditionApplied,
		TypeCombatStarted, TypeCombatEnded, TypeAttack, TypeNPCMention:
		return ScopeMacro
	default:
		return ScopeMicro
	}
}

// Visibility is who may see an event
type Visibility string

const (
	VisibilityPlayers Visibility = "PLAYERS"
	VisibilityMaster  Visibility = "MASTER"
)

// ParseVisibility maps raw to a visibility, defaulting to PLAYERS
func ParseVisibility(raw string) Visibility {
	if Visibility(strings.ToUpper(strings.TrimSpace(raw))) == VisibilityMaster {
		return VisibilityMaster
	}
	return VisibilityPlayers
}

// WorldEvent is one immutable ledger entry
type WorldEvent struct {
	ID         string     `json:"id"`
	WorldID    string     `json:"worldId"`
	CampaignID string     `json:"campaignId,omitempty"`
	CombatID   string     `json:"combatId,omitempty"`
	Type       Type       `json:"type"`
	Scope      Scope      `json:"scope"`
	Visibility Visibility `json:"visibility"`
	ActorID    string     `json:"actorId"`
	Payload    Payload    `json:"payload"`
	TS         time.Time  `json:"ts"`
}

// Text returns the canonical narrative string of the event, if any
func (e *WorldEvent) Text() string {
	if e == nil {
		return ""
	}
	return e.Payload.String(KeyText)
}
