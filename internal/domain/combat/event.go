package combat

import (
	"time"

	"github.com/KirkDiggler/tabletop-ledger/internal/domain/events"
)

// Event is an append-only entry in a combat's history. Every Event is
// mirrored by exactly one world event in the ledger.
type Event struct {
	ID         string            `json:"id"`
	CombatID   string            `json:"combat_id"`
	ActorName  string            `json:"actor_name"`
	Type       events.Type       `json:"type"`
	Visibility events.Visibility `json:"visibility"`
	Payload    events.Payload    `json:"payload"`
	TS         time.Time         `json:"ts"`
}

// Condition is a reference status effect definition
type Condition struct {
	ID          string `json:"id" yaml:"id"`
	RulesetID   string `json:"ruleset_id" yaml:"ruleset"`
	Key         string `json:"key" yaml:"key"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// AppliedCondition links a condition to a combatant within a combat
type AppliedCondition struct {
	ID            string    `json:"id"`
	CombatID      string    `json:"combat_id"`
	CombatantID   string    `json:"combatant_id"`
	ConditionID   string    `json:"condition_id"`
	ConditionKey  string    `json:"condition_key"`
	ExpiresAtTurn *int      `json:"expires_at_turn,omitempty"`
	CombatEventID string    `json:"combat_event_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// Expired reports whether the condition's expiry round has been reached.
// Expiry is advisory; nothing removes conditions automatically.
func (a *AppliedCondition) Expired(round int) bool {
	if a == nil || a.ExpiresAtTurn == nil {
		return false
	}
	return round >= *a.ExpiresAtTurn
}
