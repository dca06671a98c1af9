package events

// Typed payloads per event type. Fields without omitempty are required by the
// generated schema.

type WorldCreatedPayload struct {
	Name string `json:"name"`
	Text string `json:"text,omitempty"`
}

type AttackPayload struct {
	ActorName  string `json:"actorName"`
	TargetName string `json:"targetName"`
	D20        int    `json:"d20"`
	Total      int    `json:"total"`
	Modifier   int    `json:"modifier,omitempty"`
	Hit        bool   `json:"hit,omitempty"`
	IsCrit     bool   `json:"isCrit,omitempty"`
	Damage     int    `json:"damage,omitempty"`
	Detail     string `json:"detail,omitempty"`
	TargetID   string `json:"targetId,omitempty"`
	HPAfter    int    `json:"hpAfter,omitempty"`
	Text       string `json:"text,omitempty"`
}

type DamagePayload struct {
	Amount     int    `json:"amount"`
	ActorName  string `json:"actorName,omitempty"`
	TargetName string `json:"targetName,omitempty"`
	Detail     string `json:"detail,omitempty"`
	Text       string `json:"text,omitempty"`
}

type HealPayload struct {
	Amount     int    `json:"amount"`
	ActorName  string `json:"actorName,omitempty"`
	TargetName string `json:"targetName,omitempty"`
	Text       string `json:"text,omitempty"`
}

// RollPayload serves both ROLL and ROLL_DICE
type RollPayload struct {
	Total     int    `json:"total"`
	Formula   string `json:"formula,omitempty"`
	Detail    string `json:"detail,omitempty"`
	ActorName string `json:"actorName,omitempty"`
	Text      string `json:"text,omitempty"`
}

type NotePayload struct {
	Text         string `json:"text"`
	OriginalType string `json:"originalType,omitempty"`
}

// MentionPayload serves NPC_MENTION, ITEM_MENTION and LOCATION_DISCOVERY
type MentionPayload struct {
	Name string `json:"name"`
	Text string `json:"text,omitempty"`
}

type ConditionAppliedPayload struct {
	TargetID           string `json:"targetId"`
	TargetName         string `json:"targetName"`
	ConditionID        string `json:"conditionId"`
	ConditionKey       string `json:"conditionKey"`
	ConditionName      string `json:"conditionName,omitempty"`
	ExpiresAtTurn      *int   `json:"expiresAtTurn,omitempty"`
	AppliedConditionID string `json:"appliedConditionId,omitempty"`
	Text               string `json:"text,omitempty"`
}

type TurnPayload struct {
	Round       int    `json:"round"`
	TurnIndex   int    `json:"turnIndex"`
	ActorName   string `json:"actorName,omitempty"`
	CombatantID string `json:"combatantId,omitempty"`
}

type OverridePayload struct {
	TargetID   string `json:"targetId"`
	TargetName string `json:"targetName"`
	HPBefore   int    `json:"hpBefore"`
	HPAfter    int    `json:"hpAfter"`
	MPBefore   int    `json:"mpBefore"`
	MPAfter    int    `json:"mpAfter"`
	Note       string `json:"note,omitempty"`
	Text       string `json:"text,omitempty"`
}

type InitiativeEntry struct {
	CombatantID string `json:"combatantId"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Initiative  int    `json:"initiative"`
}

type InitiativePayload struct {
	Order []InitiativeEntry `json:"order"`
	Text  string            `json:"text,omitempty"`
}

// CombatPayload serves COMBAT_STARTED and COMBAT_ENDED
type CombatPayload struct {
	Round int    `json:"round"`
	Text  string `json:"text,omitempty"`
}

type CombatantAddedPayload struct {
	CombatantID string `json:"combatantId"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Initiative  int    `json:"initiative"`
	Text        string `json:"text,omitempty"`
}

// payloadShapes maps each type to the struct its schema is reflected from
func payloadShapes() map[Type]any {
	return map[Type]any{
		TypeWorldCreated:      &WorldCreatedPayload{},
		TypeAttack:            &AttackPayload{},
		TypeDamage:            &DamagePayload{},
		TypeHeal:              &HealPayload{},
		TypeRoll:              &RollPayload{},
		TypeRollDice:          &RollPayload{},
		TypeNote:              &NotePayload{},
		TypeNPCMention:        &MentionPayload{},
		TypeItemMention:       &MentionPayload{},
		TypeLocationDiscovery: &MentionPayload{},
		TypeConditionApplied:  &ConditionAppliedPayload{},
		TypeTurn:              &TurnPayload{},
		TypeOverride:          &OverridePayload{},
		TypeInitiative:        &InitiativePayload{},
		TypeCombatStarted:     &CombatPayload{},
		TypeCombatEnded:       &CombatPayload{},
		TypeCombatantAdded:    &CombatantAddedPayload{},
	}
}
