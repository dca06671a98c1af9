// Package ruleset resolves attacks, damage and ability modifiers for the
// game systems a campaign can be played with.
package ruleset

// ID identifies a ruleset
type ID string

const (
	// Tormenta20 is the reference ruleset and the default for every campaign
	Tormenta20 ID = "tormenta20"

	// Default is used whenever a campaign names no ruleset or an unknown one
	Default = Tormenta20
)

// Attribute keys used by the reference sheet
const (
	AttributeForca        = "forca"
	AttributeDestreza     = "destreza"
	AttributeConstituicao = "constituicao"
	AttributeInteligencia = "inteligencia"
	AttributeSabedoria    = "sabedoria"
	AttributeCarisma      = "carisma"
)

// Sheet carries the numbers a ruleset reads from a character or NPC
type Sheet struct {
	Attributes     map[string]int
	AttackBonus    int
	CritMultiplier int
}

// Attack describes one attack option
type Attack struct {
	Name          string
	Attribute     string
	DamageFormula string
	CritRange     int
}

// AttackResult is the outcome of an attack roll
type AttackResult struct {
	D20          int  `json:"d20"`
	Modifier     int  `json:"modifier"`
	Total        int  `json:"total"`
	IsNat20      bool `json:"isNat20"`
	IsNat1       bool `json:"isNat1"`
	IsCritThreat bool `json:"isCritThreat"`
}

// DamageResult is the outcome of a damage roll
type DamageResult struct {
	Total      int    `json:"total"`
	Base       int    `json:"base"`
	Detail     string `json:"detail"`
	IsCrit     bool   `json:"isCrit"`
	Multiplier int    `json:"multiplier"`
}

// Strategy resolves rules for one game system.
// Implementations hold no mutable state and are safe for concurrent use.
type Strategy interface {
	ID() ID

	// AbilityMod converts an attribute score into its modifier
	AbilityMod(score int) int

	// ComputeAttack rolls an attack for the sheet
	ComputeAttack(sheet *Sheet, attack *Attack) (*AttackResult, error)

	// ComputeDamage rolls damage for the attack, applying the critical multiplier when isCrit
	ComputeDamage(sheet *Sheet, attack *Attack, isCrit bool) (*DamageResult, error)
}
