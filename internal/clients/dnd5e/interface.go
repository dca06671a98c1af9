package dnd5e

//go:generate mockgen -destination=mock/mock_client.go -package=mockdnd5e . Client

// Client looks up reference stat blocks used to seed NPC combatants
type Client interface {
	GetMonster(key string) (*Monster, error)
}

// Monster is the subset of a stat block the combat tracker consumes
type Monster struct {
	Key           string
	Name          string
	HitPoints     int
	AttackBonus   int
	DamageFormula string
	ActionName    string
}
