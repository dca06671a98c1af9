package testutils

import (
	"time"

	"github.com/KirkDiggler/tabletop-ledger/internal/domain/combat"
)

// CreateTestCombat creates an active combat with the given combatants in order
func CreateTestCombat(id, campaignID string, combatants ...*combat.Combatant) *combat.Combat {
	c := combat.New(id, campaignID, "world-"+campaignID, "tormenta20", time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC))
	for _, cb := range combatants {
		cb.CombatID = id
		c.Combatants = append(c.Combatants, cb)
	}
	return c
}

// CreateTestCombatant creates a combatant with full hit and mana points
func CreateTestCombatant(id, name string, kind combat.Kind, initiative, hp int) *combat.Combatant {
	return &combat.Combatant{
		ID:             id,
		Kind:           kind,
		Name:           name,
		Initiative:     initiative,
		AttributeScore: combat.DefaultAttribute,
		HPCurrent:      hp,
		HPMax:          hp,
		DefenseFinal:   combat.DefaultDefense,
		DamageFormula:  combat.DefaultDamageFormula,
	}
}
