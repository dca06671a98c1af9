package ruleset

import (
	"math"

	"github.com/KirkDiggler/tabletop-ledger/internal/dice"
)

const (
	defaultCritRange      = 20
	defaultCritMultiplier = 2
)

type tormenta20 struct {
	roller dice.Roller
}

// NewTormenta20 creates the reference ruleset backed by roller
func NewTormenta20(roller dice.Roller) Strategy {
	if roller == nil {
		roller = dice.NewRandomRoller()
	}
	return &tormenta20{roller: roller}
}

func (t *tormenta20) ID() ID {
	return Tormenta20
}

// AbilityMod is floor((score - 10) / 2), so 9 gives -1 rather than 0
func (t *tormenta20) AbilityMod(score int) int {
	return int(math.Floor(float64(score-10) / 2))
}

func (t *tormenta20) ComputeAttack(sheet *Sheet, attack *Attack) (*AttackResult, error) {
	mod := t.AbilityMod(sheet.attribute(attack.attribute())) + sheet.attackBonus()

	roll, err := dice.RollD20(t.roller, mod)
	if err != nil {
		return nil, err
	}

	critRange := attack.critRange()
	return &AttackResult{
		D20:          roll.D20,
		Modifier:     mod,
		Total:        roll.Total,
		IsNat20:      roll.IsNat20,
		IsNat1:       roll.IsNat1,
		IsCritThreat: roll.D20 >= critRange,
	}, nil
}

func (t *tormenta20) ComputeDamage(sheet *Sheet, attack *Attack, isCrit bool) (*DamageResult, error) {
	rolled, err := dice.RollFormula(t.roller, attack.damageFormula())
	if err != nil {
		return nil, err
	}

	result := &DamageResult{
		Total:      rolled.Total,
		Base:       rolled.Total,
		Detail:     rolled.Detail,
		IsCrit:     isCrit,
		Multiplier: 1,
	}

	if isCrit {
		result.Multiplier = sheet.critMultiplier()
		result.Total = rolled.Total * result.Multiplier
	}

	return result, nil
}

func (s *Sheet) attribute(key string) int {
	if s == nil || s.Attributes == nil {
		return 10
	}
	score, ok := s.Attributes[key]
	if !ok {
		return 10
	}
	return score
}

func (s *Sheet) attackBonus() int {
	if s == nil {
		return 0
	}
	return s.AttackBonus
}

func (s *Sheet) critMultiplier() int {
	if s == nil || s.CritMultiplier < 2 {
		return defaultCritMultiplier
	}
	return s.CritMultiplier
}

func (a *Attack) attribute() string {
	if a == nil || a.Attribute == "" {
		return AttributeForca
	}
	return a.Attribute
}

func (a *Attack) damageFormula() string {
	if a == nil {
		return ""
	}
	return a.DamageFormula
}

func (a *Attack) critRange() int {
	if a == nil || a.CritRange < 2 || a.CritRange > 20 {
		return defaultCritRange
	}
	return a.CritRange
}
