package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/tabletop-ledger/internal/dice"
	mockdice "github.com/KirkDiggler/tabletop-ledger/internal/dice/mock"
)

func TestMockRoller_Roll(t *testing.T) {
	tests := []struct {
		name       string
		setupRolls []int
		count      int
		sides      int
		bonus      int
		wantTotal  int
		wantRolls  []int
		wantErr    bool
	}{
		{
			name:       "single d20 roll",
			setupRolls: []int{15},
			count:      1,
			sides:      20,
			wantTotal:  15,
			wantRolls:  []int{15},
		},
		{
			name:       "2d6+3",
			setupRolls: []int{4, 5},
			count:      2,
			sides:      6,
			bonus:      3,
			wantTotal:  12, // 4+5+3
			wantRolls:  []int{4, 5},
		},
		{
			name:       "not enough rolls",
			setupRolls: []int{10},
			count:      2,
			sides:      6,
			wantErr:    true,
		},
		{
			name:       "invalid roll for die size",
			setupRolls: []int{7},
			count:      1,
			sides:      6,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := mockdice.NewManualMockRoller()
			roller.SetRolls(tt.setupRolls)

			result, err := roller.Roll(tt.count, tt.sides, tt.bonus)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, result.Total)
			assert.Equal(t, tt.wantRolls, result.Rolls)
		})
	}
}

func TestRoll_Bounds(t *testing.T) {
	for i := 0; i < 500; i++ {
		result, err := dice.Roll(3, 6, 0)
		require.NoError(t, err)
		for _, r := range result.Rolls {
			assert.GreaterOrEqual(t, r, 1)
			assert.LessOrEqual(t, r, 6)
		}
		assert.Equal(t, result.RawTotal, result.Total)
	}
}

func TestRoll_InvalidInput(t *testing.T) {
	_, err := dice.Roll(0, 6, 0)
	assert.ErrorIs(t, err, dice.ErrInvalidCount)

	_, err = dice.Roll(1, 0, 0)
	assert.ErrorIs(t, err, dice.ErrInvalidSides)
}

func TestRollDie(t *testing.T) {
	roller := dice.NewRandomRoller()
	for i := 0; i < 500; i++ {
		v, err := dice.RollDie(roller, 8)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 8)
	}
}

func TestRollD20(t *testing.T) {
	t.Run("flat roll stays in range and flags naturals", func(t *testing.T) {
		roller := dice.NewRandomRoller()
		for i := 0; i < 1000; i++ {
			result, err := dice.RollD20(roller, 0)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, result.Total, 1)
			assert.LessOrEqual(t, result.Total, 20)
			assert.Equal(t, result.Total == 20, result.IsNat20)
			assert.Equal(t, result.D20 == 20, result.IsNat20)
			assert.Equal(t, result.D20 == 1, result.IsNat1)
		}
	})

	t.Run("modifier is added to the die", func(t *testing.T) {
		roller := mockdice.NewManualMockRoller()
		roller.SetRolls([]int{20})

		result, err := dice.RollD20(roller, -2)
		require.NoError(t, err)
		assert.Equal(t, &dice.D20Result{D20: 20, Mod: -2, Total: 18, IsNat20: true}, result)
	})
}

func TestRollFormula(t *testing.T) {
	tests := []struct {
		name       string
		formula    string
		setupRolls []int
		wantTotal  int
		wantDetail string
		wantValid  bool
	}{
		{name: "plain", formula: "1d6", setupRolls: []int{4}, wantTotal: 4, wantDetail: "4", wantValid: true},
		{name: "positive offset", formula: "2d8+3", setupRolls: []int{2, 7}, wantTotal: 12, wantDetail: "2+7+3", wantValid: true},
		{name: "negative offset upper case", formula: "4D6-1", setupRolls: []int{1, 2, 3, 4}, wantTotal: 9, wantDetail: "1+2+3+4-1", wantValid: true},
		{name: "garbage", formula: "fireball", wantDetail: dice.InvalidDetail},
		{name: "missing count", formula: "d20", wantDetail: dice.InvalidDetail},
		{name: "zero dice", formula: "0d6", wantDetail: dice.InvalidDetail},
		{name: "too many dice", formula: "101d6", wantDetail: dice.InvalidDetail},
		{name: "spaces inside", formula: "2d6 + 3", wantDetail: dice.InvalidDetail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := mockdice.NewManualMockRoller()
			roller.SetRolls(tt.setupRolls)

			result, err := dice.RollFormula(roller, tt.formula)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, result.Total)
			assert.Equal(t, tt.wantDetail, result.Detail)
			assert.Equal(t, tt.wantValid, result.Valid)
		})
	}
}

func TestRollFormula_RangeProperty(t *testing.T) {
	roller := dice.NewRandomRoller()
	for i := 0; i < 1000; i++ {
		result, err := dice.RollFormula(roller, "2d6+3")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Total, 5)
		assert.LessOrEqual(t, result.Total, 15)
	}
}
