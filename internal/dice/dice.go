package dice

import (
	"errors"
	"log/slog"
	"math/rand"
)

var (
	// ErrInvalidCount indicates a roll asked for fewer than one die
	ErrInvalidCount = errors.New("invalid dice count")

	// ErrInvalidSides indicates a die with fewer than one face
	ErrInvalidSides = errors.New("invalid dice size")
)

// RollResult is the outcome of rolling a group of identical dice
type RollResult struct {
	Total    int
	Rolls    []int
	Bonus    int
	Count    int
	Sides    int
	RawTotal int
	IsCrit   bool
	IsFumble bool
}

// Roll rolls count dice of the given size using math/rand and adds bonus.
func Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}

	if sides < 1 {
		return nil, ErrInvalidSides
	}

	raw := 0
	out := make([]int, count)
	for i := 0; i < count; i++ {
		out[i] = rand.Intn(sides) + 1
		raw += out[i]
	}

	slog.Debug("rolled dice", "count", count, "sides", sides, "rolls", out, "bonus", bonus)

	result := &RollResult{
		Total:    raw + bonus,
		Rolls:    out,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: raw,
	}

	if count == 1 && sides == 20 {
		result.IsCrit = out[0] == 20
		result.IsFumble = out[0] == 1
	}

	return result, nil
}
