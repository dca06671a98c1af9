package dice

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

const (
	// MaxFormulaDice caps the dice count accepted by RollFormula
	MaxFormulaDice = 100

	// MaxFormulaSides caps the die size accepted by RollFormula
	MaxFormulaSides = 1000

	// InvalidDetail is the detail reported for a formula that could not be rolled
	InvalidDetail = "invalid"
)

var formulaPattern = regexp.MustCompile(`(?i)^(\d+)d(\d+)([+-]\d+)?$`)

// D20Result is a single d20 check
type D20Result struct {
	D20     int  `json:"d20"`
	Mod     int  `json:"mod"`
	Total   int  `json:"total"`
	IsNat20 bool `json:"isNat20"`
	IsNat1  bool `json:"isNat1"`
}

// FormulaResult is the evaluation of an NdM+K formula
type FormulaResult struct {
	Formula string `json:"formula"`
	Total   int    `json:"total"`
	Detail  string `json:"detail"`
	Rolls   []int  `json:"rolls,omitempty"`
	Offset  int    `json:"offset"`
	Valid   bool   `json:"valid"`
}

// Formula is a parsed NdM+K expression
type Formula struct {
	Count  int
	Sides  int
	Offset int
}

// RollDie rolls a single die and returns a value in [1, sides]
func RollDie(roller Roller, sides int) (int, error) {
	result, err := roller.Roll(1, sides, 0)
	if err != nil {
		return 0, err
	}
	return result.Rolls[0], nil
}

// RollD20 rolls one d20 and adds mod
func RollD20(roller Roller, mod int) (*D20Result, error) {
	d20, err := RollDie(roller, 20)
	if err != nil {
		return nil, err
	}

	return &D20Result{
		D20:     d20,
		Mod:     mod,
		Total:   d20 + mod,
		IsNat20: d20 == 20,
		IsNat1:  d20 == 1,
	}, nil
}

// ParseFormula parses text such as "2d6+3" or "4D6-1".
// The boolean is false when the text does not match or exceeds the dice caps.
func ParseFormula(text string) (Formula, bool) {
	m := formulaPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Formula{}, false
	}

	count, err := strconv.Atoi(m[1])
	if err != nil {
		return Formula{}, false
	}
	sides, err := strconv.Atoi(m[2])
	if err != nil {
		return Formula{}, false
	}

	offset := 0
	if m[3] != "" {
		offset, err = strconv.Atoi(m[3])
		if err != nil {
			return Formula{}, false
		}
	}

	if count < 1 || count > MaxFormulaDice || sides < 1 || sides > MaxFormulaSides {
		return Formula{}, false
	}

	return Formula{Count: count, Sides: sides, Offset: offset}, true
}

// RollFormula evaluates an NdM+K formula.
//
// A formula that does not parse yields Total 0 and Detail "invalid" with no error;
// callers treat that as a degenerate roll. An error is only returned when the
// roller itself fails.
func RollFormula(roller Roller, text string) (*FormulaResult, error) {
	f, ok := ParseFormula(text)
	if !ok {
		slog.Debug("unparseable dice formula", "formula", text)
		return &FormulaResult{Formula: text, Detail: InvalidDetail}, nil
	}

	result, err := roller.Roll(f.Count, f.Sides, f.Offset)
	if err != nil {
		return nil, err
	}

	return &FormulaResult{
		Formula: text,
		Total:   result.Total,
		Detail:  formatDetail(result.Rolls, f.Offset),
		Rolls:   result.Rolls,
		Offset:  f.Offset,
		Valid:   true,
	}, nil
}

func formatDetail(rolls []int, offset int) string {
	parts := make([]string, len(rolls))
	for i, r := range rolls {
		parts[i] = strconv.Itoa(r)
	}

	detail := strings.Join(parts, "+")
	if offset != 0 {
		detail += fmt.Sprintf("%+d", offset)
	}
	return detail
}
