package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/tabletop-ledger/internal/dice"
)

// NewRollCmd creates the roll subcommand.
func NewRollCmd(roller dice.Roller) *cobra.Command {
	return &cobra.Command{
		Use:     "roll <formula>",
		Short:   "Roll dice such as 2d6+3",
		Example: "  tabletop roll 1d20+5",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := dice.RollFormula(roller, args[0])
			if err != nil {
				return fmt.Errorf("failed to roll: %w", err)
			}
			if !result.Valid {
				return fmt.Errorf("invalid formula %q, expected NdM+K", args[0])
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s = %d (%s)\n", result.Formula, result.Total, result.Detail)
			return err
		},
	}
}
