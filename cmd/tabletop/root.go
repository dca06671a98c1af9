package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/tabletop-ledger/internal/dice"
)

// NewRootCmd creates the root command for the tabletop CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tabletop",
		Short: "Tabletop ledger - combat tracking and world history for RPG sessions",
		Long: `Tabletop ledger runs tabletop RPG sessions over Discord. It tracks
combat turn by turn and keeps an append-only history of every world.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewRollCmd(dice.NewRandomRoller()))
	cmd.AddCommand(NewConditionsCmd())
	cmd.AddCommand(NewSchemaCmd())

	return cmd
}
