package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/tabletop-ledger/internal/repositories/conditions"
	"github.com/KirkDiggler/tabletop-ledger/internal/ruleset"
)

// NewConditionsCmd creates the conditions subcommand.
func NewConditionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conditions [ruleset]",
		Short: "List the reference conditions of a ruleset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rulesetID := string(ruleset.Default)
			if len(args) == 1 {
				rulesetID = args[0]
			}

			catalog, err := conditions.NewCatalog()
			if err != nil {
				return fmt.Errorf("failed to load condition catalog: %w", err)
			}

			list, err := catalog.List(cmd.Context(), rulesetID)
			if err != nil {
				return fmt.Errorf("failed to list conditions: %w", err)
			}
			if len(list) == 0 {
				return fmt.Errorf("no conditions for ruleset %q", rulesetID)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tNAME\tDESCRIPTION")
			for _, c := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.Key, c.Name, c.Description)
			}
			return w.Flush()
		},
	}
}
