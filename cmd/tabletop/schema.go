package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/tabletop-ledger/internal/domain/events"
)

// NewSchemaCmd creates the schema subcommand.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema [type]",
		Short: "Print the JSON schema of an event payload, or list the event types",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, t := range events.Types() {
					fmt.Fprintln(out, t)
				}
				return nil
			}

			t, ok := events.ParseType(args[0])
			if !ok {
				return fmt.Errorf("unknown event type %q", strings.TrimSpace(args[0]))
			}
			data, err := events.GenerateSchema(t)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, string(data))
			return err
		},
	}
}
