package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print cash on hand, profit and store sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd, rootOpts, func(_ context.Context, rt *runtime) error {
				sum := rt.app.Summary()
				w := cmd.OutOrStdout()
				if asJSON {
					enc := json.NewEncoder(w)
					enc.SetIndent("", "  ")
					return enc.Encode(sum)
				}
				fmt.Fprintf(w, "cash on hand: %s\n", sum.CashOnHand.StringFixed(2))
				fmt.Fprintf(w, "profit:       %s\n", sum.Profit.StringFixed(2))
				fmt.Fprintf(w, "events:       %d (%d voided)\n", sum.Events, sum.Voided)
				fmt.Fprintf(w, "products:     %d\n", len(rt.app.Products()))
				fmt.Fprintf(w, "categories:   %d\n", len(rt.app.Categories()))
				fmt.Fprintf(w, "teams:        %d\n", len(rt.app.Teams()))
				fmt.Fprintf(w, "storage:      %s\n", rt.store.Driver())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Factory reset: clear all stored data after confirmation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd, rootOpts, func(ctx context.Context, rt *runtime) error {
				rt.app.RequestFactoryReset()
				return resolvePending(ctx, cmd, rt, yes)
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "reset without asking")
	return cmd
}
