package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/arise/internal/ui/components"
	"github.com/abhisek/arise/internal/ui/layout"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show system statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
			st, err := rt.eng.Stats(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), components.StatsTable(st, components.ContentWidth(layout.DefaultWidth)))
			return nil
		})
	},
}
