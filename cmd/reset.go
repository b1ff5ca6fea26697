package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear every user's daily quests now",
	Long: `Clear every stored daily quest set, as the midnight reset does.
Each user gets a fresh set the next time quests are requested.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
			n, err := rt.eng.ResetDailyQuests(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d quest sets.\n", n)
			return nil
		})
	},
}
