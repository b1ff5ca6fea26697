package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/arise/internal/ui/components"
	"github.com/abhisek/arise/internal/ui/layout"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show skill levels for the current user",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID := resolveUser(cmd)
		return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
			u, err := rt.eng.GetOrCreateUser(ctx, userID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, layout.RenderHeader("Status", u.TotalXP, layout.DefaultWidth))
			fmt.Fprintln(out, components.UserStatus(u, components.ContentWidth(layout.DefaultWidth)))
			return nil
		})
	},
}

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "List milestone rewards earned so far",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID := resolveUser(cmd)
		return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
			ms, err := rt.eng.DeriveMilestones(ctx, userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), components.RewardList(ms, components.ContentWidth(layout.DefaultWidth)))
			return nil
		})
	},
}
