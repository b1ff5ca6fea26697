package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/arise/internal/ui/components"
	"github.com/abhisek/arise/internal/ui/layout"
)

var questsCmd = &cobra.Command{
	Use:   "quests",
	Short: "Show today's quests",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID := resolveUser(cmd)
		return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
			if _, err := rt.eng.GetOrCreateUser(ctx, userID); err != nil {
				return err
			}
			set, err := rt.eng.TodaysQuests(ctx, userID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, components.QuestList(set, components.ContentWidth(layout.DefaultWidth)))
			fmt.Fprintln(out, layout.RenderHints([]layout.Hint{
				{Command: "arise quests complete <id>", Description: "claim a quest"},
			}))
			return nil
		})
	},
}

var questsCompleteCmd = &cobra.Command{
	Use:   "complete <quest-id>",
	Short: "Mark one of today's quests completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID := resolveUser(cmd)
		return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
			res, err := rt.eng.CompleteQuest(ctx, userID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), components.QuestCompleted(res, components.ContentWidth(layout.DefaultWidth)))
			return nil
		})
	},
}

func init() {
	questsCmd.AddCommand(questsCompleteCmd)
}
