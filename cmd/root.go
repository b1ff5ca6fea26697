package cmd

import (
	"os"

	"github.com/abhisek/arise/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "arise",
	Short: "Level up real-life skills by journaling",
	Long: `Arise turns journal entries into experience points for eight personal
development skills and hands out three daily quests.

Run "arise serve" for the HTTP API or use the subcommands directly.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ARISE_DB env var)")
	rootCmd.PersistentFlags().StringP("user", "u", "", "User id (overrides ARISE_USER, defaults to $USER)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log at the configured level instead of warnings only")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(questsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(rewardsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ARISE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	p, _ := cmd.Flags().GetString("db")
	if p == "" {
		p = os.Getenv("ARISE_DB")
	}
	if p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveUser returns the user id from --user, then ARISE_USER, then $USER.
func resolveUser(cmd *cobra.Command) string {
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		return u
	}
	for _, env := range []string{"ARISE_USER", "USER", "USERNAME"} {
		if u := os.Getenv(env); u != "" {
			return u
		}
	}
	return "default"
}
