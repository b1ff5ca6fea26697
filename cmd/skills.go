package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/arise/internal/classify"
	"github.com/abhisek/arise/internal/skills"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the skill categories and the leveling curve",
	RunE: func(cmd *cobra.Command, args []string) error {
		levels, _ := cmd.Flags().GetInt("levels")
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%-24s  %-24s  %s\n", "Key", "Name", "Description")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, k := range skills.All() {
			info, _ := skills.Lookup(k)
			fmt.Fprintf(out, "%-24s  %-24s  %s\n", k, info.Name, info.Description)
			fmt.Fprintf(out, "%-24s  %-24s  %s\n", "", "", "classifier hint: "+classify.Description(k))
		}

		if levels > 0 {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%5s  %10s  %10s\n", "Level", "To next", "Cumulative")
			fmt.Fprintln(out, strings.Repeat("─", 30))
			cum := 0
			for l := 1; l <= levels; l++ {
				fmt.Fprintf(out, "%5d  %10d  %10d\n", l, skills.XPThreshold(l), cum)
				cum += skills.XPThreshold(l)
			}
		}
		return nil
	},
}

func init() {
	skillsCmd.Flags().Int("levels", 10, "Show XP thresholds for this many levels (0 to hide)")
}
