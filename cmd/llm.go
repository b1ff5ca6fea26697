package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/arise/internal/llm"
	"github.com/abhisek/arise/internal/store"
	"github.com/abhisek/arise/internal/ui/components"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM classification calls",
}

var llmLogCmd = &cobra.Command{
	Use:   "log",
	Short: "List recent LLM calls, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		return withEvents(cmd, func(events store.EventRepo) error {
			evs, err := events.QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(evs) == 0 {
				fmt.Fprintln(out, "No LLM calls recorded.")
				return nil
			}

			rows := make([][]string, 0, len(evs))
			for _, e := range evs {
				status := "ok"
				if !e.Success {
					status = "failed"
				}
				rows = append(rows, []string{
					strconv.Itoa(e.ID),
					e.Timestamp.Local().Format(time.DateTime),
					e.Purpose,
					truncate(e.Model, 28),
					strconv.Itoa(e.InputTokens + e.OutputTokens),
					strconv.FormatInt(e.LatencyMs, 10),
					status,
				})
			}
			fmt.Fprintln(out, components.Table(
				[]string{"ID", "Time", "Purpose", "Model", "Tokens", "Ms", "Status"}, rows, 0, 4, 5))
			return nil
		})
	},
}

var llmShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the prompt and reply of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		return withEvents(cmd, func(events store.EventRepo) error {
			e, err := events.GetLLMEvent(cmd.Context(), id)
			if err != nil {
				return err
			}
			if e == nil {
				return fmt.Errorf("no LLM call with id %d", id)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "#%d  %s  %s/%s  purpose=%s\n", e.ID,
				e.Timestamp.Local().Format(time.DateTime), e.Provider, e.Model, e.Purpose)
			fmt.Fprintf(out, "tokens %d in, %d out  latency %dms  success %t\n",
				e.InputTokens, e.OutputTokens, e.LatencyMs, e.Success)
			if e.ErrorMessage != "" {
				fmt.Fprintf(out, "error: %s\n", e.ErrorMessage)
			}
			for _, part := range []struct{ title, body string }{
				{"Request", e.RequestBody},
				{"Reply", e.ResponseBody},
			} {
				body := part.body
				if body == "" {
					body = "(empty)"
				}
				fmt.Fprintf(out, "\n%s\n%s\n%s\n", part.title, strings.Repeat("─", 60), body)
			}
			return nil
		})
	},
}

var llmUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Summarize token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEvents(cmd, func(events store.EventRepo) error {
			ctx := cmd.Context()
			byPurpose, err := events.LLMUsageByPurpose(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(byPurpose) == 0 {
				fmt.Fprintln(out, "No LLM usage recorded.")
				return nil
			}

			rows := make([][]string, 0, len(byPurpose))
			for _, u := range byPurpose {
				rows = append(rows, []string{
					u.Purpose,
					strconv.Itoa(u.Calls),
					strconv.Itoa(u.InputTokens),
					strconv.Itoa(u.OutputTokens),
					strconv.FormatInt(u.AvgLatencyMs, 10),
				})
			}
			fmt.Fprintln(out, components.Table(
				[]string{"Purpose", "Calls", "Input", "Output", "Avg ms"}, rows, 1, 2, 3, 4))

			byModel, err := events.LLMUsageByModel(ctx)
			if err != nil {
				return err
			}
			rows = rows[:0]
			var total float64
			var unpriced []string
			for _, u := range byModel {
				cost := "?"
				if p, ok := llm.PriceFor(u.Model); ok {
					c := p.Cost(llm.Usage{InputTokens: u.InputTokens, OutputTokens: u.OutputTokens})
					total += c
					cost = formatCost(c)
				} else {
					unpriced = append(unpriced, u.Model)
				}
				rows = append(rows, []string{truncate(u.Model, 32), strconv.Itoa(u.Calls), cost})
			}
			fmt.Fprintln(out, components.Table([]string{"Model", "Calls", "Est. cost"}, rows, 1, 2))

			fmt.Fprintf(out, "Estimated total: %s\n", formatCost(total))
			if len(unpriced) > 0 {
				fmt.Fprintf(out, "No price known for: %s\n", strings.Join(unpriced, ", "))
			}
			return nil
		})
	},
}

// withEvents opens only the store; the LLM commands need no engine.
func withEvents(cmd *cobra.Command, fn func(store.EventRepo) error) error {
	path, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	s, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()
	return fn(s.EventRepo())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func formatCost(usd float64) string {
	if usd > 0 && usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmLogCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmLogCmd.Flags().StringP("purpose", "p", "", "Only calls with this purpose, e.g. skill-analysis")

	llmCmd.AddCommand(llmLogCmd, llmShowCmd, llmUsageCmd)
}
