package cmd

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/arise/internal/apperr"
	"github.com/abhisek/arise/internal/ledger"
	"github.com/abhisek/arise/internal/transcribe"
	"github.com/abhisek/arise/internal/ui/components"
	"github.com/abhisek/arise/internal/ui/layout"
)

var journalCmd = &cobra.Command{
	Use:   "journal [text]",
	Short: "Record a journal entry",
	Long: `Record a journal entry for the current user. The text comes from the
arguments, from stdin when no arguments are given, or from an audio file
with --audio (requires ARISE_HUGGINGFACE_API_KEY).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		audioPath, _ := cmd.Flags().GetString("audio")
		userID := resolveUser(cmd)

		return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
			content := strings.Join(args, " ")
			entryType := ledger.EntryText

			switch {
			case audioPath != "":
				text, err := transcribeFile(ctx, rt, audioPath)
				if err != nil {
					return err
				}
				content, entryType = text, ledger.EntryAudio
			case content == "":
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				content = string(data)
			}

			if _, err := rt.eng.GetOrCreateUser(ctx, userID); err != nil {
				return err
			}
			res, err := rt.eng.SubmitEntry(ctx, userID, content, entryType)
			if err != nil {
				return err
			}

			cw := components.ContentWidth(layout.DefaultWidth)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, components.EntryResult(res, cw))
			fmt.Fprintln(out, layout.RenderHints([]layout.Hint{
				{Command: "arise status", Description: "skill levels"},
				{Command: "arise quests", Description: "today's quests"},
			}))
			return nil
		})
	},
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent journal entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		userID := resolveUser(cmd)

		return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
			page, err := rt.eng.ListEntries(ctx, userID, limit, offset)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if page.Total == 0 {
				fmt.Fprintln(out, "No journal entries yet.")
				return nil
			}

			fmt.Fprintf(out, "%-19s  %-5s  %5s  %s\n", "Time", "Type", "XP", "Entry")
			fmt.Fprintln(out, strings.Repeat("─", 80))
			for _, e := range page.Entries {
				fmt.Fprintf(out, "%-19s  %-5s  %5d  %s\n",
					e.Timestamp.Local().Format(time.DateTime), e.Type, e.XPEarned, truncate(oneLine(e.Content), 46))
			}
			fmt.Fprintf(out, "\n%d of %d entries", len(page.Entries), page.Total)
			if page.HasMore {
				fmt.Fprintf(out, " (more with --offset %d)", offset+len(page.Entries))
			}
			fmt.Fprintln(out)
			return nil
		})
	},
}

func init() {
	journalCmd.Flags().String("audio", "", "Transcribe this audio file instead of reading text")
	journalListCmd.Flags().IntP("limit", "n", 10, "Number of entries to show")
	journalListCmd.Flags().Int("offset", 0, "Number of newest entries to skip")

	journalCmd.AddCommand(journalListCmd)
}

func transcribeFile(ctx context.Context, rt *runtime, path string) (string, error) {
	if rt.transcriber == nil {
		return "", &apperr.UpstreamUnavailableError{Service: "transcription"}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if err := transcribe.ValidateAudio(int64(len(data)), mimeType); err != nil {
		return "", err
	}
	return rt.transcriber.Transcribe(ctx, data, mimeType)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
