package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/arise/internal/store"
)

func runCLI(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func setupCLIEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("ARISE_CLASSIFIER", "keyword")
	t.Setenv("ARISE_HUGGINGFACE_API_KEY", "")
	t.Setenv("ARISE_DB", "")
	t.Setenv("ARISE_TIMEZONE", "UTC")
	return filepath.Join(t.TempDir(), "nested", "arise.db")
}

func TestCLI_JournalStatusQuestsReset(t *testing.T) {
	db := setupCLIEnv(t)

	out := runCLI(t, "", "journal", "--db", db, "--user", "alice", "Went for a long run and a gym workout")
	assert.Contains(t, out, "Journal entry recorded")
	assert.Contains(t, out, "Fitness")

	out = runCLI(t, "I read a book and planned my budget for the month\n", "journal", "--db", db, "--user", "alice")
	assert.Contains(t, out, "Journal entry recorded")

	out = runCLI(t, "", "journal", "list", "--db", db, "--user", "alice", "--limit", "5")
	assert.Contains(t, out, "2 of 2 entries")

	out = runCLI(t, "", "status", "--db", db, "--user", "alice")
	assert.Contains(t, out, "Emotional Intelligence")
	assert.Contains(t, out, "alice")

	out = runCLI(t, "", "quests", "--db", db, "--user", "alice")
	assert.Contains(t, out, "Quests for")
	assert.Contains(t, out, "(0/3 done)")

	out = runCLI(t, "", "stats", "--db", db)
	assert.Contains(t, out, "Journal entries")

	out = runCLI(t, "", "reset", "--db", db)
	assert.Contains(t, out, "Cleared 1 quest sets.")

	out = runCLI(t, "", "rewards", "--db", db, "--user", "alice")
	assert.Contains(t, out, "No milestones")
}

func TestCLI_ClassifyPreview(t *testing.T) {
	setupCLIEnv(t)
	out := runCLI(t, "", "classify", "--classifier", "keyword", "Saved money and made a budget")
	assert.Contains(t, out, "Classifier: keyword")
	assert.Contains(t, out, "Financial")
	assert.Contains(t, out, "total")
}

func TestCLI_SkillsAndVersion(t *testing.T) {
	out := runCLI(t, "", "skills", "--levels", "3")
	assert.Contains(t, out, "emotional_intelligence")
	assert.Contains(t, out, "150")

	out = runCLI(t, "", "version")
	assert.Contains(t, out, "arise")
}

func TestWriteBuild(t *testing.T) {
	bi := &debug.BuildInfo{
		GoVersion: "go1.25.6",
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "4b304240aab7c0ffee"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "GOOS", Value: "linux"},
			{Key: "GOARCH", Value: "arm64"},
		},
	}
	var buf bytes.Buffer
	writeBuild(&buf, "v0.4.0", bi)
	out := buf.String()
	assert.Contains(t, out, "arise v0.4.0\n")
	assert.Contains(t, out, "commit:   4b304240aab7 (modified)")
	assert.Contains(t, out, "go:       go1.25.6")
	assert.Contains(t, out, "platform: linux/arm64")

	buf.Reset()
	writeBuild(&buf, "(devel)", nil)
	assert.Equal(t, "arise (devel)\n", buf.String())
}

func TestResolveUser(t *testing.T) {
	t.Setenv("ARISE_USER", "from-env")
	require.NoError(t, rootCmd.PersistentFlags().Set("user", ""))
	assert.Equal(t, "from-env", resolveUser(rootCmd))

	require.NoError(t, rootCmd.PersistentFlags().Set("user", "flag-user"))
	t.Cleanup(func() { _ = rootCmd.PersistentFlags().Set("user", "") })
	assert.Equal(t, "flag-user", resolveUser(rootCmd))
}

func TestCLI_LLMLogAndUsage(t *testing.T) {
	db := setupCLIEnv(t)
	require.NoError(t, store.EnsureDir(db))
	s, err := store.Open(db)
	require.NoError(t, err)
	repo := s.EventRepo()
	ctx := context.Background()
	require.NoError(t, repo.AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "openai", Model: "gpt-4o-mini-2024-07-18", Purpose: "skill-analysis",
		InputTokens: 400_000, OutputTokens: 100_000, LatencyMs: 420, Success: true,
		RequestBody: "user:\nRan five miles", ResponseBody: `{"scores":{"fitness":90}}`,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "skill-analysis", ErrorMessage: "script exhausted",
	}))
	require.NoError(t, s.Close())

	out := runCLI(t, "", "llm", "log", "--db", db)
	assert.Contains(t, out, "gpt-4o-mini-2024-07-18")
	assert.Contains(t, out, "failed")

	out = runCLI(t, "", "llm", "show", "1", "--db", db)
	assert.Contains(t, out, "Ran five miles")
	assert.Contains(t, out, `"fitness":90`)

	// 0.4M input at $0.15 plus 0.1M output at $0.60.
	out = runCLI(t, "", "llm", "usage", "--db", db)
	assert.Contains(t, out, "Estimated total: $0.12")
	assert.Contains(t, out, "No price known for: mock")
}
