package cmd

import (
	"bytes"
	"io"
	"path/filepath"
	goruntime "runtime"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/konnektoren/internal/config"
)

// resetFlags restores every flag to its default; the command tree is global
// and keeps parsed values between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI with args and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// withDB returns args prefixed with a database in a fresh temp dir.
func withDB(t *testing.T) func(args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	db := filepath.Join(t.TempDir(), "konnektoren.db")
	return func(args ...string) (string, error) {
		return run(t, append(args, "--db", db, "--backend", "sqlite")...)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "konnektoren "), out)
	assert.Equal(t, 1, strings.Count(out, "\n"))

	out, err = run(t, "version", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "go:       "+goruntime.Version())
	assert.Contains(t, out, "platform: "+goruntime.GOOS+"/"+goruntime.GOARCH)
}

func TestBuildVersion(t *testing.T) {
	assert.Equal(t, "(devel)", buildVersion(nil))
	assert.Equal(t, "(devel)", buildVersion(&debug.BuildInfo{}))

	info := &debug.BuildInfo{Main: debug.Module{Version: "v0.3.1"}}
	assert.Equal(t, "v0.3.1", buildVersion(info))

	old := version
	t.Cleanup(func() { version = old })
	version = "v1.0.0"
	assert.Equal(t, "v1.0.0", buildVersion(info))
}

func TestPlaythrough(t *testing.T) {
	cli := withDB(t)

	out, err := cli("status")
	require.NoError(t, err)
	assert.Contains(t, out, "[konnektoren-1]")
	assert.Contains(t, out, "Task:      1/5")

	// und=0, weil=1, deshalb=2, entweder...oder=3, obwohl=1
	for i, option := range []string{"0", "1", "2", "3", "1"} {
		out, err = cli("solve", option)
		require.NoError(t, err)
		assert.Contains(t, out, "richtig!", "task %d", i+1)
	}
	assert.Contains(t, out, "All tasks answered")

	out, err = cli("finish")
	require.NoError(t, err)
	assert.Contains(t, out, "100%, +10 XP (total 10)")

	out, err = cli("history")
	require.NoError(t, err)
	assert.Contains(t, out, "konnektoren-1")
	assert.Contains(t, out, "100%")

	out, err = cli("achievements")
	require.NoError(t, err)
	assert.Contains(t, out, "[✓] Erste Schritte")
	assert.Contains(t, out, "XP: 10")

	out, err = cli("next")
	require.NoError(t, err)
	assert.Contains(t, out, "[konnektoren-2]")
	assert.Contains(t, out, "XP:        10  completed 1")

	out, err = cli("paths")
	require.NoError(t, err)
	assert.Contains(t, out, "> konnektoren-2")
	assert.Contains(t, out, "locked, 15 XP")
}

func TestStepErrors(t *testing.T) {
	cli := withDB(t)

	_, err := cli("prev")
	assert.ErrorContains(t, err, "no previous challenges")

	_, err = cli("prev", "--task")
	assert.ErrorContains(t, err, "no previous tasks")

	_, err = cli("solve", "9")
	assert.ErrorContains(t, err, "invalid option id: 9")

	_, err = cli("solve", "x")
	assert.ErrorContains(t, err, "option must be a number")

	// Failed commands leave the state alone.
	out, err := cli("status")
	require.NoError(t, err)
	assert.Contains(t, out, "answered 0")
}

func TestNextTask(t *testing.T) {
	cli := withDB(t)

	out, err := cli("next", "--task")
	require.NoError(t, err)
	assert.Contains(t, out, "Task:      2/5")

	// The flag does not leak into the next run.
	out, err = cli("next")
	require.NoError(t, err)
	assert.Contains(t, out, "[konnektoren-2]")
}

func TestReplay(t *testing.T) {
	cli := withDB(t)

	out, err := cli("replay")
	require.NoError(t, err)
	assert.Contains(t, out, "The command log is empty.")

	for _, option := range []string{"0", "1", "2", "3", "1"} {
		_, err = cli("solve", option)
		require.NoError(t, err)
	}
	_, err = cli("finish")
	require.NoError(t, err)
	_, err = cli("next")
	require.NoError(t, err)

	out, err = cli("replay", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Replayed 7 commands")
	assert.Contains(t, out, "[konnektoren-2]")
	assert.Contains(t, out, "XP:        10  completed 1")

	// Without a reset the default covers the whole log.
	out, err = cli("replay")
	require.NoError(t, err)
	assert.Contains(t, out, "Replayed 7 commands")
	assert.Contains(t, out, "XP:        10  completed 1")

	_, err = cli("reset", "--yes")
	require.NoError(t, err)
	out, err = cli("replay")
	require.NoError(t, err)
	assert.Contains(t, out, "No commands logged since the last reset.")

	_, err = cli("next")
	require.NoError(t, err)
	out, err = cli("replay")
	require.NoError(t, err)
	assert.Contains(t, out, "Replayed 1 commands")
	assert.Contains(t, out, "XP:        0")
	assert.Contains(t, out, "[konnektoren-2]")

	out, err = cli("replay", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Replayed 8 commands")

	out, err = cli("replay", "--session", "nope")
	require.NoError(t, err)
	assert.Contains(t, out, "No commands logged for session nope.")
}

func TestReplayNeedsCommandLog(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := run(t, "replay", "--backend", "memory")
	assert.ErrorIs(t, err, errNoCommandLog)
}

func TestReset(t *testing.T) {
	cli := withDB(t)

	_, err := cli("next")
	require.NoError(t, err)

	_, err = cli("reset")
	assert.ErrorContains(t, err, "--yes")

	out, err := cli("reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Progress reset.")

	out, err = cli("status")
	require.NoError(t, err)
	assert.Contains(t, out, "[konnektoren-1]")
}

func TestFileBackend(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("KONNEKTOREN_STATE_FILE", filepath.Join(dir, "state.json"))

	_, err := run(t, "next", "--backend", "file")
	require.NoError(t, err)

	out, err := run(t, "status", "--backend", "file")
	require.NoError(t, err)
	assert.Contains(t, out, "[konnektoren-2]")
}

func TestUnknownBackend(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := run(t, "status", "--backend", "cassette")
	assert.ErrorIs(t, err, config.ErrUnknownBackend)
}
