package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/swof/bau-api-go/pkg/config"
	"github.com/swof/bau-api-go/pkg/database"
	"github.com/swof/bau-api-go/pkg/scheduler"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DataPath:       filepath.Join(t.TempDir(), "engineers.db"),
		EngineersTable: "engineers",
		RosterLimit:    20,
		SlotDuration:   12 * time.Hour,
		SeamStrategy:   "triple",
	}
}

func runCmd(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), cfg, args[0], args[1:], &out)
	return out.String(), err
}

func TestRosterctl(t *testing.T) {
	cfg := testConfig(t)

	out, err := runCmd(t, cfg, "add", "Ada Lovelace", "ada")
	require.NoError(t, err)
	require.Equal(t, "Added Ada Lovelace (ada)\n", out)

	out, err = runCmd(t, cfg, "add", "Linus")
	require.NoError(t, err)
	id := strings.TrimSuffix(strings.TrimPrefix(out, "Added Linus ("), ")\n")
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	_, err = runCmd(t, cfg, "add", "Ada again", "ada")
	require.ErrorIs(t, err, scheduler.ErrDuplicateMember)

	file := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(file, []byte("engineers:\n  - id: ada\n    name: Ada\n  - name: Grace\n  - id: ken\n    name: Ken\n"), 0o600))
	out, err = runCmd(t, cfg, "import", file)
	require.NoError(t, err)
	require.Equal(t, "Imported 2 of 3 engineers\n", out)

	out, err = runCmd(t, cfg, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	require.Contains(t, lines[0], "ada")
	require.Contains(t, lines[1], "Linus")
	require.Contains(t, lines[2], "Grace")
	require.Contains(t, lines[3], "ken")

	out, err = runCmd(t, cfg, "pair", "2024-01-15T13:00:00Z")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "2024-01-15 12:00 - 2024-01-16 00:00: "), out)

	_, err = runCmd(t, cfg, "pair", "tomorrow-ish")
	require.ErrorIs(t, err, scheduler.ErrInvalidDate)

	out, err = runCmd(t, cfg, "remove", "ken")
	require.NoError(t, err)
	require.Equal(t, "Removed ken\n", out)

	_, err = runCmd(t, cfg, "remove", "ken")
	require.ErrorIs(t, err, database.ErrEngineerNotFound)
}

func TestRosterctl_Usage(t *testing.T) {
	cfg := testConfig(t)

	_, err := runCmd(t, cfg, "add")
	require.Error(t, err)

	require.Contains(t, usage, "print the roster in storage order")

	_, err = runCmd(t, cfg, "frobnicate")
	require.ErrorContains(t, err, `unknown command "frobnicate"`)
}
