package commands

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/clockr/internal/models"
	"github.com/balkashynov/clockr/internal/store"
)

var testNow = time.Date(2025, 4, 16, 12, 0, 0, 0, time.Local)

func entryCommand(t *testing.T, flags ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	addEntryFlags(cmd)
	require.NoError(t, cmd.Flags().Parse(flags))
	return cmd
}

func patchCommand(t *testing.T, flags ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	addPatchFlags(cmd)
	require.NoError(t, cmd.Flags().Parse(flags))
	return cmd
}

func TestBuildEntriesWithEnd(t *testing.T) {
	cmd := entryCommand(t, "--start", "09:00", "--end", "10:30")

	entries, err := buildEntries(cmd, "Write docs #writing -- API guide", testNow)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "Write docs", e.Name)
	assert.Equal(t, "writing", e.Category)
	assert.Equal(t, "API guide", e.Description)
	assert.Equal(t, 90*time.Minute, e.End.Sub(e.Start))
	assert.Equal(t, 9, e.Start.Hour())
}

func TestBuildEntriesFlagsOverrideSyntax(t *testing.T) {
	cmd := entryCommand(t, "--start", "1 hour ago", "--duration", "00:15:00", "-c", "meetings", "-d", "sync")

	entries, err := buildEntries(cmd, "Standup #ops", testNow)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "meetings", entries[0].Category)
	assert.Equal(t, "sync", entries[0].Description)
	assert.True(t, entries[0].Start.Equal(testNow.Add(-time.Hour)))
	assert.Equal(t, 15*time.Minute, entries[0].End.Sub(entries[0].Start))
}

func TestBuildEntriesRepeatDays(t *testing.T) {
	cmd := entryCommand(t, "--start", "09:30", "--duration", "15m", "--repeat-days", "3")

	entries, err := buildEntries(cmd, "Standup", testNow)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, 16+i, e.Start.Day())
		assert.Equal(t, 15*time.Minute, e.End.Sub(e.Start))
	}
}

func TestBuildEntriesErrors(t *testing.T) {
	tests := []struct {
		name  string
		flags []string
		input string
	}{
		{"missing start", []string{"--end", "10:00"}, "Docs"},
		{"missing end", []string{"--start", "09:00"}, "Docs"},
		{"end and duration", []string{"--start", "09:00", "--end", "10:00", "--duration", "1h"}, "Docs"},
		{"bad start", []string{"--start", "yesterday-ish", "--end", "10:00"}, "Docs"},
		{"bad duration", []string{"--start", "09:00", "--duration", "forever"}, "Docs"},
		{"two categories", []string{"--start", "09:00", "--end", "10:00"}, "Docs #a #b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildEntries(entryCommand(t, tt.flags...), tt.input, testNow)
			assert.Error(t, err)
		})
	}
}

func TestParseLength(t *testing.T) {
	d, err := parseLength("1h30m")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)

	d, err = parseLength("01:02:03")
	require.NoError(t, err)
	assert.Equal(t, time.Hour+2*time.Minute+3*time.Second, d)

	_, err = parseLength("1:2")
	assert.Error(t, err)
}

func TestBuildPatch(t *testing.T) {
	patch, err := buildPatch(patchCommand(t, "--name", "Review", "--category", "", "--end", "11:15"), testNow)
	require.NoError(t, err)

	require.NotNil(t, patch.Name)
	assert.Equal(t, "Review", *patch.Name)
	require.NotNil(t, patch.Category)
	assert.Equal(t, "", *patch.Category)
	assert.Nil(t, patch.Description)
	assert.Nil(t, patch.Start)
	require.NotNil(t, patch.End)
	assert.Equal(t, 11, patch.End.Hour())
	assert.Equal(t, 15, patch.End.Minute())
}

func TestBuildPatchDuration(t *testing.T) {
	patch, err := buildPatch(patchCommand(t, "--duration", "00:45:00"), testNow)
	require.NoError(t, err)
	require.NotNil(t, patch.DurationSeconds)
	assert.Equal(t, int64(2700), *patch.DurationSeconds)
}

func TestBuildPatchRequiresAFlag(t *testing.T) {
	_, err := buildPatch(patchCommand(t), testNow)
	assert.Error(t, err)
}

func sessionNamed(name, description, category string) models.Session {
	return models.Session{
		SessionID:   "session_" + name,
		Name:        name,
		Description: models.StringPtr(description),
		Category:    models.StringPtr(category),
	}
}

func TestSearchSessionsRanking(t *testing.T) {
	sessions := []models.Session{
		sessionNamed("Fix docs build", "", ""),
		sessionNamed("Read", "docs for the API", ""),
		sessionNamed("docs", "", ""),
		sessionNamed("Update docs", "", ""),
		sessionNamed("Lunch", "", "life"),
	}

	got := searchSessions(sessions, "DOCS")
	var names []string
	for _, s := range got {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"docs", "Read", "Update docs", "Fix docs build"}, names)

	assert.Empty(t, searchSessions(sessions, "  "))
	assert.Len(t, searchSessions(sessions, "life"), 1)
}

func TestFilterSessions(t *testing.T) {
	sessions := []models.Session{
		sessionNamed("a", "", "Writing"),
		sessionNamed("b", "", ""),
		sessionNamed("c", "", "writing"),
		sessionNamed("d", "", "writing"),
	}

	assert.Len(t, filterSessions(sessions, "", 0), 4)
	assert.Len(t, filterSessions(sessions, "WRITING", 0), 3)
	got := filterSessions(sessions, "writing", 2)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[1].Name)
}

func TestInProgress(t *testing.T) {
	end := testNow
	secs := int64(60)
	sessions := []models.Session{
		{SessionID: "open"},
		{SessionID: "done", EndTime: &end, DurationSeconds: &secs},
	}
	got := inProgress(sessions)
	require.Len(t, got, 1)
	assert.Equal(t, "open", got[0].SessionID)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a long ...", truncate("a long name here", 10))
}

func TestNewAppWiresFromConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CLOCKR_DB_PATH", filepath.Join(dir, "clockr.db"))
	t.Setenv("CLOCKR_CREDENTIALS_PATH", filepath.Join(dir, "credentials"))
	t.Setenv("CLOCKR_LOG_FILE", filepath.Join(dir, "clockr.log"))
	configPath = filepath.Join(dir, "missing.yaml")
	t.Cleanup(func() { configPath = "" })

	ctx := context.Background()

	a, err := newApp(false)
	require.NoError(t, err)
	_, err = a.client.CurrentUser(ctx)
	assert.ErrorIs(t, err, store.ErrAuthRequired)

	_, err = a.store.SignUp(ctx, "me@example.com", "password123")
	require.NoError(t, err)
	token, _, err := a.store.SignIn(ctx, "me@example.com", "password123")
	require.NoError(t, err)
	require.NoError(t, store.SaveToken(a.cfg.CredentialsPath, token))
	a.Close()

	// A fresh app picks up the saved token
	a, err = newApp(false)
	require.NoError(t, err)
	defer a.Close()

	user, err := a.client.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", user.Email)
	assert.FileExists(t, filepath.Join(dir, "clockr.log"))
}
