package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/clockr/internal/models"
)

const expectedHeader = "Name,Description,Category,Start Time,End Time,Duration (seconds),Duration (formatted),Created At,Entry ID"

func finished(t *testing.T) models.Session {
	t.Helper()
	start := time.Date(2025, 4, 19, 9, 0, 0, 0, time.UTC)
	s := models.Session{
		SessionID: "session_1745053200000_abc123def",
		Name:      "Write report",
		StartTime: start,
		CreatedAt: start,
	}
	s.Finish(start.Add(2*time.Hour+5*time.Minute+10*time.Second), 7510)
	return s
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"", ""},
		{"with space", "with space"},
		{`He said, "hi"`, `"He said, ""hi"""`},
		{"a,b", `"a,b"`},
		{`5" screen`, `"5"" screen"`},
		{"line\nbreak", "\"line\nbreak\""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Escape(tt.in), tt.in)
	}
}

func TestCSVHeaderOnly(t *testing.T) {
	assert.Equal(t, expectedHeader+"\n", CSV(nil))
}

func TestCSVRow(t *testing.T) {
	s := finished(t)
	s.Description = models.StringPtr(`He said, "hi"`)
	s.Category = models.StringPtr("Work")

	out := CSV([]models.Session{s}, WithLocation(time.UTC), WithTimeLayout(time.RFC3339))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, expectedHeader, lines[0])
	assert.Equal(t,
		`Write report,"He said, ""hi""",Work,2025-04-19T09:00:00Z,2025-04-19T11:05:10Z,7510,2h 5m 10s,2025-04-19T09:00:00Z,session_1745053200000_abc123def`,
		lines[1])
}

func TestCSVMissingFieldsRenderEmpty(t *testing.T) {
	start := time.Date(2025, 4, 19, 9, 0, 0, 0, time.UTC)
	s := models.Session{SessionID: "session_x", StartTime: start, CreatedAt: start}

	out := CSV([]models.Session{s}, WithLocation(time.UTC), WithTimeLayout("2006-01-02 15:04"))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, ",,,2025-04-19 09:00,,0,0s,2025-04-19 09:00,session_x", lines[1])
	assert.NotContains(t, out, "null")
	assert.NotContains(t, out, "undefined")
}

func TestCSVDefaultLayoutIsQuoted(t *testing.T) {
	s := finished(t)
	out := CSV([]models.Session{s}, WithLocation(time.UTC))
	assert.Contains(t, out, `"4/19/2025, 9:00:00 AM"`)
	assert.Contains(t, out, `"4/19/2025, 11:05:10 AM"`)
}

func TestCSVPreservesOrder(t *testing.T) {
	a := finished(t)
	a.Name = "zeta"
	b := finished(t)
	b.Name = "alpha"

	out := CSV([]models.Session{a, b}, WithLocation(time.UTC))
	assert.Less(t, strings.Index(out, "zeta"), strings.Index(out, "alpha"))
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 4, 19, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "time-tracking-export-2025-04-19.csv", Filename(now))
}

func TestSaveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	require.NoError(t, SaveFile(context.Background(), path, "a,b\n"))
	require.NoError(t, SaveFile(context.Background(), path, expectedHeader+"\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, expectedHeader+"\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestSaveFileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	assert.Error(t, SaveFile(context.Background(), path, "x"))
}
