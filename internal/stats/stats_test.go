package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/clockr/internal/models"
)

// Wednesday
var now = time.Date(2025, 4, 16, 15, 0, 0, 0, time.UTC)

func session(start time.Time, seconds int64, category string) models.Session {
	s := models.Session{StartTime: start, Category: models.StringPtr(category)}
	s.Finish(start.Add(time.Duration(seconds)*time.Second), seconds)
	return s
}

func TestWeekStart(t *testing.T) {
	monday := time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, WeekStart(now))
	assert.Equal(t, monday, WeekStart(monday.Add(3*time.Hour)))
	assert.Equal(t, monday, WeekStart(time.Date(2025, 4, 20, 23, 0, 0, 0, time.UTC)), "sunday")
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(nil, now)
	assert.Zero(t, sum.Count)
	assert.Zero(t, sum.AverageSeconds)
	assert.Empty(t, sum.Categories)
}

func TestSummarize(t *testing.T) {
	inProgress := models.Session{StartTime: now.Add(-time.Minute)}
	sessions := []models.Session{
		session(now.Add(-2*time.Hour), 3600, "Work"),
		session(now.Add(-26*time.Hour), 1800, "Work"),
		session(now.Add(-10*24*time.Hour), 600, ""),
		session(now.Add(-time.Hour), 601, "Admin"),
		inProgress,
	}

	sum := Summarize(sessions, now)
	assert.Equal(t, 4, sum.Count)
	assert.Equal(t, 1, sum.InProgress)
	assert.Equal(t, int64(6601), sum.TotalSeconds)
	assert.Equal(t, int64(1650), sum.AverageSeconds)
	assert.Equal(t, int64(3600), sum.LongestSeconds)
	assert.Equal(t, int64(4201), sum.TodaySeconds)
	assert.Equal(t, int64(6001), sum.WeekSeconds)

	require.Len(t, sum.Categories, 3)
	assert.Equal(t, CategoryTotal{Name: "Work", Seconds: 5400, Count: 2}, sum.Categories[0])
	assert.Equal(t, CategoryTotal{Name: "Admin", Seconds: 601, Count: 1}, sum.Categories[1])
	assert.Equal(t, CategoryTotal{Name: Uncategorized, Seconds: 600, Count: 1}, sum.Categories[2])
}

func TestWeekly(t *testing.T) {
	monday := WeekStart(now)
	sessions := []models.Session{
		session(monday.Add(9*time.Hour), 3600, "Work"),
		session(monday.Add(24*time.Hour+9*time.Hour), 1800, "Work"),
		session(monday.Add(48*time.Hour+10*time.Hour), 900, ""),
		session(monday.Add(-time.Hour), 7200, "Work"), // previous week
		{StartTime: now},                              // in progress
	}

	sheet := Weekly(sessions, now)
	assert.Equal(t, monday, sheet.WeekStart)
	require.Len(t, sheet.Rows, 2)

	assert.Equal(t, Uncategorized, sheet.Rows[0].Category)
	assert.Equal(t, int64(900), sheet.Rows[0].Days[2])

	work := sheet.Rows[1]
	assert.Equal(t, "Work", work.Category)
	assert.Equal(t, int64(3600), work.Days[0])
	assert.Equal(t, int64(1800), work.Days[1])
	assert.Equal(t, int64(5400), work.Total)

	assert.Equal(t, int64(6300), sheet.Total)
	assert.Equal(t, int64(900), sheet.DayTotals[2])
}
