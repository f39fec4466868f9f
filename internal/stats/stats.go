// Package stats derives dashboard aggregates from session records.
package stats

import (
	"sort"
	"time"

	"github.com/balkashynov/clockr/internal/models"
)

// Uncategorized is the bucket for sessions without a category
const Uncategorized = "Uncategorized"

// CategoryTotal is tracked time for one category
type CategoryTotal struct {
	Name    string
	Seconds int64
	Count   int
}

// Summary holds the dashboard numbers. Only finished sessions count.
type Summary struct {
	Count          int
	InProgress     int
	TotalSeconds   int64
	AverageSeconds int64
	LongestSeconds int64
	TodaySeconds   int64
	WeekSeconds    int64
	Categories     []CategoryTotal
}

// Summarize aggregates sessions relative to now
func Summarize(sessions []models.Session, now time.Time) Summary {
	var sum Summary

	dayStart := StartOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)
	weekStart := WeekStart(now)
	weekEnd := weekStart.AddDate(0, 0, 7)

	byCategory := make(map[string]*CategoryTotal)

	for i := range sessions {
		s := &sessions[i]
		if s.InProgress() {
			sum.InProgress++
			continue
		}

		seconds := s.Duration()
		sum.Count++
		sum.TotalSeconds += seconds
		if seconds > sum.LongestSeconds {
			sum.LongestSeconds = seconds
		}

		start := s.StartTime.In(now.Location())
		if !start.Before(dayStart) && start.Before(dayEnd) {
			sum.TodaySeconds += seconds
		}
		if !start.Before(weekStart) && start.Before(weekEnd) {
			sum.WeekSeconds += seconds
		}

		name := categoryName(s)
		total, ok := byCategory[name]
		if !ok {
			total = &CategoryTotal{Name: name}
			byCategory[name] = total
		}
		total.Seconds += seconds
		total.Count++
	}

	if sum.Count > 0 {
		sum.AverageSeconds = sum.TotalSeconds / int64(sum.Count)
	}

	for _, total := range byCategory {
		sum.Categories = append(sum.Categories, *total)
	}
	sort.Slice(sum.Categories, func(i, j int) bool {
		a, b := sum.Categories[i], sum.Categories[j]
		if a.Seconds != b.Seconds {
			return a.Seconds > b.Seconds
		}
		return a.Name < b.Name
	})

	return sum
}

func categoryName(s *models.Session) string {
	if name := s.CategoryText(); name != "" {
		return name
	}
	return Uncategorized
}

// StartOfDay truncates t to local midnight
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStart returns the start of the calendar week (Monday) for the given time
func WeekStart(t time.Time) time.Time {
	weekday := t.Weekday()
	daysFromMonday := int(weekday - time.Monday)
	if weekday == time.Sunday {
		daysFromMonday = 6 // Sunday is 6 days from Monday
	}
	return StartOfDay(t.AddDate(0, 0, -daysFromMonday))
}
