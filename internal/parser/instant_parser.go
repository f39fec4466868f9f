package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dateTimeRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})(?:\s+(\d{1,2}):(\d{2}))?$`)
	clockRegex    = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	agoRegex      = regexp.MustCompile(`^(\d+)\s*(m|min|mins|minute|minutes|h|hour|hours|d|day|days)\s+ago$`)
)

// ParseInstant parses the instant formats accepted for start/end times
// Supported formats:
// - now
// - dd/mm/yyyy HH:MM (e.g., "15/04/2025 09:30")
// - dd/mm/yyyy (midnight)
// - HH:MM (today)
// - X minutes/hours/days ago (e.g., "90 minutes ago", "2h ago")
// - RFC3339
func ParseInstant(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("time is required")
	}
	if strings.EqualFold(input, "now") {
		return now, nil
	}

	if t, err := parseDateTime(input, now.Location()); err == nil {
		return t, nil
	}
	if t, err := parseClock(input, now); err == nil {
		return t, nil
	}
	if t, err := parseAgo(input, now); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid time %q. Use: now, HH:MM, dd/mm/yyyy HH:MM, X minutes/hours/days ago", input)
}

// parseDateTime parses dd/mm/yyyy with an optional HH:MM
func parseDateTime(input string, loc *time.Location) (time.Time, error) {
	matches := dateTimeRegex.FindStringSubmatch(input)
	if matches == nil {
		return time.Time{}, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	hour, minute := 0, 0
	if matches[4] != "" {
		hour, _ = strconv.Atoi(matches[4])
		minute, _ = strconv.Atoi(matches[5])
	}

	// Validate ranges
	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month must be between 1 and 12")
	}
	if hour > 23 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid time of day")
	}

	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)

	// Check if date is valid (handles leap years, etc.)
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return time.Time{}, fmt.Errorf("invalid date")
	}
	return t, nil
}

// parseClock parses HH:MM as a time today
func parseClock(input string, now time.Time) (time.Time, error) {
	matches := clockRegex.FindStringSubmatch(input)
	if matches == nil {
		return time.Time{}, fmt.Errorf("invalid clock format")
	}

	hour, _ := strconv.Atoi(matches[1])
	minute, _ := strconv.Atoi(matches[2])
	if hour > 23 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid time of day")
	}
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location()), nil
}

// parseAgo parses relative formats like "90 minutes ago" or "2h ago"
func parseAgo(input string, now time.Time) (time.Time, error) {
	matches := agoRegex.FindStringSubmatch(strings.ToLower(input))
	if matches == nil {
		return time.Time{}, fmt.Errorf("invalid relative time format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid number")
	}

	switch matches[2] {
	case "m", "min", "mins", "minute", "minutes":
		return now.Add(-time.Duration(amount) * time.Minute), nil
	case "h", "hour", "hours":
		return now.Add(-time.Duration(amount) * time.Hour), nil
	default:
		return now.AddDate(0, 0, -amount), nil
	}
}
