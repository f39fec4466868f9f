// Package duration formats whole-second durations for display.
package duration

import (
	"fmt"
	"regexp"
	"strconv"
)

// MaxClockSeconds is the first value whose hours no longer fit in two digits.
// Clock keeps working past it but the hours field widens beyond HH.
const MaxClockSeconds = 100 * 3600

var clockRegex = regexp.MustCompile(`^(\d{2,}):([0-5]\d):([0-5]\d)$`)

// Clock renders seconds as HH:MM:SS, each field zero-padded to two digits
func Clock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// ParseClock parses an HH:MM:SS string back into seconds
func ParseClock(input string) (int64, error) {
	matches := clockRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return 0, fmt.Errorf("invalid clock format %q. Use: HH:MM:SS", input)
	}

	hours, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hours: %w", err)
	}
	minutes, _ := strconv.ParseInt(matches[2], 10, 64)
	secs, _ := strconv.ParseInt(matches[3], 10, 64)

	return hours*3600 + minutes*60 + secs, nil
}

// Compact renders seconds as "2h 5m 10s", "5m 10s" or "10s"
func Compact(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, secs)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// Hours renders seconds as fractional hours for timesheet cells
func Hours(seconds int64) string {
	if seconds <= 0 {
		return "-"
	}
	h := float64(seconds) / 3600.0
	if h == float64(int64(h)) {
		return strconv.FormatInt(int64(h), 10)
	}
	return strconv.FormatFloat(h, 'f', 1, 64)
}
