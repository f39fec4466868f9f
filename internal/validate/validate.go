// Package validate holds the client-side checks run before any mutating
// backend call. They are advisory: the backend never re-checks them.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxSessionNameLen  = 200
	MinCategoryNameLen = 1
	MaxCategoryNameLen = 50
)

var colorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Error is a validation failure on a single field
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Interval rejects an end instant that is not strictly after start
func Interval(start, end time.Time) error {
	if start.IsZero() {
		return &Error{Field: "start time", Message: "is required"}
	}
	if end.IsZero() {
		return &Error{Field: "end time", Message: "is required"}
	}
	if !end.After(start) {
		return &Error{Field: "end time", Message: "must be after start time"}
	}
	return nil
}

// SessionName requires a non-blank name of bounded length
func SessionName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &Error{Field: "name", Message: "is required"}
	}
	if utf8.RuneCountInString(name) > MaxSessionNameLen {
		return &Error{Field: "name", Message: fmt.Sprintf("must be at most %d characters", MaxSessionNameLen)}
	}
	return nil
}

// CategoryName requires 1 to 50 characters
func CategoryName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < MinCategoryNameLen {
		return &Error{Field: "category name", Message: "is required"}
	}
	if n > MaxCategoryNameLen {
		return &Error{Field: "category name", Message: fmt.Sprintf("must be at most %d characters", MaxCategoryNameLen)}
	}
	return nil
}

// Color accepts an empty value or a #RRGGBB hex color
func Color(color string) error {
	if color == "" || colorRegex.MatchString(color) {
		return nil
	}
	return &Error{Field: "color", Message: "must look like #RRGGBB"}
}
