package parser

import (
	"regexp"
	"strings"
)

// ParsedEntry represents session metadata parsed from a single line
type ParsedEntry struct {
	Name        string
	Description string
	Category    string
	Errors      []string
}

var categoryRegex = regexp.MustCompile(`#([^\s#]+)`)

// ParseEntry extracts metadata from a one-line entry using natural syntax
// Syntax: "Session name #category -- optional description"
func ParseEntry(input string) ParsedEntry {
	result := ParsedEntry{Errors: []string{}}

	// Everything after " -- " is the description
	if idx := strings.Index(input, " -- "); idx >= 0 {
		result.Description = strings.TrimSpace(input[idx+4:])
		input = input[:idx]
	}

	// Extract category (#name); underscores stand in for spaces
	matches := categoryRegex.FindAllStringSubmatch(input, -1)
	if len(matches) > 0 {
		result.Category = strings.ReplaceAll(matches[0][1], "_", " ")
		if len(matches) > 1 {
			result.Errors = append(result.Errors, "Only one #category is allowed, using '"+result.Category+"'")
		}
		input = categoryRegex.ReplaceAllString(input, "")
	}

	// Clean up the name (remove extra spaces)
	result.Name = strings.Join(strings.Fields(input), " ")
	return result
}
