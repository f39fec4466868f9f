package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ShimmerConfig holds configuration for the selected-row shimmer
type ShimmerConfig struct {
	Enabled    bool
	Speed      time.Duration // tick interval
	WidthRatio float64       // highlight width relative to text length
	PauseTicks int           // ticks to rest between sweeps
}

// DefaultShimmerConfig returns default shimmer configuration
func DefaultShimmerConfig() ShimmerConfig {
	return ShimmerConfig{
		Enabled:    true,
		Speed:      100 * time.Millisecond,
		WidthRatio: 0.25,
		PauseTicks: 5,
	}
}

// ShimmerState is a highlight band sweeping across a line of text
type ShimmerState struct {
	Config ShimmerConfig
	Active bool

	pos    int // band start, in runes; negative while entering
	paused int // remaining pause ticks
}

// NewShimmerState creates a new shimmer state
func NewShimmerState(config ShimmerConfig) *ShimmerState {
	return &ShimmerState{
		Config: config,
		Active: config.Enabled,
	}
}

// Advance moves the band one step across text of textLen runes
func (s *ShimmerState) Advance(textLen int) {
	if !s.Active || textLen == 0 {
		return
	}
	if s.paused > 0 {
		s.paused--
		return
	}

	s.pos++
	if s.pos >= textLen {
		s.pos = -s.bandWidth(textLen)
		s.paused = s.Config.PauseTicks
	}
}

// Reset restarts the sweep (call when selection changes)
func (s *ShimmerState) Reset() {
	s.pos = 0
	s.paused = 0
}

// SetActive enables/disables shimmer
func (s *ShimmerState) SetActive(active bool) {
	s.Active = active && s.Config.Enabled
}

// ShouldTick returns true if shimmer should be ticking
func (s *ShimmerState) ShouldTick() bool {
	return s.Active && s.Config.Enabled
}

func (s *ShimmerState) bandWidth(textLen int) int {
	w := int(s.Config.WidthRatio * float64(textLen))
	if w < 1 {
		w = 1
	}
	return w
}

// inBand reports whether rune i is highlighted
func (s *ShimmerState) inBand(i, textLen int) bool {
	return s.Active && i >= s.pos && i < s.pos+s.bandWidth(textLen)
}

// Render draws text truncated to maxWidth runes with the band highlighted
func (s *ShimmerState) Render(text string, maxWidth int) string {
	runes := []rune(truncate(text, maxWidth))
	if len(runes) == 0 {
		return ""
	}

	base := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	if !s.Active {
		return base.Render(string(runes))
	}
	highlight := base.Foreground(lipgloss.Color(ColorShimmer))

	// Group runs of equal highlight so each styled span is rendered once
	var b strings.Builder
	start := 0
	for i := 1; i <= len(runes); i++ {
		if i < len(runes) && s.inBand(i, len(runes)) == s.inBand(start, len(runes)) {
			continue
		}
		style := base
		if s.inBand(start, len(runes)) {
			style = highlight
		}
		b.WriteString(style.Render(string(runes[start:i])))
		start = i
	}
	return b.String()
}

// truncate shortens text to max runes, ending with "..."
func truncate(text string, max int) string {
	runes := []rune(text)
	if max <= 0 || len(runes) <= max {
		return text
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
