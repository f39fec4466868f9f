package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// newInput creates a themed text input
func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 50
	in.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	in.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
	in.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	return in
}

// renderField renders a labelled input; the focused one gets an accent border
func renderField(label string, in textinput.Model, focused bool) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	border := ColorBorder
	if focused {
		labelStyle = labelStyle.Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
		border = ColorAccentMain
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(in.Width + 4)
	return lipgloss.JoinVertical(lipgloss.Left, labelStyle.Render(label), box.Render(in.View()))
}
