package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/clockr/internal/stats"
)

// dashboardModel is the Dashboard tab
type dashboardModel struct {
	summary stats.Summary
	loaded  bool
}

const barWidth = 30

func (m dashboardModel) view(width, height int) string {
	if !m.loaded {
		return "Loading dashboard..."
	}
	sum := m.summary

	cards := []string{
		renderCard("Total", formatCompact(sum.TotalSeconds)),
		renderCard("Sessions", fmt.Sprintf("%d", sum.Count)),
		renderCard("Average", formatCompact(sum.AverageSeconds)),
		renderCard("Longest", formatCompact(sum.LongestSeconds)),
	}
	periods := []string{
		renderCard("Today", formatCompact(sum.TodaySeconds)),
		renderCard("This week", formatCompact(sum.WeekSeconds)),
		renderCard("In progress", fmt.Sprintf("%d", sum.InProgress)),
	}

	sections := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		lipgloss.JoinHorizontal(lipgloss.Top, periods...),
		m.renderCategories(width),
	}
	return lipgloss.NewStyle().Padding(1, 1).Render(strings.Join(sections, "\n"))
}

func renderCard(label, value string) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 2).
		Margin(0, 1, 0, 0).
		Width(18).
		Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
}

func (m dashboardModel) renderCategories(width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true)
	if len(m.summary.Categories) == 0 {
		return titleStyle.Render("By category") + "\n" +
			lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Render("No completed activities yet.")
	}

	// Categories are sorted by total, so the first is the longest bar
	top := m.summary.Categories[0].Seconds
	nameWidth := 0
	for _, c := range m.summary.Categories {
		nameWidth = max(nameWidth, len([]rune(c.Name)))
	}
	nameWidth = min(nameWidth, max(width-barWidth-20, 10))

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain))
	var b strings.Builder
	b.WriteString(titleStyle.Render("By category"))
	for _, c := range m.summary.Categories {
		n := 1
		if top > 0 {
			n = max(int(c.Seconds*barWidth/top), 1)
		}
		name := truncate(c.Name, nameWidth)
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%-*s ", nameWidth, name))
		b.WriteString(barStyle.Render(strings.Repeat("█", n)))
		b.WriteString(fmt.Sprintf(" %s (%d)", formatCompact(c.Seconds), c.Count))
	}
	return b.String()
}
