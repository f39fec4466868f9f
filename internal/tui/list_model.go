package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/clockr/internal/export"
	"github.com/balkashynov/clockr/internal/models"
)

// listModel is the Activities tab
type listModel struct {
	sessions      []models.Session
	selected      int // index in sessions
	perPage       int
	confirmDelete bool
	loaded        bool

	// Shimmer effect for the selected activity name
	shimmer *ShimmerState
}

func newListModel() listModel {
	return listModel{
		perPage: 10,
		shimmer: NewShimmerState(DefaultShimmerConfig()),
	}
}

func (m *listModel) setSessions(sessions []models.Session) {
	m.sessions = sessions
	m.loaded = true
	if m.selected >= len(sessions) {
		m.selected = max(len(sessions)-1, 0)
	}
	m.shimmer.Reset()
}

func (m listModel) current() *models.Session {
	if m.selected < 0 || m.selected >= len(m.sessions) {
		return nil
	}
	return &m.sessions[m.selected]
}

func (m listModel) shimmerTick() tea.Cmd {
	if !m.shimmer.ShouldTick() {
		return nil
	}
	return tea.Tick(m.shimmer.Config.Speed, func(time.Time) tea.Msg {
		return shimmerTickMsg{}
	})
}

func (m listModel) advanceShimmer() {
	if s := m.current(); s != nil {
		m.shimmer.Advance(len([]rune(s.Name)))
	}
}

func (m *listModel) moveSelection(delta int) {
	if len(m.sessions) == 0 {
		return
	}
	next := min(max(m.selected+delta, 0), len(m.sessions)-1)
	if next != m.selected {
		m.selected = next
		m.shimmer.Reset()
	}
}

func (m listModel) update(msg tea.KeyMsg, e env) (listModel, tea.Cmd) {
	if m.confirmDelete {
		switch msg.String() {
		case "y", "Y":
			m.confirmDelete = false
			s := m.current()
			if s == nil {
				return m, nil
			}
			id, name := s.SessionID, s.Name
			return m, func() tea.Msg {
				if err := e.svc.DeleteSession(e.ctx, id); err != nil {
					return statusMsg{err: err}
				}
				return statusMsg{text: fmt.Sprintf("Deleted %q", displayName(name)), reload: true}
			}
		case "n", "N", "esc":
			m.confirmDelete = false
		}
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		m.moveSelection(-1)
	case "down", "j":
		m.moveSelection(1)
	case "left", "h":
		m.moveSelection(-m.perPage)
	case "right", "l":
		m.moveSelection(m.perPage)
	case "d", "delete":
		if m.current() != nil {
			m.confirmDelete = true
		}
	case "r":
		return m, func() tea.Msg { return statusMsg{text: "Refreshed", reload: true} }
	case "x":
		return m, exportCmd(e)
	}
	return m, nil
}

// exportCmd writes all activities to a CSV file in the export directory
func exportCmd(e env) tea.Cmd {
	return func() tea.Msg {
		var opts []export.Option
		if e.opts.TimeLayout != "" {
			opts = append(opts, export.WithTimeLayout(e.opts.TimeLayout))
		}
		csv, err := e.svc.ExportCSV(e.ctx, opts...)
		if err != nil {
			return statusMsg{err: err}
		}

		path := filepath.Join(e.opts.ExportDir, export.Filename(time.Now()))
		if err := export.SaveFile(e.ctx, path, csv); err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: "Exported to " + path}
	}
}

func (m listModel) help() string {
	if m.confirmDelete {
		return "y confirm delete · n cancel"
	}
	return "↑/↓ select · ←/→ page · d delete · x export csv · r refresh"
}

func (m listModel) view(width, height int) string {
	if !m.loaded {
		return "Loading activities..."
	}
	if len(m.sessions) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Padding(1, 2).
			Render("No activities yet. Start the timer or use 'clockr add'.")
	}

	nameWidth := max(width-52, 16)
	perPage := max(m.perPage, 1)
	page := m.selected / perPage
	pages := (len(m.sessions) + perPage - 1) / perPage
	from := page * perPage
	to := min(from+perPage, len(m.sessions))

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-*s  %-16s  %-12s  %-12s", nameWidth, "NAME", "CATEGORY", "STARTED", "DURATION")))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", min(width-2, nameWidth+50))))
	b.WriteString("\n")

	for i := from; i < to; i++ {
		s := &m.sessions[i]
		dur := formatCompact(s.Duration())
		if s.InProgress() {
			dur = "in progress"
		}
		rest := fmt.Sprintf("  %-16s  %-12s  %-12s",
			truncate(categoryLabel(s), 16),
			s.StartTime.Local().Format("Jan 02 15:04"),
			dur)

		name := truncate(displayName(s.Name), nameWidth)
		pad := strings.Repeat(" ", nameWidth-len([]rune(name)))
		if i == m.selected {
			b.WriteString("▸ " + m.shimmer.Render(name, nameWidth) + pad + rowStyle.Render(rest))
		} else {
			b.WriteString("  " + rowStyle.Render(name+pad+rest))
		}
		b.WriteString("\n")
	}

	if s := m.current(); s != nil && s.DescriptionText() != "" {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(truncate(s.DescriptionText(), width-4)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Page %d/%d · %d activities", page+1, pages, len(m.sessions))))

	if m.confirmDelete {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning)).
			Bold(true).
			Render(fmt.Sprintf("Delete %q? (y/n)", displayName(m.current().Name))))
	}

	return lipgloss.NewStyle().Padding(1, 1).Render(b.String())
}

func displayName(name string) string {
	if name == "" {
		return "(untitled)"
	}
	return name
}

func categoryLabel(s *models.Session) string {
	if c := s.CategoryText(); c != "" {
		return c
	}
	return "-"
}
