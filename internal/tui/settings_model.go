package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/clockr/internal/models"
)

// settingsModel is the Settings tab: category management
type settingsModel struct {
	categories    []models.Category
	selected      int
	confirmDelete bool

	adding  bool
	inputs  []textinput.Model // name, color
	focus   int
	formErr string
}

func newSettingsModel() settingsModel {
	return settingsModel{
		inputs: []textinput.Model{
			newInput("Category name (required)", 50),
			newInput("Color like #7C3AED (Enter to skip)", 7),
		},
	}
}

func (m *settingsModel) setCategories(categories []models.Category) {
	m.categories = categories
	if m.selected >= len(categories) {
		m.selected = max(len(categories)-1, 0)
	}
}

func (m *settingsModel) openForm() tea.Cmd {
	m.adding = true
	m.focus = 0
	m.formErr = ""
	for i := range m.inputs {
		m.inputs[i].Reset()
		m.inputs[i].Blur()
	}
	return m.inputs[0].Focus()
}

func (m *settingsModel) closeForm() {
	m.adding = false
	m.formErr = ""
	for i := range m.inputs {
		m.inputs[i].Reset()
		m.inputs[i].Blur()
	}
}

func (m *settingsModel) switchField() tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

func (m settingsModel) update(msg tea.KeyMsg, e env) (settingsModel, tea.Cmd) {
	if m.adding {
		return m.updateForm(msg, e)
	}

	if m.confirmDelete {
		switch msg.String() {
		case "y", "Y":
			m.confirmDelete = false
			if m.selected >= len(m.categories) {
				return m, nil
			}
			c := m.categories[m.selected]
			return m, func() tea.Msg {
				if err := e.svc.DeleteCategory(e.ctx, c.ID); err != nil {
					return statusMsg{err: err}
				}
				return statusMsg{text: fmt.Sprintf("Deleted category %q", c.Name), reload: true}
			}
		case "n", "N", "esc":
			m.confirmDelete = false
		}
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		m.selected = max(m.selected-1, 0)
	case "down", "j":
		m.selected = max(min(m.selected+1, len(m.categories)-1), 0)
	case "a", "n":
		cmd := m.openForm()
		return m, cmd
	case "d", "delete":
		if len(m.categories) > 0 {
			m.confirmDelete = true
		}
	}
	return m, nil
}

func (m settingsModel) updateForm(msg tea.KeyMsg, e env) (settingsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		return m, nil
	case "tab", "shift+tab", "up", "down":
		cmd := m.switchField()
		return m, cmd
	case "enter":
		if m.focus == 0 {
			cmd := m.switchField()
			return m, cmd
		}
		name, color := m.inputs[0].Value(), m.inputs[1].Value()
		return m, func() tea.Msg {
			category, err := e.svc.CreateCategory(e.ctx, name, color)
			return categorySavedMsg{category: category, err: err}
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m settingsModel) updateInputs(msg tea.Msg) (settingsModel, tea.Cmd) {
	if !m.adding {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m settingsModel) help() string {
	switch {
	case m.adding:
		return "tab switch field · enter save · esc cancel"
	case m.confirmDelete:
		return "y confirm delete · n cancel"
	}
	return "↑/↓ select · a add · d delete"
}

func (m settingsModel) view(width, height int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Categories"))
	b.WriteString("\n\n")

	if len(m.categories) == 0 {
		b.WriteString(mutedStyle.Render("No categories yet. Press a to add one."))
		b.WriteString("\n")
	}
	for i, c := range m.categories {
		swatch := mutedStyle.Render("●")
		if c.ColorText() != "" {
			swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(c.ColorText())).Render("●")
		}
		line := fmt.Sprintf("%s %s", swatch, truncate(c.Name, width-10))
		if i == m.selected {
			b.WriteString("▸ " + lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true).Render(line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.confirmDelete && m.selected < len(m.categories) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning)).
			Bold(true).
			Render(fmt.Sprintf("Delete category %q? Activities keep their label. (y/n)", m.categories[m.selected].Name)))
		b.WriteString("\n")
	}

	if m.adding {
		b.WriteString("\n")
		b.WriteString(renderField("Name", m.inputs[0], m.focus == 0))
		b.WriteString("\n")
		b.WriteString(renderField("Color", m.inputs[1], m.focus == 1))
		if m.formErr != "" {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render(m.formErr))
		}
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
