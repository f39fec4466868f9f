package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/clockr/internal/activity"
	"github.com/balkashynov/clockr/internal/duration"
	"github.com/balkashynov/clockr/internal/timer"
)

const (
	fieldName = iota
	fieldDescription
	fieldCategory
)

// timerModel is the Timer tab: the big clock and, after a stop, the
// metadata form
type timerModel struct {
	snap    timer.Snapshot
	inputs  []textinput.Model
	focus   int
	formErr string
	busy    bool // a service call is in flight
}

func newTimerModel(snap timer.Snapshot) timerModel {
	return timerModel{
		snap: snap,
		inputs: []textinput.Model{
			newInput("What did you work on? (required)", 200),
			newInput("Description (Enter to skip)", 500),
			newInput("Category (Enter to skip)", 50),
		},
	}
}

func (m timerModel) formOpen() bool {
	return m.snap.State == timer.StoppedPendingMetadata
}

func (m *timerModel) resetForm() {
	for i := range m.inputs {
		m.inputs[i].Reset()
		m.inputs[i].Blur()
	}
	m.focus = fieldName
	m.formErr = ""
}

func (m *timerModel) focusField(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (i + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

func (m timerModel) update(msg tea.KeyMsg, e env) (timerModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	if m.formOpen() {
		return m.updateForm(msg, e)
	}

	switch msg.String() {
	case "s", " ", "enter":
		switch m.snap.State {
		case timer.Idle:
			m.busy = true
			return m, func() tea.Msg {
				_, err := e.svc.StartTimer(e.ctx)
				return timerStartedMsg{err: err}
			}
		case timer.Running:
			snap, err := e.svc.StopTimer()
			if err != nil {
				return m, func() tea.Msg { return statusMsg{err: err} }
			}
			m.snap = snap
			m.resetForm()
			cmd := m.inputs[fieldName].Focus()
			return m, cmd
		}
	}
	return m, nil
}

func (m timerModel) updateForm(msg tea.KeyMsg, e env) (timerModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.busy = true
		m.resetForm()
		return m, func() tea.Msg {
			e.svc.CancelTimer(e.ctx)
			return statusMsg{text: "Session discarded", reload: true}
		}
	case "tab", "down":
		cmd := m.focusField(m.focus + 1)
		return m, cmd
	case "shift+tab", "up":
		cmd := m.focusField(m.focus - 1)
		return m, cmd
	case "enter":
		if m.focus < fieldCategory {
			cmd := m.focusField(m.focus + 1)
			return m, cmd
		}
		return m.submit(e)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m timerModel) submit(e env) (timerModel, tea.Cmd) {
	md := activity.Metadata{
		Name:        m.inputs[fieldName].Value(),
		Description: m.inputs[fieldDescription].Value(),
		Category:    m.inputs[fieldCategory].Value(),
	}
	if strings.TrimSpace(md.Name) == "" {
		m.formErr = "Name is required"
		cmd := m.focusField(fieldName)
		return m, cmd
	}

	m.busy = true
	m.formErr = ""
	return m, func() tea.Msg {
		session, err := e.svc.SubmitMetadata(e.ctx, md)
		return metadataSavedMsg{session: session, err: err}
	}
}

func (m timerModel) updateInputs(msg tea.Msg) (timerModel, tea.Cmd) {
	if !m.formOpen() {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m timerModel) help() string {
	switch m.snap.State {
	case timer.Running:
		return "s stop"
	case timer.StoppedPendingMetadata:
		return "tab next field · enter save · esc discard"
	}
	return "s start"
}

func (m timerModel) view(width, height int) string {
	var components []string

	headerText := "READY"
	headerColor := ColorSecondaryText
	switch m.snap.State {
	case timer.Running:
		headerText = "⏱  TRACKING TIME  ⏱"
		headerColor = ColorAccentBright
	case timer.StoppedPendingMetadata:
		headerText = "STOPPED · ADD DETAILS"
		headerColor = ColorWarning
	}
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(headerColor)).
		Bold(true).
		Align(lipgloss.Center).
		Width(width)
	components = append(components, headerStyle.Render(headerText))

	// Big clock display
	var clock []string
	for _, line := range strings.Split(renderBigClock(m.snap.ElapsedSeconds), "\n") {
		clock = append(clock, lipgloss.NewStyle().Align(lipgloss.Center).Width(width).Render(line))
	}
	components = append(components, strings.Join(clock, "\n"))

	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(width)
	if !m.snap.StartedAt.IsZero() {
		components = append(components, infoStyle.Render("Started at "+m.snap.StartedAt.Format("15:04:05")))
	} else {
		components = append(components, infoStyle.Render("Press s to start tracking"))
	}

	if m.formOpen() {
		components = append(components, m.renderForm(width))
	}

	content := strings.Join(components, "\n\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (m timerModel) renderForm(width int) string {
	labels := []string{"Name", "Description", "Category"}
	var fields []string
	for i, in := range m.inputs {
		fields = append(fields, renderField(labels[i], in, i == m.focus))
	}
	if m.formErr != "" {
		fields = append(fields, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render(m.formErr))
	}
	form := lipgloss.JoinVertical(lipgloss.Left, fields...)
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(form)
}

// bigDigits is 5-row block art for the clock glyphs
var bigDigits = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

// renderBigClock renders elapsed seconds as block-art HH:MM:SS
func renderBigClock(seconds int64) string {
	var lines [5]strings.Builder
	for _, char := range formatClock(seconds) {
		art, ok := bigDigits[char]
		if !ok {
			continue
		}
		for i := range lines {
			lines[i].WriteString(art[i])
			lines[i].WriteString(" ")
		}
	}

	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)

	rendered := make([]string, len(lines))
	for i := range lines {
		rendered[i] = clockStyle.Render(lines[i].String())
	}
	return strings.Join(rendered, "\n")
}

func formatClock(seconds int64) string {
	return duration.Clock(seconds)
}

func formatCompact(seconds int64) string {
	return duration.Compact(seconds)
}
