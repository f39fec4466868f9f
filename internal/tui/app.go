package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Tab identifies a top-level view
type Tab int

const (
	TabTimer Tab = iota
	TabActivities
	TabDashboard
	TabSettings
)

var tabNames = []string{"Timer", "Activities", "Dashboard", "Settings"}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "unknown"
	}
	return tabNames[t]
}

// env is what tab models need to issue service calls
type env struct {
	ctx  context.Context
	svc  Service
	opts Options
}

// Model is the root bubbletea model
type Model struct {
	env    env
	width  int
	height int
	tab    Tab

	timer     timerModel
	list      listModel
	dashboard dashboardModel
	settings  settingsModel

	status    string
	statusErr bool
}

// New creates the root model
func New(ctx context.Context, svc Service, opts Options) Model {
	return Model{
		env:      env{ctx: ctx, svc: svc, opts: opts},
		timer:    newTimerModel(svc.Timer()),
		list:     newListModel(),
		settings: newSettingsModel(),
	}
}

// Init loads the data tabs and starts the shimmer
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.reload(), m.list.shimmerTick())
}

func (m Model) reload() tea.Cmd {
	e := m.env
	return tea.Batch(
		func() tea.Msg {
			sessions, err := e.svc.ListSessions(e.ctx)
			return sessionsLoadedMsg{sessions: sessions, err: err}
		},
		func() tea.Msg {
			summary, err := e.svc.Summary(e.ctx)
			return summaryLoadedMsg{summary: summary, err: err}
		},
		func() tea.Msg {
			categories, err := e.svc.ListCategories(e.ctx)
			return categoriesLoadedMsg{categories: categories, err: err}
		},
	)
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = "Error: " + err.Error()
	m.statusErr = true
}

// capturing is true while a text form owns the keyboard
func (m Model) capturing() bool {
	switch m.tab {
	case TabTimer:
		return m.timer.formOpen()
	case TabSettings:
		return m.settings.adding
	}
	return false
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.perPage = max(3, m.height-12)
		return m, nil

	case tickMsg:
		// The hook only wakes us; the service holds the truth
		m.timer.snap = m.env.svc.Timer()
		return m, nil

	case shimmerTickMsg:
		m.list.advanceShimmer()
		return m, m.list.shimmerTick()

	case sessionsLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.list.setSessions(msg.sessions)
		return m, nil

	case summaryLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.dashboard.summary = msg.summary
		m.dashboard.loaded = true
		return m, nil

	case categoriesLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.settings.setCategories(msg.categories)
		return m, nil

	case timerStartedMsg:
		m.timer.busy = false
		m.timer.snap = m.env.svc.Timer()
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.setStatus("Timer started")
		return m, nil

	case metadataSavedMsg:
		m.timer.busy = false
		m.timer.snap = m.env.svc.Timer()
		if msg.err != nil {
			m.timer.formErr = msg.err.Error()
			m.setError(msg.err)
			return m, nil
		}
		m.timer.resetForm()
		m.setStatus("Saved \"" + msg.session.Name + "\" (" + formatCompact(msg.session.Duration()) + ")")
		return m, m.reload()

	case categorySavedMsg:
		if msg.err != nil {
			m.settings.formErr = msg.err.Error()
			m.setError(msg.err)
			return m, nil
		}
		m.settings.closeForm()
		m.setStatus("Added category \"" + msg.category.Name + "\"")
		return m, m.reload()

	case statusMsg:
		m.timer.busy = false
		m.timer.snap = m.env.svc.Timer()
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setStatus(msg.text)
		}
		if msg.reload {
			return m, m.reload()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other input internals
	var cmd tea.Cmd
	switch m.tab {
	case TabTimer:
		m.timer, cmd = m.timer.updateInputs(msg)
	case TabSettings:
		m.settings, cmd = m.settings.updateInputs(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if !m.capturing() {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "tab":
			m.tab = (m.tab + 1) % Tab(len(tabNames))
			return m, nil
		case "shift+tab":
			m.tab = (m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))
			return m, nil
		case "1", "2", "3", "4":
			m.tab = Tab(msg.String()[0] - '1')
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.tab {
	case TabTimer:
		m.timer, cmd = m.timer.update(msg, m.env)
	case TabActivities:
		m.list, cmd = m.list.update(msg, m.env)
	case TabDashboard:
		if msg.String() == "r" {
			cmd = m.reload()
		}
	case TabSettings:
		m.settings, cmd = m.settings.update(msg, m.env)
	}
	return m, cmd
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderTabs()
	status := m.renderStatus()
	help := m.renderHelpBar()

	contentHeight := m.height - lipgloss.Height(header) - 3
	var content string
	switch m.tab {
	case TabTimer:
		content = m.timer.view(m.width, contentHeight)
	case TabActivities:
		content = m.list.view(m.width, contentHeight)
	case TabDashboard:
		content = m.dashboard.view(m.width, contentHeight)
	case TabSettings:
		content = m.settings.view(m.width, contentHeight)
	}

	content = lipgloss.NewStyle().Height(contentHeight).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, content, status, help)
}

func (m Model) renderTabs() string {
	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Padding(0, 2)
	activeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Background(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Padding(0, 2)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Padding(0, 2)

	parts := []string{logoStyle.Render("⏱ clockr")}
	for i, name := range tabNames {
		label := string(rune('1'+i)) + " " + name
		if Tab(i) == m.tab {
			parts = append(parts, activeStyle.Render(label))
		} else {
			parts = append(parts, inactiveStyle.Render(label))
		}
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	separator := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorBorder)).
		Render(strings.Repeat("─", max(m.width, 0)))
	return lipgloss.JoinVertical(lipgloss.Left, bar, separator)
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	color := ColorSuccess
	if m.statusErr {
		color = ColorError
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Padding(0, 2).
		Render(truncate(m.status, m.width-4))
}

// renderHelpBar renders the help bar at the bottom
func (m Model) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	var helpText string
	switch m.tab {
	case TabTimer:
		helpText = m.timer.help()
	case TabActivities:
		helpText = m.list.help()
	case TabDashboard:
		helpText = "r refresh"
	case TabSettings:
		helpText = m.settings.help()
	}
	if !m.capturing() {
		helpText += " · tab/1-4 switch · q quit"
	}

	return helpStyle.Render(helpText)
}
