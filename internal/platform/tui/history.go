package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/phone-secrets/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the stats sidebar
	sidebarWidth       = 24  // Width of the stats sidebar
	maxRuns            = 100 // Max runs to load
)

// RunSource provides recorded Level 3 runs. *storage.Store implements it.
type RunSource interface {
	RecentRuns(profile string, limit int) ([]storage.Run, error)
	Stats(profile string) (*storage.RunStats, error)
}

// HistoryKeyMap defines the key bindings for the run history.
type HistoryKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Scope key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Scope, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Scope},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "scroll down"),
		),
		Scope: key.NewBinding(
			key.WithKeys("tab", "left", "right"),
			key.WithHelp("tab", "mine/everyone"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "h", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the Level 3 run history.
// Standalone it quits on back; embedded in Model it only flags it.
type HistoryModel struct {
	source      RunSource
	profile     string
	everyone    bool // Show runs of every profile
	runs        []storage.Run
	stats       *storage.RunStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	embedded    bool
	narrow      bool // Profile and volatility columns hidden
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewHistoryModel creates a run history for profile.
func NewHistoryModel(source RunSource, profile string, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		source:      source,
		profile:     profile,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 14},
		{Title: "Profile", Width: 10},
		{Title: "Wellbeing", Width: 9},
		{Title: "Dopamine", Width: 8},
		{Title: "Outcome", Width: 10},
		{Title: "Crashes", Width: 7},
		{Title: "Volatility", Width: 10},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}
	m.narrow = tableWidth < 80
	if m.narrow {
		columns = []table.Column{columns[0], columns[2], columns[3], columns[4], columns[5]}
	}

	height := m.height - 8 // Leave room for header, help, and margins
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *HistoryModel) scopeProfile() string {
	if m.everyone {
		return ""
	}
	return m.profile
}

// loadRuns reads the runs of the current scope.
func (m *HistoryModel) loadRuns() {
	m.runs, m.stats, m.loadErr = nil, nil, nil
	if m.source == nil {
		m.updateTableRows()
		return
	}

	runs, err := m.source.RecentRuns(m.scopeProfile(), maxRuns)
	if err != nil {
		m.loadErr = err
	} else {
		m.runs = runs
	}
	if !m.everyone {
		if stats, err := m.source.Stats(m.profile); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		date := "-"
		if !r.CreatedAt.IsZero() {
			date = r.CreatedAt.Local().Format("Jan 02 15:04")
		}
		if m.narrow {
			rows[i] = table.Row{
				date,
				fmt.Sprintf("%d", r.Wellbeing),
				fmt.Sprintf("%d", r.Dopamine),
				r.Tier,
				fmt.Sprintf("%d", r.Crashes),
			}
			continue
		}
		rows[i] = table.Row{
			date,
			r.Profile,
			fmt.Sprintf("%d", r.Wellbeing),
			fmt.Sprintf("%d", r.Dopamine),
			r.Tier,
			fmt.Sprintf("%d", r.Crashes),
			fmt.Sprintf("%.1f", r.Volatility),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.update(msg)
}

func (m HistoryModel) update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.embedded {
				return m, nil
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.Scope):
			m.everyone = !m.everyone
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *HistoryModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.showSidebar = m.width >= minWidthForSidebar
	m.table = m.createTable()
	m.updateTableRows()
	m.help.Width = width
}

// View renders the history.
func (m HistoryModel) View() string {
	if m.quitting || (m.goingBack && !m.embedded) {
		return ""
	}

	var b strings.Builder

	title := "LEVEL 3 RUNS - " + m.profile
	if m.everyone {
		title = "LEVEL 3 RUNS - everyone"
	}
	b.WriteString(accentStyle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	body := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", body))
	} else {
		b.WriteString(centerText(body, m.width))
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar renders the stats of the profile.
func (m HistoryModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Your stats\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	if m.stats == nil || m.stats.Runs == 0 {
		sb.WriteString(mutedStyle.Render("no runs yet"))
		return sidebarStyle.Render(sb.String())
	}
	fmt.Fprintf(&sb, "Runs       %d\n", m.stats.Runs)
	fmt.Fprintf(&sb, "Best       %d\n", m.stats.BestWellbeing)
	fmt.Fprintf(&sb, "Average    %.0f\n", m.stats.AvgWellbeing)
	fmt.Fprintf(&sb, "Crashes    %d\n", m.stats.TotalCrashes)
	if !m.stats.LastPlayed.IsZero() {
		fmt.Fprintf(&sb, "Last       %s", m.stats.LastPlayed.Local().Format("Jan 02"))
	}
	return sidebarStyle.Render(sb.String())
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := mutedStyle.Italic(true).Padding(2, 4)
	if m.loadErr != nil {
		return emptyStyle.Render("Run history unavailable.\n" + m.loadErr.Error())
	}
	if len(m.runs) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nFinish level 3 to add one!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the game.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// Runs returns the runs on display.
func (m HistoryModel) Runs() []storage.Run {
	return m.runs
}

// RunHistory runs the history screen on its own.
func RunHistory(source RunSource, profile string, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(source, profile, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
