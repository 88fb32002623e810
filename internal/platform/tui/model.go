package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/phone-secrets/internal/core"
	"github.com/vovakirdan/phone-secrets/internal/progress"
	"github.com/vovakirdan/phone-secrets/internal/session"
)

// Rows taken by the nav bar and the help line, and the extra rows the full
// help needs.
const (
	chromeRows   = 2
	fullHelpRows = 3
)

// Model is the Bubble Tea model driving one game session.
type Model struct {
	sess     *session.Session
	screen   *core.Screen
	runs     RunSource
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	history  *HistoryModel
	status   string // One-line notice, cleared by the next key
	quitting bool
}

// NewModel creates a new Bubble Tea model for sess. runs may be nil, which
// disables the history view.
func NewModel(sess *session.Session, runs RunSource, cfg core.RuntimeConfig) Model {
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		sess:   sess,
		screen: core.NewScreen(cfg.ScreenW, core.Max(1, cfg.ScreenH-chromeRows)),
		runs:   runs,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   h,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.history != nil {
			return m.updateHistory(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.sess.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.History):
		m.openHistory()
		return m, nil
	}

	if n, ok := m.keys.JumpTarget(msg); ok {
		//nolint:errcheck // Digits only produce valid levels
		m.sess.Navigate(n)
		return m, nil
	}

	if action := m.keys.Action(msg); action != core.ActionNone {
		m.sess.Input(action)
	}
	return m, nil
}

func (m *Model) openHistory() {
	if m.runs == nil {
		m.status = "run history is not available"
		return
	}
	h := NewHistoryModel(m.runs, m.sess.Profile(), m.config.ScreenW, m.config.ScreenH)
	h.embedded = true
	m.history = &h
}

// updateHistory routes keys to the history view until it is closed.
// The session keeps ticking underneath.
func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h, cmd := m.history.update(msg)
	if h.IsQuitting() {
		m.quitting = true
		m.sess.Close()
		return m, tea.Quit
	}
	if h.IsGoingBack() {
		m.history = nil
		return m, nil
	}
	m.history = &h
	return m, cmd
}

// handleResize processes window resize events. Levels keep their state and
// lay out against the new size on the next render.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	if m.history != nil {
		m.history.resize(msg.Width, msg.Height)
	}
	return m, nil
}

// handleTick advances the session clock by one tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	m.sess.Advance(m.config.TickInterval())
	return m, tickCmd(m.config.TickRate)
}

// renderBody draws the current view into the screen buffer.
func (m Model) renderBody() {
	rows := m.config.ScreenH - chromeRows
	if m.help.ShowAll {
		rows -= fullHelpRows
	}
	rows = core.Max(1, rows)
	if m.screen.Width() != m.config.ScreenW || m.screen.Height() != rows {
		m.screen.Resize(m.config.ScreenW, rows)
	}
	m.screen.Clear()
	switch m.sess.View() {
	case session.ViewWelcome:
		drawWelcome(m.screen, m.sess.Progress())
	case session.ViewFinal:
		drawFinal(m.screen, m.sess)
	case session.ViewLevel:
		if lvl := m.sess.Level(); lvl != nil {
			lvl.Render(m.screen)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.renderBody()

	dir := filepath.Join(os.Getenv("HOME"), ".phone-secrets", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := "welcome"
	if lvl := m.sess.Level(); lvl != nil {
		name = lvl.Info().ID
	} else if m.sess.View() == session.ViewFinal {
		name = "final"
	}
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", name, timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.status = "screenshot failed: " + err.Error()
		return
	}
	m.status = "screenshot saved to " + path
}

// navBar renders the level tabs and the overall progress.
func (m Model) navBar() string {
	orch := m.sess.Progress()

	tabs := make([]string, 0, progress.Levels+2)
	tabs = append(tabs, accentStyle.Render("PHONE SECRETS "))
	for _, item := range orch.Nav() {
		label := fmt.Sprintf("%d", item.Number)
		if item.Completed {
			label += " v"
		}
		switch {
		case item.Current && m.sess.View() == session.ViewLevel:
			tabs = append(tabs, activeStyle.Render(label))
		case item.Completed:
			tabs = append(tabs, doneStyle.Padding(0, 1).Render(label))
		default:
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	title := ""
	if lvl := m.sess.Level(); lvl != nil {
		title = lvl.Info().Title
	}
	ratio := fmt.Sprintf(" %3.0f%% ", orch.Ratio()*100)
	tabs = append(tabs, mutedStyle.Render(ratio+title))

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.history != nil {
		return m.history.View()
	}

	m.renderBody()

	var b strings.Builder
	b.WriteString(m.navBar())
	b.WriteString("\n")
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(mutedStyle.Render(m.status))
	} else {
		b.WriteString(mutedStyle.Render(m.help.View(m.keys)))
	}
	return b.String()
}

// Session returns the session the model drives.
func (m Model) Session() *session.Session {
	return m.sess
}

// Run starts the Bubble Tea program for sess.
func Run(sess *session.Session, runs RunSource, cfg core.RuntimeConfig) error {
	model := NewModel(sess, runs, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
