package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/pong"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

// maxFrameDT caps the frame delta so a stalled terminal does not teleport
// the ball through a paddle.
const maxFrameDT = 0.1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Options configure a match session.
type Options struct {
	Settings pong.Settings
	Runtime  core.RuntimeConfig
	Store    *storage.Store // nil disables history
	Logger   *log.Logger
	Mode     string // storage.ModeLocal or storage.ModeSSH
	Player1  string
	Player2  string
	Hold     time.Duration // key latch window, DefaultHold when zero
}

// Model is the Bubble Tea model for a running match.
type Model struct {
	opts     Options
	logger   *log.Logger
	match    *pong.Match
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	latch    Latch
	results  *resultTracker
	lastTick time.Time
	paused   bool
	quitting bool
}

// NewModel validates the settings and sets up the first match.
func NewModel(opts Options) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Mode == "" {
		opts.Mode = storage.ModeLocal
	}
	if opts.Player1 == "" {
		opts.Player1 = "p1"
	}
	if opts.Player2 == "" {
		opts.Player2 = "p2"
	}

	var saver MatchSaver
	if opts.Store != nil {
		saver = opts.Store
	}

	m := Model{
		opts:    opts,
		logger:  opts.Logger,
		screen:  core.NewScreen(opts.Runtime.ScreenW, max(1, opts.Runtime.ScreenH-1)),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		latch:   NewLatch(opts.Hold),
		results: newResultTracker(saver, opts.Logger, opts.Mode, opts.Player1, opts.Player2),
	}
	m.help.Width = opts.Runtime.ScreenW

	if err := m.newMatch(opts.Runtime.ResolveSeed(), time.Now()); err != nil {
		return Model{}, err
	}
	return m, nil
}

// newMatch replaces the current match with a fresh one.
func (m *Model) newMatch(seed int64, now time.Time) error {
	match, err := pong.NewMatch(m.opts.Settings, pong.NewRand(seed))
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	m.match = match
	m.paused = false
	m.lastTick = time.Time{}
	m.latch.Release()
	m.results.Begin(seed, now)
	m.logger.Info("match started", "match", m.results.Record().MatchID, "seed", seed)
	return nil
}

// Init starts the frame clock.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickInterval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(1, msg.Height-1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.results.Finish(storage.EndQuit, now)
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		if !m.match.Over() {
			m.paused = !m.paused
			m.latch.Release()
		}
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		if m.match.Over() || m.paused {
			m.results.Finish(storage.EndQuit, now)
			if err := m.newMatch(time.Now().UnixNano(), now); err != nil {
				m.logger.Error("could not restart match", "error", err)
			}
		}
		return m, nil
	}

	if !m.paused {
		m.latch.Press(m.keys, msg, now)
	}
	return m, nil
}

// handleTick advances the match by the wall-clock time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	next := tickCmd(m.opts.Runtime.TickInterval())

	dt := 0.0
	if !m.lastTick.IsZero() {
		dt = min(now.Sub(m.lastTick).Seconds(), maxFrameDT)
	}
	m.lastTick = now

	if m.paused || m.match.Over() {
		return m, next
	}

	res := m.match.Advance(m.latch.Intents(now), dt)
	m.logEvents(res)
	m.results.Update(m.match)

	if res.State == pong.StateFinished {
		m.results.Finish(storage.EndCompleted, now)
	}
	return m, next
}

func (m Model) logEvents(res pong.TickResult) {
	for _, e := range res.Events {
		switch e.Kind {
		case pong.EventGoal, pong.EventMatchOver:
			m.logger.Info(e.String(), "tick", res.Tick, "score", res.Score)
		default:
			m.logger.Debug(e.String(), "tick", res.Tick)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() {
	DrawMatch(m.screen, m.match, m.hud())

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	filename := fmt.Sprintf("pong_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

func (m Model) hud() HUD {
	return HUD{
		Player1: m.opts.Player1,
		Player2: m.opts.Player2,
		Paused:  m.paused,
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawMatch(m.screen, m.match, m.hud())
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Match returns the running match.
func (m Model) Match() *pong.Match { return m.match }

// Paused reports whether the simulation is paused.
func (m Model) Paused() bool { return m.paused }

// IsQuitting returns true if the user asked to quit.
func (m Model) IsQuitting() bool { return m.quitting }

// Finish saves the current match if it has not been saved yet.
func (m Model) Finish(reason string) {
	m.results.Finish(reason, time.Now())
}

// Run starts the Bubble Tea program for a local match.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.Finish(storage.EndQuit)
	}
	return err
}
