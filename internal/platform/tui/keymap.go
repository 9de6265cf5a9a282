package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// DefaultHold is how long a key press keeps its paddle moving. Terminals
// report presses and auto-repeats but never releases.
const DefaultHold = 150 * time.Millisecond

// KeyMap defines the key bindings for a match.
type KeyMap struct {
	P1Up       key.Binding
	P1Down     key.Binding
	P2Up       key.Binding
	P2Down     key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.P1Up, k.P1Down, k.P2Up, k.P2Down, k.Pause, k.Quit, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.P1Up, k.P1Down},
		{k.P2Up, k.P2Down},
		{k.Pause, k.Restart, k.Screenshot},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings: z/s for player one and e/d
// for player two, with w and the arrow keys as extras.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		P1Up: key.NewBinding(
			key.WithKeys("z", "w"),
			key.WithHelp("z/w", "p1 up"),
		),
		P1Down: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "p1 down"),
		),
		P2Up: key.NewBinding(
			key.WithKeys("e", "up"),
			key.WithHelp("e/↑", "p2 up"),
		),
		P2Down: key.NewBinding(
			key.WithKeys("d", "down"),
			key.WithHelp("d/↓", "p2 down"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// paddleKey indexes the four movement keys.
type paddleKey int

const (
	keyP1Up paddleKey = iota
	keyP1Down
	keyP2Up
	keyP2Down
	numPaddleKeys
)

// Latch turns key presses into held intents. A press stays active for the
// hold window; pressing the opposite direction cancels it at once.
type Latch struct {
	hold    time.Duration
	pressed [numPaddleKeys]time.Time
}

// NewLatch creates a latch. Non-positive holds use DefaultHold.
func NewLatch(hold time.Duration) Latch {
	if hold <= 0 {
		hold = DefaultHold
	}
	return Latch{hold: hold}
}

// Press records a movement key. It reports false for other keys.
func (l *Latch) Press(k KeyMap, msg tea.KeyMsg, now time.Time) bool {
	switch {
	case key.Matches(msg, k.P1Up):
		l.press(keyP1Up, keyP1Down, now)
	case key.Matches(msg, k.P1Down):
		l.press(keyP1Down, keyP1Up, now)
	case key.Matches(msg, k.P2Up):
		l.press(keyP2Up, keyP2Down, now)
	case key.Matches(msg, k.P2Down):
		l.press(keyP2Down, keyP2Up, now)
	default:
		return false
	}
	return true
}

func (l *Latch) press(k, opposite paddleKey, now time.Time) {
	l.pressed[k] = now
	l.pressed[opposite] = time.Time{}
}

// Intents returns the intents active at now.
func (l *Latch) Intents(now time.Time) core.Intents {
	return core.IntentsFromKeys(
		l.active(keyP1Up, now),
		l.active(keyP1Down, now),
		l.active(keyP2Up, now),
		l.active(keyP2Down, now),
	)
}

// Release drops every held key.
func (l *Latch) Release() {
	l.pressed = [numPaddleKeys]time.Time{}
}

func (l *Latch) active(k paddleKey, now time.Time) bool {
	at := l.pressed[k]
	return !at.IsZero() && now.Sub(at) < l.hold
}
