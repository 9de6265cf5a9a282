package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLatchHoldsPressForWindow(t *testing.T) {
	keys := DefaultKeyMap()
	l := NewLatch(150 * time.Millisecond)
	t0 := time.Unix(1000, 0)

	if !l.Press(keys, runeKey("z"), t0) {
		t.Fatal("z should be a movement key")
	}
	if got := l.Intents(t0.Add(100 * time.Millisecond)).PlayerOne; got != core.IntentUp {
		t.Errorf("inside window: got %v, want up", got)
	}
	if got := l.Intents(t0.Add(150 * time.Millisecond)).PlayerOne; got != core.IntentNone {
		t.Errorf("after window: got %v, want none", got)
	}
}

func TestLatchBindings(t *testing.T) {
	keys := DefaultKeyMap()
	t0 := time.Unix(1000, 0)

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Intents
	}{
		{"z", runeKey("z"), core.Intents{PlayerOne: core.IntentUp}},
		{"w", runeKey("w"), core.Intents{PlayerOne: core.IntentUp}},
		{"s", runeKey("s"), core.Intents{PlayerOne: core.IntentDown}},
		{"e", runeKey("e"), core.Intents{PlayerTwo: core.IntentUp}},
		{"d", runeKey("d"), core.Intents{PlayerTwo: core.IntentDown}},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.Intents{PlayerTwo: core.IntentUp}},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.Intents{PlayerTwo: core.IntentDown}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLatch(0)
			l.Press(keys, tc.msg, t0)
			if got := l.Intents(t0); got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestLatchOppositePressWins(t *testing.T) {
	keys := DefaultKeyMap()
	l := NewLatch(0)
	t0 := time.Unix(1000, 0)

	l.Press(keys, runeKey("z"), t0)
	l.Press(keys, runeKey("s"), t0.Add(10*time.Millisecond))

	if got := l.Intents(t0.Add(20 * time.Millisecond)).PlayerOne; got != core.IntentDown {
		t.Errorf("got %v, want down", got)
	}
}

func TestLatchPlayersAreIndependent(t *testing.T) {
	keys := DefaultKeyMap()
	l := NewLatch(0)
	t0 := time.Unix(1000, 0)

	l.Press(keys, runeKey("z"), t0)
	l.Press(keys, runeKey("d"), t0)

	want := core.Intents{PlayerOne: core.IntentUp, PlayerTwo: core.IntentDown}
	if got := l.Intents(t0); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	l.Release()
	if got := l.Intents(t0); got != (core.Intents{}) {
		t.Errorf("after release: got %+v, want none", got)
	}
}

func TestLatchIgnoresOtherKeys(t *testing.T) {
	l := NewLatch(0)
	for _, k := range []string{"q", "p", "r", "x"} {
		if l.Press(DefaultKeyMap(), runeKey(k), time.Now()) {
			t.Errorf("%q should not be a movement key", k)
		}
	}
	if l.hold != DefaultHold {
		t.Errorf("hold = %v, want %v", l.hold, DefaultHold)
	}
}

func TestKeyMapHelpCoversBindings(t *testing.T) {
	k := DefaultKeyMap()
	if len(k.ShortHelp()) == 0 {
		t.Error("short help is empty")
	}
	n := 0
	for _, col := range k.FullHelp() {
		n += len(col)
	}
	if n != 9 {
		t.Errorf("full help lists %d bindings, want 9", n)
	}
}
