// Package sim runs headless Pong matches: scripted or generated intents,
// bounded parallel batches, and msgpack recordings that can be replayed.
package sim

import (
	"math/rand"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/pong"
)

// Driver supplies the intents for the next tick. It returns false once it
// has nothing more to play.
type Driver interface {
	Intents(m *pong.Match) (core.Intents, bool)
}

// Controller picks one player's intent from the current match state.
type Controller interface {
	Intent(m *pong.Match, p core.PlayerID) core.Intent
}

// Idle never moves.
type Idle struct{}

// Intent implements Controller.
func (Idle) Intent(*pong.Match, core.PlayerID) core.Intent { return core.IntentNone }

// Tracker follows the ball while it is heading towards its paddle and
// rests otherwise. Deadzone is how far the ball may sit from the paddle
// center before the tracker reacts.
type Tracker struct {
	Deadzone float64
}

// Intent implements Controller.
func (t Tracker) Intent(m *pong.Match, p core.PlayerID) core.Intent {
	ball := m.Ball()
	paddle := m.Paddle(p)

	// Only chase a ball coming our way.
	approaching := ball.Direction().X < 0
	if p == core.PlayerTwo {
		approaching = ball.Direction().X > 0
	}
	if !approaching {
		return core.IntentNone
	}

	diff := ball.Position().Y - paddle.Y()
	switch {
	case diff > t.Deadzone:
		return core.IntentUp
	case diff < -t.Deadzone:
		return core.IntentDown
	default:
		return core.IntentNone
	}
}

// Random holds a random intent for a random number of ticks.
type Random struct {
	rng      *rand.Rand
	minHold  int
	maxHold  int
	current  core.Intent
	holdLeft int
}

// NewRandom creates a random controller. Holds are drawn from [minHold, maxHold].
func NewRandom(seed int64, minHold, maxHold int) *Random {
	minHold = max(1, minHold)
	maxHold = max(minHold, maxHold)
	return &Random{
		rng:     rand.New(rand.NewSource(seed)),
		minHold: minHold,
		maxHold: maxHold,
	}
}

// Intent implements Controller.
func (r *Random) Intent(*pong.Match, core.PlayerID) core.Intent {
	if r.holdLeft == 0 {
		r.current = core.Intent(r.rng.Intn(3))
		r.holdLeft = r.minHold + r.rng.Intn(r.maxHold-r.minHold+1)
	}
	r.holdLeft--
	return r.current
}

// Versus pairs two controllers into an endless driver.
func Versus(one, two Controller) Driver {
	return versus{one: one, two: two}
}

type versus struct {
	one, two Controller
}

func (v versus) Intents(m *pong.Match) (core.Intents, bool) {
	return core.Intents{
		PlayerOne: v.one.Intent(m, core.PlayerOne),
		PlayerTwo: v.two.Intent(m, core.PlayerTwo),
	}, true
}

// ParseController builds a controller by name: "idle", "tracker" or "random".
func ParseController(name string, seed int64) (Controller, bool) {
	switch name {
	case "idle", "":
		return Idle{}, true
	case "tracker":
		return Tracker{Deadzone: 10}, true
	case "random":
		return NewRandom(seed, 5, 30), true
	default:
		return nil, false
	}
}
