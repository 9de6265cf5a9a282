// Package pong implements the two-player Pong simulation: paddle and ball
// kinematics, collision response, goal detection and scoring. It has no
// rendering, input device or persistence dependencies; hosts feed it intents
// and a frame delta and read back positions and the score.
package pong

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Default match settings, taken from the classic layout.
const (
	DefaultPaddleX          = 250.0
	DefaultPaddleSpeed      = 300.0
	DefaultPaddleHalfWidth  = 10.0
	DefaultPaddleHalfHeight = 40.0
	DefaultBallServeSpeed   = 150.0
	DefaultBallHalfSize     = 8.0
)

// State is the match phase.
type State int

const (
	StateInPlay State = iota
	StateServing
	StateFinished
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInPlay:
		return "in_play"
	case StateServing:
		return "serving"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Settings are the per-match constants.
type Settings struct {
	Arena Arena

	PaddleX          float64 // paddle one sits at -PaddleX, paddle two at +PaddleX (relative to arena center)
	PaddleSpeed      float64
	PaddleHalfWidth  float64
	PaddleHalfHeight float64

	BallServeSpeed float64
	BallHalfSize   float64

	ServeDelay float64 // seconds the ball waits at the center after a goal; 0 serves instantly
	WinScore   int     // 0 plays forever
}

// DefaultSettings returns the classic settings.
func DefaultSettings() Settings {
	return Settings{
		Arena:            DefaultArena(),
		PaddleX:          DefaultPaddleX,
		PaddleSpeed:      DefaultPaddleSpeed,
		PaddleHalfWidth:  DefaultPaddleHalfWidth,
		PaddleHalfHeight: DefaultPaddleHalfHeight,
		BallServeSpeed:   DefaultBallServeSpeed,
		BallHalfSize:     DefaultBallHalfSize,
	}
}

// Validate reports the first contract violation in the settings.
func (s Settings) Validate() error {
	if err := s.Arena.Validate(); err != nil {
		return err
	}
	if s.ServeDelay < 0 || !finite(s.ServeDelay) {
		return fmt.Errorf("pong: serve delay must be non-negative and finite (got %v)", s.ServeDelay)
	}
	if s.WinScore < 0 {
		return fmt.Errorf("pong: win score must be non-negative (got %d)", s.WinScore)
	}
	if !(s.PaddleX > 0) || s.PaddleX >= s.Arena.Width()/2 {
		return fmt.Errorf("%w: paddle x offset %v must lie inside the half width %v", ErrInvalidPaddle, s.PaddleX, s.Arena.Width()/2)
	}
	if _, err := NewPaddle(core.PlayerOne, 0, s.PaddleHalfWidth, s.PaddleHalfHeight, s.PaddleSpeed, s.Arena); err != nil {
		return err
	}
	if _, err := NewBall(s.Arena.Center(), core.V(1, 1), s.BallServeSpeed, s.BallHalfSize); err != nil {
		return err
	}
	return nil
}

// TickResult summarizes one Advance call.
type TickResult struct {
	Tick   uint64
	State  State
	Score  Score
	Events Events
}

// Goal returns the scorer if a goal happened this tick.
func (r TickResult) Goal() (core.PlayerID, bool) {
	e, ok := r.Events.First(EventGoal)
	return e.Player, ok
}

// Match owns the complete state of one game.
type Match struct {
	settings Settings
	arena    Arena
	resolver Resolver
	rng      Rand

	paddleOne Paddle
	paddleTwo Paddle
	ball      Ball
	score     Score

	state      State
	serveTimer float64
	winner     core.PlayerID
	tick       uint64
}

// NewMatch validates the settings and sets up the opening position: paddles
// centered, ball on the center spot heading (1, 1) at serve speed.
func NewMatch(settings Settings, rng Rand) (*Match, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	arena := settings.Arena
	center := arena.Center()

	one, err := NewPaddle(core.PlayerOne, center.X-settings.PaddleX,
		settings.PaddleHalfWidth, settings.PaddleHalfHeight, settings.PaddleSpeed, arena)
	if err != nil {
		return nil, err
	}
	two, err := NewPaddle(core.PlayerTwo, center.X+settings.PaddleX,
		settings.PaddleHalfWidth, settings.PaddleHalfHeight, settings.PaddleSpeed, arena)
	if err != nil {
		return nil, err
	}
	ball, err := NewBall(center, core.V(1, 1), settings.BallServeSpeed, settings.BallHalfSize)
	if err != nil {
		return nil, err
	}

	m := &Match{
		settings:  settings,
		arena:     arena,
		resolver:  NewResolver(arena),
		rng:       rng,
		paddleOne: one,
		paddleTwo: two,
		ball:      ball,
		state:     StateInPlay,
	}
	if settings.ServeDelay > 0 {
		m.state = StateServing
	}
	return m, nil
}

// Advance runs one tick: paddle one, paddle two, ball integration, wall
// bounce, paddle bounces, goal. Negative or non-finite dt counts as zero.
func (m *Match) Advance(in core.Intents, dt float64) TickResult {
	if m.state == StateFinished {
		return m.result(nil)
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		dt = 0
	}
	m.tick++

	m.paddleOne.ApplyIntent(in.PlayerOne, dt)
	m.paddleTwo.ApplyIntent(in.PlayerTwo, dt)

	var events Events
	switch m.state {
	case StateServing:
		m.serveTimer += dt
		if m.serveTimer >= m.settings.ServeDelay {
			m.serveTimer = 0
			m.state = StateInPlay
		}
	case StateInPlay:
		m.ball.Integrate(dt)
		m.resolver.Boundary(&m.ball, &events)
		m.resolver.Paddles(&m.ball, m.paddleOne, m.paddleTwo, &events)
		if scorer, ok := m.resolver.Goal(m.ball); ok {
			events = append(events, Event{Kind: EventGoal, Player: scorer, At: m.ball.position})
			m.scoreFor(scorer, &events)
		}
	}

	return m.result(events)
}

// scoreFor credits the scorer and serves for the player who conceded.
func (m *Match) scoreFor(scorer core.PlayerID, events *Events) {
	m.score.add(scorer)
	conceded := scorer.Opponent()

	if m.settings.WinScore > 0 && m.score.Points(scorer) >= m.settings.WinScore {
		m.state = StateFinished
		m.winner = scorer
		m.ball.respawn(m.arena.Center(), m.ball.direction, m.settings.BallServeSpeed)
		*events = append(*events, Event{Kind: EventMatchOver, Player: scorer, At: m.ball.position})
		return
	}

	m.serve(conceded)
	*events = append(*events, Event{Kind: EventServe, Player: conceded, At: m.ball.position})
}

// serve respawns the ball on the center spot. Serving for player one sends
// it along +x, serving for player two along -x; the vertical component is
// drawn from the random source.
func (m *Match) serve(conceded core.PlayerID) {
	dirX := 1.0
	if conceded == core.PlayerTwo {
		dirX = -1.0
	}
	m.ball.respawn(m.arena.Center(), core.V(dirX, serveSlope(m.rng)), m.settings.BallServeSpeed)

	if m.settings.ServeDelay > 0 {
		m.state = StateServing
		m.serveTimer = 0
	}
}

func (m *Match) result(events Events) TickResult {
	return TickResult{
		Tick:   m.tick,
		State:  m.state,
		Score:  m.score,
		Events: events,
	}
}

// Score returns the current points pair.
func (m *Match) Score() Score { return m.score }

// Ball returns a copy of the ball state.
func (m *Match) Ball() Ball { return m.ball }

// PaddleOne returns a copy of the left paddle.
func (m *Match) PaddleOne() Paddle { return m.paddleOne }

// PaddleTwo returns a copy of the right paddle.
func (m *Match) PaddleTwo() Paddle { return m.paddleTwo }

// Paddle returns a copy of the given player's paddle.
func (m *Match) Paddle(p core.PlayerID) Paddle {
	if p == core.PlayerTwo {
		return m.paddleTwo
	}
	return m.paddleOne
}

// Arena returns the playfield bounds.
func (m *Match) Arena() Arena { return m.arena }

// Settings returns the settings the match was built with.
func (m *Match) Settings() Settings { return m.settings }

// State returns the match phase.
func (m *Match) State() State { return m.state }

// Tick returns the number of Advance calls that simulated a tick.
func (m *Match) Tick() uint64 { return m.tick }

// Winner returns the winning player once the match is finished.
func (m *Match) Winner() core.PlayerID { return m.winner }

// Over reports whether the match has been decided.
func (m *Match) Over() bool { return m.state == StateFinished }
