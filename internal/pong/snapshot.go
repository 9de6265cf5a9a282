package pong

// Snapshot is the flat, read-only view of a match after a tick.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick     uint64  `msgpack:"tick"`
	State    State   `msgpack:"state"`
	BallX    float64 `msgpack:"bx"`
	BallY    float64 `msgpack:"by"`
	DirX     float64 `msgpack:"dx"`
	DirY     float64 `msgpack:"dy"`
	Speed    float64 `msgpack:"speed"`
	Paddle1X float64 `msgpack:"p1x"`
	Paddle1Y float64 `msgpack:"p1y"`
	Paddle2X float64 `msgpack:"p2x"`
	Paddle2Y float64 `msgpack:"p2y"`
	Score1   int     `msgpack:"s1"`
	Score2   int     `msgpack:"s2"`
}

// Snapshot returns the current match state.
func (m *Match) Snapshot() Snapshot {
	return Snapshot{
		Tick:     m.tick,
		State:    m.state,
		BallX:    m.ball.position.X,
		BallY:    m.ball.position.Y,
		DirX:     m.ball.direction.X,
		DirY:     m.ball.direction.Y,
		Speed:    m.ball.speed,
		Paddle1X: m.paddleOne.x,
		Paddle1Y: m.paddleOne.centerY,
		Paddle2X: m.paddleTwo.x,
		Paddle2Y: m.paddleTwo.centerY,
		Score1:   m.score.PlayerOne,
		Score2:   m.score.PlayerTwo,
	}
}
