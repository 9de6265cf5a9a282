package pong

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Ball is the single moving object of a match.
type Ball struct {
	position  core.Vec2
	direction core.Vec2 // need not be unit length, never zero
	speed     float64
	halfSize  float64

	// One re-entrancy guard per paddle, indexed by guardIndex.
	inCollision [2]bool
}

// NewBall creates a ball. Direction must be non-zero and finite.
func NewBall(position, direction core.Vec2, speed, halfSize float64) (Ball, error) {
	if direction.IsZero() || !finite(direction.X) || !finite(direction.Y) {
		return Ball{}, fmt.Errorf("%w: direction must be a non-zero finite vector (got %v)", ErrInvalidBall, direction)
	}
	if !(speed > 0) || !finite(speed) {
		return Ball{}, fmt.Errorf("%w: speed must be positive (got %v)", ErrInvalidBall, speed)
	}
	if !(halfSize > 0) || !finite(halfSize) {
		return Ball{}, fmt.Errorf("%w: half size must be positive (got %v)", ErrInvalidBall, halfSize)
	}
	return Ball{
		position:  position,
		direction: direction,
		speed:     speed,
		halfSize:  halfSize,
	}, nil
}

// Integrate advances the ball along its normalized direction.
func (b *Ball) Integrate(dt float64) {
	b.position = b.position.Add(b.Velocity().Scale(dt))
}

// Velocity returns normalize(direction) * speed.
func (b Ball) Velocity() core.Vec2 {
	return b.direction.Normalized().Scale(b.speed)
}

// Position returns the ball center.
func (b Ball) Position() core.Vec2 { return b.position }

// Direction returns the raw direction vector as last written.
func (b Ball) Direction() core.Vec2 { return b.direction }

// Speed returns the scalar speed in units per second.
func (b Ball) Speed() float64 { return b.speed }

// HalfSize returns the collider half extent on both axes.
func (b Ball) HalfSize() float64 { return b.halfSize }

// Box returns the ball collider.
func (b Ball) Box() core.Box {
	return core.NewBox(b.position, b.halfSize, b.halfSize)
}

// InCollision reports whether a bounce off the given player's paddle is
// currently latched.
func (b Ball) InCollision(p core.PlayerID) bool {
	i, ok := guardIndex(p)
	return ok && b.inCollision[i]
}

func (b *Ball) setInCollision(p core.PlayerID, v bool) {
	if i, ok := guardIndex(p); ok {
		b.inCollision[i] = v
	}
}

func (b *Ball) flipX() { b.direction.X = -b.direction.X }
func (b *Ball) flipY() { b.direction.Y = -b.direction.Y }

// respawn puts the ball back on the serve spot with a fresh direction and
// speed. Both guards are re-armed.
func (b *Ball) respawn(at, direction core.Vec2, speed float64) {
	b.position = at
	b.direction = direction
	b.speed = speed
	b.inCollision = [2]bool{}
}

func guardIndex(p core.PlayerID) (int, bool) {
	switch p {
	case core.PlayerOne:
		return 0, true
	case core.PlayerTwo:
		return 1, true
	default:
		return 0, false
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
