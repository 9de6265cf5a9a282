package pong

import (
	"fmt"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Paddle is a vertically moving bat pinned to a fixed x position.
type Paddle struct {
	owner      core.PlayerID
	x          float64
	centerY    float64
	halfWidth  float64
	halfHeight float64
	speed      float64 // units per second

	// Travel limits for centerY, derived from the arena once.
	minY, maxY float64
}

// NewPaddle creates a paddle centered vertically in the arena.
// The paddle box must fit inside the arena's vertical extent.
func NewPaddle(owner core.PlayerID, x, halfWidth, halfHeight, speed float64, arena Arena) (Paddle, error) {
	if owner != core.PlayerOne && owner != core.PlayerTwo {
		return Paddle{}, fmt.Errorf("%w: unknown owner %d", ErrInvalidPaddle, owner)
	}
	if !(halfWidth > 0) || !(halfHeight > 0) || !finite(halfWidth) || !finite(halfHeight) {
		return Paddle{}, fmt.Errorf("%w: half extents must be positive (got %v x %v)", ErrInvalidPaddle, halfWidth, halfHeight)
	}
	if !(speed > 0) || !finite(speed) {
		return Paddle{}, fmt.Errorf("%w: speed must be positive (got %v)", ErrInvalidPaddle, speed)
	}
	minY := arena.Bottom + halfHeight
	maxY := arena.Top - halfHeight
	if minY > maxY {
		return Paddle{}, fmt.Errorf("%w: paddle height %v exceeds arena height %v", ErrInvalidPaddle, 2*halfHeight, arena.Height())
	}

	return Paddle{
		owner:      owner,
		x:          x,
		centerY:    core.ClampF(arena.Center().Y, minY, maxY),
		halfWidth:  halfWidth,
		halfHeight: halfHeight,
		speed:      speed,
		minY:       minY,
		maxY:       maxY,
	}, nil
}

// ApplyIntent moves the paddle by speed*dt in the requested direction.
// A move past a wall is clamped to the wall, not rejected, so a paddle
// held against the wall stays put.
func (p *Paddle) ApplyIntent(intent core.Intent, dt float64) {
	var candidate float64
	switch intent {
	case core.IntentUp:
		candidate = p.centerY + p.speed*dt
	case core.IntentDown:
		candidate = p.centerY - p.speed*dt
	default:
		return
	}
	p.centerY = core.ClampF(candidate, p.minY, p.maxY)
}

// Owner returns the player this paddle belongs to.
func (p Paddle) Owner() core.PlayerID { return p.owner }

// X returns the fixed horizontal center.
func (p Paddle) X() float64 { return p.x }

// Y returns the vertical center.
func (p Paddle) Y() float64 { return p.centerY }

// Position returns the paddle center.
func (p Paddle) Position() core.Vec2 { return core.V(p.x, p.centerY) }

// HalfWidth returns the collider half width.
func (p Paddle) HalfWidth() float64 { return p.halfWidth }

// HalfHeight returns the collider half height.
func (p Paddle) HalfHeight() float64 { return p.halfHeight }

// Speed returns the movement speed in units per second.
func (p Paddle) Speed() float64 { return p.speed }

// Box returns the paddle collider.
func (p Paddle) Box() core.Box {
	return core.NewBox(p.Position(), p.halfWidth, p.halfHeight)
}
