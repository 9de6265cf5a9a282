package pong

import "github.com/vovakirdan/tui-pong/internal/core"

// Resolver applies boundary bounces, paddle bounces and goal detection to
// a ball that has already been integrated for the tick. All comparisons are
// strict: a ball exactly on a wall, paddle edge or goal line is untouched.
type Resolver struct {
	arena Arena
}

// NewResolver creates a resolver for the given arena.
func NewResolver(arena Arena) Resolver {
	return Resolver{arena: arena}
}

// Boundary reflects direction.y when the ball center is past the top or the
// bottom. Position and direction.x are left alone; a tunnelled ball keeps
// travelling back in on later ticks.
func (r Resolver) Boundary(b *Ball, events *Events) {
	// Both checks run; only one can hold for a valid arena.
	if b.position.Y > r.arena.Top {
		b.flipY()
		*events = append(*events, Event{Kind: EventWallBounce, Wall: WallTop, At: b.position})
	}
	if b.position.Y < r.arena.Bottom {
		b.flipY()
		*events = append(*events, Event{Kind: EventWallBounce, Wall: WallBottom, At: b.position})
	}
}

// Paddles resolves paddle one and then paddle two. Both are always
// evaluated; their guards are independent.
func (r Resolver) Paddles(b *Ball, one, two Paddle, events *Events) {
	r.Paddle(b, one, events)
	r.Paddle(b, two, events)
}

// Paddle bounces the ball off a single paddle. A hit flips both direction
// components and latches the paddle's guard until the ball leaves the
// paddle's x range.
func (r Resolver) Paddle(b *Ball, p Paddle, events *Events) {
	if !touchesX(*b, p) {
		b.setInCollision(p.owner, false)
		return
	}
	if !sameHeight(*b, p) || b.InCollision(p.owner) {
		return
	}

	b.flipX()
	b.flipY()
	b.setInCollision(p.owner, true)
	*events = append(*events, Event{Kind: EventPaddleHit, Player: p.owner, At: b.position})
}

// Goal returns the scoring player when the ball center is past a goal line.
func (r Resolver) Goal(b Ball) (core.PlayerID, bool) {
	switch {
	case b.position.X < r.arena.Left:
		return core.PlayerTwo, true
	case b.position.X > r.arena.Right:
		return core.PlayerOne, true
	default:
		return core.PlayerNone, false
	}
}

// touchesX tests the ball's paddle-facing edge against the paddle's x span.
// The ball meets paddle one moving left, so its left edge is tested; it
// meets paddle two moving right, so its right edge is tested.
func touchesX(b Ball, p Paddle) bool {
	span := p.Box().SpanX()
	switch p.owner {
	case core.PlayerOne:
		return span.Within(b.Box().Left())
	case core.PlayerTwo:
		return span.Within(b.Box().Right())
	default:
		return false
	}
}

// sameHeight tests the ball center against the paddle's y span.
func sameHeight(b Ball, p Paddle) bool {
	return p.Box().SpanY().Within(b.position.Y)
}
