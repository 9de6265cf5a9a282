package pong

import (
	"fmt"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// EventKind classifies what happened during a tick.
type EventKind int

const (
	EventWallBounce EventKind = iota + 1
	EventPaddleHit
	EventGoal
	EventServe
	EventMatchOver
)

// String returns a short name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventWallBounce:
		return "wall_bounce"
	case EventPaddleHit:
		return "paddle_hit"
	case EventGoal:
		return "goal"
	case EventServe:
		return "serve"
	case EventMatchOver:
		return "match_over"
	default:
		return "unknown"
	}
}

// Wall identifies a horizontal boundary.
type Wall int

const (
	WallNone Wall = iota
	WallTop
	WallBottom
)

// String returns the wall name.
func (w Wall) String() string {
	switch w {
	case WallTop:
		return "top"
	case WallBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Event describes one resolution step. Player is the paddle owner for hits,
// the scorer for goals and the winner for match over; for serves it is the
// player the ball is served for (the one who conceded).
type Event struct {
	Kind   EventKind
	Player core.PlayerID
	Wall   Wall
	At     core.Vec2 // ball position when the event fired
}

// String formats the event for logs.
func (e Event) String() string {
	switch e.Kind {
	case EventWallBounce:
		return fmt.Sprintf("ball bounced off %s wall at (%.1f, %.1f)", e.Wall, e.At.X, e.At.Y)
	case EventPaddleHit:
		return fmt.Sprintf("ball hit %s", e.Player)
	case EventGoal:
		return fmt.Sprintf("goal for %s", e.Player)
	case EventServe:
		return fmt.Sprintf("ball served for %s", e.Player)
	case EventMatchOver:
		return fmt.Sprintf("%s wins", e.Player)
	default:
		return e.Kind.String()
	}
}

// Events is the ordered list of events of one tick.
type Events []Event

// Count returns how many events of the given kind are present.
func (es Events) Count(kind EventKind) int {
	n := 0
	for _, e := range es {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// First returns the first event of the given kind.
func (es Events) First(kind EventKind) (Event, bool) {
	for _, e := range es {
		if e.Kind == kind {
			return e, true
		}
	}
	return Event{}, false
}
