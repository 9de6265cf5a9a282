package pong

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Arena is the rectangular playfield boundary. It is a value type and is
// never mutated after construction.
type Arena struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// DefaultArena returns the classic 1000x400 playfield centered on the origin.
func DefaultArena() Arena {
	return Arena{Top: 200, Bottom: -200, Left: -500, Right: 500}
}

// NewArena validates and returns an arena.
func NewArena(top, bottom, left, right float64) (Arena, error) {
	a := Arena{Top: top, Bottom: bottom, Left: left, Right: right}
	if err := a.Validate(); err != nil {
		return Arena{}, err
	}
	return a, nil
}

// Validate checks top > bottom and right > left with finite bounds.
// NaN bounds fail both.
func (a Arena) Validate() error {
	for _, v := range []float64{a.Top, a.Bottom, a.Left, a.Right} {
		if math.IsInf(v, 0) {
			return fmt.Errorf("%w: bounds must be finite (got %v)", ErrInvalidArena, a)
		}
	}
	if !(a.Top > a.Bottom) {
		return fmt.Errorf("%w: top (%v) must be greater than bottom (%v)", ErrInvalidArena, a.Top, a.Bottom)
	}
	if !(a.Right > a.Left) {
		return fmt.Errorf("%w: right (%v) must be greater than left (%v)", ErrInvalidArena, a.Right, a.Left)
	}
	return nil
}

// Width returns right - left.
func (a Arena) Width() float64 { return a.Right - a.Left }

// Height returns top - bottom.
func (a Arena) Height() float64 { return a.Top - a.Bottom }

// Center returns the serve spot.
func (a Arena) Center() core.Vec2 {
	return core.V((a.Left+a.Right)/2, (a.Top+a.Bottom)/2)
}
