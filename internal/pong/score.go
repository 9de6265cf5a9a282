package pong

import (
	"fmt"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Score is the points pair shown by the display layer.
type Score struct {
	PlayerOne int
	PlayerTwo int
}

// Points returns the points of one player.
func (s Score) Points(p core.PlayerID) int {
	switch p {
	case core.PlayerOne:
		return s.PlayerOne
	case core.PlayerTwo:
		return s.PlayerTwo
	default:
		return 0
	}
}

// Leader returns the player ahead, or PlayerNone on a tie.
func (s Score) Leader() core.PlayerID {
	switch {
	case s.PlayerOne > s.PlayerTwo:
		return core.PlayerOne
	case s.PlayerTwo > s.PlayerOne:
		return core.PlayerTwo
	default:
		return core.PlayerNone
	}
}

// String formats the score as "one-two".
func (s Score) String() string {
	return fmt.Sprintf("%d-%d", s.PlayerOne, s.PlayerTwo)
}

func (s *Score) add(p core.PlayerID) {
	switch p {
	case core.PlayerOne:
		s.PlayerOne++
	case core.PlayerTwo:
		s.PlayerTwo++
	}
}
