package pong

import "errors"

// Construction errors. Steady-state Advance never fails; invalid parameters
// are rejected when the match is built.
var (
	ErrInvalidArena  = errors.New("pong: invalid arena")
	ErrInvalidPaddle = errors.New("pong: invalid paddle")
	ErrInvalidBall   = errors.New("pong: invalid ball")
	ErrNilRand       = errors.New("pong: nil random source")
)
