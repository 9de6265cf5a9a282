package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-pong/internal/pong"
)

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

// DefaultPongConfig returns the default Pong configuration.
func DefaultPongConfig() PongConfig {
	arena := pong.DefaultArena()
	return PongConfig{
		Arena: PongArena{
			Top:    arena.Top,
			Bottom: arena.Bottom,
			Left:   arena.Left,
			Right:  arena.Right,
		},
		Paddle: PongPaddle{
			X:          pong.DefaultPaddleX,
			Speed:      pong.DefaultPaddleSpeed,
			HalfWidth:  pong.DefaultPaddleHalfWidth,
			HalfHeight: pong.DefaultPaddleHalfHeight,
		},
		Ball: PongBall{
			ServeSpeed: pong.DefaultBallServeSpeed,
			HalfSize:   pong.DefaultBallHalfSize,
		},
		Match: PongMatch{
			ServeDelay: 0,
			WinScore:   0,
		},
	}
}
