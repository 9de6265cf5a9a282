// Package config provides YAML-based match configuration loading for the
// pong binary.
package config

// PongConfig contains all configuration for a Pong match. Keys are grouped
// per object; the flat option names map as follows:
//
//	top, bottom, left, right   arena.top, arena.bottom, arena.left, arena.right
//	paddle_speed               paddle.speed
//	paddle_half_width          paddle.half_width
//	paddle_half_height         paddle.half_height
//	paddle_x                   paddle.x
//	ball_serve_speed           ball.serve_speed
//	ball_half_size             ball.half_size
//	serve_delay                match.serve_delay
//	win_score                  match.win_score
type PongConfig struct {
	Arena  PongArena  `yaml:"arena"`
	Paddle PongPaddle `yaml:"paddle"`
	Ball   PongBall   `yaml:"ball"`
	Match  PongMatch  `yaml:"match"`
}

// PongArena defines the playfield bounds in world units (y up).
type PongArena struct {
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
}

// PongPaddle defines paddle parameters shared by both players.
type PongPaddle struct {
	X          float64 `yaml:"x"` // distance of each paddle from the arena center
	Speed      float64 `yaml:"speed"`
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
}

// PongBall defines ball parameters.
type PongBall struct {
	ServeSpeed float64 `yaml:"serve_speed"`
	HalfSize   float64 `yaml:"half_size"`
}

// PongMatch defines match flow.
type PongMatch struct {
	ServeDelay float64 `yaml:"serve_delay"` // seconds
	WinScore   int     `yaml:"win_score"`   // 0 = endless
}
