package core

import (
	"fmt"
	"strings"
)

// PlayerID identifies one side of a match.
type PlayerID int

const (
	PlayerNone PlayerID = iota
	PlayerOne           // Left paddle
	PlayerTwo           // Right paddle
)

// String returns a human-readable name for the player.
func (p PlayerID) String() string {
	switch p {
	case PlayerOne:
		return "player one"
	case PlayerTwo:
		return "player two"
	default:
		return "none"
	}
}

// Opponent returns the other side. PlayerNone has no opponent.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	default:
		return PlayerNone
	}
}

// Intent is a per-tick movement request for one paddle, already debounced
// by the input layer. The simulation never sees raw key codes.
type Intent int

const (
	IntentNone Intent = iota
	IntentUp
	IntentDown
)

// String returns the canonical lowercase name of the intent.
func (i Intent) String() string {
	switch i {
	case IntentUp:
		return "up"
	case IntentDown:
		return "down"
	default:
		return "none"
	}
}

// ParseIntent parses "up", "down" or "none" (case-insensitive; empty is none).
func ParseIntent(s string) (Intent, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "-":
		return IntentNone, nil
	case "up":
		return IntentUp, nil
	case "down":
		return IntentDown, nil
	default:
		return IntentNone, fmt.Errorf("unknown intent %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (i Intent) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so intents can be read
// from YAML scripts.
func (i *Intent) UnmarshalText(text []byte) error {
	parsed, err := ParseIntent(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// IntentFromKeys resolves an up/down key pair. Holding both cancels out.
func IntentFromKeys(up, down bool) Intent {
	switch {
	case up && !down:
		return IntentUp
	case down && !up:
		return IntentDown
	default:
		return IntentNone
	}
}

// Intents carries both paddles' requests for a single tick.
// The zero value means neither paddle moves.
type Intents struct {
	PlayerOne Intent `yaml:"p1"`
	PlayerTwo Intent `yaml:"p2"`
}

// IntentsFromKeys builds the tick input from the four independent signals
// PaddleOneUp, PaddleOneDown, PaddleTwoUp, PaddleTwoDown.
func IntentsFromKeys(p1Up, p1Down, p2Up, p2Down bool) Intents {
	return Intents{
		PlayerOne: IntentFromKeys(p1Up, p1Down),
		PlayerTwo: IntentFromKeys(p2Up, p2Down),
	}
}

// For returns the intent of the given player.
func (in Intents) For(p PlayerID) Intent {
	switch p {
	case PlayerOne:
		return in.PlayerOne
	case PlayerTwo:
		return in.PlayerTwo
	default:
		return IntentNone
	}
}
