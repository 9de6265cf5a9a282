package tui

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/pong"
)

// Arena glyphs.
const (
	PaddleChar = '█'
	BallChar   = '●'
	NetChar    = '┊'
)

// Minimum screen size that fits a readable arena.
const (
	minViewW = 20
	minViewH = 8
)

// Projection maps world coordinates (y up) onto screen cells. Row 0 holds
// the score line and the arena border fills the rest of the screen.
type Projection struct {
	arena pong.Arena
	field core.Rect // border rectangle
}

// NewProjection fits the arena into a width x height screen.
func NewProjection(arena pong.Arena, width, height int) Projection {
	return Projection{
		arena: arena,
		field: core.NewRect(0, 1, width, height-1),
	}
}

// Field returns the border rectangle.
func (p Projection) Field() core.Rect { return p.field }

// Col maps a world x onto an interior column.
func (p Projection) Col(x float64) int {
	inner := p.field.W - 2
	t := (x - p.arena.Left) / p.arena.Width()
	return p.field.X + 1 + core.Clamp(int(math.Floor(t*float64(inner))), 0, inner-1)
}

// Row maps a world y onto an interior row. Larger y is higher on screen.
func (p Projection) Row(y float64) int {
	inner := p.field.H - 2
	t := (p.arena.Top - y) / p.arena.Height()
	return p.field.Y + 1 + core.Clamp(int(math.Floor(t*float64(inner))), 0, inner-1)
}

// HUD is the host-side state drawn over the arena.
type HUD struct {
	Player1 string
	Player2 string
	Paused  bool
}

// DrawMatch renders the arena, paddles, ball and score.
func DrawMatch(dst *core.Screen, m *pong.Match, hud HUD) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	if w < minViewW || h < minViewH {
		dst.DrawTextCentered(h/2, "terminal too small")
		return
	}

	proj := NewProjection(m.Arena(), w, h)
	field := proj.Field()
	dst.DrawBox(field, core.ColorGray)

	// Net
	netX := proj.Col(m.Arena().Center().X)
	for y := field.Y + 1; y < field.Bottom()-1; y += 2 {
		dst.SetColored(netX, y, NetChar, core.ColorGray)
	}

	drawPaddle(dst, proj, m.PaddleOne(), core.ColorCyan)
	drawPaddle(dst, proj, m.PaddleTwo(), core.ColorMagenta)

	// The ball blinks while waiting to be served.
	if m.State() != pong.StateServing || (m.Tick()/10)%2 == 0 {
		ball := m.Ball().Position()
		dst.SetColored(proj.Col(ball.X), proj.Row(ball.Y), BallChar, core.ColorYellow)
	}

	drawScore(dst, m.Score(), hud)

	switch {
	case m.Over():
		title := fmt.Sprintf("%s WINS!", playerName(hud, m.Winner()))
		drawCenteredMessage(dst, title, fmt.Sprintf("%s  |  Press R to restart", m.Score()))
	case hud.Paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func drawPaddle(dst *core.Screen, proj Projection, p pong.Paddle, c core.Color) {
	box := p.Box()
	top := proj.Row(box.Top())
	bottom := proj.Row(box.Bottom())
	dst.DrawVLine(proj.Col(p.X()), top, bottom-top+1, PaddleChar, c)
}

// drawScore writes "P1 n | Score | n P2" centered on row 0 with the player
// names in the corners.
func drawScore(dst *core.Screen, s pong.Score, hud HUD) {
	line := fmt.Sprintf("P1 %d | Score | %d P2", s.PlayerOne, s.PlayerTwo)
	x := (dst.Width() - len(line)) / 2
	for i, r := range line {
		dst.SetColored(x+i, 0, r, core.ColorWhite)
	}

	// Names keep one blank column between themselves and the score line.
	for i, r := range clipName(hud.Player1, x-2) {
		dst.SetColored(1+i, 0, r, core.ColorCyan)
	}
	name := clipName(hud.Player2, dst.Width()-x-len(line)-2)
	start := dst.Width() - 1 - len(name)
	for i, r := range name {
		dst.SetColored(start+i, 0, r, core.ColorMagenta)
	}
}

// clipName shortens name to at most n runes, marking the cut with '…'.
func clipName(name string, n int) []rune {
	runes := []rune(name)
	switch {
	case n <= 0:
		return nil
	case len(runes) <= n:
		return runes
	case n == 1:
		return []rune{'…'}
	default:
		return append(runes[:n-1:n-1], '…')
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorWhite)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

func playerName(hud HUD, p core.PlayerID) string {
	switch {
	case p == core.PlayerOne && hud.Player1 != "":
		return hud.Player1
	case p == core.PlayerTwo && hud.Player2 != "":
		return hud.Player2
	case p == core.PlayerOne:
		return "P1"
	default:
		return "P2"
	}
}
