package core

// Color represents a foreground color for a screen cell.
// Hosts map it to terminal styles.
type Color uint8

// Predefined colors for arena elements.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorYellow
	ColorCyan
	ColorMagenta
	ColorWhite
	ColorGray
)
