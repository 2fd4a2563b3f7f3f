package core

import "strings"

// Color represents a foreground color for a screen cell.
// The platform layer maps it to ANSI 256-color codes.
type Color uint8

// Predefined colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

var colorNames = map[string]Color{
	"default":        ColorDefault,
	"red":            ColorRed,
	"green":          ColorGreen,
	"yellow":         ColorYellow,
	"blue":           ColorBlue,
	"magenta":        ColorMagenta,
	"cyan":           ColorCyan,
	"white":          ColorWhite,
	"bright-red":     ColorBrightRed,
	"bright-green":   ColorBrightGreen,
	"bright-yellow":  ColorBrightYellow,
	"bright-blue":    ColorBrightBlue,
	"bright-magenta": ColorBrightMagenta,
	"bright-cyan":    ColorBrightCyan,
	"bright-white":   ColorBrightWhite,
	"orange":         ColorOrange,
	"gray":           ColorGray,
}

// ParseColor looks up a color by name (case-insensitive, "_" and "-" equivalent).
// The empty string maps to ColorDefault.
func ParseColor(name string) (Color, bool) {
	if name == "" {
		return ColorDefault, true
	}
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	c, ok := colorNames[key]
	return c, ok
}
