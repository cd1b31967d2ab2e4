package glyphgrid

import (
	"fmt"
	"image/color"
	"os"
)

// Color represents an RGB color with components in [0, 1].
// Cell colors carry no alpha; opacity is expressed through density.
type Color struct {
	R, G, B float64
}

// ColorWhite is the default foreground when a canvas specifies no color.
var ColorWhite = Color{1, 1, 1}

// sentinelColor marks cells whose color string failed to parse. It is
// deliberately NOT the canvas default so encoding bugs stand out visually.
var sentinelColor = Color{1, 0, 1}

// CellPos is a grid coordinate produced by pointer/touch mapping.
type CellPos struct {
	X, Y int
}

// globalDebug enables stderr diagnostics (no sync; glyphgrid is single-threaded).
var globalDebug bool

// SetDebug toggles diagnostic logging to stderr for the whole package.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// debugf prints a diagnostic line to stderr when debug mode is on.
func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[glyphgrid] "+format+"\n", args...)
}

// ParseHexColor parses a "#rgb" or "#rrggbb" color string into components
// in [0, 1]. Returns ok=false for anything else; callers substitute the
// sentinel color rather than failing.
func ParseHexColor(s string) (Color, bool) {
	if len(s) != 4 && len(s) != 7 {
		return Color{}, false
	}
	if s[0] != '#' {
		return Color{}, false
	}

	hex := s[1:]
	var r, g, b int
	var ok bool
	switch len(hex) {
	case 3:
		// #abc expands to #aabbcc.
		if r, ok = hexNibble(hex[0]); !ok {
			return Color{}, false
		}
		r = r*16 + r
		if g, ok = hexNibble(hex[1]); !ok {
			return Color{}, false
		}
		g = g*16 + g
		if b, ok = hexNibble(hex[2]); !ok {
			return Color{}, false
		}
		b = b*16 + b
	case 6:
		if r, ok = hexByte(hex[0], hex[1]); !ok {
			return Color{}, false
		}
		if g, ok = hexByte(hex[2], hex[3]); !ok {
			return Color{}, false
		}
		if b, ok = hexByte(hex[4], hex[5]); !ok {
			return Color{}, false
		}
	}

	const inv = 1.0 / 255.0
	return Color{R: float64(r) * inv, G: float64(g) * inv, B: float64(b) * inv}, true
}

// parseColorOr parses s, returning fallback when s is empty and the sentinel
// color when s is present but malformed.
func parseColorOr(s string, fallback Color) Color {
	if s == "" {
		return fallback
	}
	c, ok := ParseHexColor(s)
	if !ok {
		debugf("unparseable color %q, using sentinel", s)
		return sentinelColor
	}
	return c
}

func hexNibble(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}

func hexByte(hi, lo byte) (int, bool) {
	h, ok := hexNibble(hi)
	if !ok {
		return 0, false
	}
	l, ok := hexNibble(lo)
	if !ok {
		return 0, false
	}
	return h*16 + l, true
}

// colorRGBA converts a Color to an opaque image/color value for Fill.
func colorRGBA(c Color) color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: 0xff,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// nextPowerOfTwo returns the smallest power of two >= n (minimum 1).
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
