package style

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB color with straight alpha.
type Color struct {
	colorful.Color
	A float64
}

// Transparent is fully transparent black.
var Transparent = Color{}

// ParseColor parses "#rgb", "#rrggbb", "#rrggbbaa", "rgb(r, g, b)",
// "rgba(r, g, b, a)" and "transparent".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "transparent":
		return Transparent, nil
	case strings.HasPrefix(s, "#") && len(s) == 9:
		c, err := colorful.Hex(s[:7])
		if err != nil {
			return Color{}, fmt.Errorf("style: parse color %q: %w", s, err)
		}
		var a uint8
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return Color{}, fmt.Errorf("style: parse color %q: %w", s, err)
		}
		return Color{Color: c, A: float64(a) / 255}, nil
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("style: parse color %q: %w", s, err)
		}
		return Color{Color: c, A: 1}, nil
	case strings.HasPrefix(s, "rgba("):
		var r, g, b uint8
		var a float64
		if _, err := fmt.Sscanf(strings.ReplaceAll(s, " ", ""), "rgba(%d,%d,%d,%g)", &r, &g, &b, &a); err != nil {
			return Color{}, fmt.Errorf("style: parse color %q: %w", s, err)
		}
		return Color{Color: colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, A: clamp01(a)}, nil
	case strings.HasPrefix(s, "rgb("):
		var r, g, b uint8
		if _, err := fmt.Sscanf(strings.ReplaceAll(s, " ", ""), "rgb(%d,%d,%d)", &r, &g, &b); err != nil {
			return Color{}, fmt.Errorf("style: parse color %q: %w", s, err)
		}
		return Color{Color: colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, A: 1}, nil
	}
	return Color{}, fmt.Errorf("style: unsupported color %q", s)
}

// MustColor is like ParseColor but panics on error.
// Intended for package-level defaults.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAlpha returns c with alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// RGBA255 returns the 8-bit channels with straight alpha.
func (c Color) RGBA255() (r, g, b, a uint8) {
	r, g, b = c.Clamped().RGB255()
	return r, g, b, uint8(math.Round(clamp01(c.A) * 255))
}

// HexAlpha formats c as "#rrggbbaa" with the given alpha.
func (c Color) HexAlpha(a float64) string {
	return c.Clamped().Hex() + fmt.Sprintf("%02x", int(math.Round(clamp01(a)*255)))
}

// CSS formats c as rgba().
func (c Color) CSS() string {
	r, g, b, _ := c.RGBA255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, Num(clamp01(c.A)))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
