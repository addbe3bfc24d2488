// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gogpu/fx/style"
)

// Turbulence describes an SVG fractal-noise tile used by CSS fallbacks.
type Turbulence struct {
	BaseFrequency float64
	Octaves       int
	Opacity       float64
}

// DataURI renders t as a CSS url() value holding an inline SVG.
func (t Turbulence) DataURI() string {
	svg := fmt.Sprintf(
		`<svg viewBox='0 0 200 200' xmlns='http://www.w3.org/2000/svg'>`+
			`<filter id='noise'><feTurbulence type='fractalNoise' baseFrequency='%s' numOctaves='%d' stitchTiles='stitch'/></filter>`+
			`<rect width='100%%' height='100%%' filter='url(#noise)' opacity='%s'/></svg>`,
		style.Num(t.BaseFrequency), t.Octaves, style.Num(t.Opacity),
	)
	return `url("data:image/svg+xml,` + escapeSVG(svg) + `")`
}

// escapeSVG percent-encodes the characters that break a data URI inside
// CSS, leaving the rest readable.
func escapeSVG(svg string) string {
	var b strings.Builder
	for _, r := range svg {
		switch r {
		case '<', '>', '#', '%', '"', '{', '}', '\n':
			b.WriteString(url.PathEscape(string(r)))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Keyframe animations referenced by fallbacks.
const (
	backgroundShift = "fx-background-shift"
	glitchFlash     = "fx-glitch-flash"
)

// Keyframes returns the CSS @keyframes rules referenced by fallbacks.
func Keyframes() string {
	return "@keyframes " + backgroundShift + " { 0% { background-position: 0 0; } 100% { background-position: 100% 100%; } }\n" +
		"@keyframes " + glitchFlash + " { 0% { opacity: 0; } 90% { opacity: 1; } 100% { opacity: 0; } }"
}

// withAnimation adds the background-shift animation unless reduced.
func withAnimation(s style.Style, seconds float64, alternate, reduced bool) style.Style {
	if reduced || seconds <= 0 {
		return s.Set("animation", "none")
	}
	v := backgroundShift + " " + style.Seconds(seconds) + " infinite linear"
	if alternate {
		v += " alternate"
	}
	return s.Set("animation", v)
}
