// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"math/rand/v2"
	"time"

	"github.com/gogpu/fx/style"
)

// Renderer is one procedural generator.
type Renderer interface {
	// Name identifies the generator in logs and metrics.
	Name() string

	// Interval is the time between animation frames. Zero means every
	// display frame. A negative interval draws once and never animates.
	Interval() time.Duration

	// Setup prepares per-size state. It runs after the surface is created
	// and after every resize.
	Setup(s *Surface, rng *rand.Rand) error

	// Draw renders one frame onto s.
	Draw(s *Surface, rng *rand.Rand) error

	// CanvasStyle is the style of the element that shows the canvas.
	CanvasStyle() style.Style

	// Fallback returns the pure CSS rendition. When reduced is set, the
	// fallback must not animate.
	Fallback(reduced bool) style.Element
}

// overlayStyle is the base style for full-bleed, non-interactive layers.
func overlayStyle(opacity float64, blend string) style.Style {
	s := style.Style{
		{Property: "position", Value: "absolute"},
		{Property: "inset", Value: "0"},
		{Property: "width", Value: "100%"},
		{Property: "height", Value: "100%"},
		{Property: "pointer-events", Value: "none"},
		{Property: "opacity", Value: style.Num(opacity)},
	}
	if blend != "" {
		s = s.Set("mix-blend-mode", blend)
	}
	return s
}

// animated returns a negative interval when on is false.
func animated(on bool, every time.Duration) time.Duration {
	if !on {
		return -1
	}
	return every
}

// fps converts frames per second into a frame interval.
func fps(rate float64) time.Duration {
	if rate <= 0 {
		return -1
	}
	return time.Duration(float64(time.Second) / rate)
}
