package texture

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/style"
)

// DistressPreset holds the tuning of one distressed intensity.
type DistressPreset struct {
	// Contrast pushes dark values darker and light values lighter.
	Contrast float64
	// Scratch is the per-pixel probability of a white distress mark.
	Scratch float64
	// Fallback is the SVG noise tile used by the CSS fallback.
	Fallback Turbulence
}

var distressPresets = map[fx.Intensity]DistressPreset{
	fx.Light:  {Contrast: 0.2, Scratch: 0.003, Fallback: Turbulence{BaseFrequency: 0.65, Octaves: 3, Opacity: 0.5}},
	fx.Medium: {Contrast: 0.35, Scratch: 0.005, Fallback: Turbulence{BaseFrequency: 0.85, Octaves: 4, Opacity: 0.7}},
	fx.Heavy:  {Contrast: 0.5, Scratch: 0.008, Fallback: Turbulence{BaseFrequency: 1, Octaves: 5, Opacity: 0.9}},
}

// DistressPresetFor returns the preset for i.
func DistressPresetFor(i fx.Intensity) DistressPreset {
	if p, ok := distressPresets[i]; ok {
		return p
	}
	return distressPresets[fx.Medium]
}

// DistressPixels writes a distressed grey texture into buf, a w×h RGBA
// buffer. Each pixel draws a noise value v in [0,255); values below 128
// become v*(1-c) and the rest v*(1+c), clamped to 255. A second draw
// marks the pixel as a scratch (pure white) with probability p.Scratch.
// Output is opaque and depends only on the state of rng.
func DistressPixels(buf []uint8, w, h int, p DistressPreset, rng *rand.Rand) {
	n := w * h * 4
	if n > len(buf) {
		n = len(buf)
	}
	threshold := 1 - p.Scratch
	for i := 0; i+3 < n; i += 4 {
		noise := rng.Float64() * 255
		v := noise * (1 + p.Contrast)
		if noise < 128 {
			v = noise * (1 - p.Contrast)
		}
		if rng.Float64() > threshold {
			v = 255
		}
		g := uint8(math.Min(255, math.Round(v)))
		buf[i], buf[i+1], buf[i+2], buf[i+3] = g, g, g, 255
	}
}

// Distressed is an aged, scratched overlay.
type Distressed struct {
	Intensity fx.Intensity
	Opacity   float64
	Animated  bool
	Blend     string
}

// NewDistressed returns a Distressed overlay for intensity i.
func NewDistressed(i fx.Intensity) *Distressed {
	return &Distressed{Intensity: i, Opacity: 0.15, Animated: true, Blend: "overlay"}
}

const distressFPS = 15

func (d *Distressed) Name() string                     { return "distressed" }
func (d *Distressed) Interval() time.Duration          { return animated(d.Animated, fps(distressFPS)) }
func (d *Distressed) Setup(*Surface, *rand.Rand) error { return nil }
func (d *Distressed) CanvasStyle() style.Style         { return overlayStyle(d.Opacity, d.Blend) }

func (d *Distressed) Draw(s *Surface, rng *rand.Rand) error {
	w, h := s.PixelSize()
	DistressPixels(s.Pixels(), w, h, DistressPresetFor(d.Intensity), rng)
	s.Present()
	return nil
}

func (d *Distressed) Fallback(reduced bool) style.Element {
	st := overlayStyle(d.Opacity, d.Blend).
		Set("background-image", DistressPresetFor(d.Intensity).Fallback.DataURI()).
		Set("background-size", "200px 200px")
	var secs float64
	if d.Animated {
		secs = 1
	}
	return style.Div("bg-noise distressed-"+d.Intensity.String(), withAnimation(st, secs, true, reduced))
}
