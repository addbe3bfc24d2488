package texture

import (
	"math/rand/v2"
	"time"

	"github.com/gogpu/fx/style"
)

// StaticNoise is TV-static: square blocks that are either fully on in
// Color or fully transparent, redrawn Speed times per second.
type StaticNoise struct {
	// PixelSize is the block edge in device pixels.
	PixelSize int
	Color     style.Color
	// Speed is frames per second. Zero or less draws one frame.
	Speed   float64
	Opacity float64
	Blend   string
}

// NewStaticNoise returns StaticNoise with its usual settings.
func NewStaticNoise() *StaticNoise {
	return &StaticNoise{
		PixelSize: 2,
		Color:     style.MustColor("#ffffff"),
		Speed:     10,
		Opacity:   0.05,
		Blend:     "screen",
	}
}

func (n *StaticNoise) Name() string                     { return "static-noise" }
func (n *StaticNoise) Interval() time.Duration          { return fps(n.Speed) }
func (n *StaticNoise) Setup(*Surface, *rand.Rand) error { return nil }
func (n *StaticNoise) CanvasStyle() style.Style         { return overlayStyle(n.Opacity, n.Blend) }

func (n *StaticNoise) Draw(s *Surface, rng *rand.Rand) error {
	w, h := s.PixelSize()
	FillStaticNoise(s.Pixels(), w, h, n.PixelSize, n.Color, rng)
	s.Present()
	return nil
}

func (n *StaticNoise) Fallback(reduced bool) style.Element {
	r, g, b, _ := n.Color.RGBA255()
	st := overlayStyle(n.Opacity, n.Blend).
		Set("--static-color", style.Num(float64(r))+", "+style.Num(float64(g))+", "+style.Num(float64(b))).
		Set("background-image", Turbulence{BaseFrequency: 0.9, Octaves: 3, Opacity: 0.5}.DataURI()).
		Set("background-size", "150px 150px")
	var secs float64
	if n.Speed > 0 {
		secs = 20 / n.Speed
	}
	return style.Div("tv-static", withAnimation(st, secs, false, reduced))
}

// FillStaticNoise writes one frame of static into buf, a w×h RGBA buffer.
// Each block of size×size pixels is on or off with equal probability. An
// on block holds c at full alpha, an off block is transparent, so the
// buffer is valid both premultiplied and straight.
func FillStaticNoise(buf []uint8, w, h, size int, c style.Color, rng *rand.Rand) {
	if size < 1 {
		size = 1
	}
	cr, cg, cb, _ := c.RGBA255()
	for y := 0; y < h; y += size {
		for x := 0; x < w; x += size {
			var px [4]uint8
			if rng.Float64() > 0.5 {
				px = [4]uint8{cr, cg, cb, 255}
			}
			for py := y; py < y+size && py < h; py++ {
				for qx := x; qx < x+size && qx < w; qx++ {
					i := (py*w + qx) * 4
					copy(buf[i:i+4], px[:])
				}
			}
		}
	}
}

// Grain is a fine monochrome film grain: every pixel an opaque random grey.
type Grain struct {
	Opacity  float64
	Blend    string
	Animated bool
	// Speed is frames per second when Animated.
	Speed float64
}

// NewGrain returns Grain with its usual settings.
func NewGrain() *Grain {
	return &Grain{Opacity: 0.05, Blend: "multiply", Animated: true, Speed: 5}
}

func (g *Grain) Name() string                     { return "grain" }
func (g *Grain) Interval() time.Duration          { return animated(g.Animated, fps(g.Speed)) }
func (g *Grain) Setup(*Surface, *rand.Rand) error { return nil }
func (g *Grain) CanvasStyle() style.Style         { return overlayStyle(g.Opacity, g.Blend) }

func (g *Grain) Draw(s *Surface, rng *rand.Rand) error {
	buf := s.Pixels()
	for i := 0; i+3 < len(buf); i += 4 {
		v := uint8(rng.Float64() * 255)
		buf[i], buf[i+1], buf[i+2], buf[i+3] = v, v, v, 255
	}
	s.Present()
	return nil
}

func (g *Grain) Fallback(reduced bool) style.Element {
	st := overlayStyle(g.Opacity, g.Blend).
		Set("background-image", Turbulence{BaseFrequency: 0.8, Octaves: 4, Opacity: 1}.DataURI()).
		Set("background-size", "200px 200px")
	var secs float64
	if g.Animated && g.Speed > 0 {
		secs = 20 / g.Speed
	}
	return style.Div("grain", withAnimation(st, secs, false, reduced))
}
