package texture

import (
	"math/rand/v2"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/style"
)

// GlitchPreset holds the tuning of one VHS glitch intensity.
type GlitchPreset struct {
	// Duration is how long a burst lasts.
	Duration time.Duration
	// Probability is the chance of a burst at each interval.
	Probability float64
	// MaxOffset bounds the RGB split displacement in CSS pixels.
	MaxOffset float64
	// Shift is the fixed split displacement of the CSS fallback.
	Shift float64
}

var glitchPresets = map[fx.Intensity]GlitchPreset{
	fx.Light:  {Duration: 300 * time.Millisecond, Probability: 0.3, MaxOffset: 5, Shift: 2},
	fx.Medium: {Duration: 500 * time.Millisecond, Probability: 0.5, MaxOffset: 10, Shift: 3},
	fx.Heavy:  {Duration: 800 * time.Millisecond, Probability: 0.7, MaxOffset: 15, Shift: 5},
}

// GlitchPresetFor returns the preset for i.
func GlitchPresetFor(i fx.Intensity) GlitchPreset {
	if p, ok := glitchPresets[i]; ok {
		return p
	}
	return glitchPresets[fx.Medium]
}

// Offset is a displacement in CSS pixels.
type Offset struct{ X, Y float64 }

// NoiseBlock is a white bar flashed during a burst. X and Y are fractions
// of the surface size, W and H are CSS pixels.
type NoiseBlock struct {
	X, Y    float64
	W, H    float64
	Opacity float64
}

// Burst is the randomized look of one glitch.
type Burst struct {
	// Split holds the left and right RGB split displacements.
	Split  [2]Offset
	Blocks []NoiseBlock
}

const glitchBlocks = 5

// RollBurst draws a burst. Split offsets stay within p.MaxOffset
// horizontally and p.MaxOffset/2 vertically.
func RollBurst(p GlitchPreset, rng *rand.Rand) Burst {
	var b Burst
	b.Split[0] = Offset{X: -rng.Float64() * p.MaxOffset, Y: rng.Float64()*p.MaxOffset - p.MaxOffset/2}
	b.Split[1] = Offset{X: rng.Float64() * p.MaxOffset, Y: rng.Float64()*p.MaxOffset - p.MaxOffset/2}
	b.Blocks = make([]NoiseBlock, glitchBlocks)
	for i := range b.Blocks {
		b.Blocks[i] = NoiseBlock{
			X:       rng.Float64(),
			Y:       rng.Float64(),
			W:       rng.Float64() * 100,
			H:       rng.Float64() * 10,
			Opacity: rng.Float64() * 0.3,
		}
	}
	return b
}

// glitchStep is the clock resolution of a Glitch.
const glitchStep = 50 * time.Millisecond

// Glitch flashes VHS-style bursts: an RGB split, scan lines and noise
// blocks. Every interval a burst starts with the preset probability.
type Glitch struct {
	Intensity fx.Intensity
	// Every is the time between burst rolls. Zero means five seconds.
	Every time.Duration

	elapsed time.Duration
	next    time.Duration
	until   time.Duration
	burst   *Burst
}

// NewGlitch returns a Glitch for intensity i.
func NewGlitch(i fx.Intensity) *Glitch {
	return &Glitch{Intensity: i, Every: 5 * time.Second}
}

func (g *Glitch) every() time.Duration {
	if g.Every <= 0 {
		return 5 * time.Second
	}
	return g.Every
}

func (g *Glitch) Name() string            { return "glitch" }
func (g *Glitch) Interval() time.Duration { return glitchStep }

// Advance moves the glitch clock by d, ending an expired burst and rolling
// for new ones at each interval boundary. It reports whether a burst is
// showing afterwards.
func (g *Glitch) Advance(d time.Duration, rng *rand.Rand) bool {
	if g.next == 0 {
		g.next = g.every()
	}
	g.elapsed += d
	if g.burst != nil && g.elapsed >= g.until {
		g.burst = nil
	}
	p := GlitchPresetFor(g.Intensity)
	for g.elapsed >= g.next {
		g.next += g.every()
		if rng.Float64() < p.Probability {
			b := RollBurst(p, rng)
			g.burst = &b
			g.until = g.elapsed + p.Duration
		}
	}
	return g.burst != nil
}

// Current returns the showing burst.
func (g *Glitch) Current() (Burst, bool) {
	if g.burst == nil {
		return Burst{}, false
	}
	return *g.burst, true
}

func (g *Glitch) Setup(s *Surface, _ *rand.Rand) error {
	g.elapsed, g.next, g.until, g.burst = 0, g.every(), 0, nil
	s.Context().Clear()
	return nil
}

func (g *Glitch) Draw(s *Surface, rng *rand.Rand) error {
	dc := s.Context()
	dc.Clear()
	if !g.Advance(glitchStep, rng) {
		return nil
	}
	w, h := s.Width(), s.Height()

	tints := [2]gg.RGBA{{R: 1, B: 1, A: 0.35}, {G: 1, B: 1, A: 0.35}}
	for i, off := range g.burst.Split {
		dc.PushLayer(gg.BlendScreen, 0.7)
		dc.SetRGBA(tints[i].R, tints[i].G, tints[i].B, tints[i].A)
		dc.DrawRectangle(off.X, off.Y, w, h)
		err := dc.Fill()
		dc.PopLayer()
		if err != nil {
			return err
		}
	}

	dc.SetRGBA(0, 0, 0, 0.5)
	for y := 2.0; y < h; y += 4 {
		dc.DrawRectangle(0, y, w, 2)
	}
	if err := dc.Fill(); err != nil {
		return err
	}

	for _, b := range g.burst.Blocks {
		dc.SetRGBA(1, 1, 1, b.Opacity)
		dc.DrawRectangle(b.X*w, b.Y*h, b.W, b.H)
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Glitch) CanvasStyle() style.Style {
	return overlayStyle(1, "screen").Set("z-index", "20")
}

// Fallback renders the CSS glitch layers flashing on a fixed cycle. Under
// reduced motion it renders an empty layer.
func (g *Glitch) Fallback(reduced bool) style.Element {
	cls := "css-glitch-" + g.Intensity.String()
	base := overlayStyle(1, "").Set("z-index", "20")
	if reduced {
		return style.Div(cls, base.Set("animation", "none"))
	}
	p := GlitchPresetFor(g.Intensity)
	split := func(class string, dx float64, color string) style.Element {
		return style.Div(class, overlayStyle(0.5, "screen").
			Set("transform", style.Transform(style.Pose{TranslateX: dx})).
			Set("filter", "blur(1px)").
			Set("color", color))
	}
	base = base.Set("animation", glitchFlash+" "+style.Seconds(g.every().Seconds())+" steps(1) infinite")
	return style.Div(cls, base,
		split("css-glitch-rgb-split-1", -p.Shift, "#ff00ff"),
		split("css-glitch-rgb-split-2", p.Shift, "#00ffff"),
		style.Div("css-scan-lines", overlayStyle(1, "overlay").
			Set("background-image", "linear-gradient(transparent 50%, rgba(0, 0, 0, 0.5) 50%)").
			Set("background-size", "100% 4px")),
	)
}
