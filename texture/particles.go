package texture

import (
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/style"
)

// Particle is one dust mote of a ParticleField.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Color  gg.RGBA
}

// ParticlePreset holds the tuning of one particle intensity.
type ParticlePreset struct {
	Count int
	// MaxSize is added to a 0.5px minimum radius.
	MaxSize float64
	Speed   float64
	// Dots describe the CSS fallback pattern, one layer each.
	Dots []dotLayer
}

type dotLayer struct {
	Alpha  float64
	Size   int
	Offset int
}

var particlePresets = map[fx.Intensity]ParticlePreset{
	fx.Light: {Count: 50, MaxSize: 1, Speed: 0.2, Dots: []dotLayer{
		{0.1, 50, 0}, {0.1, 50, 25},
	}},
	fx.Medium: {Count: 100, MaxSize: 1.5, Speed: 0.3, Dots: []dotLayer{
		{0.15, 60, 0}, {0.1, 40, 30}, {0.05, 20, 10},
	}},
	fx.Heavy: {Count: 200, MaxSize: 2, Speed: 0.5, Dots: []dotLayer{
		{0.2, 70, 0}, {0.15, 50, 35}, {0.1, 30, 15}, {0.05, 15, 5},
	}},
}

// ParticlePresetFor returns the preset for i.
func ParticlePresetFor(i fx.Intensity) ParticlePreset {
	if p, ok := particlePresets[i]; ok {
		return p
	}
	return particlePresets[fx.Medium]
}

// ParticleField is a dark background with slowly drifting dim particles
// that leave faint trails.
type ParticleField struct {
	Intensity fx.Intensity
	Animated  bool

	particles []Particle
}

// NewParticleField returns an animated field for intensity i.
func NewParticleField(i fx.Intensity) *ParticleField {
	return &ParticleField{Intensity: i, Animated: true}
}

func (p *ParticleField) Name() string { return "particle-field" }

// Interval is every display frame, or a single draw when still.
func (p *ParticleField) Interval() time.Duration { return animated(p.Animated, 0) }

// Particles returns the current particle state.
func (p *ParticleField) Particles() []Particle { return p.particles }

// Setup scatters the preset's particles over the surface.
func (p *ParticleField) Setup(s *Surface, rng *rand.Rand) error {
	pre := ParticlePresetFor(p.Intensity)
	w, h := s.Width(), s.Height()
	p.particles = make([]Particle, 0, pre.Count)
	for range pre.Count {
		pt := Particle{
			X:    rng.Float64() * w,
			Y:    rng.Float64() * h,
			Size: rng.Float64()*pre.MaxSize + 0.5,
			VX:   (rng.Float64() - 0.5) * pre.Speed,
			VY:   (rng.Float64() - 0.5) * pre.Speed,
		}
		r := math.Floor(rng.Float64()*100) / 255
		g := math.Floor(rng.Float64()*100) / 255
		b := math.Floor(rng.Float64()*100) / 255
		pt.Color = gg.RGBA{R: r, G: g, B: b, A: rng.Float64()*0.3 + 0.1}
		p.particles = append(p.particles, pt)
	}
	s.Context().ClearWithColor(gg.RGBA{A: 1})
	return nil
}

func (p *ParticleField) Draw(s *Surface, _ *rand.Rand) error {
	dc := s.Context()
	w, h := s.Width(), s.Height()

	dc.SetRGBA(0, 0, 0, 0.01)
	dc.DrawRectangle(0, 0, w, h)
	if err := dc.Fill(); err != nil {
		return err
	}

	for i := range p.particles {
		pt := &p.particles[i]
		if p.Animated {
			pt.X += pt.VX
			pt.Y += pt.VY
			if pt.X < 0 || pt.X > w {
				pt.VX = -pt.VX
			}
			if pt.Y < 0 || pt.Y > h {
				pt.VY = -pt.VY
			}
		}
		dc.SetRGBA(pt.Color.R, pt.Color.G, pt.Color.B, pt.Color.A)
		dc.DrawCircle(pt.X, pt.Y, pt.Size)
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	return nil
}

func (p *ParticleField) CanvasStyle() style.Style {
	return overlayStyle(1, "").Set("background-color", "#000")
}

// Fallback draws a tiled dot pattern whose density follows the intensity.
func (p *ParticleField) Fallback(reduced bool) style.Element {
	dots := ParticlePresetFor(p.Intensity).Dots
	images := make([]string, len(dots))
	sizes := make([]string, len(dots))
	positions := make([]string, len(dots))
	for i, d := range dots {
		images[i] = "radial-gradient(rgba(50, 50, 50, " + style.Num(d.Alpha) + ") 1px, transparent 1px)"
		sizes[i] = style.Px(float64(d.Size)) + " " + style.Px(float64(d.Size))
		off := style.Px(float64(d.Offset))
		if d.Offset == 0 {
			off = "0"
		}
		positions[i] = off + " " + off
	}
	st := overlayStyle(1, "").
		Set("background-color", "#000").
		Set("background-image", strings.Join(images, ", ")).
		Set("background-size", strings.Join(sizes, ", ")).
		Set("background-position", strings.Join(positions, ", "))
	var secs float64
	if p.Animated {
		secs = 60
	}
	return style.Div("bg-particles-"+p.Intensity.String(), withAnimation(st, secs, false, reduced))
}
