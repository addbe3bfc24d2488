package texture

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/fx/style"
)

// Blob is one drifting radial gradient.
type Blob struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Color  style.Color
}

// Step moves b by its velocity and reverses any axis that has left the
// w×h area.
func (b *Blob) Step(w, h float64) {
	b.X += b.VX
	b.Y += b.VY
	if b.X < 0 || b.X > w {
		b.VX = -b.VX
	}
	if b.Y < 0 || b.Y > h {
		b.VY = -b.VY
	}
}

// GradientBlobs draws large blurred color blobs drifting across the surface.
type GradientBlobs struct {
	Colors []style.Color
	// Speed scales the blob velocity in CSS pixels per frame.
	Speed float64
	// Blur is the CSS blur radius applied to the canvas.
	Blur    float64
	Opacity float64

	blobs []Blob
}

// NewGradientBlobs returns GradientBlobs with the house palette.
func NewGradientBlobs() *GradientBlobs {
	var colors []style.Color
	for _, hex := range []string{"#FF3366", "#FF00FF", "#9900FF", "#00FFFF", "#00FF99"} {
		colors = append(colors, style.MustColor(hex))
	}
	return &GradientBlobs{Colors: colors, Speed: 10, Blur: 100, Opacity: 0.5}
}

func (g *GradientBlobs) Name() string            { return "gradient-blobs" }
func (g *GradientBlobs) Interval() time.Duration { return 0 }

// Blobs returns the current blob state.
func (g *GradientBlobs) Blobs() []Blob { return g.blobs }

// Setup places one blob per color at random.
func (g *GradientBlobs) Setup(s *Surface, rng *rand.Rand) error {
	w, h := s.Width(), s.Height()
	g.blobs = g.blobs[:0]
	for _, c := range g.Colors {
		g.blobs = append(g.blobs, Blob{
			X:      rng.Float64() * w,
			Y:      rng.Float64() * h,
			Radius: 100 + rng.Float64()*200,
			Color:  c,
			VX:     (rng.Float64() - 0.5) * g.Speed,
			VY:     (rng.Float64() - 0.5) * g.Speed,
		})
	}
	return nil
}

func (g *GradientBlobs) Draw(s *Surface, _ *rand.Rand) error {
	dc := s.Context()
	dc.Clear()
	w, h := s.Width(), s.Height()
	for i := range g.blobs {
		b := &g.blobs[i]
		b.Step(w, h)
		grad := gg.NewRadialGradientBrush(b.X, b.Y, 0, b.Radius).
			AddColorStop(0, toRGBA(b.Color, g.Opacity)).
			AddColorStop(1, gg.Transparent)
		dc.SetFillBrush(grad)
		dc.DrawCircle(b.X, b.Y, b.Radius)
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	return nil
}

func (g *GradientBlobs) CanvasStyle() style.Style {
	return overlayStyle(1, "").Set("filter", "blur("+style.Px(g.Blur)+")")
}

// Fallback lays the blobs out as static CSS radial gradients spread
// evenly along the diagonal.
func (g *GradientBlobs) Fallback(reduced bool) style.Element {
	layers := make([]string, 0, len(g.Colors))
	for i, c := range g.Colors {
		pos := 50.0
		if n := len(g.Colors); n > 1 {
			pos = 10 + 80*float64(i)/float64(n-1)
		}
		at := style.Num(pos) + "%"
		layers = append(layers, "radial-gradient(circle at "+at+" "+at+", "+c.CSS()+", transparent 60%)")
	}
	st := overlayStyle(g.Opacity, "").
		Set("background-image", strings.Join(layers, ", ")).
		Set("background-size", "200% 200%").
		Set("filter", "blur("+style.Px(g.Blur/4)+")")
	return style.Div("gradient-blobs", withAnimation(st, 30, true, reduced))
}

func toRGBA(c style.Color, alpha float64) gg.RGBA {
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}
