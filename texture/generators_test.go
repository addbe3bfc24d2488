package texture

import (
	"bytes"
	"math"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/frame"
	"github.com/gogpu/fx/style"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestDistressPixelsDeterministic(t *testing.T) {
	const w, h = 32, 16
	p := DistressPresetFor(fx.Heavy)
	a := make([]uint8, w*h*4)
	b := make([]uint8, w*h*4)
	DistressPixels(a, w, h, p, seeded(42))
	DistressPixels(b, w, h, p, seeded(42))
	if !bytes.Equal(a, b) {
		t.Fatal("same seed produced different buffers")
	}

	c := make([]uint8, w*h*4)
	DistressPixels(c, w, h, p, seeded(43))
	if bytes.Equal(a, c) {
		t.Error("different seeds produced identical buffers")
	}
}

func TestDistressPixelsContrast(t *testing.T) {
	const w, h = 16, 16
	p := DistressPreset{Contrast: 0.35}
	buf := make([]uint8, w*h*4)
	DistressPixels(buf, w, h, p, seeded(7))

	rng := seeded(7)
	for i := 0; i < w*h; i++ {
		noise := rng.Float64() * 255
		rng.Float64()
		want := noise * 1.35
		if noise < 128 {
			want = noise * 0.65
		}
		want = math.Min(255, math.Round(want))
		px := buf[i*4 : i*4+4]
		if px[0] != uint8(want) || px[1] != px[0] || px[2] != px[0] || px[3] != 255 {
			t.Fatalf("pixel %d = %v, want grey %v opaque", i, px, want)
		}
	}
}

func TestDistressPixelsScratches(t *testing.T) {
	const w, h = 8, 8
	buf := make([]uint8, w*h*4)
	DistressPixels(buf, w, h, DistressPreset{Contrast: 0.5, Scratch: 1}, seeded(3))
	for i := 0; i < len(buf); i++ {
		if buf[i] != 255 {
			t.Fatalf("byte %d = %d, want 255 when every pixel is a scratch", i, buf[i])
		}
	}
}

func TestDistressPixelsShortBuffer(t *testing.T) {
	buf := make([]uint8, 10)
	DistressPixels(buf, 100, 100, DistressPresetFor(fx.Light), seeded(1))
	if buf[3] != 255 || buf[7] != 255 || buf[8] != 0 {
		t.Errorf("buf = %v, want two opaque pixels and an untouched tail", buf)
	}
}

func TestIntensityOrdering(t *testing.T) {
	order := []fx.Intensity{fx.Light, fx.Medium, fx.Heavy}
	for i := 1; i < len(order); i++ {
		lo, hi := order[i-1], order[i]

		if a, b := ParticlePresetFor(lo), ParticlePresetFor(hi); a.Count >= b.Count || a.MaxSize >= b.MaxSize || a.Speed >= b.Speed {
			t.Errorf("particles %v=%+v not below %v=%+v", lo, a, hi, b)
		}
		if a, b := DistressPresetFor(lo), DistressPresetFor(hi); a.Contrast >= b.Contrast || a.Scratch >= b.Scratch {
			t.Errorf("distress %v=%+v not below %v=%+v", lo, a, hi, b)
		}
		if a, b := GlitchPresetFor(lo), GlitchPresetFor(hi); a.MaxOffset >= b.MaxOffset || a.Duration >= b.Duration ||
			a.Probability >= b.Probability || a.Shift >= b.Shift {
			t.Errorf("glitch %v=%+v not below %v=%+v", lo, a, hi, b)
		}
	}
}

func TestRollBurstBounds(t *testing.T) {
	rng := seeded(9)
	for _, in := range []fx.Intensity{fx.Light, fx.Medium, fx.Heavy} {
		p := GlitchPresetFor(in)
		for range 500 {
			b := RollBurst(p, rng)
			if x := b.Split[0].X; x > 0 || x < -p.MaxOffset {
				t.Fatalf("%v: left split x = %v", in, x)
			}
			if x := b.Split[1].X; x < 0 || x > p.MaxOffset {
				t.Fatalf("%v: right split x = %v", in, x)
			}
			for _, o := range b.Split {
				if math.Abs(o.Y) > p.MaxOffset/2 {
					t.Fatalf("%v: split y = %v", in, o.Y)
				}
			}
			if len(b.Blocks) != glitchBlocks {
				t.Fatalf("%v: %d blocks", in, len(b.Blocks))
			}
			for _, blk := range b.Blocks {
				if blk.Opacity < 0 || blk.Opacity >= 0.3 || blk.W >= 100 || blk.H >= 10 {
					t.Fatalf("%v: block %+v out of range", in, blk)
				}
			}
		}
	}
}

func TestGlitchBurstsEnd(t *testing.T) {
	g := NewGlitch(fx.Heavy)
	g.Every = time.Second
	p := GlitchPresetFor(fx.Heavy)
	maxRun := int(p.Duration / glitchStep)

	rng := seeded(5)
	run, bursts := 0, 0
	for range 2000 {
		if g.Advance(glitchStep, rng) {
			if run == 0 {
				bursts++
			}
			run++
			if run > maxRun {
				t.Fatalf("burst lasted %d steps, want at most %d", run, maxRun)
			}
		} else {
			run = 0
		}
	}
	if bursts == 0 {
		t.Error("no bursts in 100s at probability 0.7")
	}
}

func TestGlitchReducedMotionFallbackIsEmpty(t *testing.T) {
	el := NewGlitch(fx.Medium).Fallback(true)
	if len(el.Children) != 0 {
		t.Errorf("reduced fallback has %d children, want 0", len(el.Children))
	}
	full := NewGlitch(fx.Heavy).Fallback(false)
	split, ok := full.Find("css-glitch-rgb-split-1")
	if !ok {
		t.Fatal("missing rgb split layer")
	}
	if v, _ := split.Style.Get("transform"); v != "translate(-5px, 0px)" {
		t.Errorf("split transform = %q", v)
	}
}

func TestFillStaticNoiseBlocks(t *testing.T) {
	const w, h, size = 9, 7, 2
	buf := make([]uint8, w*h*4)
	FillStaticNoise(buf, w, h, size, style.MustColor("#ff8000"), seeded(11))

	at := func(x, y int) []uint8 { i := (y*w + x) * 4; return buf[i : i+4] }
	on, off := 0, 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := at(x, y)
			switch {
			case bytes.Equal(px, []uint8{255, 128, 0, 255}):
				on++
			case bytes.Equal(px, []uint8{0, 0, 0, 0}):
				off++
			default:
				t.Fatalf("pixel (%d,%d) = %v", x, y, px)
			}
			if bx, by := x-x%size, y-y%size; !bytes.Equal(px, at(bx, by)) {
				t.Fatalf("pixel (%d,%d) differs from its block origin", x, y)
			}
		}
	}
	if on == 0 || off == 0 {
		t.Errorf("on, off = %d, %d, want both", on, off)
	}
}

func TestGradientBlobsSetup(t *testing.T) {
	g := NewGradientBlobs()
	e := NewEffect(g, newFlagSource(canvasFlags), frame.NewManual(), WithSeed(2))
	e.Mount(Box{Width: 64, Height: 48})
	defer e.Unmount()

	blobs := g.Blobs()
	if len(blobs) != 5 {
		t.Fatalf("len(Blobs()) = %d, want 5", len(blobs))
	}
	for _, b := range blobs {
		if b.Radius < 100 || b.Radius >= 300 {
			t.Errorf("radius %v out of [100, 300)", b.Radius)
		}
		if math.Abs(b.VX) > 5 || math.Abs(b.VY) > 5 {
			t.Errorf("velocity (%v, %v) exceeds speed/2", b.VX, b.VY)
		}
	}
	if v, _ := g.CanvasStyle().Get("filter"); v != "blur(100px)" {
		t.Errorf("canvas filter = %q", v)
	}
}

func TestBlobStepBounces(t *testing.T) {
	b := Blob{X: 99, Y: 10, VX: 2, VY: -1}
	b.Step(100, 100)
	if b.X != 101 || b.VX != -2 {
		t.Errorf("after wall: X, VX = %v, %v", b.X, b.VX)
	}
	b.Step(100, 100)
	if b.X != 99 || b.VX != -2 || b.Y != 8 {
		t.Errorf("after return: %+v", b)
	}
}

func TestParticleFieldSetup(t *testing.T) {
	for _, in := range []fx.Intensity{fx.Light, fx.Medium, fx.Heavy} {
		pf := NewParticleField(in)
		e := NewEffect(pf, newFlagSource(canvasFlags), frame.NewManual(), WithSeed(4))
		e.Mount(Box{Width: 40, Height: 30})
		pre := ParticlePresetFor(in)
		ps := pf.Particles()
		if len(ps) != pre.Count {
			t.Errorf("%v: %d particles, want %d", in, len(ps), pre.Count)
		}
		for _, p := range ps {
			if p.Size < 0.5 || p.Size >= pre.MaxSize+0.5 {
				t.Errorf("%v: size %v out of range", in, p.Size)
			}
			if p.Color.A < 0.1 || p.Color.A >= 0.4 || p.Color.R > 99.0/255 {
				t.Errorf("%v: color %+v out of range", in, p.Color)
			}
		}
		e.Unmount()
	}
}

func TestParticleFallbackLayers(t *testing.T) {
	el := NewParticleField(fx.Heavy).Fallback(false)
	img, _ := el.Style.Get("background-image")
	if n := strings.Count(img, "radial-gradient"); n != 4 {
		t.Errorf("heavy fallback has %d layers, want 4", n)
	}
	if v, _ := el.Style.Get("background-position"); v != "0 0, 35px 35px, 15px 15px, 5px 5px" {
		t.Errorf("background-position = %q", v)
	}
	if v, _ := el.Style.Get("animation"); !strings.HasPrefix(v, backgroundShift+" 60s") {
		t.Errorf("animation = %q", v)
	}
}

func TestStaticNoiseFallback(t *testing.T) {
	n := NewStaticNoise()
	el := n.Fallback(false)
	if !strings.Contains(el.Class, "tv-static") {
		t.Errorf("class = %q", el.Class)
	}
	if v, _ := el.Style.Get("animation"); v != backgroundShift+" 2s infinite linear" {
		t.Errorf("animation = %q", v)
	}
	if v, _ := el.Style.Get("--static-color"); v != "255, 255, 255" {
		t.Errorf("--static-color = %q", v)
	}
	img, _ := el.Style.Get("background-image")
	if !strings.Contains(img, "baseFrequency='0.9'") || strings.Contains(img, "<") {
		t.Errorf("background-image = %q", img)
	}
}

func TestDistressedFallbackPerIntensity(t *testing.T) {
	el := NewDistressed(fx.Light).Fallback(false)
	img, _ := el.Style.Get("background-image")
	if !strings.Contains(img, "baseFrequency='0.65'") || !strings.Contains(img, "numOctaves='3'") {
		t.Errorf("light background-image = %q", img)
	}
	if v, _ := el.Style.Get("animation"); v != backgroundShift+" 1s infinite linear alternate" {
		t.Errorf("animation = %q", v)
	}
}

func TestStaticNoiseOnGGCanvas(t *testing.T) {
	e := NewEffect(NewStaticNoise(), newFlagSource(canvasFlags), frame.NewManual(), WithSeed(8))
	e.Mount(Box{Width: 10, Height: 10, DPR: 2})
	defer e.Unmount()

	s := e.Surface()
	if w, h := s.PixelSize(); w != 20 || h != 20 {
		t.Fatalf("PixelSize() = %dx%d, want 20x20", w, h)
	}
	buf := s.Pixels()
	for i := 3; i < len(buf); i += 4 {
		if buf[i] != 0 && buf[i] != 255 {
			t.Fatalf("alpha %d at byte %d, want 0 or 255", buf[i], i)
		}
	}
}

func TestGrainDrawIsOpaque(t *testing.T) {
	e := NewEffect(NewGrain(), newFlagSource(canvasFlags), frame.NewManual(), WithSeed(8))
	e.Mount(Box{Width: 6, Height: 4})
	defer e.Unmount()
	buf := e.Surface().Pixels()
	for i := 0; i < len(buf); i += 4 {
		if buf[i+3] != 255 || buf[i] != buf[i+1] || buf[i] != buf[i+2] {
			t.Fatalf("pixel %v is not opaque grey", buf[i:i+4])
		}
	}
}
