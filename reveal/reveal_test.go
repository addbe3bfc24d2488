package reveal

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/fx/capability"
	"github.com/gogpu/fx/policy"
	"github.com/gogpu/fx/style"
)

const ms = time.Millisecond

type flagSource struct {
	flags policy.Flags
	subs  []func(policy.Flags)
}

func newFlagSource(lowPower, reduced bool) *flagSource {
	return &flagSource{flags: policy.Derive(capability.Full, lowPower, reduced)}
}

func (s *flagSource) Flags() policy.Flags { return s.flags }

func (s *flagSource) Subscribe(fn func(policy.Flags)) func() {
	s.subs = append(s.subs, fn)
	return func() {}
}

func (s *flagSource) setReduced(on bool) {
	s.flags = policy.Derive(capability.Full, s.flags.IsLowPowerMode, on)
	for _, fn := range s.subs {
		fn(s.flags)
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestBezier(t *testing.T) {
	if RevealEase.At(0) != 0 || RevealEase.At(1) != 1 {
		t.Errorf("end points = %v, %v", RevealEase.At(0), RevealEase.At(1))
	}
	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := RevealEase.At(float64(i) / 100)
		if v < prev-1e-9 {
			t.Fatalf("At(%v) = %v < %v", float64(i)/100, v, prev)
		}
		prev = v
	}
	if v := RevealEase.At(0.5); v <= 0.5 {
		t.Errorf("RevealEase.At(0.5) = %v, want ease-out above 0.5", v)
	}
	linear := Bezier{0, 0, 1, 1}
	for _, x := range []float64{0.1, 0.25, 0.5, 0.9} {
		if v := linear.At(x); !near(v, x) {
			t.Errorf("linear.At(%v) = %v", x, v)
		}
	}
	if got := RevealEase.String(); got != "cubic-bezier(0.22, 1, 0.36, 1)" {
		t.Errorf("String() = %q", got)
	}
}

func TestVariantHidden(t *testing.T) {
	tests := []struct {
		v    Variant
		want Frame
	}{
		{FadeIn, Frame{Scale: 1}},
		{FadeInUp, Frame{Y: 50, Scale: 1}},
		{SlideDown, Frame{Y: -50, Scale: 1}},
		{FadeInLeft, Frame{X: 50, Scale: 1}},
		{SlideRight, Frame{X: -50, Scale: 1}},
		{ZoomIn, Frame{Scale: 0.9}},
		{RotateIn, Frame{Rotate: -5, Scale: 1}},
		{ClipPath, Frame{Scale: 1, Clip: true, ClipRight: 100}},
	}
	for _, tt := range tests {
		if got := tt.v.Hidden(); got != tt.want {
			t.Errorf("%v.Hidden() = %+v, want %+v", tt.v, got, tt.want)
		}
		if got := tt.v.Visible(); got.Opacity != 1 || !got.Still() || got.ClipRight != 0 {
			t.Errorf("%v.Visible() = %+v", tt.v, got)
		}
	}
}

func TestParseVariant(t *testing.T) {
	for v := FadeIn; v <= ClipPath; v++ {
		got, err := ParseVariant(v.String())
		if err != nil || got != v {
			t.Errorf("ParseVariant(%q) = %v, %v", v.String(), got, err)
		}
	}
	if _, err := ParseVariant("spin"); err == nil {
		t.Error("ParseVariant(spin) succeeded")
	}
}

func TestRevealTimeline(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Variant = FadeInUp
	cfg.Delay = 100 * ms
	r := New(cfg, nil)

	if r.Observe(0.1, time.Second) {
		t.Fatal("revealed below threshold")
	}
	if !r.Observe(0.25, time.Second) || !r.Visible() {
		t.Fatal("not revealed above threshold")
	}

	if f := r.Sample(time.Second + 100*ms); f.Opacity != 0 || f.Y != 50 {
		t.Errorf("during delay: %+v", f)
	}
	mid := r.Sample(time.Second + 350*ms)
	if mid.Opacity <= 0 || mid.Opacity >= 1 || mid.Y <= 0 || mid.Y >= 50 {
		t.Errorf("mid transition: %+v", mid)
	}
	if r.Done(time.Second + 350*ms) {
		t.Error("Done mid transition")
	}
	end := r.Sample(time.Second + 600*ms)
	if end.Opacity != 1 || end.Y != 0 || !r.Done(time.Second+600*ms) {
		t.Errorf("after transition: %+v", end)
	}

	if r.Observe(0, 2*time.Second) || !r.Visible() {
		t.Error("once reveal hid again")
	}
}

func TestRevealRepeatable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Once = false
	r := New(cfg, nil)
	r.Observe(1, 0)
	if !r.Observe(0, 2*time.Second) {
		t.Fatal("repeatable reveal did not hide")
	}
	if f := r.Sample(2 * time.Second); f.Opacity != 1 {
		t.Errorf("hide starts from %+v, want visible", f)
	}
	if f := r.Sample(2*time.Second + 500*ms); f.Opacity != 0 {
		t.Errorf("after hide: %+v", f)
	}

	// Interrupting the hide starts the reveal from the current opacity.
	r.Observe(1, 2*time.Second+250*ms)
	if f := r.Sample(2*time.Second + 250*ms); f.Opacity <= 0 || f.Opacity >= 1 {
		t.Errorf("interrupted at %+v", f)
	}
}

func TestRevealReducedMotion(t *testing.T) {
	src := policy.New(capability.Full, policy.StaticMotion(true))
	for _, v := range []Variant{FadeInLeft, ZoomIn, RotateIn, SlideUp, ClipPath} {
		cfg := DefaultConfig()
		cfg.Variant = v
		r := New(cfg, src)
		r.Observe(1, 0)
		for now := time.Duration(0); now <= 400*ms; now += 10 * ms {
			f := r.Sample(now)
			if !f.Still() || f.Clip {
				t.Fatalf("%v at %v: %+v moves", v, now, f)
			}
		}
		if f := r.Sample(150 * ms); f.Opacity <= 0 || f.Opacity >= 1 {
			t.Errorf("%v at 150ms: opacity %v", v, f.Opacity)
		}
		if f := r.Sample(ReducedDuration); f.Opacity != 1 {
			t.Errorf("%v at %v: opacity %v, want 1", v, ReducedDuration, f.Opacity)
		}
	}
}

func TestRevealReducedMidTransition(t *testing.T) {
	src := newFlagSource(false, false)
	cfg := DefaultConfig()
	cfg.Variant = FadeInUp
	r := New(cfg, src)
	r.Observe(1, 0)
	if f := r.Sample(100 * ms); f.Y == 0 {
		t.Fatalf("full motion sample has no offset: %+v", f)
	}
	src.setReduced(true)
	for now := 100 * ms; now <= time.Second; now += 50 * ms {
		if f := r.Sample(now); !f.Still() {
			t.Fatalf("at %v: %+v moves under reduced motion", now, f)
		}
	}
}

func TestRevealRender(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Variant = ClipPath
	r := New(cfg, nil)
	el := r.Render(style.Div("child", nil), 0)
	if el.Class != "reveal reveal-clipPath" {
		t.Errorf("class = %q", el.Class)
	}
	if v, _ := el.Style.Get("clip-path"); v != "inset(0% 100% 0% 0%)" {
		t.Errorf("clip-path = %q", v)
	}
	if v, _ := el.Style.Get("opacity"); v != "0" {
		t.Errorf("opacity = %q", v)
	}
}

func TestStagger(t *testing.T) {
	s := NewStagger(DefaultStaggerConfig(), 3, nil)
	for i, want := range []time.Duration{0, 100 * ms, 200 * ms} {
		if got := s.Delay(i); got != want {
			t.Errorf("Delay(%d) = %v, want %v", i, got, want)
		}
	}
	if s.Observe(0.05, 0) {
		t.Fatal("revealed below threshold")
	}
	s.Observe(0.1, 0)

	if f := s.SampleChild(2, 150*ms); f.Opacity != 0 || f.Y != 30 {
		t.Errorf("child 2 at 150ms: %+v", f)
	}
	if f := s.SampleChild(0, 150*ms); f.Opacity <= 0 {
		t.Errorf("child 0 at 150ms: %+v", f)
	}
	for i := range 3 {
		if f := s.SampleChild(i, 700*ms); f.Opacity != 1 || f.Y != 0 {
			t.Errorf("child %d at 700ms: %+v", i, f)
		}
	}
	if el := s.Render(make([]style.Element, 3), 0); len(el.FindAll("stagger-item")) != 3 {
		t.Error("Render did not wrap every child")
	}
}

func TestStaggerDirections(t *testing.T) {
	for _, tt := range []struct {
		d    Direction
		x, y float64
	}{{Up, 0, 30}, {Down, 0, -30}, {Left, 30, 0}, {Right, -30, 0}, {None, 0, 0}} {
		cfg := DefaultStaggerConfig()
		cfg.Direction = tt.d
		f := NewStagger(cfg, 1, nil).SampleChild(0, 0)
		if f.X != tt.x || f.Y != tt.y {
			t.Errorf("%v: hidden offset (%v, %v), want (%v, %v)", tt.d, f.X, f.Y, tt.x, tt.y)
		}
	}
}

func TestStaggerReducedMotion(t *testing.T) {
	s := NewStagger(DefaultStaggerConfig(), 4, newFlagSource(false, true))
	for i := range 4 {
		if s.Delay(i) != 0 {
			t.Errorf("Delay(%d) = %v under reduced motion", i, s.Delay(i))
		}
	}
	s.Observe(1, 0)
	for now := time.Duration(0); now <= time.Second; now += 25 * ms {
		for i := range 4 {
			if f := s.SampleChild(i, now); !f.Still() {
				t.Fatalf("child %d at %v: %+v", i, now, f)
			}
		}
	}
	if f := s.SampleChild(3, ReducedDuration); f.Opacity != 1 {
		t.Errorf("last child not visible after %v", ReducedDuration)
	}
}

func TestStaggerNegativeCount(t *testing.T) {
	s := NewStagger(DefaultStaggerConfig(), -2, nil)
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
	s.Observe(1, 0)
	if el := s.Render(nil, 0); len(el.Children) != 0 {
		t.Errorf("Render produced %d children, want 0", len(el.Children))
	}
}

func TestParallaxSectionOffset(t *testing.T) {
	tests := []struct {
		d        Direction
		progress float64
		x, y     float64
	}{
		{Up, 0, 0, 0},
		{Up, 0.5, 0, -10},
		{Up, 1, 0, -20},
		{Up, 3, 0, -20},
		{Up, -1, 0, 0},
		{Down, 1, 0, 20},
		{Left, 1, -20, 0},
		{Right, 0.5, 10, 0},
		{None, 1, 0, 0},
	}
	for _, tt := range tests {
		cfg := DefaultParallaxConfig()
		cfg.Direction = tt.d
		x, y := NewParallaxSection(cfg, nil).Offset(tt.progress)
		if !near(x, tt.x) || !near(y, tt.y) {
			t.Errorf("%v at %v: (%v, %v), want (%v, %v)", tt.d, tt.progress, x, y, tt.x, tt.y)
		}
	}
}

func TestParallaxDisabled(t *testing.T) {
	for name, src := range map[string]policy.Source{
		"low power":      policy.New(capability.Full, policy.StaticMotion(false), policy.WithLowPowerMode(true)),
		"reduced motion": newFlagSource(false, true),
	} {
		p := NewParallaxSection(DefaultParallaxConfig(), src)
		if p.Enabled() {
			t.Errorf("%s: Enabled", name)
		}
		for _, prog := range []float64{0, 0.3, 1} {
			if x, y := p.Offset(prog); x != 0 || y != 0 {
				t.Errorf("%s: Offset(%v) = (%v, %v)", name, prog, x, y)
			}
		}
		txt := NewParallaxText(DefaultParallaxTextConfig(), src)
		if y := txt.Y(1); y != 0 {
			t.Errorf("%s: text Y = %v", name, y)
		}
	}
}

func TestParallaxSectionRender(t *testing.T) {
	cfg := DefaultParallaxConfig()
	cfg.ZIndex = 2
	el := NewParallaxSection(cfg, nil).Render(style.Div("child", nil), 1)
	inner, _ := el.Find("parallax-content")
	if v, _ := inner.Style.Get("transform"); v != "translate(0px, -20px)" {
		t.Errorf("transform = %q", v)
	}
	if v, _ := inner.Style.Get("z-index"); v != "2" {
		t.Errorf("z-index = %q", v)
	}
}

func TestParallaxText(t *testing.T) {
	up := NewParallaxText(DefaultParallaxTextConfig(), nil)
	if y := up.Y(1); !near(y, -20) {
		t.Errorf("up Y(1) = %v", y)
	}
	down := NewParallaxText(ParallaxTextConfig{Speed: 0.5, Direction: Down, Delay: 0.2}, nil)
	if y := down.Y(0.5); !near(y, 25) {
		t.Errorf("down Y(0.5) = %v", y)
	}

	for _, tt := range []struct{ p, want float64 }{
		{0, 0.4}, {0.1, 0.7}, {0.2, 1}, {0.5, 1}, {0.8, 1}, {0.9, 0.7}, {1, 0.4}, {2, 0.4},
	} {
		if got := TextOpacity(tt.p); !near(got, tt.want) {
			t.Errorf("TextOpacity(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	el := down.Render(style.Div("c", nil), 0)
	inner, _ := el.Find("parallax-text-content")
	if v, _ := inner.Style.Get("transition-delay"); v != "0.2s" {
		t.Errorf("transition-delay = %q", v)
	}
	reduced := NewParallaxText(ParallaxTextConfig{Speed: 0.5, Delay: 0.2}, newFlagSource(false, true))
	inner, _ = reduced.Render(style.Div("c", nil), 0.1).Find("parallax-text-content")
	if v, _ := inner.Style.Get("transition-delay"); v != "0s" {
		t.Errorf("reduced transition-delay = %q", v)
	}
	if v, _ := inner.Style.Get("opacity"); v != "0.7" {
		t.Errorf("reduced opacity = %q, want scroll-driven 0.7", v)
	}
}

func TestDirectionNames(t *testing.T) {
	for d := Up; d <= None; d++ {
		got, err := ParseDirection(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, err)
		}
	}
	if !strings.HasPrefix(Direction(9).String(), "Direction(") {
		t.Errorf("unknown direction = %q", Direction(9).String())
	}
}
