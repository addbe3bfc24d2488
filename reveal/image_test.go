package reveal

import (
	"testing"

	"github.com/gogpu/fx/capability"
	"github.com/gogpu/fx/policy"
	"github.com/gogpu/fx/style"
)

func TestImageEffectHidden(t *testing.T) {
	tests := []struct {
		e    ImageEffect
		want Frame
	}{
		{ImageFade, Frame{Scale: 1}},
		{ImageSlide, Frame{Y: 50, Scale: 1}},
		{ImageZoom, Frame{Scale: 1.2}},
		{ImageClip, Frame{Opacity: 1, Scale: 1, Clip: true, ClipTop: 100}},
		{ImageBlur, Frame{Scale: 1, Blur: 10}},
	}
	for _, tt := range tests {
		if got := tt.e.hidden(); got != tt.want {
			t.Errorf("%v hidden = %+v, want %+v", tt.e, got, tt.want)
		}
		if got, err := ParseImageEffect(tt.e.String()); err != nil || got != tt.e {
			t.Errorf("ParseImageEffect(%q) = %v, %v", tt.e, got, err)
		}
	}
	if _, err := ParseImageEffect("spin"); err == nil {
		t.Error("ParseImageEffect accepted an unknown name")
	}
}

func TestRevealImageSlide(t *testing.T) {
	cfg := DefaultImageConfig()
	cfg.Effect = ImageSlide
	r := NewRevealImage(cfg, nil)
	if !r.Observe(0.5, 0) {
		t.Fatal("Observe did not reveal")
	}
	if f := r.Sample(0); f.Opacity != 0 || f.Y != 50 {
		t.Errorf("at 0: %+v", f)
	}
	if f := r.Sample(400 * ms); f.Opacity <= 0 || f.Opacity >= 1 || f.Y <= 0 || f.Y >= 50 {
		t.Errorf("at 400ms: %+v", f)
	}
	if f := r.Sample(ImageDuration); f.Opacity != 1 || f.Y != 0 {
		t.Errorf("at %v: %+v", ImageDuration, f)
	}
}

func TestRevealImageClipAndBlur(t *testing.T) {
	cfg := DefaultImageConfig()
	clip := NewRevealImage(cfg, nil)
	clip.Observe(1, 0)
	if v, _ := clip.Sample(0).Style().Get("clip-path"); v != "inset(100% 0% 0% 0%)" {
		t.Errorf("clip at 0 = %q", v)
	}
	if v, _ := clip.Sample(ImageDuration).Style().Get("clip-path"); v != "inset(0% 0% 0% 0%)" {
		t.Errorf("clip at end = %q", v)
	}
	if f := clip.Sample(0); f.Opacity != 1 {
		t.Errorf("clip reveal fades: opacity %v", f.Opacity)
	}

	cfg.Effect = ImageBlur
	cfg.Delay = 200 * ms
	b := NewRevealImage(cfg, nil)
	b.Observe(1, 0)
	if v, _ := b.Sample(200 * ms).Style().Get("filter"); v != "blur(10px)" {
		t.Errorf("filter after delay = %q, want blur(10px)", v)
	}
	if _, ok := b.Sample(ImageDuration + 200*ms).Style().Get("filter"); ok {
		t.Error("filter left on after the reveal")
	}
}

func TestRevealImageReducedMotion(t *testing.T) {
	for _, e := range []ImageEffect{ImageFade, ImageSlide, ImageZoom, ImageClip, ImageBlur} {
		cfg := DefaultImageConfig()
		cfg.Effect = e
		r := NewRevealImage(cfg, newFlagSource(false, true))
		r.Observe(1, 0)
		for now := ms * 0; now <= ImageDuration; now += 50 * ms {
			f := r.Sample(now)
			if !f.Still() || f.Clip || f.Blur != 0 {
				t.Fatalf("%v at %v: %+v", e, now, f)
			}
		}
		if f := r.Sample(0); f.Opacity != 0 {
			t.Errorf("%v starts at opacity %v", e, f.Opacity)
		}
		if f := r.Sample(ReducedDuration); f.Opacity != 1 {
			t.Errorf("%v not visible after %v", e, ReducedDuration)
		}
		if _, ok := r.Render(style.Element{}, 0).Style.Get("overflow"); ok {
			t.Errorf("%v clips under reduced motion", e)
		}
	}
}

func TestParallaxImage(t *testing.T) {
	p := NewParallaxImage(DefaultParallaxImageConfig(), nil)
	for _, tt := range []struct{ progress, y float64 }{
		{0, 0}, {0.5, -45}, {1, -90}, {2, -90},
	} {
		if y := p.Y(tt.progress); !near(y, tt.y) {
			t.Errorf("Y(%v) = %v, want %v", tt.progress, y, tt.y)
		}
	}
	inner, _ := p.Render(style.Element{Tag: "img"}, 1).Find("parallax-image-content")
	if v, _ := inner.Style.Get("transform"); v != "translate(0px, -90px)" {
		t.Errorf("transform = %q", v)
	}

	for name, src := range map[string]policy.Source{
		"low power":      policy.New(capability.Full, policy.StaticMotion(false), policy.WithLowPowerMode(true)),
		"reduced motion": newFlagSource(false, true),
	} {
		if y := NewParallaxImage(DefaultParallaxImageConfig(), src).Y(1); y != 0 {
			t.Errorf("%s: Y(1) = %v, want 0", name, y)
		}
	}
}
