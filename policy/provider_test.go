package policy

import (
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/fx/capability"
)

func TestDerive(t *testing.T) {
	full := capability.Full
	tests := []struct {
		name     string
		snap     capability.Snapshot
		lowPower bool
		reduced  bool
		want     Flags
	}{
		{
			name: "everything on",
			snap: full,
			want: Flags{UseCanvasEffects: true, UseWebGLEffects: true, UseAdvancedAnimations: true, UseParallaxEffects: true},
		},
		{
			name:     "low power disables all effects",
			snap:     full,
			lowPower: true,
			want:     Flags{IsLowPowerMode: true},
		},
		{
			name:    "reduced motion keeps canvas",
			snap:    full,
			reduced: true,
			want:    Flags{UseCanvasEffects: true, UseWebGLEffects: true, UseReducedMotion: true},
		},
		{
			name: "older browser loses advanced animations only",
			snap: capability.Snapshot{Canvas2D: true, OlderBrowser: true},
			want: Flags{UseCanvasEffects: true, UseParallaxEffects: true},
		},
		{
			name: "low power device loses parallax only",
			snap: capability.Snapshot{Canvas2D: true, WebGL: true, LowPowerDevice: true},
			want: Flags{UseCanvasEffects: true, UseWebGLEffects: true, UseAdvancedAnimations: true},
		},
		{
			name:     "reduced motion is not overridden by low power",
			snap:     full,
			lowPower: true,
			reduced:  true,
			want:     Flags{UseReducedMotion: true, IsLowPowerMode: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Derive(tt.snap, tt.lowPower, tt.reduced); got != tt.want {
				t.Errorf("Derive() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewAutoLowPower(t *testing.T) {
	tests := []struct {
		name string
		snap capability.Snapshot
		want bool
	}{
		{"capable", capability.Full, false},
		{"low power device", capability.Snapshot{Canvas2D: true, LowPowerDevice: true}, true},
		{"older browser", capability.Snapshot{Canvas2D: true, OlderBrowser: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.snap, nil)
			defer p.Close()
			if got := p.Flags().IsLowPowerMode; got != tt.want {
				t.Errorf("IsLowPowerMode = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserToggleWins(t *testing.T) {
	p := New(capability.Snapshot{Canvas2D: true, OlderBrowser: true}, nil, WithLowPowerMode(false))
	defer p.Close()
	if p.Flags().IsLowPowerMode {
		t.Fatal("WithLowPowerMode(false) ignored")
	}
	if !p.Flags().UseCanvasEffects {
		t.Error("canvas effects should be on after the user disabled low power mode")
	}
}

func TestSetLowPowerModeFlipsSynchronously(t *testing.T) {
	p := New(capability.Full, nil)
	defer p.Close()

	var seen []Flags
	p.Subscribe(func(f Flags) { seen = append(seen, f) })

	p.SetLowPowerMode(true)
	f := p.Flags()
	if f.UseCanvasEffects || f.UseWebGLEffects {
		t.Errorf("flags after SetLowPowerMode(true) = %+v", f)
	}
	if len(seen) != 1 || seen[0] != f {
		t.Errorf("subscribers saw %+v, want one update %+v", seen, f)
	}

	p.SetLowPowerMode(true)
	if len(seen) != 1 {
		t.Errorf("unchanged value broadcast again: %d updates", len(seen))
	}
}

func TestReducedMotionSubscription(t *testing.T) {
	plat := &fakePlatform{}
	motion := NewPlatformMotion(plat)
	p := New(capability.Full, motion)

	var updates int
	cancel := p.Subscribe(func(Flags) { updates++ })

	plat.reduce = true
	motion.Notify()
	f := p.Flags()
	if !f.UseReducedMotion || f.UseAdvancedAnimations || f.UseParallaxEffects {
		t.Errorf("flags after reduced motion = %+v", f)
	}
	if updates != 1 {
		t.Errorf("updates = %d, want 1", updates)
	}

	motion.Notify()
	if updates != 1 {
		t.Errorf("Notify without change broadcast: updates = %d", updates)
	}

	cancel()
	p.Close()
	plat.reduce = false
	motion.Notify()
	if !p.Flags().UseReducedMotion {
		t.Error("closed provider still followed the motion source")
	}
	if updates != 1 {
		t.Errorf("cancelled subscriber called: updates = %d", updates)
	}
}

func TestToggle(t *testing.T) {
	p := New(capability.Full, StaticMotion(true))
	defer p.Close()
	tg := NewToggle(p)

	if tg.On() {
		t.Fatal("toggle starts on for a capable device")
	}
	tg.Flip()
	if !tg.On() || !p.Flags().IsLowPowerMode {
		t.Fatal("Flip did not enable low power mode")
	}

	el := tg.Render()
	if _, ok := el.Find("reduced-motion-indicator"); !ok {
		t.Error("reduced motion indicator missing")
	}
	knob, ok := el.Find("knob")
	if !ok {
		t.Fatal("knob missing")
	}
	if v, _ := knob.Style.Get("background"); v != "#00ff41" {
		t.Errorf("knob background = %q, want accent", v)
	}
}

type fakePlatform struct {
	gpucontext.NullPlatformProvider
	reduce bool
}

func (f *fakePlatform) ReduceMotion() bool { return f.reduce }
