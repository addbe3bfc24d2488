package texture

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/capability"
	"github.com/gogpu/fx/frame"
	"github.com/gogpu/fx/policy"
	"github.com/gogpu/fx/style"
)

// spyRenderer counts calls and can be told to fail.
type spyRenderer struct {
	interval time.Duration
	setups   int
	draws    int
	failAt   int
	panicAt  int
}

func (r *spyRenderer) Name() string                        { return "spy" }
func (r *spyRenderer) Interval() time.Duration             { return r.interval }
func (r *spyRenderer) CanvasStyle() style.Style            { return overlayStyle(1, "") }
func (r *spyRenderer) Setup(*Surface, *rand.Rand) error    { r.setups++; return nil }
func (r *spyRenderer) Fallback(reduced bool) style.Element { return style.Div("spy", withAnimation(nil, 1, false, reduced)) }

func (r *spyRenderer) Draw(s *Surface, _ *rand.Rand) error {
	r.draws++
	if r.panicAt > 0 && r.draws == r.panicAt {
		panic("boom")
	}
	if r.failAt > 0 && r.draws == r.failAt {
		return errors.New("putImageData failed")
	}
	s.Present()
	return nil
}

// countingFactory wraps NewGGCanvas and records calls.
type countingFactory struct {
	calls  int
	closed int
	err    error
}

func (f *countingFactory) create(box Box) (Canvas, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	c, err := NewGGCanvas(box)
	if err != nil {
		return nil, err
	}
	return &closeSpy{Canvas: c, f: f}, nil
}

type closeSpy struct {
	Canvas
	f *countingFactory
}

func (c *closeSpy) Close() error {
	c.f.closed++
	return c.Canvas.Close()
}

// flagSource is a policy.Source whose flags tests set directly.
type flagSource struct {
	flags policy.Flags
	subs  map[int]func(policy.Flags)
	next  int
}

func newFlagSource(f policy.Flags) *flagSource {
	return &flagSource{flags: f, subs: map[int]func(policy.Flags){}}
}

func (s *flagSource) Flags() policy.Flags { return s.flags }

func (s *flagSource) Subscribe(fn func(policy.Flags)) func() {
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

func (s *flagSource) set(f policy.Flags) {
	s.flags = f
	for _, fn := range s.subs {
		fn(f)
	}
}

type sinkSpy struct{ errs []error }

func (s *sinkSpy) Report(err error) bool {
	s.errs = append(s.errs, err)
	return true
}

var (
	canvasFlags = policy.Derive(capability.Full, false, false)
	testBox     = Box{Width: 8, Height: 6, DPR: 1}
)

func TestEffectWithoutCanvasNeverCreatesContext(t *testing.T) {
	snap := capability.Snapshot{}
	flags := policy.New(snap, nil)
	f := &countingFactory{}
	for _, r := range []Renderer{
		NewStaticNoise(), NewGrain(), NewDistressed(fx.Medium),
		NewGradientBlobs(), NewParticleField(fx.Medium), NewGlitch(fx.Medium),
	} {
		e := NewEffect(r, flags, frame.NewManual(), WithCanvasFactory(f.create))
		e.Mount(testBox)
		if e.Mode() != FallbackActive {
			t.Errorf("%s: Mode() = %v, want fallback", r.Name(), e.Mode())
		}
		if e.Reason() != EventCapabilityAbsent {
			t.Errorf("%s: Reason() = %v, want capability_absent", r.Name(), e.Reason())
		}
		if el := e.Render(); el.Tag == "canvas" {
			t.Errorf("%s: Render() returned a canvas", r.Name())
		}
		e.Unmount()
	}
	if f.calls != 0 {
		t.Errorf("canvas factory called %d times, want 0", f.calls)
	}
}

func TestEffectMountDrawsAndTicks(t *testing.T) {
	m := frame.NewManual()
	r := &spyRenderer{interval: 50 * time.Millisecond}
	e := NewEffect(r, newFlagSource(canvasFlags), m, WithSeed(1))
	e.Mount(testBox)

	if e.Mode() != CanvasActive {
		t.Fatalf("Mode() = %v, want canvas", e.Mode())
	}
	if r.setups != 1 || r.draws != 1 {
		t.Fatalf("setups, draws = %d, %d after mount, want 1, 1", r.setups, r.draws)
	}
	m.Advance(200 * time.Millisecond)
	if r.draws != 5 {
		t.Errorf("draws = %d after 200ms, want 5", r.draws)
	}
	if el := e.Render(); el.Tag != "canvas" || el.Class != "fx-spy" {
		t.Errorf("Render() = %s %q, want canvas fx-spy", el.Tag, el.Class)
	}
}

func TestEffectNilFlagsMountsCanvas(t *testing.T) {
	r := &spyRenderer{interval: 50 * time.Millisecond}
	e := NewEffect(r, nil, frame.NewManual(), WithSeed(1))
	e.Mount(testBox)
	defer e.Unmount()

	if e.Mode() != CanvasActive {
		t.Fatalf("Mode() = %v, want canvas", e.Mode())
	}
	if r.draws != 1 {
		t.Errorf("draws = %d after mount, want 1", r.draws)
	}
}

func TestEffectUnmountStopsDrawing(t *testing.T) {
	m := frame.NewManual()
	r := &spyRenderer{interval: 0}
	f := &countingFactory{}
	e := NewEffect(r, newFlagSource(canvasFlags), m, WithCanvasFactory(f.create))
	e.Mount(testBox)
	m.Frames(10)

	e.Unmount()
	after := r.draws
	m.Frames(100)
	if r.draws != after {
		t.Errorf("draws went from %d to %d after unmount", after, r.draws)
	}
	if m.Pending() != 0 {
		t.Errorf("Pending() = %d after unmount, want 0", m.Pending())
	}
	if f.closed != 1 {
		t.Errorf("canvas closed %d times, want 1", f.closed)
	}
	if e.Surface() != nil {
		t.Error("Surface() != nil after unmount")
	}
}

func TestEffectRemount(t *testing.T) {
	m := frame.NewManual()
	r := &spyRenderer{interval: 0}
	e := NewEffect(r, newFlagSource(canvasFlags), m)
	e.Mount(testBox)
	e.Unmount()
	if e.Mode() != Probing {
		t.Fatalf("Mode() = %v after unmount, want probing", e.Mode())
	}
	e.Mount(testBox)
	m.Frames(2)
	if e.Mode() != CanvasActive || r.draws != 4 {
		t.Errorf("Mode, draws = %v, %d after remount, want canvas, 4", e.Mode(), r.draws)
	}
}

func TestEffectDrawErrorFallsBack(t *testing.T) {
	for _, tc := range []struct {
		name string
		r    *spyRenderer
	}{
		{"error", &spyRenderer{interval: 0, failAt: 3}},
		{"panic", &spyRenderer{interval: 0, panicAt: 3}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := frame.NewManual()
			sink := &sinkSpy{}
			e := NewEffect(tc.r, newFlagSource(canvasFlags), m, WithErrorSink(sink))
			e.Mount(testBox)
			m.Frames(10)

			if e.Mode() != FallbackActive || e.Reason() != EventDrawError {
				t.Fatalf("Mode, Reason = %v, %v, want fallback, draw_error", e.Mode(), e.Reason())
			}
			if tc.r.draws != 3 {
				t.Errorf("draws = %d, want 3", tc.r.draws)
			}
			if len(sink.errs) != 1 || !errors.Is(sink.errs[0], fx.ErrCanvas) {
				t.Errorf("sink errors = %v, want one ErrCanvas", sink.errs)
			}
			if !errors.Is(e.Err(), fx.ErrCanvas) {
				t.Errorf("Err() = %v, want ErrCanvas", e.Err())
			}
			if m.Pending() != 0 {
				t.Errorf("Pending() = %d after fallback, want 0", m.Pending())
			}
		})
	}
}

func TestEffectFactoryErrorFallsBack(t *testing.T) {
	f := &countingFactory{err: errors.New("getContext returned null")}
	sink := &sinkSpy{}
	e := NewEffect(&spyRenderer{}, newFlagSource(canvasFlags), frame.NewManual(),
		WithCanvasFactory(f.create), WithErrorSink(sink))
	e.Mount(testBox)
	if e.Mode() != FallbackActive || e.Reason() != EventDrawError {
		t.Errorf("Mode, Reason = %v, %v, want fallback, draw_error", e.Mode(), e.Reason())
	}
	if len(sink.errs) != 1 || !strings.Contains(sink.errs[0].Error(), "getContext") {
		t.Errorf("sink errors = %v", sink.errs)
	}
}

func TestEffectFallbackIsTerminal(t *testing.T) {
	fs := newFlagSource(canvasFlags)
	m := frame.NewManual()
	r := &spyRenderer{interval: 0}
	e := NewEffect(r, fs, m)
	e.Mount(testBox)
	e.Handle(EventDrawError, nil)

	fs.set(canvasFlags)
	e.Resize(Box{Width: 20, Height: 20})
	e.Unmount()
	e.Mount(testBox)
	m.Frames(5)
	if e.Mode() != FallbackActive {
		t.Errorf("Mode() = %v, want fallback to stick", e.Mode())
	}
	if r.draws != 1 {
		t.Errorf("draws = %d, want only the mount draw", r.draws)
	}
}

func TestEffectResizeRestartsTask(t *testing.T) {
	m := frame.NewManual()
	r := &spyRenderer{interval: 100 * time.Millisecond}
	e := NewEffect(r, newFlagSource(canvasFlags), m)
	e.Mount(testBox)

	m.Advance(60 * time.Millisecond)
	e.Resize(Box{Width: 16, Height: 12, DPR: 1})
	if r.setups != 2 || r.draws != 2 {
		t.Fatalf("setups, draws = %d, %d after resize, want 2, 2", r.setups, r.draws)
	}
	if w, h := e.Surface().PixelSize(); w != 16 || h != 12 {
		t.Errorf("PixelSize() = %dx%d, want 16x12", w, h)
	}

	// The old chain was due at 100ms; the restarted one is due at 160ms.
	m.Advance(50 * time.Millisecond)
	if r.draws != 2 {
		t.Errorf("draws = %d at 110ms, want 2", r.draws)
	}
	m.Advance(50 * time.Millisecond)
	if r.draws != 3 {
		t.Errorf("draws = %d at 160ms, want 3", r.draws)
	}
	if m.Pending() != 1 {
		t.Errorf("Pending() = %d, want a single chain", m.Pending())
	}
}

func TestEffectResizeNewScaleRecreatesCanvas(t *testing.T) {
	f := &countingFactory{}
	e := NewEffect(&spyRenderer{}, newFlagSource(canvasFlags), frame.NewManual(), WithCanvasFactory(f.create))
	e.Mount(testBox)
	e.Resize(Box{Width: 8, Height: 6, DPR: 2})

	if f.calls != 2 || f.closed != 1 {
		t.Errorf("factory calls, closes = %d, %d, want 2, 1", f.calls, f.closed)
	}
	if w, h := e.Surface().PixelSize(); w != 16 || h != 12 {
		t.Errorf("PixelSize() = %dx%d, want 16x12", w, h)
	}
}

func TestEffectReducedMotion(t *testing.T) {
	fs := newFlagSource(canvasFlags)
	m := frame.NewManual()
	noise := NewStaticNoise()
	e := NewEffect(noise, fs, m)
	e.Mount(testBox)

	fs.set(policy.Derive(capability.Full, false, true))
	if e.Mode() != FallbackActive || e.Reason() != EventReducedMotion {
		t.Fatalf("Mode, Reason = %v, %v, want fallback, reduced_motion", e.Mode(), e.Reason())
	}
	if v, _ := e.Render().Style.Get("animation"); v != "none" {
		t.Errorf("fallback animation = %q, want none", v)
	}
	if m.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", m.Pending())
	}
}

func TestEffectReducedMotionKeepsStillRenderer(t *testing.T) {
	d := NewDistressed(fx.Light)
	d.Animated = false
	m := frame.NewManual()
	e := NewEffect(d, newFlagSource(policy.Derive(capability.Full, false, true)), m)
	e.Mount(testBox)
	if e.Mode() != CanvasActive {
		t.Errorf("Mode() = %v, want canvas for a still texture", e.Mode())
	}
	if m.Pending() != 0 {
		t.Errorf("Pending() = %d, want no ticking for a still texture", m.Pending())
	}
}

func TestEffectLowPowerToggle(t *testing.T) {
	p := policy.New(capability.Full, nil)
	m := frame.NewManual()
	r := &spyRenderer{interval: 0}
	e := NewEffect(r, p, m)
	e.Mount(testBox)
	m.Frames(2)

	p.SetLowPowerMode(true)
	if e.Mode() != FallbackActive || e.Reason() != EventCapabilityAbsent {
		t.Errorf("Mode, Reason = %v, %v, want fallback, capability_absent", e.Mode(), e.Reason())
	}
	m.Frames(10)
	if r.draws != 3 {
		t.Errorf("draws = %d, want 3", r.draws)
	}
}

func TestEffectObserver(t *testing.T) {
	obs := &observerSpy{}
	m := frame.NewManual()
	e := NewEffect(&spyRenderer{interval: 0, failAt: 4}, newFlagSource(canvasFlags), m, WithObserver(obs))
	e.Mount(testBox)
	m.Frames(10)
	e.Unmount()

	if obs.mounted != 1 || obs.unmounted != 1 {
		t.Errorf("mounted, unmounted = %d, %d, want 1, 1", obs.mounted, obs.unmounted)
	}
	if obs.frames != 3 {
		t.Errorf("frames = %d, want 3", obs.frames)
	}
	if len(obs.fellBack) != 1 || obs.fellBack[0] != EventDrawError {
		t.Errorf("fellBack = %v, want [draw_error]", obs.fellBack)
	}
}

type observerSpy struct {
	mounted, unmounted, frames int
	fellBack                   []Event
}

func (o *observerSpy) EffectMounted(string)             { o.mounted++ }
func (o *observerSpy) EffectUnmounted(string)           { o.unmounted++ }
func (o *observerSpy) FrameDrawn(string, time.Duration) { o.frames++ }
func (o *observerSpy) FellBack(_ string, ev Event)      { o.fellBack = append(o.fellBack, ev) }

func TestModeAndEventStrings(t *testing.T) {
	if Probing.String() != "probing" || CanvasActive.String() != "canvas" || FallbackActive.String() != "fallback" {
		t.Error("unexpected Mode strings")
	}
	if EventReducedMotion.String() != "reduced_motion" || Event(0).String() != "none" {
		t.Error("unexpected Event strings")
	}
}
