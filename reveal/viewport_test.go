package reveal

import (
	"testing"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/fx/frame"
	"github.com/gogpu/fx/style"
)

func TestIntersection(t *testing.T) {
	view := style.Rect{Width: 800, Height: 600}
	tests := []struct {
		name string
		r    style.Rect
		want float64
	}{
		{"inside", style.Rect{X: 10, Y: 10, Width: 100, Height: 100}, 1},
		{"half below", style.Rect{Y: 300, Width: 100, Height: 600}, 0.5},
		{"quarter corner", style.Rect{X: 750, Y: 550, Width: 100, Height: 100}, 0.25},
		{"below", style.Rect{Y: 600, Width: 100, Height: 100}, 0},
		{"empty inside", style.Rect{X: 5, Y: 5}, 1},
		{"empty outside", style.Rect{X: 5, Y: 900}, 0},
	}
	for _, tt := range tests {
		if got := Intersection(view, tt.r); !near(got, tt.want) {
			t.Errorf("%s: Intersection = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestViewportScroll(t *testing.T) {
	v := ViewportFor(gpucontext.NullWindowProvider{W: 800, H: 600})
	v.HandleScroll(gpucontext.ScrollEvent{DeltaY: 40})
	v.HandleScroll(gpucontext.ScrollEvent{DeltaY: 2, DeltaMode: gpucontext.ScrollDeltaLine})
	if r := v.Rect(); r.Y != 72 {
		t.Errorf("Y = %v after pixel and line scroll, want 72", r.Y)
	}
	v.HandleScroll(gpucontext.ScrollEvent{DeltaY: 1, DeltaMode: gpucontext.ScrollDeltaPage})
	if r := v.Rect(); r.Y != 672 {
		t.Errorf("Y = %v after page scroll, want 672", r.Y)
	}
	v.HandleScroll(gpucontext.ScrollEvent{DeltaX: -10, DeltaY: -1000})
	if r := v.Rect(); r.X != 0 || r.Y != 0 {
		t.Errorf("scrolled past the top: %+v", r)
	}

	v.SetContentSize(800, 2000)
	v.ScrollTo(-5, 5000)
	if r := v.Rect(); r.X != 0 || r.Y != 1400 {
		t.Errorf("ScrollTo clamped to %+v, want (0, 1400)", r)
	}
	v.Resize(800, 1000)
	if r := v.Rect(); r.Y != 1000 || r.Height != 1000 {
		t.Errorf("after resize: %+v", r)
	}
}

func TestViewportProgress(t *testing.T) {
	v := NewViewport(800, 600)
	section := style.Rect{Y: 1000, Width: 800, Height: 200}
	for _, tt := range []struct{ y, want float64 }{
		{0, 0}, {400, 0}, {800, 0.5}, {1200, 1}, {2000, 1},
	} {
		v.ScrollTo(0, tt.y)
		if got := v.Progress(section); !near(got, tt.want) {
			t.Errorf("scroll %v: Progress = %v, want %v", tt.y, got, tt.want)
		}
	}
}

func TestViewportTrack(t *testing.T) {
	clock := frame.NewManual()
	v := NewViewport(800, 600)
	r := New(DefaultConfig(), nil)
	cancel := v.Track(style.Rect{Y: 1000, Width: 400, Height: 200}, r, clock)

	if r.Visible() {
		t.Fatal("visible before scrolling")
	}
	clock.Advance(4 * time.Second)
	v.ScrollTo(0, 420)
	if r.Visible() {
		t.Fatal("visible with a tenth of the element in view")
	}
	v.ScrollTo(0, 500)
	if !r.Visible() {
		t.Fatal("not visible after scrolling half the element into view")
	}
	if f := r.Sample(clock.Now()); f.Opacity != 0 {
		t.Errorf("reveal did not start at the observation time: %+v", f)
	}
	cancel()

	cfg := DefaultConfig()
	cfg.Once = false
	r2 := New(cfg, nil)
	cancel2 := v.Track(style.Rect{Y: 1000, Width: 400, Height: 200}, r2, clock)
	cancel2()
	v.ScrollTo(0, 0)
	if !r2.Visible() {
		t.Error("cancelled tracker still observed scrolling")
	}
}
