package reveal

import (
	"math"
	"sync"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/fx/internal/notify"
	"github.com/gogpu/fx/style"
)

// DefaultLineHeight converts line-mode scroll deltas to pixels.
const DefaultLineHeight = 16

// Viewport is the visible window onto a scrolling page. Element boxes
// passed to a Viewport are in page coordinates.
type Viewport struct {
	mu         sync.Mutex
	x, y       float64
	width      float64
	height     float64
	contentW   float64
	contentH   float64
	lineHeight float64

	changes notify.List[style.Rect]
}

// NewViewport creates a viewport of the given size scrolled to the top.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{width: width, height: height, lineHeight: DefaultLineHeight}
}

// ViewportFor creates a viewport matching the client area of w.
func ViewportFor(w gpucontext.WindowProvider) *Viewport {
	width, height := w.Size()
	return NewViewport(float64(width), float64(height))
}

// SetContentSize bounds scrolling to a page of the given size. Zero
// means unbounded.
func (v *Viewport) SetContentSize(width, height float64) {
	v.mu.Lock()
	v.contentW, v.contentH = width, height
	v.clampLocked()
	r := v.rectLocked()
	v.mu.Unlock()
	v.changes.Emit(r)
}

// SetLineHeight sets the pixel height of one scroll line.
func (v *Viewport) SetLineHeight(px float64) {
	v.mu.Lock()
	v.lineHeight = px
	v.mu.Unlock()
}

// Resize changes the viewport size.
func (v *Viewport) Resize(width, height float64) {
	v.mu.Lock()
	v.width, v.height = width, height
	v.clampLocked()
	r := v.rectLocked()
	v.mu.Unlock()
	v.changes.Emit(r)
}

// HandleScroll applies a scroll event. Line and page deltas are converted
// to pixels.
func (v *Viewport) HandleScroll(ev gpucontext.ScrollEvent) {
	v.mu.Lock()
	unitX, unitY := 1.0, 1.0
	switch ev.DeltaMode {
	case gpucontext.ScrollDeltaLine:
		unitX, unitY = v.lineHeight, v.lineHeight
	case gpucontext.ScrollDeltaPage:
		unitX, unitY = v.width, v.height
	}
	v.x += ev.DeltaX * unitX
	v.y += ev.DeltaY * unitY
	v.clampLocked()
	r := v.rectLocked()
	v.mu.Unlock()
	v.changes.Emit(r)
}

// ScrollTo moves the viewport's top-left corner to (x, y).
func (v *Viewport) ScrollTo(x, y float64) {
	v.mu.Lock()
	v.x, v.y = x, y
	v.clampLocked()
	r := v.rectLocked()
	v.mu.Unlock()
	v.changes.Emit(r)
}

func (v *Viewport) clampLocked() {
	maxX, maxY := math.Inf(1), math.Inf(1)
	if v.contentW > 0 {
		maxX = math.Max(0, v.contentW-v.width)
	}
	if v.contentH > 0 {
		maxY = math.Max(0, v.contentH-v.height)
	}
	v.x = math.Max(0, math.Min(v.x, maxX))
	v.y = math.Max(0, math.Min(v.y, maxY))
}

func (v *Viewport) rectLocked() style.Rect {
	return style.Rect{X: v.x, Y: v.y, Width: v.width, Height: v.height}
}

// Rect returns the visible area in page coordinates.
func (v *Viewport) Rect() style.Rect {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rectLocked()
}

// IntersectionRatio returns the fraction of r's area that is visible.
func (v *Viewport) IntersectionRatio(r style.Rect) float64 {
	return Intersection(v.Rect(), r)
}

// Progress returns how far r has scrolled through the viewport: 0 when
// its top edge meets the viewport bottom, 1 when its bottom edge meets
// the viewport top.
func (v *Viewport) Progress(r style.Rect) float64 {
	return ScrollProgress(v.Rect(), r)
}

// Subscribe calls fn with the visible area after every scroll or resize.
func (v *Viewport) Subscribe(fn func(style.Rect)) (cancel func()) {
	return v.changes.Add(fn)
}

// Clock supplies timestamps for observers. frame.Scheduler satisfies it.
type Clock interface {
	Now() time.Duration
}

// Observer consumes intersection ratios. Reveal and Stagger implement it.
type Observer interface {
	Observe(ratio float64, now time.Duration) bool
}

// Track feeds o the intersection ratio of r now and after every viewport
// change until cancel is called.
func (v *Viewport) Track(r style.Rect, o Observer, clock Clock) (cancel func()) {
	o.Observe(v.IntersectionRatio(r), clock.Now())
	return v.Subscribe(func(view style.Rect) {
		o.Observe(Intersection(view, r), clock.Now())
	})
}

// Intersection returns the fraction of r's area inside view. An empty r
// counts as fully visible when its origin is inside view.
func Intersection(view, r style.Rect) float64 {
	if r.Empty() {
		if view.Contains(r.X, r.Y) {
			return 1
		}
		return 0
	}
	w := math.Min(view.X+view.Width, r.X+r.Width) - math.Max(view.X, r.X)
	h := math.Min(view.Y+view.Height, r.Y+r.Height) - math.Max(view.Y, r.Y)
	if w <= 0 || h <= 0 {
		return 0
	}
	return (w * h) / (r.Width * r.Height)
}

// ScrollProgress returns r's vertical progress through view, clamped to
// [0, 1].
func ScrollProgress(view, r style.Rect) float64 {
	span := view.Height + r.Height
	if span <= 0 {
		return 0
	}
	return clamp01((view.Y + view.Height - r.Y) / span)
}
