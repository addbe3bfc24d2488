package css3d

import (
	"sync"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/frame"
	"github.com/gogpu/fx/policy"
	"github.com/gogpu/fx/style"
)

// CarouselConfig configures a Carousel.
type CarouselConfig struct {
	Items  []style.Element
	Radius float64
	// AutoRotate advances to the next item every RotationSpeed.
	AutoRotate    bool
	RotationSpeed time.Duration
	ItemWidth     float64
	ItemHeight    float64
}

// DefaultCarouselConfig returns the standard carousel settings for items.
func DefaultCarouselConfig(items ...style.Element) CarouselConfig {
	return CarouselConfig{
		Items:         items,
		Radius:        300,
		AutoRotate:    true,
		RotationSpeed: 5 * time.Second,
		ItemWidth:     200,
		ItemHeight:    300,
	}
}

// Carousel arranges items on a ring and rotates one slot at a time.
//
// The ring rotation accumulates without wrapping so that CSS transitions
// always turn the short way; Rotation()%360 is the visual angle.
type Carousel struct {
	cfg CarouselConfig
	src policy.Source

	mu       sync.Mutex
	rotation float64
	active   int
	ptr      hoverDrag
	play     *autoplay
}

// NewCarousel creates an unmounted carousel.
func NewCarousel(cfg CarouselConfig, sched frame.Scheduler, src policy.Source) *Carousel {
	c := &Carousel{cfg: cfg, src: src}
	c.play = newAutoplay(&c.mu, sched, src, cfg.RotationSpeed, func(time.Duration) { c.moveLocked(1) }, func() bool {
		return c.cfg.AutoRotate && !c.ptr.hovered
	})
	return c
}

// Theta returns the angle between neighboring items.
func (c *Carousel) Theta() float64 {
	if len(c.cfg.Items) == 0 {
		return 0
	}
	return 360 / float64(len(c.cfg.Items))
}

// SetBounds sets the carousel's box in window coordinates.
func (c *Carousel) SetBounds(r style.Rect) {
	c.mu.Lock()
	c.ptr.bounds = r
	c.mu.Unlock()
}

// Mount starts autoplay.
func (c *Carousel) Mount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.play.mountLocked()
}

// Unmount stops autoplay.
func (c *Carousel) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.play.unmountLocked()
}

// Next turns the ring to the following item.
func (c *Carousel) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.moveLocked(1)
}

// Prev turns the ring to the preceding item.
func (c *Carousel) Prev() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.moveLocked(-1)
}

func (c *Carousel) moveLocked(dir int) {
	n := len(c.cfg.Items)
	if n == 0 {
		return
	}
	c.rotation -= float64(dir) * c.Theta()
	c.active = ((c.active+dir)%n + n) % n
	fx.Logger().Debug("carousel moved", "active", c.active, "rotation", c.rotation)
}

// HandlePointer pauses autoplay while the pointer is over the carousel.
func (c *Carousel) HandlePointer(ev gpucontext.PointerEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ptr.update(ev)
	c.ptr.dragging = false
	c.play.syncLocked()
}

// ActiveIndex returns the index of the front item.
func (c *Carousel) ActiveIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Rotation returns the cumulative ring rotation in degrees.
func (c *Carousel) Rotation() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation
}

// ItemPose returns the pose of item i on the ring.
func (c *Carousel) ItemPose(i int) style.Pose {
	return style.Pose{RotateY: c.Theta() * float64(i), TranslateZ: c.cfg.Radius, RotateFirst: true}
}

// Render returns the ring and its navigation controls.
func (c *Carousel) Render() style.Element {
	c.mu.Lock()
	defer c.mu.Unlock()

	transition := "transform 1s ease-out"
	if reducedMotion(c.src) {
		transition = "none"
	}
	ring := style.Div("carousel-ring", preserve3D(style.Style{
		{Property: "position", Value: "absolute"},
		{Property: "width", Value: "100%"},
		{Property: "height", Value: "100%"},
	}).
		Set("transform", style.Transform(style.Pose{TranslateZ: -c.cfg.Radius, RotateY: c.rotation})).
		Set("transition", transition))

	for i, item := range c.cfg.Items {
		opacity, filter := "0.7", "brightness(0.7)"
		class := "carousel-item"
		if i == c.active {
			opacity, filter = "1", "none"
			class += " carousel-item-active"
		}
		st := preserve3D(size(c.cfg.ItemWidth, c.cfg.ItemHeight)).
			Set("position", "absolute").
			Set("transform", style.Transform(c.ItemPose(i))).
			Set("opacity", opacity).
			Set("filter", filter)
		if transition != "none" {
			st = st.Set("transition", "all 1s ease-out")
		}
		ring.Children = append(ring.Children, style.Div(class, st, item))
	}

	stage := style.Div("carousel-stage", perspective(1000).Merge(size(c.cfg.ItemWidth, c.cfg.ItemHeight)).
		Set("margin", "0 auto"), ring)
	controls := style.Div("carousel-controls", nil,
		style.Element{Tag: "button", Class: "carousel-prev", Text: "PREV"},
		style.Element{Tag: "button", Class: "carousel-next", Text: "NEXT"},
	)
	return style.Div("carousel", style.Style{{Property: "position", Value: "relative"}}, stage, controls)
}
