package css3d

import (
	"strconv"
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/fx/policy"
	"github.com/gogpu/fx/style"
)

// Layer is one plane of a Parallax stack.
type Layer struct {
	Content style.Element
	// Depth multiplies the pointer offset. Deeper layers move more.
	Depth float64
	// X and Y are the resting offset in CSS pixels.
	X, Y float64
	// Scale is the layer scale. Zero means 1.
	Scale float64
}

// ParallaxConfig configures a Parallax.
type ParallaxConfig struct {
	Layers      []Layer
	Sensitivity float64
	Perspective float64
	Interactive bool
}

// DefaultParallaxConfig returns the standard settings for layers.
func DefaultParallaxConfig(layers ...Layer) ParallaxConfig {
	return ParallaxConfig{Layers: layers, Sensitivity: 0.05, Perspective: 1000, Interactive: true}
}

// Parallax shifts stacked layers by depth in response to the pointer or
// to device tilt.
type Parallax struct {
	cfg ParallaxConfig
	src policy.Source

	mu     sync.Mutex
	bounds style.Rect
	offX   float64
	offY   float64
}

// NewParallax creates a parallax stack.
func NewParallax(cfg ParallaxConfig, src policy.Source) *Parallax {
	return &Parallax{cfg: cfg, src: src}
}

// SetBounds sets the stack's box in window coordinates.
func (p *Parallax) SetBounds(r style.Rect) {
	p.mu.Lock()
	p.bounds = r
	p.mu.Unlock()
}

// HandlePointer offsets the stack by the pointer's distance from its
// center and resets it when the pointer leaves.
func (p *Parallax) HandlePointer(ev gpucontext.PointerEvent) {
	if !p.cfg.Interactive {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	switch ev.Type {
	case gpucontext.PointerLeave, gpucontext.PointerCancel:
		p.offX, p.offY = 0, 0
		return
	case gpucontext.PointerMove, gpucontext.PointerEnter:
	default:
		return
	}
	if p.bounds.Empty() || !p.bounds.Contains(ev.X, ev.Y) {
		p.offX, p.offY = 0, 0
		return
	}
	if reducedMotion(p.src) {
		return
	}
	lx, ly := p.bounds.Local(ev.X, ev.Y)
	cx, cy := p.bounds.Center()
	p.offX = (lx - cx) * p.cfg.Sensitivity
	p.offY = (ly - cy) * p.cfg.Sensitivity
}

// HandleOrientation offsets the stack from device tilt: beta is the
// front-back angle and gamma the left-right angle, in degrees.
func (p *Parallax) HandleOrientation(beta, gamma float64) {
	if !p.cfg.Interactive || reducedMotion(p.src) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.offX = gamma * p.cfg.Sensitivity * 2
	p.offY = beta * p.cfg.Sensitivity * 2
}

// Offset returns the current pointer offset before depth scaling.
func (p *Parallax) Offset() (x, y float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.offX, p.offY
}

// LayerPose returns the pose of layer i.
func (p *Parallax) LayerPose(i int) style.Pose {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.layerPoseLocked(i)
}

func (p *Parallax) layerPoseLocked(i int) style.Pose {
	l := p.cfg.Layers[i]
	offX, offY := p.offX, p.offY
	if reducedMotion(p.src) {
		offX, offY = 0, 0
	}
	return style.Pose{TranslateX: l.X + offX*l.Depth, TranslateY: l.Y + offY*l.Depth, Scale: l.Scale}
}

// Render returns the stack. Earlier layers are drawn on top.
func (p *Parallax) Render() style.Element {
	p.mu.Lock()
	defer p.mu.Unlock()

	root := style.Div("parallax", perspective(p.cfg.Perspective).Set("overflow", "hidden"))
	n := len(p.cfg.Layers)
	for i, l := range p.cfg.Layers {
		st := style.Style{
			{Property: "position", Value: "absolute"},
			{Property: "inset", Value: "0"},
			{Property: "z-index", Value: strconv.Itoa(n - i)},
			{Property: "transform", Value: style.Transform(p.layerPoseLocked(i))},
			{Property: "transition", Value: "transform 0.1s ease-out"},
		}
		root.Children = append(root.Children, style.Div("parallax-layer", st, l.Content))
	}
	return root
}
