package css3d

import (
	"strings"
	"sync"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/fx/frame"
	"github.com/gogpu/fx/policy"
	"github.com/gogpu/fx/style"
)

// Cube autoplay and drag tuning.
const (
	CubeStepX     = 0.2
	CubeStepY     = 0.3
	CubeInterval  = 50 * time.Millisecond
	DragDegPerPix = 0.5
)

// CubeConfig configures a Cube.
type CubeConfig struct {
	// Size is the edge length in CSS pixels.
	Size       float64
	AutoRotate bool
	// Faces are front, back, right, left, top and bottom. Missing faces
	// get a labelled default.
	Faces         []style.Element
	GlowColor     string
	GlowIntensity float64
}

// DefaultCubeConfig returns the standard 200px auto-rotating cube.
func DefaultCubeConfig() CubeConfig {
	return CubeConfig{Size: 200, AutoRotate: true, GlowColor: "#00ff41", GlowIntensity: 5}
}

var cubeFaces = [6]struct {
	name string
	pose style.Pose
}{
	{"front", style.Pose{}},
	{"back", style.Pose{RotateY: 180, RotateFirst: true}},
	{"right", style.Pose{RotateY: 90, RotateFirst: true}},
	{"left", style.Pose{RotateY: -90, RotateFirst: true}},
	{"top", style.Pose{RotateX: 90, RotateFirst: true}},
	{"bottom", style.Pose{RotateX: -90, RotateFirst: true}},
}

// Cube is a six-faced box that spins on its own and can be dragged.
type Cube struct {
	cfg CubeConfig
	src policy.Source

	mu   sync.Mutex
	rotX float64
	rotY float64
	ptr  hoverDrag
	play *autoplay
}

// NewCube creates an unmounted cube.
func NewCube(cfg CubeConfig, sched frame.Scheduler, src policy.Source) *Cube {
	c := &Cube{cfg: cfg, src: src}
	c.play = newAutoplay(&c.mu, sched, src, CubeInterval, c.step, func() bool {
		return c.cfg.AutoRotate && !c.ptr.hovered && !c.ptr.dragging
	})
	return c
}

// SetBounds sets the cube's box in window coordinates.
func (c *Cube) SetBounds(r style.Rect) {
	c.mu.Lock()
	c.ptr.bounds = r
	c.mu.Unlock()
}

// Mount starts autoplay.
func (c *Cube) Mount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.play.mountLocked()
}

// Unmount stops autoplay.
func (c *Cube) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.play.unmountLocked()
}

func (c *Cube) step(time.Duration) {
	c.rotX = style.NormalizeDeg(c.rotX + CubeStepX)
	c.rotY = style.NormalizeDeg(c.rotY + CubeStepY)
}

// HandlePointer applies a pointer event. Hovering or dragging pauses
// autoplay; dragging rotates the cube half a degree per pixel.
func (c *Cube) HandlePointer(ev gpucontext.PointerEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	dx, dy, moved := c.ptr.update(ev)
	if moved && !c.play.reduced {
		c.rotX = style.NormalizeDeg(c.rotX + dy*DragDegPerPix)
		c.rotY = style.NormalizeDeg(c.rotY - dx*DragDegPerPix)
	}
	c.play.syncLocked()
}

// Rotation returns the rotation about the X and Y axes in [0, 360).
func (c *Cube) Rotation() (x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotX, c.rotY
}

// Pose returns the pose of the cube body.
func (c *Cube) Pose() style.Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return style.Pose{RotateX: c.rotX, RotateY: c.rotY}
}

// Render returns the cube, or a single static face under reduced motion.
func (c *Cube) Render() style.Element {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.cfg.Size
	if reducedMotion(c.src) {
		face := style.Div("cube-face", size(s, s).
			Set("border", "1px solid "+c.cfg.GlowColor).
			Set("background", "#000"),
			span("cube-label", "3D CUBE"))
		return style.Div("cube cube-reduced", size(s, s), face)
	}

	transition := "transform 0.2s ease-out"
	if c.ptr.dragging {
		transition = "none"
	}
	body := style.Div("cube-body", preserve3D(size(s, s)).
		Set("transform", style.Transform(style.Pose{RotateX: c.rotX, RotateY: c.rotY})).
		Set("transition", transition))

	shadow := "drop-shadow(0 0 " + style.Px(c.cfg.GlowIntensity) + " " + c.cfg.GlowColor + ")"
	for i, f := range cubeFaces {
		pose := f.pose
		pose.TranslateZ = s / 2
		content := style.Div("cube-face-content", nil, span("cube-label", strings.ToUpper(f.name)))
		if i < len(c.cfg.Faces) {
			content = c.cfg.Faces[i]
		}
		body.Children = append(body.Children, style.Div("cube-face cube-face-"+f.name,
			preserve3D(size(s, s)).
				Set("position", "absolute").
				Set("transform", style.Transform(pose)).
				Set("filter", shadow),
			content))
	}

	root := style.Div("cube", perspective(s*3), body)
	if c.ptr.hovered {
		root.Children = append(root.Children, style.Element{Tag: "div", Class: "cube-hint", Text: "DRAG TO ROTATE"})
	}
	return root
}
