package css3d

import (
	"sync"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/fx/frame"
	"github.com/gogpu/fx/policy"
	"github.com/gogpu/fx/style"
)

// SceneInterval is the autoplay period of a Scene.
const SceneInterval = 16 * time.Millisecond

// SceneConfig configures a Scene.
type SceneConfig struct {
	// Depth is the CSS perspective distance.
	Depth       float64
	Interactive bool
	AutoRotate  bool
	// RotationSpeed is degrees about Y per autoplay tick.
	RotationSpeed float64
	Children      []style.Element
}

// DefaultSceneConfig returns an interactive, still scene.
func DefaultSceneConfig(children ...style.Element) SceneConfig {
	return SceneConfig{Depth: 1000, Interactive: true, RotationSpeed: 0.1, Children: children}
}

// Scene is a perspective container whose content can be dragged around
// or left to spin.
type Scene struct {
	cfg SceneConfig
	src policy.Source

	mu   sync.Mutex
	rotX float64
	rotY float64
	ptr  hoverDrag
	play *autoplay
}

// NewScene creates an unmounted scene.
func NewScene(cfg SceneConfig, sched frame.Scheduler, src policy.Source) *Scene {
	s := &Scene{cfg: cfg, src: src}
	s.play = newAutoplay(&s.mu, sched, src, SceneInterval, func(time.Duration) {
		s.rotY = style.NormalizeDeg(s.rotY + s.cfg.RotationSpeed)
	}, func() bool {
		return s.cfg.AutoRotate && !s.ptr.hovered && !s.ptr.dragging
	})
	return s
}

// SetBounds sets the scene's box in window coordinates.
func (s *Scene) SetBounds(r style.Rect) {
	s.mu.Lock()
	s.ptr.bounds = r
	s.mu.Unlock()
}

// Mount starts autoplay.
func (s *Scene) Mount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.play.mountLocked()
}

// Unmount stops autoplay.
func (s *Scene) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.play.unmountLocked()
}

// HandlePointer drags the scene when it is interactive.
func (s *Scene) HandlePointer(ev gpucontext.PointerEvent) {
	if !s.cfg.Interactive {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	dx, dy, moved := s.ptr.update(ev)
	if moved && !s.play.reduced {
		s.rotX = style.NormalizeDeg(s.rotX + dy*DragDegPerPix)
		s.rotY = style.NormalizeDeg(s.rotY - dx*DragDegPerPix)
	}
	s.play.syncLocked()
}

// Pose returns the content pose.
func (s *Scene) Pose() style.Pose {
	s.mu.Lock()
	defer s.mu.Unlock()
	return style.Pose{RotateX: s.rotX, RotateY: s.rotY}
}

// Render returns the scene and, while hovered, a usage hint.
func (s *Scene) Render() style.Element {
	s.mu.Lock()
	defer s.mu.Unlock()

	transition := "transform 0.3s ease-out"
	if s.ptr.dragging {
		transition = "none"
	}
	content := style.Div("scene-content", preserve3D(style.Style{
		{Property: "width", Value: "100%"},
		{Property: "height", Value: "100%"},
	}).
		Set("transform", style.Transform(style.Pose{RotateX: s.rotX, RotateY: s.rotY})).
		Set("transition", transition),
		s.cfg.Children...)

	root := style.Div("scene", perspective(s.cfg.Depth), content)
	if s.cfg.Interactive && s.ptr.hovered {
		hint := "CLICK AND DRAG TO ROTATE"
		if s.ptr.dragging {
			hint = "ROTATING"
		}
		root.Children = append(root.Children, style.Element{Tag: "div", Class: "scene-hint", Text: hint})
	}
	return root
}
