package css3d

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/fx/frame"
	"github.com/gogpu/fx/policy"
	"github.com/gogpu/fx/style"
)

// Text3D tuning.
const (
	Text3DInterval = 50 * time.Millisecond
	Text3DMaxTilt  = 20
)

// Text3DConfig configures a Text3D.
type Text3DConfig struct {
	Text string
	// Depth is the number of stacked copies, one pixel apart.
	Depth         int
	Color         style.Color
	GlowColor     style.Color
	GlowIntensity float64
	// Animated sways the text while the pointer is away.
	Animated    bool
	Interactive bool
	FontSize    float64
}

// DefaultText3DConfig returns the standard green extruded text.
func DefaultText3DConfig(text string) Text3DConfig {
	green := style.MustColor("#00ff41")
	return Text3DConfig{
		Text: text, Depth: 10, Color: green, GlowColor: green, GlowIntensity: 5,
		Animated: true, Interactive: true, FontSize: 48,
	}
}

// restingText3D is the pose before any animation or pointer input.
var restingText3D = style.Pose{RotateX: 10, RotateY: -20}

// Text3D extrudes text by stacking fading copies along Z.
type Text3D struct {
	cfg Text3DConfig
	src policy.Source

	mu   sync.Mutex
	pose style.Pose
	ptr  hoverDrag
	play *autoplay
}

// NewText3D creates unmounted 3D text.
func NewText3D(cfg Text3DConfig, sched frame.Scheduler, src policy.Source) *Text3D {
	t := &Text3D{cfg: cfg, src: src, pose: restingText3D}
	t.play = newAutoplay(&t.mu, sched, src, Text3DInterval, t.sway, func() bool {
		return t.cfg.Animated && !t.ptr.hovered
	})
	return t
}

// SwayPose returns the idle pose at time now.
func SwayPose(now time.Duration) style.Pose {
	ms := float64(now.Milliseconds())
	return style.Pose{RotateX: math.Sin(ms/2000) * 10, RotateY: math.Cos(ms/3000) * 20}
}

func (t *Text3D) sway(now time.Duration) {
	t.pose = SwayPose(now)
}

// SetBounds sets the text's box in window coordinates.
func (t *Text3D) SetBounds(r style.Rect) {
	t.mu.Lock()
	t.ptr.bounds = r
	t.mu.Unlock()
}

// Mount starts the idle sway.
func (t *Text3D) Mount() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.play.mountLocked()
}

// Unmount stops the idle sway.
func (t *Text3D) Unmount() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.play.unmountLocked()
}

// HandlePointer tilts the text toward the pointer by up to 20 degrees.
// Hovering pauses the sway.
func (t *Text3D) HandlePointer(ev gpucontext.PointerEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ptr.update(ev)
	t.ptr.dragging = false
	if t.cfg.Interactive && t.ptr.hovered && ev.Type == gpucontext.PointerMove && !t.play.reduced {
		rx, ry := tilt(t.ptr.bounds, ev.X, ev.Y, Text3DMaxTilt)
		// Pointer below center tips the top away.
		t.pose = style.Pose{RotateX: -rx, RotateY: ry}
	}
	t.play.syncLocked()
}

// Pose returns the current pose. It stays at rest under reduced motion.
func (t *Text3D) Pose() style.Pose {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.poseLocked()
}

func (t *Text3D) poseLocked() style.Pose {
	if reducedMotion(t.src) {
		return restingText3D
	}
	return t.pose
}

// Render returns the stack of text copies.
func (t *Text3D) Render() style.Element {
	t.mu.Lock()
	defer t.mu.Unlock()

	transition := "transform 0.5s ease-out"
	if t.ptr.hovered {
		transition = "none"
	}
	body := style.Div("text3d-body", preserve3D(style.Style{
		{Property: "position", Value: "relative"},
		{Property: "display", Value: "inline-block"},
	}).
		Set("transform", style.Transform(t.poseLocked())).
		Set("transition", transition).
		Set("font-size", style.Px(t.cfg.FontSize)).
		Set("font-family", "monospace").
		Set("font-weight", "bold").
		Set("text-shadow", "0 0 "+style.Px(t.cfg.GlowIntensity)+" "+t.cfg.GlowColor.Hex()))

	for i, c := range TextLayerColors(t.cfg.Color, t.cfg.Depth) {
		body.Children = append(body.Children, style.Element{
			Tag:   "div",
			Class: "text3d-layer",
			Style: style.Style{
				{Property: "position", Value: "absolute"},
				{Property: "inset", Value: "0"},
				{Property: "transform", Value: style.Transform(style.Pose{TranslateZ: -float64(i)})},
				{Property: "z-index", Value: strconv.Itoa(i)},
				{Property: "color", Value: c},
			},
			Text: t.cfg.Text,
		})
	}
	return style.Div("text3d", perspective(1000), body)
}

// TextLayerColors returns the color of each of depth copies. The front
// copy is c itself; copy i has opacity 1-i/depth as a hex alpha suffix.
func TextLayerColors(c style.Color, depth int) []string {
	out := make([]string, depth)
	for i := range out {
		if i == 0 {
			out[i] = c.Hex()
			continue
		}
		out[i] = c.HexAlpha(1 - float64(i)/float64(depth))
	}
	return out
}
