package css3d

import (
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/fx/policy"
	"github.com/gogpu/fx/style"
)

// TiltConfig configures a TiltCard.
type TiltConfig struct {
	Perspective float64
	// Scale is the card scale while hovered.
	Scale float64
	// Speed is the tilt transition in milliseconds.
	Speed float64
	// Max is the largest tilt in degrees on either axis.
	Max          float64
	GlareOpacity float64
	// Border draws an outline that brightens on hover. BorderGradient
	// replaces it with an animated gradient.
	Border         bool
	BorderColor    string
	BorderWidth    float64
	BorderGradient bool
	// Disabled ignores pointer input.
	Disabled bool
	Content  style.Element
}

// DefaultTiltConfig returns a 15 degree tilt with a faint glare.
func DefaultTiltConfig() TiltConfig {
	return TiltConfig{
		Perspective:  1000,
		Scale:        1.05,
		Speed:        500,
		Max:          15,
		GlareOpacity: 0.2,
		BorderColor:  "rgba(255, 255, 255, 0.2)",
		BorderWidth:  1,
	}
}

const (
	borderGradient = "linear-gradient(45deg, #FF3366, #FF00FF, #9900FF, #00FFFF, #00FF99)"
	glareGradient  = "linear-gradient(125deg, rgba(255,255,255,0.3) 0%, rgba(255,255,255,0) 60%)"
)

// TiltCard tilts its content toward the pointer, grows while hovered and
// shows a glare. Under reduced motion it only shows the glare.
type TiltCard struct {
	cfg TiltConfig
	src policy.Source

	mu      sync.Mutex
	bounds  style.Rect
	hovered bool
	rotX    float64
	rotY    float64
}

// NewTiltCard creates a tilt card. src may be nil.
func NewTiltCard(cfg TiltConfig, src policy.Source) *TiltCard {
	return &TiltCard{cfg: cfg, src: src}
}

// SetBounds sets the card's box in window coordinates.
func (c *TiltCard) SetBounds(r style.Rect) {
	c.mu.Lock()
	c.bounds = r
	c.mu.Unlock()
}

// Hovered reports whether the pointer is over the card.
func (c *TiltCard) Hovered() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hovered
}

// HandlePointer applies ev. Entering starts the hover, moving tilts the
// card and leaving resets it.
func (c *TiltCard) HandlePointer(ev gpucontext.PointerEvent) {
	if c.cfg.Disabled {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Type {
	case gpucontext.PointerEnter:
		c.hovered = true
	case gpucontext.PointerMove:
		c.hovered = true
		x, y := tilt(c.bounds, ev.X, ev.Y, c.cfg.Max)
		c.rotX, c.rotY = clampAbs(x, c.cfg.Max), clampAbs(y, c.cfg.Max)
	case gpucontext.PointerLeave, gpucontext.PointerCancel:
		c.hovered, c.rotX, c.rotY = false, 0, 0
	}
}

// Pose returns the tilt and hover scale of the card.
func (c *TiltCard) Pose() style.Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.poseLocked()
}

func (c *TiltCard) poseLocked() style.Pose {
	if reducedMotion(c.src) {
		return style.Pose{}
	}
	p := style.Pose{RotateX: c.rotX, RotateY: c.rotY, Scale: 1}
	if c.hovered {
		p.Scale = c.cfg.Scale
	}
	return p
}

// Render returns the card. The outer box carries the hover scale and the
// inner box the tilt.
func (c *TiltCard) Render() style.Element {
	c.mu.Lock()
	defer c.mu.Unlock()

	pose := c.poseLocked()
	reduced := reducedMotion(c.src)

	content := style.Div("tilt-card-content", preserve3D(style.Style{
		{Property: "position", Value: "relative"},
		{Property: "width", Value: "100%"},
		{Property: "height", Value: "100%"},
		{Property: "transform", Value: style.Transform(style.Pose{RotateX: pose.RotateX, RotateY: pose.RotateY})},
		{Property: "transition", Value: "transform " + style.Seconds(c.cfg.Speed/1000)},
	}))

	if c.cfg.Border {
		opacity := 0.5
		if c.hovered {
			opacity = 1
		}
		st := style.Style{
			{Property: "position", Value: "absolute"},
			{Property: "inset", Value: "0"},
			{Property: "pointer-events", Value: "none"},
			{Property: "opacity", Value: style.Num(opacity)},
		}
		if c.cfg.BorderGradient {
			st = st.Set("background", borderGradient).Set("background-size", "400% 400%")
			if !reduced {
				st = st.Set("animation", borderShift+" 3s ease infinite")
			}
		} else {
			st = st.Set("border", style.Px(c.cfg.BorderWidth)+" solid "+c.cfg.BorderColor)
		}
		content.Children = append(content.Children, style.Div("tilt-card-border", st))
	}
	if c.hovered {
		content.Children = append(content.Children, style.Div("tilt-card-glare", style.Style{
			{Property: "position", Value: "absolute"},
			{Property: "inset", Value: "0"},
			{Property: "background", Value: glareGradient},
			{Property: "opacity", Value: style.Num(c.cfg.GlareOpacity)},
			{Property: "transform", Value: "translateZ(1px)"},
			{Property: "pointer-events", Value: "none"},
		}))
	}
	body := style.Div("tilt-card-body", style.Style{
		{Property: "position", Value: "relative"},
		{Property: "height", Value: "100%"},
	})
	if !c.cfg.Content.IsZero() {
		body.Children = append(body.Children, c.cfg.Content)
	}
	content.Children = append(content.Children, body)

	return style.Div("tilt-card", preserve3D(style.Style{
		{Property: "position", Value: "relative"},
		{Property: "overflow", Value: "hidden"},
		{Property: "perspective", Value: style.Px(c.cfg.Perspective)},
		{Property: "transform", Value: style.Transform(style.Pose{Scale: pose.Scale})},
	}), content)
}

func clampAbs(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
