package css3d

import (
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/fx/policy"
	"github.com/gogpu/fx/style"
)

// CardConfig configures a Card.
type CardConfig struct {
	Width, Height float64
	// Depth is the thickness of the side faces.
	Depth         float64
	BorderColor   string
	GlowColor     string
	GlowIntensity float64
	// RotationFactor is the tilt in degrees at the card edge.
	RotationFactor float64
	Content        style.Element
}

// DefaultCardConfig returns the standard 300×400 card.
func DefaultCardConfig() CardConfig {
	return CardConfig{
		Width: 300, Height: 400, Depth: 30,
		BorderColor: "#00ff41", GlowColor: "#00ff41", GlowIntensity: 5,
		RotationFactor: 10,
	}
}

// Card is a slab that tilts toward the pointer.
type Card struct {
	cfg CardConfig
	src policy.Source

	mu      sync.Mutex
	bounds  style.Rect
	hovered bool
	rotX    float64
	rotY    float64
}

// NewCard creates a card.
func NewCard(cfg CardConfig, src policy.Source) *Card {
	return &Card{cfg: cfg, src: src}
}

// SetBounds sets the card's box in window coordinates. Tilt is computed
// against these bounds.
func (c *Card) SetBounds(r style.Rect) {
	c.mu.Lock()
	c.bounds = r
	c.mu.Unlock()
}

// HandlePointer tilts the card toward a pointer inside it and resets it
// when the pointer leaves.
func (c *Card) HandlePointer(ev gpucontext.PointerEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	inside := !c.bounds.Empty() && c.bounds.Contains(ev.X, ev.Y)
	leaving := ev.Type == gpucontext.PointerLeave || ev.Type == gpucontext.PointerCancel
	if leaving || !inside {
		c.hovered, c.rotX, c.rotY = false, 0, 0
		return
	}
	c.hovered = true
	if reducedMotion(c.src) {
		return
	}
	c.rotX, c.rotY = tilt(c.bounds, ev.X, ev.Y, c.cfg.RotationFactor)
}

// Pose returns the card pose. It is the identity under reduced motion.
func (c *Card) Pose() style.Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.poseLocked()
}

func (c *Card) poseLocked() style.Pose {
	if reducedMotion(c.src) {
		return style.Pose{}
	}
	return style.Pose{RotateX: c.rotX, RotateY: c.rotY}
}

// Render returns the card with its four side faces.
func (c *Card) Render() style.Element {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, h, d := c.cfg.Width, c.cfg.Height, c.cfg.Depth
	border := "1px solid " + c.cfg.BorderColor
	glow := "none"
	if c.hovered {
		glow = "0 0 " + style.Px(c.cfg.GlowIntensity) + " " + c.cfg.GlowColor
	}

	side := func(class string, sw, sh string, pose style.Pose, edge, offset string, edges ...string) style.Element {
		st := style.Style{
			{Property: "position", Value: "absolute"},
			{Property: "background", Value: "#000"},
			{Property: "width", Value: sw},
			{Property: "height", Value: sh},
			{Property: "transform", Value: style.Transform(pose)},
			{Property: edge, Value: offset},
		}
		for _, e := range edges {
			st = st.Set(e, border)
		}
		return style.Div("card-side "+class, st)
	}
	half := style.Px(-d / 2)

	front := style.Div("card-front", style.Style{
		{Property: "position", Value: "absolute"},
		{Property: "inset", Value: "0"},
		{Property: "background", Value: "#000"},
	})
	if !c.cfg.Content.IsZero() {
		front.Children = append(front.Children, c.cfg.Content)
	}

	body := style.Div("card-body", preserve3D(style.Style{
		{Property: "position", Value: "relative"},
		{Property: "width", Value: "100%"},
		{Property: "height", Value: "100%"},
	}).
		Set("transform", style.Transform(c.poseLocked())).
		Set("transition", "transform 0.1s ease-out").
		Set("box-shadow", glow).
		Set("border", border),
		front,
		side("card-top", "100%", style.Px(d), style.Pose{RotateX: 90, TranslateZ: h / 2, RotateFirst: true},
			"top", half, "border-left", "border-right"),
		side("card-bottom", "100%", style.Px(d), style.Pose{RotateX: 90, TranslateZ: -h / 2, RotateFirst: true},
			"bottom", half, "border-left", "border-right"),
		side("card-right", style.Px(d), "100%", style.Pose{RotateY: 90, TranslateZ: w / 2, RotateFirst: true},
			"right", half, "border-top", "border-bottom"),
		side("card-left", style.Px(d), "100%", style.Pose{RotateY: 90, TranslateZ: -w / 2, RotateFirst: true},
			"left", half, "border-top", "border-bottom"),
	)
	return style.Div("card", perspective(1000).Merge(size(w, h)), body)
}
