package css3d

import (
	"sync"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/fx/frame"
	"github.com/gogpu/fx/policy"
	"github.com/gogpu/fx/style"
)

// Hologram spin tuning.
const (
	HologramStep     = 0.5
	HologramInterval = 50 * time.Millisecond
	HologramHover    = 1.1
)

// HologramConfig configures a Hologram.
type HologramConfig struct {
	Size          float64
	GlowColor     string
	GlowIntensity float64
	Animated      bool
	// ScanlineSpeed is the scan line scroll period in seconds.
	ScanlineSpeed float64
	Content       style.Element
}

// DefaultHologramConfig returns the standard cyan hologram.
func DefaultHologramConfig(content style.Element) HologramConfig {
	return HologramConfig{
		Size: 300, GlowColor: "#00ffff", GlowIntensity: 10,
		Animated: true, ScanlineSpeed: 2, Content: content,
	}
}

// Hologram spins its content above a glowing base, with scan lines and
// an occasional flicker.
type Hologram struct {
	cfg HologramConfig
	src policy.Source

	mu       sync.Mutex
	rotation float64
	ptr      hoverDrag
	play     *autoplay
}

// NewHologram creates an unmounted hologram.
func NewHologram(cfg HologramConfig, sched frame.Scheduler, src policy.Source) *Hologram {
	h := &Hologram{cfg: cfg, src: src}
	h.play = newAutoplay(&h.mu, sched, src, HologramInterval, func(time.Duration) {
		h.rotation = style.NormalizeDeg(h.rotation + HologramStep)
	}, func() bool { return h.cfg.Animated })
	return h
}

// SetBounds sets the hologram's box in window coordinates.
func (h *Hologram) SetBounds(r style.Rect) {
	h.mu.Lock()
	h.ptr.bounds = r
	h.mu.Unlock()
}

// Mount starts the spin.
func (h *Hologram) Mount() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.play.mountLocked()
}

// Unmount stops the spin.
func (h *Hologram) Unmount() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.play.unmountLocked()
}

// HandlePointer tracks hover, which enlarges the content.
func (h *Hologram) HandlePointer(ev gpucontext.PointerEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ptr.update(ev)
	h.ptr.dragging = false
}

// Pose returns the pose of the spinning content.
func (h *Hologram) Pose() style.Pose {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.poseLocked()
}

func (h *Hologram) poseLocked() style.Pose {
	p := style.Pose{RotateY: h.rotation}
	if h.ptr.hovered && !reducedMotion(h.src) {
		p.Scale = HologramHover
	}
	return p
}

// Render returns the hologram layers.
func (h *Hologram) Render() style.Element {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, glow := h.cfg.Size, h.cfg.GlowColor
	blur := "blur(" + style.Px(h.cfg.GlowIntensity/2) + ")"
	reduced := reducedMotion(h.src)

	base := style.Div("hologram-base", size(s*0.8, s*0.05).
		Set("position", "absolute").
		Set("bottom", "0").
		Set("left", "50%").
		Set("border-radius", "9999px").
		Set("background", "radial-gradient(ellipse at center, "+glow+" 0%, rgba(0,0,0,0) 70%)").
		Set("opacity", "0.7").
		Set("filter", blur).
		Set("transform", style.Transform(style.Pose{TranslateX: -s * 0.4})))

	content := style.Div("hologram-content", preserve3D(size(s*0.7, s*0.7)).
		Set("position", "relative").
		Set("transform", style.Transform(h.poseLocked())).
		Set("transition", "transform 0.3s").
		Set("filter", "drop-shadow(0 0 "+style.Px(h.cfg.GlowIntensity)+" "+glow+")"))
	if !h.cfg.Content.IsZero() {
		content.Children = append(content.Children, h.cfg.Content)
	}

	beam := style.Div("hologram-beam", size(s*0.05, s).
		Set("position", "absolute").
		Set("margin", "0 auto").
		Set("background", "linear-gradient(to bottom, rgba(0,0,0,0) 0%, "+glow+" 50%, rgba(0,0,0,0) 100%)").
		Set("opacity", "0.2").
		Set("filter", blur))

	scanAnim, flickerAnim := "none", "none"
	if !reduced {
		scanAnim = scanlineScroll + " " + style.Seconds(h.cfg.ScanlineSpeed) + " linear infinite"
		flickerAnim = hologramFlicker + " 6s infinite"
	}
	scan := style.Div("hologram-scanlines", style.Style{
		{Property: "position", Value: "absolute"},
		{Property: "inset", Value: "0"},
		{Property: "pointer-events", Value: "none"},
		{Property: "background", Value: "repeating-linear-gradient(to bottom, transparent, transparent 2px, " + glow + " 3px, transparent 4px)"},
		{Property: "opacity", Value: "0.1"},
		{Property: "background-size", Value: "100% " + style.Px(h.cfg.ScanlineSpeed*10)},
		{Property: "animation", Value: scanAnim},
	})
	flicker := style.Div("hologram-flicker", style.Style{
		{Property: "position", Value: "absolute"},
		{Property: "inset", Value: "0"},
		{Property: "pointer-events", Value: "none"},
		{Property: "background", Value: glow},
		{Property: "opacity", Value: "0"},
		{Property: "mix-blend-mode", Value: "overlay"},
		{Property: "animation", Value: flickerAnim},
	})

	stage := style.Div("hologram-stage", perspective(1000).
		Set("position", "absolute").
		Set("inset", "0").
		Set("display", "flex").
		Set("align-items", "center").
		Set("justify-content", "center"),
		content, beam, scan, flicker)
	return style.Div("hologram", size(s, s).Set("position", "relative"), base, stage)
}
