package reveal

import (
	"strconv"

	"github.com/gogpu/fx/policy"
	"github.com/gogpu/fx/style"
)

// ParallaxConfig configures a ParallaxSection.
type ParallaxConfig struct {
	// Speed scales the offset; 1 moves content 100px across the section.
	Speed     float64
	Direction Direction
	// Offset is added to the moving axis.
	Offset float64
	ZIndex int
}

// DefaultParallaxConfig returns a slow upward drift.
func DefaultParallaxConfig() ParallaxConfig {
	return ParallaxConfig{Speed: 0.2, Direction: Up}
}

// ParallaxSection shifts its content as the section scrolls through the
// viewport.
type ParallaxSection struct {
	cfg ParallaxConfig
	src policy.Source
}

// NewParallaxSection creates a parallax section. src may be nil.
func NewParallaxSection(cfg ParallaxConfig, src policy.Source) *ParallaxSection {
	return &ParallaxSection{cfg: cfg, src: src}
}

// Enabled reports whether the policy allows parallax motion.
func (p *ParallaxSection) Enabled() bool {
	return parallaxEnabled(p.src)
}

// Offset returns the content translation at scroll progress in [0, 1].
// Up and Left move toward negative coordinates.
func (p *ParallaxSection) Offset(progress float64) (x, y float64) {
	if !p.Enabled() {
		return 0, 0
	}
	v := p.cfg.Offset + clamp01(progress)*100*p.cfg.Speed*sign(p.cfg.Direction)
	switch p.cfg.Direction {
	case Up, Down:
		return 0, v
	case Left, Right:
		return v, 0
	}
	return 0, 0
}

// Render returns the clipped section with child offset for progress.
func (p *ParallaxSection) Render(child style.Element, progress float64) style.Element {
	x, y := p.Offset(progress)
	inner := style.Div("parallax-content", style.Style{
		{Property: "width", Value: "100%"},
		{Property: "height", Value: "100%"},
		{Property: "transform", Value: style.Transform(style.Pose{TranslateX: x, TranslateY: y})},
		{Property: "z-index", Value: strconv.Itoa(p.cfg.ZIndex)},
	}, child)
	return style.Div("parallax-section", style.Style{
		{Property: "position", Value: "relative"},
		{Property: "overflow", Value: "hidden"},
	}, inner)
}

// ParallaxTextConfig configures a ParallaxText.
type ParallaxTextConfig struct {
	Speed float64
	// Direction is Up or Down.
	Direction Direction
	// Delay is the CSS transition delay in seconds.
	Delay float64
}

// DefaultParallaxTextConfig returns a slow upward drift.
func DefaultParallaxTextConfig() ParallaxTextConfig {
	return ParallaxTextConfig{Speed: 0.2, Direction: Up}
}

// ParallaxText drifts vertically with scroll and fades in and out at the
// ends of its section.
type ParallaxText struct {
	cfg ParallaxTextConfig
	src policy.Source
}

// NewParallaxText creates parallax text. src may be nil.
func NewParallaxText(cfg ParallaxTextConfig, src policy.Source) *ParallaxText {
	return &ParallaxText{cfg: cfg, src: src}
}

// Y returns the vertical offset at scroll progress.
func (p *ParallaxText) Y(progress float64) float64 {
	if !parallaxEnabled(p.src) {
		return 0
	}
	d := 100 * p.cfg.Speed
	if p.cfg.Direction == Up {
		d = -d
	}
	return clamp01(progress) * d
}

// TextOpacity returns the opacity of parallax text at scroll progress. It
// ramps from 0.4 to 1 over the first fifth of the section and back over
// the last fifth. Opacity follows scroll even under reduced motion.
func TextOpacity(progress float64) float64 {
	p := clamp01(progress)
	switch {
	case p < 0.2:
		return 0.4 + 0.6*p/0.2
	case p > 0.8:
		return 1 - 0.6*(p-0.8)/0.2
	}
	return 1
}

// Render returns the text container for progress.
func (p *ParallaxText) Render(child style.Element, progress float64) style.Element {
	delay := p.cfg.Delay
	if reducedMotion(p.src) {
		delay = 0
	}
	inner := style.Div("parallax-text-content", style.Style{
		{Property: "transform", Value: style.Transform(style.Pose{TranslateY: p.Y(progress)})},
		{Property: "opacity", Value: style.Num(TextOpacity(progress))},
		{Property: "transition-delay", Value: style.Seconds(delay)},
	}, child)
	return style.Div("parallax-text", style.Style{
		{Property: "position", Value: "relative"},
		{Property: "overflow", Value: "visible"},
	}, inner)
}

// ParallaxImageConfig configures a ParallaxImage.
type ParallaxImageConfig struct {
	// Height is the image height in CSS pixels.
	Height float64
	// Speed is the fraction of Height the image rises over the scroll.
	Speed float64
}

// DefaultParallaxImageConfig returns a 300px image rising at 0.3.
func DefaultParallaxImageConfig() ParallaxImageConfig {
	return ParallaxImageConfig{Height: 300, Speed: 0.3}
}

// ParallaxImage moves an image up within its clip box as the box scrolls
// from the bottom of the viewport to the top.
type ParallaxImage struct {
	cfg ParallaxImageConfig
	src policy.Source
}

// NewParallaxImage creates a parallax image. src may be nil.
func NewParallaxImage(cfg ParallaxImageConfig, src policy.Source) *ParallaxImage {
	return &ParallaxImage{cfg: cfg, src: src}
}

// Y returns the image offset at scroll progress in [0, 1]. It reaches
// -Height*Speed at 1, and stays 0 when parallax is off.
func (p *ParallaxImage) Y(progress float64) float64 {
	if !parallaxEnabled(p.src) {
		return 0
	}
	return clamp01(progress) * p.cfg.Height * p.cfg.Speed * -1
}

// Render returns the clip box with img offset for progress.
func (p *ParallaxImage) Render(img style.Element, progress float64) style.Element {
	inner := style.Div("parallax-image-content", style.Style{
		{Property: "position", Value: "relative"},
		{Property: "width", Value: "100%"},
		{Property: "height", Value: "100%"},
		{Property: "transform", Value: style.Transform(style.Pose{TranslateY: p.Y(progress)})},
	}, img)
	return style.Div("parallax-image", style.Style{
		{Property: "position", Value: "relative"},
		{Property: "overflow", Value: "hidden"},
	}, inner)
}

func parallaxEnabled(src policy.Source) bool {
	if src == nil {
		return true
	}
	f := src.Flags()
	return f.UseParallaxEffects && !f.UseReducedMotion
}

func sign(d Direction) float64 {
	if d == Down || d == Right {
		return 1
	}
	return -1
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
