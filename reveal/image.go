package reveal

import (
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/fx/policy"
	"github.com/gogpu/fx/style"
)

// ImageEffect selects how a RevealImage enters.
type ImageEffect int

// Image effects.
const (
	ImageFade ImageEffect = iota
	ImageSlide
	ImageZoom
	ImageClip
	ImageBlur
)

var imageEffectNames = [...]string{
	ImageFade:  "fade",
	ImageSlide: "slide",
	ImageZoom:  "zoom",
	ImageClip:  "clip",
	ImageBlur:  "blur",
}

func (e ImageEffect) String() string {
	if e >= 0 && int(e) < len(imageEffectNames) {
		return imageEffectNames[e]
	}
	return fmt.Sprintf("ImageEffect(%d)", int(e))
}

// ParseImageEffect returns the image effect with the given name.
func ParseImageEffect(s string) (ImageEffect, error) {
	for i, name := range imageEffectNames {
		if name == s {
			return ImageEffect(i), nil
		}
	}
	return ImageFade, fmt.Errorf("reveal: unknown image effect %q", s)
}

// hidden returns the state an image enters from.
func (e ImageEffect) hidden() Frame {
	f := Frame{Scale: 1}
	switch e {
	case ImageSlide:
		f.Y = revealDistance
	case ImageZoom:
		f.Scale = 1.2
	case ImageClip:
		f.Opacity, f.Clip, f.ClipTop = 1, true, 100
	case ImageBlur:
		f.Blur = 10
	}
	return f
}

func (e ImageEffect) visible() Frame {
	return Frame{Opacity: 1, Scale: 1, Clip: e == ImageClip}
}

// ImageDuration is the length of a full-motion image reveal.
const ImageDuration = 800 * time.Millisecond

// ImageConfig configures a RevealImage.
type ImageConfig struct {
	Effect    ImageEffect
	Delay     time.Duration
	Threshold float64
	Once      bool
}

// DefaultImageConfig returns a clip reveal that fires once at 20%
// visibility.
func DefaultImageConfig() ImageConfig {
	return ImageConfig{Effect: ImageClip, Threshold: 0.2, Once: true}
}

// RevealImage animates an image into view. Under reduced motion every
// effect becomes a plain fade.
type RevealImage struct {
	cfg ImageConfig
	src policy.Source

	mu   sync.Mutex
	trig trigger
	from Frame
}

// NewRevealImage creates a hidden image reveal. src may be nil.
func NewRevealImage(cfg ImageConfig, src policy.Source) *RevealImage {
	r := &RevealImage{cfg: cfg, src: src, trig: trigger{threshold: cfg.Threshold, once: cfg.Once}}
	r.from = r.hidden()
	return r
}

// Visible reports whether the image has come into view.
func (r *RevealImage) Visible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.trig.visible
}

// Observe records the intersection ratio and reports whether the reveal
// state changed.
func (r *RevealImage) Observe(ratio float64, now time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.sampleLocked(now)
	if !r.trig.observe(ratio, now) {
		return false
	}
	r.from = cur
	return true
}

// Sample returns the image state at now.
func (r *RevealImage) Sample(now time.Duration) Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sampleLocked(now)
}

func (r *RevealImage) hidden() Frame {
	if reducedMotion(r.src) {
		return Frame{Scale: 1}
	}
	return r.cfg.Effect.hidden()
}

func (r *RevealImage) sampleLocked(now time.Duration) Frame {
	from, to := r.from, r.hidden()
	var delay time.Duration
	if r.trig.visible {
		to, delay = r.cfg.Effect.visible(), r.cfg.Delay
	}
	dur, ease := ImageDuration, RevealEase
	if reducedMotion(r.src) {
		from, to = opacityOnly(from), opacityOnly(to)
		dur, ease = ReducedDuration, EaseOut
	}
	return mix(from, to, ease.At(progress(now, r.trig.at, delay, dur)))
}

// Render wraps the image in a container styled with its state at now.
// The container clips overflow unless motion is reduced.
func (r *RevealImage) Render(img style.Element, now time.Duration) style.Element {
	var outer style.Style
	if !reducedMotion(r.src) {
		outer = style.Style{{Property: "overflow", Value: "hidden"}}
	}
	inner := style.Div("reveal-image-content", r.Sample(now).Style().
		Set("width", "100%").
		Set("height", "100%"), img)
	return style.Div("reveal-image reveal-image-"+r.cfg.Effect.String(), outer, inner)
}
