package reveal

import (
	"strings"
	"sync"
	"time"

	"github.com/gogpu/fx/policy"
	"github.com/gogpu/fx/style"
)

// Text reveal timing.
const (
	// LineStagger separates the start of consecutive lines.
	LineStagger = 150 * time.Millisecond
	// LineDuration is how long one line takes to slide in.
	LineDuration = 800 * time.Millisecond
	// textFade is the container opacity transition.
	textFade = 300 * time.Millisecond
)

// TextConfig configures a TextReveal.
type TextConfig struct {
	// Text is split into lines on "\n".
	Text string
	// Tag is the element that wraps each line, such as "p" or "h2".
	Tag       string
	Delay     time.Duration
	Threshold float64
	Once      bool
}

// DefaultTextConfig returns a paragraph reveal that fires once at 20%
// visibility.
func DefaultTextConfig(text string) TextConfig {
	return TextConfig{Text: text, Tag: "p", Threshold: 0.2, Once: true}
}

// TextReveal slides each line of a text up from below its own clip box,
// one after another.
type TextReveal struct {
	cfg   TextConfig
	src   policy.Source
	lines []string

	mu   sync.Mutex
	trig trigger
	// fromY and fromOpacity hold the state when the trigger last changed.
	fromY       []float64
	fromOpacity float64
}

// NewTextReveal creates a hidden text reveal. src may be nil.
func NewTextReveal(cfg TextConfig, src policy.Source) *TextReveal {
	t := &TextReveal{
		cfg:   cfg,
		src:   src,
		lines: strings.Split(cfg.Text, "\n"),
		trig:  trigger{threshold: cfg.Threshold, once: cfg.Once},
	}
	t.fromY = make([]float64, len(t.lines))
	for i := range t.fromY {
		t.fromY[i] = t.hiddenY()
	}
	return t
}

// Lines returns the text lines.
func (t *TextReveal) Lines() []string { return t.lines }

// Visible reports whether the text has come into view.
func (t *TextReveal) Visible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.trig.visible
}

// LineDelay returns when line i starts after the reveal fires. Lines are
// not staggered under reduced motion.
func (t *TextReveal) LineDelay(i int) time.Duration {
	if reducedMotion(t.src) {
		return t.cfg.Delay
	}
	return t.cfg.Delay + time.Duration(i)*LineStagger
}

// Observe records the intersection ratio and reports whether the reveal
// state changed.
func (t *TextReveal) Observe(ratio float64, now time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	ys := make([]float64, len(t.lines))
	for i := range ys {
		ys[i] = t.lineYLocked(i, now)
	}
	op := t.opacityLocked(now)
	if !t.trig.observe(ratio, now) {
		return false
	}
	t.fromY, t.fromOpacity = ys, op
	return true
}

// LineY returns the vertical offset of line i at now, in percent of the
// line height. Hidden lines sit at 100.
func (t *TextReveal) LineY(i int, now time.Duration) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lineYLocked(i, now)
}

// Opacity returns the container opacity at now.
func (t *TextReveal) Opacity(now time.Duration) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.opacityLocked(now)
}

func (t *TextReveal) hiddenY() float64 {
	if reducedMotion(t.src) {
		return 0
	}
	return 100
}

func (t *TextReveal) lineYLocked(i int, now time.Duration) float64 {
	from := t.hiddenY()
	if i >= 0 && i < len(t.fromY) {
		from = t.fromY[i]
	}
	if reducedMotion(t.src) {
		from = 0
	}
	to, delay, dur := t.hiddenY(), time.Duration(0), LineDuration
	if t.trig.visible {
		to, delay = 0, t.LineDelay(i)
	}
	if reducedMotion(t.src) {
		dur = ReducedDuration
	}
	p := RevealEase.At(progress(now, t.trig.at, delay, dur))
	return from + (to-from)*p
}

func (t *TextReveal) opacityLocked(now time.Duration) float64 {
	to := 0.0
	if t.trig.visible {
		to = 1
	}
	p := EaseOut.At(progress(now, t.trig.at, 0, textFade))
	return t.fromOpacity + (to-t.fromOpacity)*p
}

// Render returns the text with each line in its own clip box. The boxes
// do not clip under reduced motion.
func (t *TextReveal) Render(now time.Duration) style.Element {
	reduced := reducedMotion(t.src)
	root := style.Div("text-reveal", style.Style{
		{Property: "opacity", Value: style.Num(t.Opacity(now))},
	})
	tag := t.cfg.Tag
	if tag == "" {
		tag = "p"
	}
	for i, line := range t.lines {
		var box style.Style
		if !reduced {
			box = style.Style{{Property: "overflow", Value: "hidden"}}
		}
		slide := style.Div("text-reveal-slide", style.Style{
			{Property: "transform", Value: "translateY(" + style.Num(t.LineY(i, now)) + "%)"},
		}, style.Element{Tag: tag, Class: "block", Text: line})
		root.Children = append(root.Children, style.Div("text-reveal-line", box, slide))
	}
	return root
}
