// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package reveal

import (
	"sync"
	"time"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/policy"
	"github.com/gogpu/fx/style"
)

// ReducedDuration is the length of every transition under reduced motion.
const ReducedDuration = 300 * time.Millisecond

// Config configures a Reveal.
type Config struct {
	Variant  Variant
	Duration time.Duration
	// Delay postpones the reveal after the element comes into view.
	Delay time.Duration
	// Threshold is the visible fraction of the element that triggers the
	// reveal.
	Threshold float64
	// Once keeps the element visible after the first reveal.
	Once bool
}

// DefaultConfig returns a half-second fade that fires once at 20% visibility.
func DefaultConfig() Config {
	return Config{Variant: FadeIn, Duration: 500 * time.Millisecond, Threshold: 0.2, Once: true}
}

// Reveal animates an element from its hidden to its visible state when it
// scrolls into view.
//
// Reveal holds no timer. Callers report visibility with Observe and read
// the current state with Sample, both stamped with the same clock.
type Reveal struct {
	cfg Config
	src policy.Source

	mu   sync.Mutex
	trig trigger
	from Frame
}

// New creates a hidden Reveal. src may be nil, which means full motion.
func New(cfg Config, src policy.Source) *Reveal {
	r := &Reveal{cfg: cfg, src: src, trig: trigger{threshold: cfg.Threshold, once: cfg.Once}}
	r.from = cfg.Variant.Hidden()
	return r
}

// Visible reports whether the element has entered the viewport and is
// showing or animating in.
func (r *Reveal) Visible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.trig.visible
}

// Observe records the element's current intersection ratio. It reports
// whether the reveal state changed.
func (r *Reveal) Observe(ratio float64, now time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.sampleLocked(now)
	if !r.trig.observe(ratio, now) {
		return false
	}
	r.from = cur
	fx.Logger().Debug("reveal state changed",
		"variant", r.cfg.Variant, "visible", r.trig.visible, "ratio", ratio)
	return true
}

// Sample returns the element's state at now.
func (r *Reveal) Sample(now time.Duration) Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sampleLocked(now)
}

// Done reports whether the current transition has finished at now.
func (r *Reveal) Done(now time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	dur, delay, _ := r.timingLocked()
	return progress(now, r.trig.at, delay, dur) >= 1
}

func (r *Reveal) sampleLocked(now time.Duration) Frame {
	from, to := r.from, r.cfg.Variant.Hidden()
	if r.trig.visible {
		to = r.cfg.Variant.Visible()
	}
	dur, delay, ease := r.timingLocked()
	if reducedMotion(r.src) {
		from, to = opacityOnly(from), opacityOnly(to)
	}
	return mix(from, to, ease.At(progress(now, r.trig.at, delay, dur)))
}

// timingLocked returns the duration, delay and easing of the current
// transition. Hiding starts at once.
func (r *Reveal) timingLocked() (time.Duration, time.Duration, Bezier) {
	var delay time.Duration
	if r.trig.visible {
		delay = r.cfg.Delay
	}
	if reducedMotion(r.src) {
		return ReducedDuration, delay, EaseOut
	}
	return r.cfg.Duration, delay, RevealEase
}

// Render wraps child in a container styled with the state at now.
func (r *Reveal) Render(child style.Element, now time.Duration) style.Element {
	return style.Div("reveal reveal-"+r.cfg.Variant.String(), r.Sample(now).Style(), child)
}

func reducedMotion(src policy.Source) bool {
	return src != nil && src.Flags().UseReducedMotion
}
