// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/capability"
	"github.com/gogpu/fx/frame"
	"github.com/gogpu/fx/policy"
	"github.com/gogpu/fx/style"
)

// Mode is the rendering path of an effect instance.
type Mode int

const (
	// Probing is the state before the first mount resolves a path.
	Probing Mode = iota
	// CanvasActive means the renderer draws onto its surface.
	CanvasActive
	// FallbackActive means the CSS fallback is shown. It is terminal.
	FallbackActive
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case CanvasActive:
		return "canvas"
	case FallbackActive:
		return "fallback"
	default:
		return "probing"
	}
}

// Event is a reason to leave the canvas path.
type Event int

const (
	// EventCapabilityAbsent: canvas effects are disabled by policy.
	EventCapabilityAbsent Event = iota + 1
	// EventDrawError: creating, sizing or drawing the surface failed.
	EventDrawError
	// EventReducedMotion: the user asked for reduced motion and the
	// renderer animates.
	EventReducedMotion
)

// String returns the event name.
func (ev Event) String() string {
	switch ev {
	case EventCapabilityAbsent:
		return "capability_absent"
	case EventDrawError:
		return "draw_error"
	case EventReducedMotion:
		return "reduced_motion"
	default:
		return "none"
	}
}

// Option configures an Effect.
type Option func(*effectOptions)

type effectOptions struct {
	factory  CanvasFactory
	rng      *rand.Rand
	sink     ErrorSink
	observer Observer
}

// WithCanvasFactory replaces the gg canvas factory.
func WithCanvasFactory(f CanvasFactory) Option {
	return func(o *effectOptions) { o.factory = f }
}

// WithRand sets the random source used by the renderer.
func WithRand(r *rand.Rand) Option {
	return func(o *effectOptions) { o.rng = r }
}

// WithSeed seeds a deterministic random source.
func WithSeed(seed uint64) Option {
	return func(o *effectOptions) { o.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithErrorSink forwards canvas failures to sink.
func WithErrorSink(sink ErrorSink) Option {
	return func(o *effectOptions) { o.sink = sink }
}

// WithObserver reports lifecycle events to obs.
func WithObserver(obs Observer) Option {
	return func(o *effectOptions) { o.observer = obs }
}

// Effect runs one Renderer on one surface with its own ticking task.
type Effect struct {
	id    string
	r     Renderer
	flags policy.Source
	sched frame.Scheduler
	opts  effectOptions

	mu          sync.Mutex
	mode        Mode
	mounted     bool
	reduced     bool
	surface     *Surface
	task        *frame.Task
	cancelFlags func()
	reason      Event
	err         error
}

// NewEffect creates an unmounted effect. A nil flags source means full
// capability with motion allowed.
func NewEffect(r Renderer, flags policy.Source, sched frame.Scheduler, opts ...Option) *Effect {
	if flags == nil {
		flags = fullFlags{}
	}
	o := effectOptions{factory: NewGGCanvas}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.observer == nil {
		o.observer = nopObserver{}
	}
	return &Effect{
		id:    uuid.NewString(),
		r:     r,
		flags: flags,
		sched: sched,
		opts:  o,
	}
}

type fullFlags struct{}

func (fullFlags) Flags() policy.Flags                 { return policy.Derive(capability.Full, false, false) }
func (fullFlags) Subscribe(func(policy.Flags)) func() { return func() {} }

// ID returns the instance id used in logs.
func (e *Effect) ID() string { return e.id }

// Name returns the renderer name.
func (e *Effect) Name() string { return e.r.Name() }

// Mode returns the current rendering path.
func (e *Effect) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Reason returns the event that moved the effect to its fallback, or zero.
func (e *Effect) Reason() Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reason
}

// Err returns the canvas failure that caused the fallback, if any.
func (e *Effect) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Surface returns the live surface, or nil when not on the canvas path.
func (e *Effect) Surface() *Surface {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.surface
}

// Mount sizes the surface to box and starts rendering, or selects the CSS
// fallback without touching the canvas factory when policy forbids canvas
// effects.
func (e *Effect) Mount(box Box) {
	e.mu.Lock()
	if e.mounted {
		e.mu.Unlock()
		return
	}
	e.mounted = true
	e.opts.observer.EffectMounted(e.r.Name())

	f := e.flags.Flags()
	e.reduced = f.UseReducedMotion

	var post func()
	if e.mode == Probing {
		switch {
		case !f.UseCanvasEffects:
			post = e.fallBackLocked(EventCapabilityAbsent, nil)
		case f.UseReducedMotion && e.animates():
			post = e.fallBackLocked(EventReducedMotion, nil)
		default:
			post = e.startCanvasLocked(box)
		}
	}
	e.cancelFlags = e.flags.Subscribe(e.onFlags)
	e.mu.Unlock()

	run(post)
}

// Resize resizes the surface and restarts the ticking task. A change in
// device pixel ratio recreates the canvas.
func (e *Effect) Resize(box Box) {
	e.mu.Lock()
	if !e.mounted || e.mode != CanvasActive {
		e.mu.Unlock()
		return
	}
	if e.task != nil {
		e.task.Stop()
	}

	var err error
	if box.scale() != e.surface.box.scale() {
		_ = e.surface.canvas.Close()
		e.surface = nil
		var c Canvas
		if c, err = e.create(box); err == nil {
			e.surface = &Surface{canvas: c, box: box}
		}
	} else {
		err = e.guard("resize", func() error { return e.surface.resize(box) })
	}
	if err == nil {
		err = e.setupLocked()
	}

	var post func()
	if err != nil {
		post = e.fallBackLocked(EventDrawError, err)
	} else {
		fx.Logger().Debug("effect resized", "effect", e.r.Name(), "id", e.id, "width", box.Width, "height", box.Height)
		if e.task != nil {
			e.task.Start()
		}
	}
	e.mu.Unlock()

	run(post)
}

// Unmount stops the ticking task and releases the surface. No surface
// writes happen after Unmount returns.
func (e *Effect) Unmount() {
	e.mu.Lock()
	if !e.mounted {
		e.mu.Unlock()
		return
	}
	e.mounted = false
	e.releaseLocked()
	if e.mode == CanvasActive {
		e.mode = Probing
	}
	cancel := e.cancelFlags
	e.cancelFlags = nil
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	e.opts.observer.EffectUnmounted(e.r.Name())
}

// Handle applies an external event, for example a boundary forcing the
// fallback or a host reporting a lost GPU device.
func (e *Effect) Handle(ev Event, err error) {
	e.mu.Lock()
	post := e.fallBackLocked(ev, err)
	e.mu.Unlock()
	run(post)
}

// Render returns the element to display for the current mode.
func (e *Effect) Render() style.Element {
	if e.Mode() == FallbackActive {
		return e.Fallback()
	}
	return e.Canvas()
}

// Canvas returns the canvas element.
func (e *Effect) Canvas() style.Element {
	return style.Element{Tag: "canvas", Class: "fx-" + e.r.Name(), Style: e.r.CanvasStyle()}
}

// Fallback returns the CSS fallback element, static under reduced motion.
func (e *Effect) Fallback() style.Element {
	e.mu.Lock()
	reduced := e.reduced
	e.mu.Unlock()

	el := e.r.Fallback(reduced)
	el.Class = joinClass("fx-"+e.r.Name()+"-fallback", el.Class)
	return el
}

func (e *Effect) animates() bool {
	return e.r.Interval() >= 0
}

func (e *Effect) startCanvasLocked(box Box) func() {
	c, err := e.create(box)
	if err != nil {
		return e.fallBackLocked(EventDrawError, err)
	}
	e.surface = &Surface{canvas: c, box: box}
	if err := e.setupLocked(); err != nil {
		return e.fallBackLocked(EventDrawError, err)
	}
	e.mode = CanvasActive
	if iv := e.r.Interval(); iv >= 0 {
		e.task = frame.NewTask(e.sched, iv, e.tick)
		e.task.Start()
	}
	fx.Logger().Debug("effect mounted on canvas", "effect", e.r.Name(), "id", e.id)
	return nil
}

func (e *Effect) create(box Box) (Canvas, error) {
	var c Canvas
	err := e.guard("create canvas", func() error {
		var err error
		c, err = e.opts.factory(box)
		if err == nil && c == nil {
			err = errors.New("nil canvas")
		}
		return err
	})
	return c, err
}

// setupLocked runs Setup and draws the first frame.
func (e *Effect) setupLocked() error {
	if err := e.guard("setup", func() error { return e.r.Setup(e.surface, e.opts.rng) }); err != nil {
		return err
	}
	return e.drawLocked()
}

func (e *Effect) drawLocked() error {
	start := time.Now()
	if err := e.guard("draw", func() error { return e.r.Draw(e.surface, e.opts.rng) }); err != nil {
		return err
	}
	e.opts.observer.FrameDrawn(e.r.Name(), time.Since(start))
	return nil
}

func (e *Effect) tick(time.Duration) {
	e.mu.Lock()
	if !e.mounted || e.mode != CanvasActive || e.surface == nil {
		e.mu.Unlock()
		return
	}
	var post func()
	if err := e.drawLocked(); err != nil {
		post = e.fallBackLocked(EventDrawError, err)
	}
	e.mu.Unlock()
	run(post)
}

func (e *Effect) onFlags(f policy.Flags) {
	e.mu.Lock()
	e.reduced = f.UseReducedMotion
	var post func()
	if e.mounted && e.mode != FallbackActive {
		switch {
		case !f.UseCanvasEffects:
			post = e.fallBackLocked(EventCapabilityAbsent, nil)
		case f.UseReducedMotion && e.animates():
			post = e.fallBackLocked(EventReducedMotion, nil)
		}
	}
	e.mu.Unlock()
	run(post)
}

// fallBackLocked moves the effect to FallbackActive and returns work that
// must run after the lock is released.
func (e *Effect) fallBackLocked(ev Event, err error) func() {
	if e.mode == FallbackActive {
		return nil
	}
	e.mode = FallbackActive
	e.reason = ev
	e.err = err
	e.releaseLocked()

	log := fx.Logger().With("effect", e.r.Name(), "id", e.id, "reason", ev.String())
	if err != nil {
		log.Warn("canvas failed, using CSS fallback", "err", err)
	} else {
		log.Debug("using CSS fallback")
	}
	e.opts.observer.FellBack(e.r.Name(), ev)

	if err == nil || e.opts.sink == nil {
		return nil
	}
	sink := e.opts.sink
	return func() { sink.Report(err) }
}

func (e *Effect) releaseLocked() {
	if e.task != nil {
		e.task.Stop()
		e.task = nil
	}
	if e.surface != nil {
		if err := e.surface.canvas.Close(); err != nil {
			fx.Logger().Debug("canvas close failed", "effect", e.r.Name(), "err", err)
		}
		e.surface = nil
	}
}

// guard runs fn, converting panics into errors and marking every failure
// as a canvas failure.
func (e *Effect) guard(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("texture: %s %s: panic: %v: %w", e.r.Name(), op, r, fx.ErrCanvas)
		}
	}()
	if err = fn(); err != nil && !errors.Is(err, fx.ErrCanvas) {
		err = fmt.Errorf("texture: %s %s: %w: %w", e.r.Name(), op, fx.ErrCanvas, err)
	}
	return err
}

func run(fn func()) {
	if fn != nil {
		fn()
	}
}

func joinClass(a, b string) string {
	if b == "" {
		return a
	}
	return a + " " + b
}
