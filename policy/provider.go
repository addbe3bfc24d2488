package policy

import (
	"sync"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/capability"
	"github.com/gogpu/fx/internal/notify"
)

// Source is the read side of a Provider. Components take a Source so
// tests can drive flags directly.
type Source interface {
	Flags() Flags
	Subscribe(fn func(Flags)) (cancel func())
}

// Provider holds the live policy inputs and broadcasts derived flags.
// Reads are consistent: every call to Flags sees all inputs from the same
// update.
type Provider struct {
	snap capability.Snapshot

	mu       sync.RWMutex
	lowPower bool
	reduced  bool

	listeners    notify.List[Flags]
	cancelMotion func()
}

// Option configures a Provider.
type Option func(*providerOptions)

type providerOptions struct {
	lowPower *bool
}

// WithLowPowerMode overrides the initial low-power setting, for example
// with a value the user chose in an earlier session.
func WithLowPowerMode(on bool) Option {
	return func(o *providerOptions) { o.lowPower = &on }
}

// New creates a Provider for snap. Low-power mode starts on for low-power
// devices and older browsers. A nil motion source means "no reduced-motion
// preference".
func New(snap capability.Snapshot, motion MotionSource, opts ...Option) *Provider {
	var o providerOptions
	for _, opt := range opts {
		opt(&o)
	}
	if motion == nil {
		motion = StaticMotion(false)
	}

	p := &Provider{
		snap:     snap,
		lowPower: DefaultLowPowerMode(snap),
		reduced:  motion.ReduceMotion(),
	}
	if o.lowPower != nil {
		p.lowPower = *o.lowPower
	}
	p.cancelMotion = motion.OnReduceMotionChange(p.setReducedMotion)

	fx.Logger().Info("performance policy created", "flags", p.Flags())
	return p
}

// Snapshot returns the capability snapshot the provider was built from.
func (p *Provider) Snapshot() capability.Snapshot {
	return p.snap
}

// Flags returns the current derived flags.
func (p *Provider) Flags() Flags {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Derive(p.snap, p.lowPower, p.reduced)
}

// SetLowPowerMode sets the user low-power toggle. The change is visible
// to the next Flags call and is broadcast to subscribers before
// SetLowPowerMode returns.
func (p *Provider) SetLowPowerMode(on bool) {
	p.mu.Lock()
	if p.lowPower == on {
		p.mu.Unlock()
		return
	}
	p.lowPower = on
	f := Derive(p.snap, p.lowPower, p.reduced)
	p.mu.Unlock()

	fx.Logger().Info("low power mode changed", "on", on)
	p.listeners.Emit(f)
}

func (p *Provider) setReducedMotion(on bool) {
	p.mu.Lock()
	if p.reduced == on {
		p.mu.Unlock()
		return
	}
	p.reduced = on
	f := Derive(p.snap, p.lowPower, p.reduced)
	p.mu.Unlock()

	fx.Logger().Info("reduced motion preference changed", "on", on)
	p.listeners.Emit(f)
}

// Subscribe registers fn to receive the flags after every change.
func (p *Provider) Subscribe(fn func(Flags)) (cancel func()) {
	return p.listeners.Add(fn)
}

// Close detaches the provider from its motion source.
func (p *Provider) Close() {
	if p.cancelMotion != nil {
		p.cancelMotion()
		p.cancelMotion = nil
	}
}
