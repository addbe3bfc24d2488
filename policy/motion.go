package policy

import (
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/fx/internal/notify"
)

// MotionSource reports the OS reduced-motion preference and notifies
// subscribers when it changes.
type MotionSource interface {
	ReduceMotion() bool
	OnReduceMotionChange(fn func(reduce bool)) (cancel func())
}

// StaticMotion is a MotionSource that never changes.
type StaticMotion bool

// ReduceMotion implements MotionSource.
func (m StaticMotion) ReduceMotion() bool { return bool(m) }

// OnReduceMotionChange implements MotionSource. The callback never fires.
func (StaticMotion) OnReduceMotionChange(func(bool)) func() { return func() {} }

// PlatformMotion adapts a gpucontext.PlatformProvider into a MotionSource.
// Platform providers expose the preference as a getter only, so the host
// calls Notify from its settings-changed handler.
type PlatformMotion struct {
	platform gpucontext.PlatformProvider

	mu        sync.Mutex
	last      bool
	listeners notify.List[bool]
}

// NewPlatformMotion creates a PlatformMotion reading from p.
func NewPlatformMotion(p gpucontext.PlatformProvider) *PlatformMotion {
	if p == nil {
		p = gpucontext.NullPlatformProvider{}
	}
	return &PlatformMotion{platform: p, last: p.ReduceMotion()}
}

// ReduceMotion implements MotionSource.
func (m *PlatformMotion) ReduceMotion() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// OnReduceMotionChange implements MotionSource.
func (m *PlatformMotion) OnReduceMotionChange(fn func(bool)) func() {
	return m.listeners.Add(fn)
}

// Notify re-reads the platform preference and broadcasts it if it changed.
func (m *PlatformMotion) Notify() {
	v := m.platform.ReduceMotion()
	m.mu.Lock()
	changed := v != m.last
	m.last = v
	m.mu.Unlock()
	if changed {
		m.listeners.Emit(v)
	}
}
