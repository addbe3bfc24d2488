package guard

import (
	"github.com/gogpu/fx/internal/notify"
	"github.com/gogpu/fx/texture"
)

// Bus broadcasts errors to every attached sink, the way an uncaught
// error reaches every listener on a page. Effects can report to a Bus
// instead of a single Boundary.
type Bus struct {
	sinks notify.List[error]
}

var _ texture.ErrorSink = (*Bus)(nil)

// Attach adds s to the bus.
func (b *Bus) Attach(s texture.ErrorSink) (detach func()) {
	return b.sinks.Add(func(err error) { s.Report(err) })
}

// Report delivers err to every attached sink and reports whether it was
// a canvas failure.
func (b *Bus) Report(err error) bool {
	if err == nil {
		return false
	}
	b.sinks.Emit(err)
	return Matches(err)
}
