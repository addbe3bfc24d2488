package prefs

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/internal/notify"
	"github.com/gogpu/fx/policy"
)

// DefaultDebounce is how long the watcher waits after the last file event
// before reloading.
const DefaultDebounce = 250 * time.Millisecond

// Watcher keeps Prefs in sync with a file. It is a policy.MotionSource,
// and Bind forwards low-power changes to a policy.Provider.
type Watcher struct {
	path     string
	debounce time.Duration
	fw       *fsnotify.Watcher

	mu  sync.Mutex
	cur Prefs

	motion   notify.List[bool]
	lowPower notify.List[bool]
}

var _ policy.MotionSource = (*Watcher)(nil)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the reload delay after file events.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// NewWatcher loads path and starts watching its directory. The file does
// not need to exist yet. Call Run to process changes.
func NewWatcher(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("prefs: %w", err)
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(dir, filepath.Base(abs))
	}
	w := &Watcher{path: abs, debounce: DefaultDebounce}
	for _, o := range opts {
		o(w)
	}
	if w.cur, err = Load(abs); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("prefs: create watcher: %w", err)
	}
	// Editors replace files on save, so watch the directory.
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("prefs: watch %s: %w", filepath.Dir(abs), err)
	}
	w.fw = fw
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string { return w.path }

// Prefs returns the current preferences.
func (w *Watcher) Prefs() Prefs {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cur
}

// ReduceMotion implements policy.MotionSource.
func (w *Watcher) ReduceMotion() bool {
	return w.Prefs().ReduceMotion
}

// OnReduceMotionChange implements policy.MotionSource.
func (w *Watcher) OnReduceMotionChange(fn func(bool)) (cancel func()) {
	return w.motion.Add(fn)
}

// OnLowPowerChange calls fn when the file sets or changes low_power.
func (w *Watcher) OnLowPowerChange(fn func(bool)) (cancel func()) {
	return w.lowPower.Add(fn)
}

// Bind applies the file's low_power setting to p now and on every change.
func (w *Watcher) Bind(p *policy.Provider) (cancel func()) {
	if lp := w.Prefs().LowPower; lp != nil {
		p.SetLowPowerMode(*lp)
	}
	return w.OnLowPowerChange(p.SetLowPowerMode)
}

// Reload re-reads the file and notifies listeners of changed values. A
// file that fails to parse leaves the current preferences in place.
func (w *Watcher) Reload() error {
	next, err := Load(w.path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	prev := w.cur
	w.cur = next
	w.mu.Unlock()

	if prev.equal(next) {
		return nil
	}
	fx.Logger().Info("preferences reloaded", "path", w.path,
		"reduce_motion", next.ReduceMotion, "low_power_set", next.LowPower != nil)
	if prev.ReduceMotion != next.ReduceMotion {
		w.motion.Emit(next.ReduceMotion)
	}
	if next.LowPower != nil && (prev.LowPower == nil || *prev.LowPower != *next.LowPower) {
		w.lowPower.Emit(*next.LowPower)
	}
	return nil
}

// Run processes file events until ctx is done or the watcher is closed.
// Bursts of events within the debounce window cause a single reload.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			fx.Logger().Debug("preferences file changed", "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			fx.Logger().Warn("preferences watcher error", "err", err)

		case <-fire:
			fire = nil
			if err := w.Reload(); err != nil {
				fx.Logger().Warn("preferences reload failed", "path", w.path, "err", err)
			}

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) ||
		ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}

// Close stops watching. A running Run returns.
func (w *Watcher) Close() error {
	return w.fw.Close()
}
