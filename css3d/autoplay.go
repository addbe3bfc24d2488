package css3d

import (
	"sync"
	"time"

	"github.com/gogpu/fx/frame"
	"github.com/gogpu/fx/policy"
)

// autoplay owns the ticking task of a primitive and keeps it running only
// while the primitive is mounted, allowed to move and not paused by
// interaction. All fields are guarded by the primitive's mutex.
type autoplay struct {
	mu      *sync.Mutex
	task    *frame.Task
	src     policy.Source
	cancel  func()
	mounted bool
	reduced bool
	enabled func() bool
}

func newAutoplay(mu *sync.Mutex, sched frame.Scheduler, src policy.Source, every time.Duration,
	tick func(now time.Duration), enabled func() bool,
) *autoplay {
	a := &autoplay{mu: mu, src: src, enabled: enabled}
	if src != nil {
		a.reduced = src.Flags().UseReducedMotion
	}
	if sched != nil {
		a.task = frame.NewTask(sched, every, func(now time.Duration) {
			mu.Lock()
			defer mu.Unlock()
			if a.runnable() {
				tick(now)
			}
		})
	}
	return a
}

func (a *autoplay) runnable() bool {
	return a.mounted && !a.reduced && a.enabled()
}

// mountLocked subscribes to policy changes and starts ticking if allowed.
func (a *autoplay) mountLocked() {
	if a.mounted {
		return
	}
	a.mounted = true
	if a.src != nil {
		a.reduced = a.src.Flags().UseReducedMotion
		a.cancel = a.src.Subscribe(a.onFlags)
	}
	a.syncLocked()
}

func (a *autoplay) unmountLocked() {
	if !a.mounted {
		return
	}
	a.mounted = false
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.syncLocked()
}

// syncLocked starts or stops the task to match the current state. A
// paused task restarts with a full interval.
func (a *autoplay) syncLocked() {
	if a.task == nil {
		return
	}
	if a.runnable() {
		a.task.Start()
	} else {
		a.task.Stop()
	}
}

func (a *autoplay) onFlags(f policy.Flags) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reduced = f.UseReducedMotion
	a.syncLocked()
}

// reducedMotion reads the preference for primitives without autoplay.
func reducedMotion(src policy.Source) bool {
	return src != nil && src.Flags().UseReducedMotion
}
