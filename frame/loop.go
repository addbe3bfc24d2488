// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frame

import (
	"container/heap"
	"context"
	"sync"
	"time"
)

// Loop is a Scheduler backed by the wall clock. All callbacks run on the
// goroutine that calls Run, one at a time.
type Loop struct {
	start time.Time
	wake  chan struct{}

	mu  sync.Mutex
	q   queue
	seq uint64
}

// NewLoop creates a Loop. Callbacks do not run until Run is called.
func NewLoop() *Loop {
	return &Loop{
		start: time.Now(),
		wake:  make(chan struct{}, 1),
	}
}

// Now returns the time since the loop was created.
func (l *Loop) Now() time.Duration {
	return time.Since(l.start)
}

// Schedule implements Scheduler. It is safe to call from any goroutine.
func (l *Loop) Schedule(d time.Duration, fn func(now time.Duration)) func() {
	l.mu.Lock()
	l.seq++
	e := &entry{at: l.Now() + delay(d), seq: l.seq, fn: fn}
	heap.Push(&l.q, e)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}

	return func() {
		l.mu.Lock()
		e.cancelled = true
		l.mu.Unlock()
	}
}

// Run dispatches due callbacks until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		l.mu.Lock()
		now := l.Now()
		e := l.q.popDue(now)
		var wait time.Duration = -1
		if e == nil {
			if at, ok := l.q.next(); ok {
				wait = at - now
			}
		}
		l.mu.Unlock()

		if e != nil {
			e.fn(now)
			continue
		}

		if wait < 0 {
			wait = time.Hour
		}
		timer.Reset(wait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		case <-timer.C:
		}
	}
}
