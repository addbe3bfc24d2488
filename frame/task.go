// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frame

import (
	"sync"
	"time"
)

// Task owns one re-arming callback chain. The tick function runs every
// interval (every display frame when interval is zero) between Start and
// Stop.
type Task struct {
	sched    Scheduler
	interval time.Duration
	tick     func(now time.Duration)

	mu      sync.Mutex
	running bool
	gen     uint64
	cancel  func()
	ticks   uint64
}

// NewTask creates a stopped task.
func NewTask(s Scheduler, interval time.Duration, tick func(now time.Duration)) *Task {
	return &Task{sched: s, interval: interval, tick: tick}
}

// Start arms the chain. Starting a running task does nothing.
func (t *Task) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.running = true
	t.gen++
	t.armLocked(t.gen)
}

// Stop cancels the chain. A callback already handed to the scheduler
// becomes a no-op. Stop may be called from inside the tick function.
func (t *Task) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.running = false
	t.gen++
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// Restart stops the chain and starts a fresh one.
func (t *Task) Restart() {
	t.Stop()
	t.Start()
}

// Running reports whether the chain is armed.
func (t *Task) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Ticks returns how many times the tick function has run.
func (t *Task) Ticks() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ticks
}

func (t *Task) armLocked(gen uint64) {
	t.cancel = t.sched.Schedule(t.interval, func(now time.Duration) {
		t.fire(gen, now)
	})
}

func (t *Task) fire(gen uint64, now time.Duration) {
	t.mu.Lock()
	if !t.running || gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.ticks++
	t.mu.Unlock()

	t.tick(now)

	t.mu.Lock()
	if t.running && gen == t.gen {
		t.armLocked(gen)
	}
	t.mu.Unlock()
}
