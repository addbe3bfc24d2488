// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frame

import (
	"container/heap"
	"sync"
	"time"
)

// Manual is a Scheduler whose clock only moves when Advance is called.
// Callbacks run synchronously inside Advance in due-time order.
type Manual struct {
	mu  sync.Mutex
	now time.Duration
	q   queue
	seq uint64
}

// NewManual creates a Manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Schedule implements Scheduler.
func (m *Manual) Schedule(d time.Duration, fn func(now time.Duration)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	e := &entry{at: m.now + delay(d), seq: m.seq, fn: fn}
	heap.Push(&m.q, e)
	return func() {
		m.mu.Lock()
		e.cancelled = true
		m.mu.Unlock()
	}
}

// Advance moves the clock forward by d, running every callback that
// becomes due, including ones scheduled by callbacks during the advance.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		e := m.q.popDue(target)
		if e == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = e.at
		now := m.now
		m.mu.Unlock()

		e.fn(now)
	}
}

// Frames advances the clock by n frame periods.
func (m *Manual) Frames(n int) {
	m.Advance(time.Duration(n) * FramePeriod)
}

// Pending returns the number of callbacks that are scheduled and not cancelled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.q {
		if !e.cancelled {
			n++
		}
	}
	return n
}
