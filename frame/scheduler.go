// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frame

import (
	"container/heap"
	"time"
)

// FramePeriod is the display frame interval assumed for next-frame callbacks.
const FramePeriod = 16 * time.Millisecond

// Scheduler runs callbacks at a later time on a single dispatch thread.
type Scheduler interface {
	// Schedule runs fn once after d has elapsed. A d of zero or less
	// means the next display frame. The returned function cancels the
	// callback if it has not run yet; calling it more than once is safe.
	Schedule(d time.Duration, fn func(now time.Duration)) (cancel func())

	// Now returns the time elapsed since the scheduler was created.
	Now() time.Duration
}

// entry is one pending callback.
type entry struct {
	at        time.Duration
	seq       uint64
	fn        func(now time.Duration)
	cancelled bool
	index     int
}

// queue is a min-heap of pending callbacks ordered by due time, then by
// scheduling order.
type queue []*entry

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q queue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *queue) Push(x any) {
	e := x.(*entry)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}

// popDue removes and returns the earliest live entry due at or before t.
func (q *queue) popDue(t time.Duration) *entry {
	for q.Len() > 0 {
		e := (*q)[0]
		if e.cancelled {
			heap.Pop(q)
			continue
		}
		if e.at > t {
			return nil
		}
		heap.Pop(q)
		return e
	}
	return nil
}

// next returns the due time of the earliest live entry.
func (q *queue) next() (time.Duration, bool) {
	for q.Len() > 0 {
		e := (*q)[0]
		if e.cancelled {
			heap.Pop(q)
			continue
		}
		return e.at, true
	}
	return 0, false
}

func delay(d time.Duration) time.Duration {
	if d <= 0 {
		return FramePeriod
	}
	return d
}
