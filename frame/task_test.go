package frame

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestTaskTicksAtInterval(t *testing.T) {
	m := NewManual()
	var calls int
	task := NewTask(m, 50*time.Millisecond, func(time.Duration) { calls++ })
	task.Start()

	m.Advance(49 * time.Millisecond)
	if calls != 0 {
		t.Fatalf("calls = %d before first interval, want 0", calls)
	}
	m.Advance(151 * time.Millisecond)
	if calls != 4 {
		t.Errorf("calls = %d after 200ms, want 4", calls)
	}
	if task.Ticks() != 4 {
		t.Errorf("Ticks() = %d, want 4", task.Ticks())
	}
}

func TestTaskZeroIntervalUsesFrames(t *testing.T) {
	m := NewManual()
	var calls int
	task := NewTask(m, 0, func(time.Duration) { calls++ })
	task.Start()
	m.Frames(10)
	if calls != 10 {
		t.Errorf("calls = %d after 10 frames, want 10", calls)
	}
}

func TestTaskStopCancelsChain(t *testing.T) {
	m := NewManual()
	var calls int
	task := NewTask(m, FramePeriod, func(time.Duration) { calls++ })
	task.Start()
	m.Frames(3)
	task.Stop()
	m.Frames(10)
	if calls != 3 {
		t.Errorf("calls = %d, want 3 (no ticks after Stop)", calls)
	}
	if task.Running() {
		t.Error("Running() = true after Stop")
	}
	if m.Pending() != 0 {
		t.Errorf("Pending() = %d after Stop, want 0", m.Pending())
	}
}

func TestTaskStaleCallbackIsNoop(t *testing.T) {
	// A scheduler that ignores cancellation still must not reach tick.
	s := &leakyScheduler{}
	var calls int
	task := NewTask(s, time.Second, func(time.Duration) { calls++ })
	task.Start()
	task.Stop()
	s.fireAll()
	if calls != 0 {
		t.Errorf("stale callback ran tick %d times", calls)
	}

	// Restarting creates a new generation; the old callback stays dead.
	task.Start()
	stale := s.fns[0]
	stale(0)
	if calls != 0 {
		t.Errorf("callback from first generation ran after restart")
	}
	s.fns[len(s.fns)-1](0)
	if calls != 1 {
		t.Errorf("calls = %d, want 1 from live generation", calls)
	}
}

func TestTaskStopFromInsideTick(t *testing.T) {
	m := NewManual()
	var calls int
	var task *Task
	task = NewTask(m, FramePeriod, func(time.Duration) {
		calls++
		if calls == 2 {
			task.Stop()
		}
	})
	task.Start()
	m.Frames(5)
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestTaskRestart(t *testing.T) {
	m := NewManual()
	var calls int
	task := NewTask(m, 100*time.Millisecond, func(time.Duration) { calls++ })
	task.Start()
	m.Advance(90 * time.Millisecond)
	task.Restart()
	m.Advance(90 * time.Millisecond)
	if calls != 0 {
		t.Errorf("calls = %d, restart should reset the interval", calls)
	}
	m.Advance(10 * time.Millisecond)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestLoopRunsCallbacks(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var n atomic.Int32
	done := make(chan struct{})
	task := NewTask(l, time.Millisecond, func(time.Duration) {
		if n.Add(1) == 3 {
			close(done)
		}
	})
	task.Start()

	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not run 3 ticks")
	}
	task.Stop()
	cancel()
	if err := <-errc; err != context.Canceled {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}

// leakyScheduler records callbacks and never cancels them.
type leakyScheduler struct {
	fns []func(time.Duration)
}

func (s *leakyScheduler) Schedule(_ time.Duration, fn func(time.Duration)) func() {
	s.fns = append(s.fns, fn)
	return func() {}
}

func (s *leakyScheduler) Now() time.Duration { return 0 }

func (s *leakyScheduler) fireAll() {
	for _, fn := range s.fns {
		fn(0)
	}
}
