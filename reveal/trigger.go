package reveal

import "time"

// trigger turns intersection ratios into a visible flag and remembers
// when it last changed.
type trigger struct {
	threshold float64
	once      bool

	visible bool
	locked  bool
	at      time.Duration
}

// observe reports whether the flag changed. A once trigger never hides
// again after it has been shown.
func (t *trigger) observe(ratio float64, now time.Duration) bool {
	if t.locked {
		return false
	}
	in := inView(ratio, t.threshold)
	if in == t.visible {
		return false
	}
	t.visible, t.at = in, now
	if in && t.once {
		t.locked = true
	}
	return true
}

// inView reports whether ratio crosses threshold. A zero threshold means
// any visible pixel.
func inView(ratio, threshold float64) bool {
	if threshold <= 0 {
		return ratio > 0
	}
	return ratio >= threshold
}

// progress returns linear progress of a transition that started at start,
// waits delay and then runs for dur.
func progress(now, start, delay, dur time.Duration) float64 {
	elapsed := now - start - delay
	if elapsed <= 0 {
		return 0
	}
	if dur <= 0 || elapsed >= dur {
		return 1
	}
	return float64(elapsed) / float64(dur)
}
