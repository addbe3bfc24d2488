package reveal

import (
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/fx/policy"
	"github.com/gogpu/fx/style"
)

// Direction is the direction content travels while it is revealed or
// scrolled.
type Direction int

// Directions.
const (
	Up Direction = iota
	Down
	Left
	Right
	None
)

var directionNames = [...]string{Up: "up", Down: "down", Left: "left", Right: "right", None: "none"}

func (d Direction) String() string {
	if d >= 0 && int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection returns the direction with the given name.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return Up, fmt.Errorf("reveal: unknown direction %q", s)
}

// origin returns the starting offset of content that moves dist pixels
// in direction d.
func (d Direction) origin(dist float64) (x, y float64) {
	switch d {
	case Up:
		return 0, dist
	case Down:
		return 0, -dist
	case Left:
		return dist, 0
	case Right:
		return -dist, 0
	}
	return 0, 0
}

// StaggerConfig configures a Stagger.
type StaggerConfig struct {
	// StaggerDelay is added per child index.
	StaggerDelay time.Duration
	Duration     time.Duration
	Threshold    float64
	Direction    Direction
	Once         bool
}

// DefaultStaggerConfig returns the standard sequential fade-up.
func DefaultStaggerConfig() StaggerConfig {
	return StaggerConfig{
		StaggerDelay: 100 * time.Millisecond,
		Duration:     500 * time.Millisecond,
		Threshold:    0.1,
		Direction:    Up,
		Once:         true,
	}
}

// staggerDistance is how far each child travels, in CSS pixels.
const staggerDistance = 30

// Stagger reveals a row of children in sequence when their container
// scrolls into view.
type Stagger struct {
	cfg StaggerConfig
	src policy.Source
	n   int

	mu   sync.Mutex
	trig trigger
	from []Frame
}

// NewStagger creates a hidden Stagger over n children. A negative n is
// treated as zero.
func NewStagger(cfg StaggerConfig, n int, src policy.Source) *Stagger {
	n = max(n, 0)
	s := &Stagger{
		cfg:  cfg,
		src:  src,
		n:    n,
		trig: trigger{threshold: cfg.Threshold, once: cfg.Once},
		from: make([]Frame, n),
	}
	for i := range s.from {
		s.from[i] = s.hidden()
	}
	return s
}

// Len returns the number of children.
func (s *Stagger) Len() int { return s.n }

// Visible reports whether the container has come into view.
func (s *Stagger) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trig.visible
}

// Delay returns the reveal delay of child i. It is zero under reduced
// motion.
func (s *Stagger) Delay(i int) time.Duration {
	if reducedMotion(s.src) {
		return 0
	}
	return time.Duration(i) * s.cfg.StaggerDelay
}

// Observe records the container's intersection ratio and reports whether
// the reveal state changed.
func (s *Stagger) Observe(ratio float64, now time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := make([]Frame, s.n)
	for i := range cur {
		cur[i] = s.sampleLocked(i, now)
	}
	if !s.trig.observe(ratio, now) {
		return false
	}
	s.from = cur
	return true
}

// SampleChild returns the state of child i at now.
func (s *Stagger) SampleChild(i int, now time.Duration) Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sampleLocked(i, now)
}

func (s *Stagger) hidden() Frame {
	f := Frame{Scale: 1}
	f.X, f.Y = s.cfg.Direction.origin(staggerDistance)
	return f
}

func (s *Stagger) sampleLocked(i int, now time.Duration) Frame {
	from := s.hidden()
	if i >= 0 && i < len(s.from) {
		from = s.from[i]
	}
	to := s.hidden()
	dur, delay, ease := s.cfg.Duration, time.Duration(0), RevealEase
	if s.trig.visible {
		to = Frame{Opacity: 1, Scale: 1}
		delay = s.Delay(i)
	}
	if reducedMotion(s.src) {
		from, to = opacityOnly(from), opacityOnly(to)
		dur, ease = ReducedDuration, EaseOut
	}
	return mix(from, to, ease.At(progress(now, s.trig.at, delay, dur)))
}

// Render wraps each child in a container styled with its state at now.
func (s *Stagger) Render(children []style.Element, now time.Duration) style.Element {
	root := style.Div("stagger", nil)
	for i, c := range children {
		root.Children = append(root.Children, style.Div("stagger-item", s.SampleChild(i, now).Style(), c))
	}
	return root
}
