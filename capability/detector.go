package capability

import "sync"

// Detector runs Detect once per session and caches the snapshot.
type Detector struct {
	env Environment

	mu   sync.Mutex
	done bool
	snap Snapshot
}

// NewDetector creates a Detector over env.
func NewDetector(env Environment) *Detector {
	return &Detector{env: env}
}

// Snapshot returns the cached snapshot, probing on first use.
func (d *Detector) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.done {
		d.snap = Detect(d.env)
		d.done = true
	}
	return d.snap
}

// Redetect probes again and replaces the cached snapshot. Nothing calls
// it automatically; hosts call it when they learn the environment changed,
// for example after a GPU device loss.
func (d *Detector) Redetect() Snapshot {
	s := Detect(d.env)
	d.mu.Lock()
	d.snap = s
	d.done = true
	d.mu.Unlock()
	return s
}
