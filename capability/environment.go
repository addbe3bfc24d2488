package capability

import "errors"

// errAbsent is returned by StaticEnvironment probes for missing features.
var errAbsent = errors.New("capability: not supported")

// Environment is the runtime being probed. Probe methods return nil when
// the capability is usable. Implementations may panic; Detect recovers.
type Environment interface {
	// UserAgent returns the browser-style user agent string, or "".
	UserAgent() string

	// DeviceMemoryGB returns the approximate device memory, 0 if unknown.
	DeviceMemoryGB() float64

	// HardwareConcurrency returns the logical core count, 0 if unknown.
	HardwareConcurrency() int

	// Canvas2D creates a small 2D drawing surface, draws into it and
	// reads a pixel back.
	Canvas2D() error

	// WebGL checks for a GPU context of the baseline level.
	WebGL() error

	// WebGL2 checks for a GPU context of the advanced level.
	WebGL2() error

	// WebP checks that WebP images can be decoded.
	WebP() error
}

// StaticEnvironment is an Environment with fixed answers.
type StaticEnvironment struct {
	Agent    string
	MemoryGB float64
	Cores    int

	NoCanvas2D bool
	NoWebGL    bool
	NoWebGL2   bool
	NoWebP     bool
}

func (e StaticEnvironment) UserAgent() string        { return e.Agent }
func (e StaticEnvironment) DeviceMemoryGB() float64  { return e.MemoryGB }
func (e StaticEnvironment) HardwareConcurrency() int { return e.Cores }
func (e StaticEnvironment) Canvas2D() error          { return absentIf(e.NoCanvas2D) }
func (e StaticEnvironment) WebGL() error             { return absentIf(e.NoWebGL) }
func (e StaticEnvironment) WebGL2() error            { return absentIf(e.NoWebGL2) }
func (e StaticEnvironment) WebP() error              { return absentIf(e.NoWebP) }

func absentIf(b bool) error {
	if b {
		return errAbsent
	}
	return nil
}
