package capability

import (
	"errors"
	"sync"
)

// GPULevel is the GPU feature level a prober found.
type GPULevel int

const (
	// GPUNone means no usable GPU context.
	GPUNone GPULevel = iota

	// GPUBaseline corresponds to WebGL: an adapter exists.
	GPUBaseline

	// GPUAdvanced corresponds to WebGL2: a hardware adapter exists.
	GPUAdvanced
)

// String returns the level name.
func (l GPULevel) String() string {
	switch l {
	case GPUBaseline:
		return "baseline"
	case GPUAdvanced:
		return "advanced"
	default:
		return "none"
	}
}

// GPUProber is an optional GPU capability provider.
//
// Implementations live in backend packages and are enabled by blank
// import:
//
//	import _ "github.com/gogpu/fx/capability/gpuprobe"
type GPUProber interface {
	// Name returns the prober name (e.g. "wgpu").
	Name() string

	// Probe acquires and releases a GPU context and reports its level.
	Probe() (GPULevel, error)
}

var (
	proberMu sync.RWMutex
	prober   GPUProber
)

// RegisterGPUProber installs the GPU prober used by HostEnvironment.
// Only one prober can be registered; later calls replace earlier ones.
func RegisterGPUProber(p GPUProber) error {
	if p == nil {
		return errors.New("capability: prober must not be nil")
	}
	proberMu.Lock()
	prober = p
	proberMu.Unlock()
	return nil
}

// RegisteredGPUProber returns the registered prober, or nil if none.
func RegisteredGPUProber() GPUProber {
	proberMu.RLock()
	p := prober
	proberMu.RUnlock()
	return p
}
