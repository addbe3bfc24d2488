package capability

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync"

	"github.com/gogpu/gg"
	_ "golang.org/x/image/webp" // registers the WebP decoder probed by WebP
)

// webpProbe is a 1x1 lossless WebP image.
var webpProbe = []byte{
	'R', 'I', 'F', 'F', 18, 0, 0, 0, 'W', 'E', 'B', 'P',
	'V', 'P', '8', 'L', 5, 0, 0, 0,
	0x2f, 0, 0, 0, 0, 0,
}

var errNoGPUProber = errors.New("capability: no GPU prober registered")

// HostEnvironment probes the process the library runs in: canvas support
// through gg, WebP through the registered image decoders and GPU levels
// through the registered GPUProber.
type HostEnvironment struct {
	agent    string
	memoryGB float64
	cores    int
	prober   GPUProber

	gpuOnce  sync.Once
	gpuLevel GPULevel
	gpuErr   error
}

// HostOption configures a HostEnvironment.
type HostOption func(*HostEnvironment)

// WithUserAgent sets the user agent reported by the host, typically the
// one received from the embedding browser or webview.
func WithUserAgent(ua string) HostOption {
	return func(h *HostEnvironment) { h.agent = ua }
}

// WithDeviceMemory sets the device memory hint in gigabytes.
func WithDeviceMemory(gb float64) HostOption {
	return func(h *HostEnvironment) { h.memoryGB = gb }
}

// WithCores overrides the core count, which defaults to runtime.NumCPU.
func WithCores(n int) HostOption {
	return func(h *HostEnvironment) { h.cores = n }
}

// WithGPUProber sets the prober instead of the registered one.
func WithGPUProber(p GPUProber) HostOption {
	return func(h *HostEnvironment) { h.prober = p }
}

// NewHostEnvironment creates a HostEnvironment.
func NewHostEnvironment(opts ...HostOption) *HostEnvironment {
	h := &HostEnvironment{cores: runtime.NumCPU()}
	for _, opt := range opts {
		opt(h)
	}
	if h.prober == nil {
		h.prober = RegisteredGPUProber()
	}
	return h
}

func (h *HostEnvironment) UserAgent() string        { return h.agent }
func (h *HostEnvironment) DeviceMemoryGB() float64  { return h.memoryGB }
func (h *HostEnvironment) HardwareConcurrency() int { return h.cores }

// Canvas2D fills one pixel and reads it back.
func (h *HostEnvironment) Canvas2D() error {
	dc := gg.NewContext(1, 1)
	defer dc.Close()

	dc.SetRGBA(0, 0, 0, 1)
	dc.DrawRectangle(0, 0, 1, 1)
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("capability: canvas fill: %w", err)
	}
	if px := dc.ResizeTarget().GetPixel(0, 0); px.A < 0.5 {
		return fmt.Errorf("capability: canvas readback alpha %.2f", px.A)
	}
	return nil
}

// WebGL reports whether the GPU prober found any adapter.
func (h *HostEnvironment) WebGL() error {
	return h.gpuAtLeast(GPUBaseline)
}

// WebGL2 reports whether the GPU prober found a hardware adapter.
func (h *HostEnvironment) WebGL2() error {
	return h.gpuAtLeast(GPUAdvanced)
}

// WebP decodes the header of a tiny WebP image.
func (h *HostEnvironment) WebP() error {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(webpProbe))
	if err != nil {
		return fmt.Errorf("capability: webp: %w", err)
	}
	if format != "webp" || cfg.Width != 1 || cfg.Height != 1 {
		return fmt.Errorf("capability: webp decoded as %s %dx%d", format, cfg.Width, cfg.Height)
	}
	return nil
}

func (h *HostEnvironment) gpuAtLeast(want GPULevel) error {
	h.gpuOnce.Do(func() {
		if h.prober == nil {
			h.gpuErr = errNoGPUProber
			return
		}
		h.gpuLevel, h.gpuErr = h.prober.Probe()
	})
	if h.gpuErr != nil {
		return h.gpuErr
	}
	if h.gpuLevel < want {
		return fmt.Errorf("capability: gpu level %s below %s", h.gpuLevel, want)
	}
	return nil
}
