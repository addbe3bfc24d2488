package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gogpu/fx/capability"
	_ "github.com/gogpu/fx/capability/gpuprobe" // wgpu adapter probe
	"github.com/gogpu/fx/policy"
	"github.com/gogpu/fx/prefs"
)

func runCaps(_ context.Context, args []string) error {
	c := newCLI("caps")
	cfg, err := c.parse(args)
	if err != nil {
		return err
	}
	setupLogging(c.verbose)

	env := capability.NewHostEnvironment(
		capability.WithUserAgent(cfg.UserAgent),
		capability.WithDeviceMemory(cfg.MemoryGB),
	)
	snap := capability.NewDetector(env).Snapshot()

	p, closeFlags, err := newProvider(snap, cfg.Prefs)
	if err != nil {
		return err
	}
	defer closeFlags()

	f := p.Flags()
	w := os.Stdout
	fmt.Fprintln(w, "capabilities:")
	fmt.Fprintf(w, "  canvas 2d        %v\n", snap.Canvas2D)
	fmt.Fprintf(w, "  webgl            %v\n", snap.WebGL)
	fmt.Fprintf(w, "  webgl2           %v\n", snap.WebGL2)
	fmt.Fprintf(w, "  webp             %v\n", snap.WebP)
	fmt.Fprintf(w, "  low-power device %v\n", snap.LowPowerDevice)
	fmt.Fprintf(w, "  older browser    %v\n", snap.OlderBrowser)
	fmt.Fprintln(w, "flags:")
	fmt.Fprintf(w, "  canvas effects     %v\n", f.UseCanvasEffects)
	fmt.Fprintf(w, "  webgl effects      %v\n", f.UseWebGLEffects)
	fmt.Fprintf(w, "  advanced animation %v\n", f.UseAdvancedAnimations)
	fmt.Fprintf(w, "  parallax           %v\n", f.UseParallaxEffects)
	fmt.Fprintf(w, "  reduced motion     %v\n", f.UseReducedMotion)
	fmt.Fprintf(w, "  low power mode     %v\n", f.IsLowPowerMode)
	return nil
}

// newProvider builds effect flags for snap. When a preferences file is
// named, reduced motion and low power follow it.
func newProvider(snap capability.Snapshot, prefsPath string) (*policy.Provider, func(), error) {
	if prefsPath == "" {
		p := policy.New(snap, policy.StaticMotion(false))
		return p, p.Close, nil
	}
	w, err := prefs.NewWatcher(prefsPath)
	if err != nil {
		return nil, nil, err
	}
	p := policy.New(snap, w)
	unbind := w.Bind(p)
	return p, func() {
		unbind()
		p.Close()
		_ = w.Close()
	}, nil
}
