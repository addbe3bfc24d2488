package policy

import (
	"log/slog"

	"github.com/gogpu/fx/capability"
)

// Flags is a snapshot of the derived feature flags.
type Flags struct {
	UseCanvasEffects      bool
	UseWebGLEffects       bool
	UseAdvancedAnimations bool
	UseParallaxEffects    bool
	UseReducedMotion      bool
	IsLowPowerMode        bool
}

// Derive computes the flags for one combination of inputs. Every flag is
// an independent function of the inputs.
func Derive(s capability.Snapshot, lowPowerMode, reducedMotion bool) Flags {
	return Flags{
		UseCanvasEffects:      s.Canvas2D && !lowPowerMode,
		UseWebGLEffects:       s.WebGL && !lowPowerMode,
		UseAdvancedAnimations: !lowPowerMode && !s.OlderBrowser && !reducedMotion,
		UseParallaxEffects:    !lowPowerMode && !s.LowPowerDevice && !reducedMotion,
		UseReducedMotion:      reducedMotion,
		IsLowPowerMode:        lowPowerMode,
	}
}

// DefaultLowPowerMode reports the initial low-power setting for s.
func DefaultLowPowerMode(s capability.Snapshot) bool {
	return s.LowPowerDevice || s.OlderBrowser
}

// LogValue implements slog.LogValuer.
func (f Flags) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("canvas", f.UseCanvasEffects),
		slog.Bool("webgl", f.UseWebGLEffects),
		slog.Bool("advanced_animations", f.UseAdvancedAnimations),
		slog.Bool("parallax", f.UseParallaxEffects),
		slog.Bool("reduced_motion", f.UseReducedMotion),
		slog.Bool("low_power", f.IsLowPowerMode),
	)
}
