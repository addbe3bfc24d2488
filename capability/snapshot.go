package capability

import "log/slog"

// Snapshot records what the runtime supports. It is a value type and is
// never mutated after detection.
type Snapshot struct {
	Canvas2D       bool
	WebGL          bool
	WebGL2         bool
	WebP           bool
	LowPowerDevice bool
	OlderBrowser   bool
}

// Full is the snapshot assumed when there is no environment to probe,
// for example while rendering on a server.
var Full = Snapshot{Canvas2D: true, WebGL: true, WebGL2: true, WebP: true}

// LogValue implements slog.LogValuer.
func (s Snapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("canvas2d", s.Canvas2D),
		slog.Bool("webgl", s.WebGL),
		slog.Bool("webgl2", s.WebGL2),
		slog.Bool("webp", s.WebP),
		slog.Bool("low_power_device", s.LowPowerDevice),
		slog.Bool("older_browser", s.OlderBrowser),
	)
}
