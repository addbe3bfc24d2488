// Package fx is a visual effects engine: procedural canvas textures,
// CSS 3D primitives and scroll-driven reveal animations that degrade to
// pure CSS on weak devices and honor the user's reduced-motion setting.
//
// # Overview
//
// Every effect is gated by capability flags. The capability package
// probes the host once (canvas, GPU, WebP, device class) and the policy
// package combines that snapshot with the low-power and reduced-motion
// preferences into flags that effects subscribe to:
//
//	snap := capability.NewDetector(capability.NewHostEnvironment()).Snapshot()
//	flags := policy.New(snap, prefsWatcher)
//	defer flags.Close()
//
// # Packages
//
//   - texture: canvas generators (distressed, gradient blobs, static
//     noise, grain, particles, glitch) and the Effect that owns one
//     generator's surface, animation task and CSS fallback.
//   - css3d: cube, carousel, tilt card, parallax layers, hologram and
//     extruded text, expressed as CSS transforms.
//   - reveal: viewport-triggered reveal, stagger and scroll parallax.
//   - guard: error boundaries that swap to a fallback on canvas failures.
//   - frame: the animation clock (wall clock or manual).
//   - prefs, metrics, snapshot: preference files, prometheus metrics and
//     offscreen PNG rendering.
//
// # Logging
//
// fx logs through [log/slog]. It is silent until [SetLogger] is called;
// the logger is shared with gg.
package fx
