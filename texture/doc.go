// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package texture implements the procedural canvas effects: static
// noise, film grain, distressed overlay, gradient blobs, a particle field
// and a VHS glitch.
//
// Each generator is a [Renderer]. An [Effect] owns one renderer, one
// drawing [Surface] and one [frame.Task], and decides between the canvas
// path and the renderer's CSS fallback:
//
//	Probing ──canvas ok──▶ CanvasActive
//	   │                       │
//	   └──capability absent────┴──draw error / reduced motion──▶ FallbackActive
//
// FallbackActive is terminal: an effect that fell back never retries the
// canvas.
package texture
