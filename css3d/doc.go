// Package css3d builds CSS 3D objects (cubes, cards, carousels, scenes,
// parallax stacks, holograms and extruded text) as [style.Element] trees.
//
// Each primitive is a small state machine. Pointer input arrives as
// [gpucontext.PointerEvent] values in window coordinates, and autoplay
// runs on a [frame.Task] owned by the primitive between Mount and
// Unmount. Every transform string goes through [style.Transform].
//
// Under reduced motion autoplay and pointer-driven rotation stop and the
// pose of every primitive stays constant. Only opacity may still change.
package css3d
