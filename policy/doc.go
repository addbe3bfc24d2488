// Package policy derives the feature flags that gate every effect from a
// capability snapshot, the user's low-power toggle and the OS
// reduced-motion preference.
//
// A [Provider] is the single shared, mutable object of the engine. Create
// one near the root of the component tree and pass it down by reference.
// It has two writers: [Provider.SetLowPowerMode] for the user toggle and a
// [MotionSource] subscription for the OS preference. Every other
// component only reads [Provider.Flags] or subscribes to changes.
package policy
