package fx

import "errors"

var (
	// ErrCanvas marks a failure raised while creating, sizing or drawing
	// a canvas surface. Errors wrapping it switch the owning effect to
	// its CSS fallback.
	ErrCanvas = errors.New("fx: canvas failure")

	// ErrFallbackToCSS is returned when an operation needs the canvas path
	// but the effect has already settled on its CSS fallback.
	ErrFallbackToCSS = errors.New("fx: falling back to CSS rendering")

	// ErrNotMounted is returned by operations on an effect that has not
	// been mounted or was already unmounted.
	ErrNotMounted = errors.New("fx: effect not mounted")
)
