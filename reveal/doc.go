// Package reveal implements scroll-driven reveal and parallax primitives.
//
// A Viewport tracks the scroll position of a page and reports how much of
// an element's box is visible. Reveal and Stagger turn visibility into a
// hidden-to-visible timeline that is sampled as Frames; ParallaxSection
// and ParallaxText map scroll progress through a section to an offset.
//
// Under reduced motion every primitive here animates opacity only: there
// is no positional offset, stagger delays collapse to zero and parallax
// is disabled.
package reveal
