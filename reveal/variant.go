package reveal

import "fmt"

// Variant selects the hidden state a Reveal animates from.
type Variant int

// Reveal variants.
const (
	FadeIn Variant = iota
	FadeInUp
	FadeInDown
	FadeInLeft
	FadeInRight
	ZoomIn
	RotateIn
	SlideUp
	SlideDown
	SlideLeft
	SlideRight
	ClipPath
)

var variantNames = [...]string{
	FadeIn:      "fadeIn",
	FadeInUp:    "fadeInUp",
	FadeInDown:  "fadeInDown",
	FadeInLeft:  "fadeInLeft",
	FadeInRight: "fadeInRight",
	ZoomIn:      "zoomIn",
	RotateIn:    "rotateIn",
	SlideUp:     "slideUp",
	SlideDown:   "slideDown",
	SlideLeft:   "slideLeft",
	SlideRight:  "slideRight",
	ClipPath:    "clipPath",
}

// revealDistance is how far directional variants travel, in CSS pixels.
const revealDistance = 50

func (v Variant) String() string {
	if v >= 0 && int(v) < len(variantNames) {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant returns the variant with the given name.
func ParseVariant(s string) (Variant, error) {
	for i, name := range variantNames {
		if name == s {
			return Variant(i), nil
		}
	}
	return FadeIn, fmt.Errorf("reveal: unknown variant %q", s)
}

// Hidden returns the state before the element is revealed.
func (v Variant) Hidden() Frame {
	f := Frame{Scale: 1}
	switch v {
	case FadeInUp, SlideUp:
		f.Y = revealDistance
	case FadeInDown, SlideDown:
		f.Y = -revealDistance
	case FadeInLeft, SlideLeft:
		f.X = revealDistance
	case FadeInRight, SlideRight:
		f.X = -revealDistance
	case ZoomIn:
		f.Scale = 0.9
	case RotateIn:
		f.Rotate = -5
	case ClipPath:
		f.Clip, f.ClipRight = true, 100
	}
	return f
}

// Visible returns the fully revealed state.
func (v Variant) Visible() Frame {
	return Frame{Opacity: 1, Scale: 1, Clip: v == ClipPath}
}
