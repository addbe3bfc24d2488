package reveal

import (
	"github.com/gogpu/fx/style"
)

// Frame is the visual state of a revealed element at one instant.
type Frame struct {
	Opacity float64
	// X and Y are the translation in CSS pixels.
	X, Y float64
	// Scale is the uniform scale; 1 is natural size.
	Scale float64
	// Rotate is the rotation about Z in degrees.
	Rotate float64
	// Clip enables an inset clip path whose top and right edges are inset
	// by ClipTop and ClipRight percent.
	Clip      bool
	ClipTop   float64
	ClipRight float64
	// Blur is a filter blur radius in CSS pixels.
	Blur float64
}

// Pose returns the transform part of f.
func (f Frame) Pose() style.Pose {
	return style.Pose{TranslateX: f.X, TranslateY: f.Y, RotateZ: f.Rotate, Scale: f.Scale}
}

// Still reports whether f has no positional component.
func (f Frame) Still() bool {
	return f.Pose().IsIdentity()
}

// Style returns f as inline CSS.
func (f Frame) Style() style.Style {
	s := style.Style{
		{Property: "opacity", Value: style.Num(f.Opacity)},
		{Property: "transform", Value: style.Transform(f.Pose())},
	}
	if f.Clip {
		s = s.Set("clip-path", "inset("+style.Num(f.ClipTop)+"% "+style.Num(f.ClipRight)+"% 0% 0%)")
	}
	if f.Blur > 0 {
		s = s.Set("filter", "blur("+style.Px(f.Blur)+")")
	}
	return s
}

// opacityOnly drops every positional component of f.
func opacityOnly(f Frame) Frame {
	return Frame{Opacity: f.Opacity, Scale: 1}
}

func mix(a, b Frame, t float64) Frame {
	lerp := func(x, y float64) float64 { return x + (y-x)*t }
	return Frame{
		Opacity:   lerp(a.Opacity, b.Opacity),
		X:         lerp(a.X, b.X),
		Y:         lerp(a.Y, b.Y),
		Scale:     lerp(a.Scale, b.Scale),
		Rotate:    lerp(a.Rotate, b.Rotate),
		Clip:      a.Clip || b.Clip,
		ClipTop:   lerp(a.ClipTop, b.ClipTop),
		ClipRight: lerp(a.ClipRight, b.ClipRight),
		Blur:      lerp(a.Blur, b.Blur),
	}
}
