package reveal

import "github.com/gogpu/fx/style"

// Bezier is a CSS cubic-bezier timing function with fixed end points
// (0,0) and (1,1).
type Bezier struct {
	X1, Y1, X2, Y2 float64
}

// Timing functions used by the reveal primitives.
var (
	// RevealEase is a strong ease-out used by full-motion reveals.
	RevealEase = Bezier{0.22, 1, 0.36, 1}
	// EaseOut is the CSS ease-out curve used for opacity-only reveals.
	EaseOut = Bezier{0, 0, 0.58, 1}
)

// At returns the eased progress for linear progress t in [0, 1].
func (b Bezier) At(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	s := b.solve(t)
	return bezier(s, b.Y1, b.Y2)
}

// solve finds the curve parameter whose x coordinate is x.
func (b Bezier) solve(x float64) float64 {
	s := x
	for range 8 {
		dx := bezier(s, b.X1, b.X2) - x
		if dx > -1e-7 && dx < 1e-7 {
			return s
		}
		d := bezierSlope(s, b.X1, b.X2)
		if d > -1e-6 && d < 1e-6 {
			break
		}
		s -= dx / d
	}

	// Newton did not converge; bisect.
	lo, hi := 0.0, 1.0
	s = x
	for range 50 {
		v := bezier(s, b.X1, b.X2)
		if v-x > -1e-7 && v-x < 1e-7 {
			break
		}
		if v < x {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}
	return s
}

func bezier(s, p1, p2 float64) float64 {
	u := 1 - s
	return 3*u*u*s*p1 + 3*u*s*s*p2 + s*s*s
}

func bezierSlope(s, p1, p2 float64) float64 {
	u := 1 - s
	return 3*u*u*p1 + 6*u*s*(p2-p1) + 3*s*s*(1-p2)
}

// String formats b as a CSS timing function.
func (b Bezier) String() string {
	return "cubic-bezier(" + style.Num(b.X1) + ", " + style.Num(b.Y1) + ", " +
		style.Num(b.X2) + ", " + style.Num(b.Y2) + ")"
}
