package style

// Rect is an element's box in window coordinates, in CSS pixels.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Center returns the center point of r in local coordinates.
func (r Rect) Center() (x, y float64) { return r.Width / 2, r.Height / 2 }

// Contains reports whether the window point (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Local converts a window point into r's coordinate space.
func (r Rect) Local(x, y float64) (lx, ly float64) { return x - r.X, y - r.Y }
