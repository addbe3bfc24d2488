package css3d

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/fx/style"
)

// hoverDrag tracks hover and drag state of one element from window-space
// pointer events.
type hoverDrag struct {
	bounds   style.Rect
	hovered  bool
	dragging bool
	lastX    float64
	lastY    float64
}

// inside reports whether a window point hits the element. Empty bounds
// cover the whole window.
func (h *hoverDrag) inside(x, y float64) bool {
	return h.bounds.Empty() || h.bounds.Contains(x, y)
}

// update applies ev and returns the drag delta since the previous event.
// moved is false unless ev is a move during a drag.
func (h *hoverDrag) update(ev gpucontext.PointerEvent) (dx, dy float64, moved bool) {
	switch ev.Type {
	case gpucontext.PointerEnter, gpucontext.PointerMove:
		if !h.inside(ev.X, ev.Y) {
			h.hovered, h.dragging = false, false
			return 0, 0, false
		}
		h.hovered = true
		if h.dragging && ev.Type == gpucontext.PointerMove {
			dx, dy = ev.X-h.lastX, ev.Y-h.lastY
			h.lastX, h.lastY = ev.X, ev.Y
			return dx, dy, true
		}
	case gpucontext.PointerDown:
		if h.inside(ev.X, ev.Y) {
			h.hovered, h.dragging = true, true
			h.lastX, h.lastY = ev.X, ev.Y
		}
	case gpucontext.PointerUp:
		h.dragging = false
	case gpucontext.PointerLeave, gpucontext.PointerCancel:
		h.hovered, h.dragging = false, false
	}
	return 0, 0, false
}

// tilt maps a window point to a rotation of at most factor degrees on each
// axis, proportional to its distance from the element center.
func tilt(bounds style.Rect, x, y, factor float64) (rotX, rotY float64) {
	if bounds.Empty() {
		return 0, 0
	}
	lx, ly := bounds.Local(x, y)
	cx, cy := bounds.Center()
	return -((ly - cy) / cy) * factor, ((lx - cx) / cx) * factor
}

func preserve3D(s style.Style) style.Style {
	return s.Set("transform-style", "preserve-3d")
}

func perspective(px float64) style.Style {
	return style.Style{
		{Property: "position", Value: "relative"},
		{Property: "perspective", Value: style.Px(px)},
		{Property: "perspective-origin", Value: "center"},
	}
}

func size(w, h float64) style.Style {
	return style.Style{
		{Property: "width", Value: style.Px(w)},
		{Property: "height", Value: style.Px(h)},
	}
}

func span(class, text string) style.Element {
	return style.Element{Tag: "span", Class: class, Text: text}
}
