// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/fx"
)

// Box is the on-screen size of an effect element.
type Box struct {
	// Width and Height are in CSS pixels.
	Width, Height int
	// DPR is the device pixel ratio. Zero means 1.
	DPR float64
}

// BoxFromWindow sizes an effect to fill a window.
func BoxFromWindow(w gpucontext.WindowProvider) Box {
	width, height := w.Size()
	return Box{Width: width, Height: height, DPR: w.ScaleFactor()}
}

func (b Box) scale() float64 {
	if b.DPR <= 0 {
		return 1
	}
	return b.DPR
}

// DeviceSize returns the box size in device pixels.
func (b Box) DeviceSize() (w, h int) {
	s := b.scale()
	return int(math.Floor(float64(b.Width) * s)), int(math.Floor(float64(b.Height) * s))
}

// Canvas is a drawing target created for one effect instance.
type Canvas interface {
	// Context returns the drawing context. Its logical coordinates are
	// CSS pixels; the backing pixmap is in device pixels.
	Context() *gg.Context

	// Resize changes the CSS size, keeping the device pixel ratio.
	Resize(width, height int) error

	// Close releases the canvas.
	Close() error
}

// CanvasFactory creates canvases. Effects never call it when canvas
// effects are disabled.
type CanvasFactory func(box Box) (Canvas, error)

// NewGGCanvas is the default CanvasFactory, backed by a gg context.
func NewGGCanvas(box Box) (Canvas, error) {
	if box.Width <= 0 || box.Height <= 0 {
		return nil, fmt.Errorf("texture: invalid canvas size %dx%d: %w", box.Width, box.Height, fx.ErrCanvas)
	}
	return &ggCanvas{dc: gg.NewContext(box.Width, box.Height, gg.WithDeviceScale(box.scale()))}, nil
}

type ggCanvas struct {
	dc *gg.Context
}

func (c *ggCanvas) Context() *gg.Context { return c.dc }

func (c *ggCanvas) Resize(width, height int) error {
	if err := c.dc.Resize(width, height); err != nil {
		return fmt.Errorf("texture: resize canvas: %w: %w", fx.ErrCanvas, err)
	}
	return nil
}

func (c *ggCanvas) Close() error { return c.dc.Close() }

// Surface is the sized drawing surface handed to renderers.
type Surface struct {
	canvas Canvas
	box    Box
}

// Box returns the CSS box of the surface.
func (s *Surface) Box() Box { return s.box }

// Context returns the drawing context.
func (s *Surface) Context() *gg.Context { return s.canvas.Context() }

// Width returns the width in CSS pixels.
func (s *Surface) Width() float64 { return float64(s.box.Width) }

// Height returns the height in CSS pixels.
func (s *Surface) Height() float64 { return float64(s.box.Height) }

// PixelSize returns the backing pixmap size in device pixels.
func (s *Surface) PixelSize() (w, h int) {
	pm := s.Context().ResizeTarget()
	return pm.Width(), pm.Height()
}

// Pixels returns the backing premultiplied RGBA buffer in device pixels.
func (s *Surface) Pixels() []uint8 {
	return s.Context().ResizeTarget().Data()
}

// Present marks the pixel buffer as changed after direct writes.
func (s *Surface) Present() {
	s.Context().ResizeTarget().NotifyPixelsChanged()
}

func (s *Surface) resize(box Box) error {
	if box.Width <= 0 || box.Height <= 0 {
		return fmt.Errorf("texture: invalid surface size %dx%d: %w", box.Width, box.Height, fx.ErrCanvas)
	}
	if err := s.canvas.Resize(box.Width, box.Height); err != nil {
		return err
	}
	s.box.Width, s.box.Height = box.Width, box.Height
	return nil
}
