// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package snapshot

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/capability"
	"github.com/gogpu/fx/frame"
	"github.com/gogpu/fx/policy"
	"github.com/gogpu/fx/style"
	"github.com/gogpu/fx/texture"
)

// ErrNoLayers is returned when there is nothing to composite.
var ErrNoLayers = errors.New("snapshot: no layers")

// Options configures an offscreen render.
type Options struct {
	// Width and Height are in CSS pixels.
	Width, Height int
	// DPR is the device pixel ratio. Zero means 1.
	DPR float64
	// Background fills the page under the effect layers.
	Background style.Color
	// Frames is how many display frames to advance after mounting.
	Frames int
	// Seed makes renders reproducible.
	Seed uint64
	// Flags gates the effects. Nil means every capability with motion on.
	Flags policy.Source
	// Observer receives effect lifecycle events.
	Observer texture.Observer
}

// DefaultOptions returns a 640x360 render over black, 30 frames in.
func DefaultOptions() Options {
	return Options{
		Width:      640,
		Height:     360,
		DPR:        1,
		Background: style.MustColor("#000000"),
		Frames:     30,
		Seed:       1,
	}
}

func (o Options) box() texture.Box {
	return texture.Box{Width: o.Width, Height: o.Height, DPR: o.DPR}
}

func (o Options) scale() float64 {
	if o.DPR <= 0 {
		return 1
	}
	return o.DPR
}

// Snapshot is a composited still image.
type Snapshot struct {
	Name string
	dc   *gg.Context
}

// Image returns a copy of the pixels.
func (s *Snapshot) Image() image.Image { return s.dc.Image() }

// Context returns the drawing context holding the image.
func (s *Snapshot) Context() *gg.Context { return s.dc }

// EncodePNG writes the image as PNG.
func (s *Snapshot) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }

// SavePNG writes the image to a PNG file.
func (s *Snapshot) SavePNG(path string) error { return s.dc.SavePNG(path) }

// Close releases the image.
func (s *Snapshot) Close() error { return s.dc.Close() }

// Render composites one effect over the background.
func Render(ctx context.Context, opt Options, r texture.Renderer) (*Snapshot, error) {
	return Compose(ctx, r.Name(), opt, r)
}

// Compose renders each layer in order and composites them bottom to top.
func Compose(ctx context.Context, name string, opt Options, layers ...texture.Renderer) (*Snapshot, error) {
	if len(layers) == 0 {
		return nil, ErrNoLayers
	}
	if opt.Width <= 0 || opt.Height <= 0 {
		return nil, fmt.Errorf("snapshot: %s: invalid size %dx%d", name, opt.Width, opt.Height)
	}
	flags := opt.Flags
	if flags == nil {
		p := policy.New(capability.Full, policy.StaticMotion(false), policy.WithLowPowerMode(false))
		defer p.Close()
		flags = p
	}

	dc := gg.NewContext(opt.Width, opt.Height, gg.WithDeviceScale(opt.scale()))
	dc.ClearWithColor(ggColor(opt.Background))

	for i, layer := range layers {
		if err := ctx.Err(); err != nil {
			_ = dc.Close()
			return nil, err
		}
		if err := drawLayer(ctx, dc, opt, flags, layer, uint64(i)); err != nil {
			_ = dc.Close()
			return nil, fmt.Errorf("snapshot: %s: %w", name, err)
		}
	}
	fx.Logger().Debug("snapshot composed", slog.String("name", name), slog.Int("layers", len(layers)))
	return &Snapshot{Name: name, dc: dc}, nil
}

func drawLayer(ctx context.Context, dst *gg.Context, opt Options, flags policy.Source, r texture.Renderer, salt uint64) error {
	clock := frame.NewManual()
	effOpts := []texture.Option{texture.WithSeed(opt.Seed + salt)}
	if opt.Observer != nil {
		effOpts = append(effOpts, texture.WithObserver(opt.Observer))
	}
	e := texture.NewEffect(r, flags, clock, effOpts...)
	e.Mount(opt.box())
	defer e.Unmount()

	if err := advance(ctx, clock, r, opt.Frames); err != nil {
		return err
	}
	if e.Mode() != texture.CanvasActive {
		err := e.Err()
		if err == nil {
			err = fx.ErrFallbackToCSS
		}
		return fmt.Errorf("%s: %s: %w", r.Name(), e.Reason(), err)
	}

	p := paintOf(r.CanvasStyle())
	if p.opacity == 0 {
		return nil
	}
	src, ok := e.Surface().Context().Image().(*image.RGBA)
	if !ok {
		return fmt.Errorf("%s: unexpected pixel format: %w", r.Name(), fx.ErrCanvas)
	}
	blur(src, p.blur*opt.scale())

	dst.DrawImageEx(gg.ImageBufFromImage(src), gg.DrawImageOptions{
		DstWidth:  float64(opt.Width),
		DstHeight: float64(opt.Height),
		Opacity:   p.opacity,
		BlendMode: p.blend,
	})
	return nil
}

// advance runs n display frames, or n renderer intervals when the
// renderer animates slower than the display.
func advance(ctx context.Context, clock *frame.Manual, r texture.Renderer, n int) error {
	step := frame.FramePeriod
	if iv := r.Interval(); iv > step {
		step = iv
	}
	for range n {
		if err := ctx.Err(); err != nil {
			return err
		}
		clock.Advance(step)
	}
	return nil
}
