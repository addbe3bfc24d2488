package snapshot

import (
	"context"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/gogpu/fx/css3d"
	"github.com/gogpu/fx/style"
)

var boldSource = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(gobold.TTF)
})

// LayerOffset projects the copy at depth i (translateZ(-i px)) through
// pose onto the screen plane.
func LayerOffset(pose style.Pose, i int) (dx, dy float64) {
	rx := pose.RotateX * math.Pi / 180
	ry := pose.RotateY * math.Pi / 180
	z := -float64(i)
	return z * math.Sin(ry), -z * math.Sin(rx) * math.Cos(ry)
}

// RenderText3D paints extruded text in the given pose: depth copies of
// the text stacked back to front with fading alpha, plus a blurred glow
// of the front copy screened on top.
func RenderText3D(ctx context.Context, opt Options, cfg css3d.Text3DConfig, pose style.Pose) (*Snapshot, error) {
	if opt.Width <= 0 || opt.Height <= 0 {
		return nil, fmt.Errorf("snapshot: text3d: invalid size %dx%d", opt.Width, opt.Height)
	}
	src, err := boldSource()
	if err != nil {
		return nil, fmt.Errorf("snapshot: text3d: load font: %w", err)
	}
	face := src.Face(cfg.FontSize)

	dc := gg.NewContext(opt.Width, opt.Height, gg.WithDeviceScale(opt.scale()))
	dc.ClearWithColor(ggColor(opt.Background))
	dc.SetFont(face)
	cx, cy := float64(opt.Width)/2, float64(opt.Height)/2

	colors := css3d.TextLayerColors(cfg.Color, cfg.Depth)
	for i := len(colors) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			_ = dc.Close()
			return nil, err
		}
		c, err := style.ParseColor(colors[i])
		if err != nil {
			_ = dc.Close()
			return nil, fmt.Errorf("snapshot: text3d: %w", err)
		}
		dx, dy := LayerOffset(pose, i)
		dc.SetColor(ggColor(c))
		dc.DrawStringAnchored(cfg.Text, cx+dx, cy+dy, 0.5, 0.5)
	}

	if cfg.GlowIntensity > 0 {
		glow := gg.NewContext(opt.Width, opt.Height, gg.WithDeviceScale(opt.scale()))
		glow.SetFont(face)
		glow.SetColor(ggColor(cfg.GlowColor))
		glow.DrawStringAnchored(cfg.Text, cx, cy, 0.5, 0.5)
		if img, ok := glow.Image().(*image.RGBA); ok {
			blur(img, cfg.GlowIntensity*opt.scale())
			dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
				DstWidth:  float64(opt.Width),
				DstHeight: float64(opt.Height),
				Opacity:   1,
				BlendMode: gg.BlendScreen,
			})
		}
		_ = glow.Close()
	}
	return &Snapshot{Name: "text3d", dc: dc}, nil
}

func ggColor(c style.Color) gg.RGBA {
	r, g, b, a := c.RGBA255()
	return gg.RGBA2(float64(r)/255, float64(g)/255, float64(b)/255, float64(a)/255)
}
