package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/capability"
	"github.com/gogpu/fx/css3d"
	"github.com/gogpu/fx/frame"
	"github.com/gogpu/fx/guard"
	"github.com/gogpu/fx/metrics"
	"github.com/gogpu/fx/snapshot"
	"github.com/gogpu/fx/texture"
)

func runSnapshot(ctx context.Context, args []string) error {
	c := newCLI("snapshot")
	cfg, err := c.parse(args)
	if err != nil {
		return err
	}
	setupLogging(c.verbose)
	log := fx.Logger()

	if err := os.MkdirAll(cfg.Out, 0o755); err != nil {
		return err
	}

	// Canvas 2D is rasterized by gg on the CPU, so every capability is
	// available to offscreen renders.
	p, closeFlags, err := newProvider(capability.Full, cfg.Prefs)
	if err != nil {
		return err
	}
	defer closeFlags()

	reg := prometheus.NewRegistry()
	col := metrics.New()
	if err := col.Register(reg); err != nil {
		return err
	}

	var bus guard.Bus
	boundary := guard.New("canvas", "css", capability.Full)
	boundary.OnTrip(col.BoundaryTripped)
	detach := bus.Attach(boundary)
	defer detach()

	opt := cfg.snapshotOptions()
	opt.Flags = p
	opt.Observer = col

	renderers := cfg.renderers()
	jobs := make([]snapshot.Job, len(renderers))
	for i, r := range renderers {
		jobs[i] = snapshot.Job{Name: r.Name(), Layers: []texture.Renderer{r}}
	}

	start := time.Now()
	snaps, err := snapshot.RenderAll(ctx, opt, cfg.Jobs, jobs...)
	if err != nil {
		if !bus.Report(err) {
			return err
		}
		// The canvas is unusable: write what the page would show instead.
		log.Warn("canvas failed, writing CSS fallbacks", slog.String("boundary", boundary.ID()), slog.Any("err", err))
		return writeFallbacks(cfg, renderers, p.Flags().UseReducedMotion)
	}
	for _, s := range snaps {
		path := filepath.Join(cfg.Out, s.Name+".png")
		err := s.SavePNG(path)
		_ = s.Close()
		if err != nil {
			return err
		}
		fmt.Println(path)
	}
	log.Info("rendered effects", slog.Int("count", len(snaps)), slog.Duration("took", time.Since(start)))

	if cfg.Text != "" {
		path, err := renderText(ctx, cfg, opt)
		if err != nil {
			return err
		}
		fmt.Println(path)
	}

	if cfg.Metrics != "" {
		if err := prometheus.WriteToTextfile(cfg.Metrics, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

// renderText poses extruded text the way it would be after cfg.Frames
// sway steps and paints it.
func renderText(ctx context.Context, cfg Config, opt snapshot.Options) (string, error) {
	tc := css3d.DefaultText3DConfig(cfg.Text)
	clock := frame.NewManual()
	t := css3d.NewText3D(tc, clock, opt.Flags)
	t.Mount()
	clock.Advance(time.Duration(cfg.Frames) * css3d.Text3DInterval)
	pose := t.Pose()
	t.Unmount()

	s, err := snapshot.RenderText3D(ctx, opt, tc, pose)
	if err != nil {
		return "", err
	}
	defer s.Close()
	path := filepath.Join(cfg.Out, "text3d.png")
	return path, s.SavePNG(path)
}

func writeFallbacks(cfg Config, renderers []texture.Renderer, reduced bool) error {
	for _, r := range renderers {
		path := filepath.Join(cfg.Out, r.Name()+".html")
		if err := os.WriteFile(path, []byte(r.Fallback(reduced).HTML()+"\n"), 0o644); err != nil {
			return err
		}
		fmt.Println(path)
	}
	return nil
}
