package snapshot

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/fx/texture"
)

// Job is one snapshot in a batch.
type Job struct {
	Name   string
	Layers []texture.Renderer
}

// RenderAll composes every job concurrently, at most limit at a time.
// A limit of zero or less uses GOMAXPROCS. The first failure cancels the
// remaining jobs and every snapshot already produced is closed. A
// renderer must not appear in more than one job.
func RenderAll(ctx context.Context, opt Options, limit int, jobs ...Job) ([]*Snapshot, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	out := make([]*Snapshot, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, job := range jobs {
		g.Go(func() error {
			snap, err := Compose(gctx, job.Name, opt, job.Layers...)
			if err != nil {
				return err
			}
			out[i] = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, s := range out {
			if s != nil {
				_ = s.Close()
			}
		}
		return nil, err
	}
	return out, nil
}
