package render

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/diorama/pkg/math3d"
)

// Render draws a w×h frame. Rows are shaded in parallel into the back buffer,
// which becomes the front buffer only once every row is done. If ctx is
// cancelled first the partial frame is dropped, the front buffer is left as it
// was and ctx.Err() is returned.
//
// The returned framebuffer stays valid until the second successful Render
// after this one reuses it.
func (s *Scene) Render(ctx context.Context, w, h int) (*Framebuffer, error) {
	w, h = max(0, w), max(0, h)
	if s.back == nil {
		s.back = NewFramebuffer(w, h)
	}
	back := s.back
	back.resize(w, h)

	err := s.snapshot().rows(ctx, w, h, s.opts.Workers, func(x, y int, c math3d.Vec3) {
		back.SetColor(x, y, c)
	})
	if err != nil {
		return nil, err
	}

	s.front, s.back = back, s.front
	return s.front, nil
}

// Colors shades a w×h frame and returns its row-major linear colors without
// touching the scene's framebuffers.
func (s *Scene) Colors(ctx context.Context, w, h int) ([]math3d.Vec3, error) {
	w, h = max(0, w), max(0, h)
	out := make([]math3d.Vec3, w*h)
	err := s.snapshot().rows(ctx, w, h, s.opts.Workers, func(x, y int, c math3d.Vec3) {
		out[y*w+x] = c
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// rows shades every pixel and hands it to put. Each row runs as one task and
// put is only ever called with that row's y, so writes never overlap.
func (f *frame) rows(ctx context.Context, w, h, workers int, put func(x, y int, c math3d.Vec3)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for y := range h {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for x := range w {
				put(x, y, f.shade(f.primaryRay(x, y, w, h)))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
