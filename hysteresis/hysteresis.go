// SPDX-License-Identifier: MIT

package hysteresis

import (
	"context"
	"fmt"

	"github.com/katalvlaran/isingmc/lattice"
	"github.com/katalvlaran/isingmc/metropolis"
	"github.com/katalvlaran/isingmc/spin"
)

// Run traces M(H) along req.Path starting from the all-up configuration.
// Returns ErrInvalidParameter before any work for a bad request, and
// ErrCancelled together with the points recorded so far if ctx ends.
// Complexity: O(len(Path)·StepsPerField·N·d).
func Run(ctx context.Context, req Request, opts ...Option) (*Trace, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Order != metropolis.RandomOrder && o.Order != metropolis.RasterOrder {
		return nil, fmt.Errorf("%w: order %d", ErrInvalidParameter, int(o.Order))
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	adj, err := lattice.Build(req.Geometry, req.L)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	cfg, err := spin.NewAllUp(req.L)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	sampler, err := metropolis.NewSampler(adj, 1/req.T, req.Path[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	log := o.Logger.With("geometry", req.Geometry.String(), "L", req.L, "T", req.T)
	log.Info("[HYST] start", "fields", len(req.Path), "steps_per_field", req.StepsPerField, "order", o.Order.String())

	tr := &Trace{T: req.T, Points: make([]Point, 0, len(req.Path))}
	for _, h := range req.Path {
		if err := ctx.Err(); err != nil {
			log.Warn("[HYST] cancelled", "recorded", len(tr.Points))
			return tr, fmt.Errorf("%w: %d of %d fields recorded: %w", ErrCancelled, len(tr.Points), len(req.Path), err)
		}
		if err := sampler.SetField(h); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
		}
		accepted := 0
		for k := 0; k < req.StepsPerField; k++ {
			accepted += sampler.Pass(cfg, o.Order, o.Rand)
		}
		tr.Points = append(tr.Points, Point{H: h, M: cfg.Magnetization()})
		log.Debug("[HYST] field done", "H", h, "M", cfg.Magnetization(), "accepted", accepted)
	}
	log.Info("[HYST] done", "area", tr.Area())
	return tr, nil
}
