// SPDX-License-Identifier: MIT

package sweep

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/isingmc/lattice"
	"github.com/katalvlaran/isingmc/observable"
	"github.com/katalvlaran/isingmc/rng"
	"github.com/katalvlaran/isingmc/spin"
	"github.com/katalvlaran/isingmc/wolff"
)

// Temperatures returns n equally spaced points over [tmin, tmax] with both
// ends included; n == 1 returns [tmin] and n < 1 returns nil.
// Complexity: O(n).
func Temperatures(tmin, tmax float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	ts := make([]float64, n)
	ts[0] = tmin
	if n == 1 {
		return ts
	}
	step := (tmax - tmin) / float64(n-1)
	for i := 1; i < n-1; i++ {
		ts[i] = tmin + float64(i)*step
	}
	ts[n-1] = tmax
	return ts
}

// point is the output of one temperature worker.
type point struct {
	row   Row
	sizes []int
	final *spin.Configuration
}

// Run executes the sweep described by req.
// Returns ErrInvalidParameter before any work for a bad request or option,
// and ErrCancelled (with partial rows) if ctx ends first.
func Run(ctx context.Context, req Request, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if o.Seed == 0 {
		o.Seed = rng.DefaultSeed
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	adj, err := lattice.Build(req.Geometry, req.L)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	temps := Temperatures(req.TMin, req.TMax, req.NT)
	points := make([]*point, len(temps))
	log := o.Logger.With("geometry", req.Geometry.String(), "L", req.L)
	log.Info("[SWEEP] start", "points", len(temps), "trials", req.Trials, "workers", o.Workers, "seed", o.Seed)
	start := time.Now()

	var g errgroup.Group
	g.SetLimit(o.Workers)
	for i, T := range temps {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			pt, err := runPoint(adj, T, req.Trials, o.Equilibration, rng.Derive(o.Seed, uint64(i)))
			if err != nil {
				return fmt.Errorf("sweep: temperature %v: %w", T, err)
			}
			points[i] = pt
			log.Debug("[SWEEP] point done", "T", T, "mean_abs_m", pt.row.MeanAbsM, "mean_cluster", pt.row.MeanClusterSize)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := assemble(req, points, o)
	if res.Metadata.Completed < res.Metadata.Requested {
		log.Warn("[SWEEP] cancelled", "completed", res.Metadata.Completed, "requested", res.Metadata.Requested)
		return res, fmt.Errorf("%w: %d of %d temperatures complete: %w",
			ErrCancelled, res.Metadata.Completed, res.Metadata.Requested, ctx.Err())
	}
	log.Info("[SWEEP] done", "elapsed", time.Since(start).Round(time.Millisecond), "degenerate_rows", res.Metadata.DegenerateRows)
	return res, nil
}

// runPoint simulates one temperature with its own random stream.
// The energy is tracked from each cluster's boundary, so the cost is one
// O(N·d) scan plus the cluster growth itself.
func runPoint(adj *lattice.Adjacency, T float64, trials, equilibration int, r *rand.Rand) (*point, error) {
	cfg, err := spin.NewRandom(adj.Side(), r)
	if err != nil {
		return nil, err
	}
	c := wolff.NewCluster(adj.Len())
	if err := c.Check(cfg, adj); err != nil {
		return nil, err
	}
	p := wolff.BondProbability(1 / T)

	for k := 0; k < equilibration; k++ {
		c.Step(cfg, adj, p, r)
	}
	mags := make([]float64, trials)
	energies := make([]float64, trials)
	sizes := make([]int, trials)
	bonds := cfg.BondSum(adj)
	n := float64(adj.Len())
	for k := 0; k < trials; k++ {
		sizes[k] = c.Step(cfg, adj, p, r)
		bonds += c.BondChange()
		mags[k] = cfg.Magnetization()
		energies[k] = -float64(bonds) / n
	}

	sum, err := observable.Summarize(mags, adj.Len(), T)
	if err != nil {
		return nil, err
	}
	e := observable.Mean(energies)
	return &point{
		row: Row{
			T:                T,
			MeanAbsM:         sum.MeanAbs,
			VarM:             sum.Variance,
			Chi:              sum.Susceptibility,
			Binder:           sum.Binder,
			MeanClusterSize:  observable.MeanInt(sizes),
			MeanEnergy:       e,
			SpecificHeat:     observable.SpecificHeat(adj.Len(), e, observable.RawMoment(energies, 2), T),
			BinderDegenerate: sum.BinderDegenerate,
		},
		sizes: sizes,
		final: cfg,
	}, nil
}

// assemble joins finished points in temperature order.
func assemble(req Request, points []*point, o Options) *Result {
	res := &Result{
		Request: req,
		Metadata: Metadata{
			Seed:          o.Seed,
			Workers:       o.Workers,
			Equilibration: o.Equilibration,
			Requested:     len(points),
			BinderPolicy:  observable.BinderPolicy,
		},
	}
	for _, pt := range points {
		if pt == nil {
			continue
		}
		res.Rows = append(res.Rows, pt.row)
		res.ClusterSizes = append(res.ClusterSizes, pt.sizes...)
		if pt.row.BinderDegenerate {
			res.Metadata.DegenerateRows++
		}
		if o.Snapshots {
			res.Snapshots = append(res.Snapshots, Snapshot{T: pt.row.T, Spins: pt.final.Grid()})
		}
	}
	res.Metadata.Completed = len(res.Rows)
	return res
}
