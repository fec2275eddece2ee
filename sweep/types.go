// SPDX-License-Identifier: MIT

package sweep

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/isingmc/lattice"
	"github.com/katalvlaran/isingmc/observable"
)

var (
	// ErrInvalidParameter indicates a request or option that fails validation.
	ErrInvalidParameter = errors.New("sweep: invalid parameter")
	// ErrCancelled indicates the sweep stopped early; partial rows are returned.
	ErrCancelled = errors.New("sweep: cancelled")
)

// Request describes one temperature sweep.
type Request struct {
	Geometry lattice.Geometry
	L        int     // side length, ≥ 2
	TMin     float64 // > 0
	TMax     float64 // ≥ TMin
	NT       int     // number of temperature points, ≥ 1
	Trials   int     // Wolff updates sampled per point, ≥ 1
}

// Validate returns ErrInvalidParameter describing the first failed precondition.
func (r Request) Validate() error {
	switch {
	case !r.Geometry.Valid():
		return fmt.Errorf("%w: %w", ErrInvalidParameter, lattice.ErrUnknownGeometry)
	case r.L < lattice.MinSide:
		return fmt.Errorf("%w: L=%d, want >= %d", ErrInvalidParameter, r.L, lattice.MinSide)
	case r.NT < 1:
		return fmt.Errorf("%w: NT=%d, want >= 1", ErrInvalidParameter, r.NT)
	case r.Trials < 1:
		return fmt.Errorf("%w: Trials=%d, want >= 1", ErrInvalidParameter, r.Trials)
	case !finite(r.TMin) || !finite(r.TMax):
		return fmt.Errorf("%w: temperatures must be finite", ErrInvalidParameter)
	case r.TMin <= 0:
		return fmt.Errorf("%w: TMin=%v, want > 0", ErrInvalidParameter, r.TMin)
	case r.TMax < r.TMin:
		return fmt.Errorf("%w: TMax=%v < TMin=%v", ErrInvalidParameter, r.TMax, r.TMin)
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Row is the observable summary of one temperature point.
type Row struct {
	T                float64
	MeanAbsM         float64 // ⟨|M|⟩
	VarM             float64 // population variance of M
	Chi              float64 // N·(⟨M²⟩ − ⟨|M|⟩²)/T
	Binder           float64 // 1 − ⟨M⁴⟩/(3⟨M²⟩²), 0 when degenerate
	MeanClusterSize  float64
	MeanEnergy       float64 // per site
	SpecificHeat     float64 // N·(⟨e²⟩ − ⟨e⟩²)/T²
	BinderDegenerate bool
}

// Snapshot is the final configuration of one temperature point, row-major.
type Snapshot struct {
	T     float64
	Spins [][]int8
}

// Metadata records how a Result was produced.
type Metadata struct {
	Seed           int64
	Workers        int
	Equilibration  int
	Requested      int // temperature points requested
	Completed      int // temperature points finished
	DegenerateRows int
	BinderPolicy   string
}

// Result is the output of Run.
type Result struct {
	Request      Request
	Rows         []Row
	ClusterSizes []int
	Snapshots    []Snapshot // only with WithSnapshots
	Metadata     Metadata
}

// ClusterHistogram bins all recorded cluster sizes for plotting.
func (r *Result) ClusterHistogram(bins int) ([]observable.Bin, error) {
	return observable.Histogram(r.ClusterSizes, bins)
}
