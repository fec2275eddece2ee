// SPDX-License-Identifier: MIT

package hysteresis

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/isingmc/lattice"
)

var (
	// ErrInvalidParameter indicates a request or option that fails validation.
	ErrInvalidParameter = errors.New("hysteresis: invalid parameter")
	// ErrCancelled indicates the trace stopped early; recorded points are returned.
	ErrCancelled = errors.New("hysteresis: cancelled")
)

// Request describes one field sweep.
type Request struct {
	Geometry      lattice.Geometry
	L             int       // side length, ≥ 2
	T             float64   // temperature, > 0
	Path          []float64 // ordered field values, at least one
	StepsPerField int       // Metropolis passes per field value, ≥ 1
}

// Validate returns ErrInvalidParameter describing the first failed precondition.
func (r Request) Validate() error {
	switch {
	case !r.Geometry.Valid():
		return fmt.Errorf("%w: %w", ErrInvalidParameter, lattice.ErrUnknownGeometry)
	case r.L < lattice.MinSide:
		return fmt.Errorf("%w: L=%d, want >= %d", ErrInvalidParameter, r.L, lattice.MinSide)
	case math.IsNaN(r.T) || math.IsInf(r.T, 0) || r.T <= 0:
		return fmt.Errorf("%w: T=%v, want finite > 0", ErrInvalidParameter, r.T)
	case len(r.Path) == 0:
		return fmt.Errorf("%w: empty field path", ErrInvalidParameter)
	case r.StepsPerField < 1:
		return fmt.Errorf("%w: StepsPerField=%d, want >= 1", ErrInvalidParameter, r.StepsPerField)
	}
	for i, h := range r.Path {
		if math.IsNaN(h) || math.IsInf(h, 0) {
			return fmt.Errorf("%w: field %v at path index %d", ErrInvalidParameter, h, i)
		}
	}
	return nil
}

// Point is one (H, M) sample of the trace.
type Point struct {
	H float64
	M float64
}

// Trace is the ordered hysteresis response at temperature T.
type Trace struct {
	T      float64
	Points []Point
}

// Fields returns the H column of the trace.
func (tr *Trace) Fields() []float64 {
	out := make([]float64, len(tr.Points))
	for i, p := range tr.Points {
		out[i] = p.H
	}
	return out
}

// Magnetizations returns the M column of the trace.
func (tr *Trace) Magnetizations() []float64 {
	out := make([]float64, len(tr.Points))
	for i, p := range tr.Points {
		out[i] = p.M
	}
	return out
}

// Area returns the absolute area enclosed by the trace treated as a closed
// polygon in the (H, M) plane (shoelace formula). For a forward+backward
// path it measures the loop's width; it is ~0 without hysteresis.
// Complexity: O(len(Points)).
func (tr *Trace) Area() float64 {
	n := len(tr.Points)
	if n < 3 {
		return 0
	}
	var s float64
	for i := 0; i < n; i++ {
		a, b := tr.Points[i], tr.Points[(i+1)%n]
		s += a.H*b.M - b.H*a.M
	}
	return math.Abs(s) / 2
}

// Loop returns the closed path of 2n−1 fields: n points from −hMax to +hMax,
// then the same points in reverse without repeating +hMax.
// Returns ErrInvalidParameter for n < 2 or a non-positive/non-finite hMax.
func Loop(hMax float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: loop points %d, want >= 2", ErrInvalidParameter, n)
	}
	if math.IsNaN(hMax) || math.IsInf(hMax, 0) || hMax <= 0 {
		return nil, fmt.Errorf("%w: hMax=%v, want finite > 0", ErrInvalidParameter, hMax)
	}
	forward := make([]float64, n)
	for i := range forward {
		forward[i] = -hMax + 2*hMax*float64(i)/float64(n-1)
	}
	forward[n-1] = hMax

	path := make([]float64, 0, 2*n-1)
	path = append(path, forward...)
	for i := n - 2; i >= 0; i-- {
		path = append(path, forward[i])
	}
	return path, nil
}
