// SPDX-License-Identifier: MIT

// Package metropolis implements the single-spin Metropolis update of the Ising
// model in an external field H:
//
//	ΔE = 2·s_i·(Σ_{j∈nbr(i)} s_j + H)
//	accept with probability min(1, exp(−β·ΔE))
//
// Unlike the Wolff cluster update it is valid for any H, which is why the
// hysteresis driver uses it.
//
// A Sampler precomputes the acceptance table for the 2·(d+1) possible
// (s_i, Σ nbr) pairs, so a micro-step is a table lookup plus at most one
// uniform draw. Downhill and neutral moves (ΔE ≤ 0) are accepted without
// consuming randomness.
//
// Complexity: Pass is O(N·d).
package metropolis

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/isingmc/lattice"
	"github.com/katalvlaran/isingmc/spin"
)

var (
	// ErrInvalidParameter indicates a non-finite or negative β, or a non-finite H.
	ErrInvalidParameter = errors.New("metropolis: invalid parameter")
	// ErrSizeMismatch indicates a configuration that does not match the sampler's lattice.
	ErrSizeMismatch = errors.New("metropolis: lattice size mismatch")
)

// Order selects how the N micro-steps of one pass pick their sites.
type Order int

const (
	// RandomOrder draws each site uniformly with rng.Intn(N).
	RandomOrder Order = iota
	// RasterOrder visits sites 0..N-1 in row-major order.
	RasterOrder
)

// String returns "random" or "raster".
func (o Order) String() string {
	if o == RasterOrder {
		return "raster"
	}
	return "random"
}

// DeltaE returns the energy change of flipping a spin si whose neighbours sum
// to nbrSum, in field h.
func DeltaE(si int8, nbrSum int, h float64) float64 {
	return 2 * float64(si) * (float64(nbrSum) + h)
}

// Sampler performs Metropolis updates at fixed β on one lattice.
// The field can be changed between passes with SetField.
type Sampler struct {
	adj    *lattice.Adjacency
	beta   float64
	field  float64
	accept []float64 // [sIdx*(d+1) + (nbrSum+d)/2]
}

// NewSampler returns a Sampler for adj at inverse temperature beta and field h.
// Returns ErrInvalidParameter for beta < 0, NaN/Inf beta, or non-finite h.
func NewSampler(adj *lattice.Adjacency, beta, h float64) (*Sampler, error) {
	if math.IsNaN(beta) || math.IsInf(beta, 0) || beta < 0 {
		return nil, fmt.Errorf("%w: beta %v", ErrInvalidParameter, beta)
	}
	s := &Sampler{
		adj:    adj,
		beta:   beta,
		accept: make([]float64, 2*(adj.Degree()+1)),
	}
	if err := s.SetField(h); err != nil {
		return nil, err
	}
	return s, nil
}

// SetField rebuilds the acceptance table for field h.
// Complexity: O(d).
func (s *Sampler) SetField(h float64) error {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return fmt.Errorf("%w: field %v", ErrInvalidParameter, h)
	}
	s.field = h
	d := s.adj.Degree()
	for si, sv := range []int8{spin.Down, spin.Up} {
		for k := 0; k <= d; k++ {
			de := DeltaE(sv, 2*k-d, h)
			p := 1.0
			if de > 0 {
				p = math.Exp(-s.beta * de)
			}
			s.accept[si*(d+1)+k] = p
		}
	}
	return nil
}

// Field returns the current external field.
func (s *Sampler) Field() float64 { return s.field }

// Beta returns the inverse temperature.
func (s *Sampler) Beta() float64 { return s.beta }

// Check returns ErrSizeMismatch unless cfg has the sampler's lattice size.
func (s *Sampler) Check(cfg *spin.Configuration) error {
	if cfg.Len() != s.adj.Len() {
		return fmt.Errorf("%w: config %d, adjacency %d", ErrSizeMismatch, cfg.Len(), s.adj.Len())
	}
	return nil
}

// Update attempts to flip site i and reports whether it was flipped.
// Complexity: O(d).
func (s *Sampler) Update(cfg *spin.Configuration, i int, rng *rand.Rand) bool {
	var sum int
	for _, j := range s.adj.Neighbors(i) {
		sum += int(cfg.At(int(j)))
	}
	d := s.adj.Degree()
	si := 0
	if cfg.At(i) == spin.Up {
		si = 1
	}
	p := s.accept[si*(d+1)+(sum+d)/2]
	if p < 1 && rng.Float64() >= p {
		return false
	}
	cfg.FlipSite(i)
	return true
}

// Pass performs N micro-steps (one Monte Carlo sweep) and returns the number
// of accepted flips. cfg must match the sampler's lattice (see Check).
// Complexity: O(N·d).
func (s *Sampler) Pass(cfg *spin.Configuration, order Order, rng *rand.Rand) int {
	n := cfg.Len()
	accepted := 0
	for k := 0; k < n; k++ {
		i := k
		if order == RandomOrder {
			i = rng.Intn(n)
		}
		if s.Update(cfg, i, rng) {
			accepted++
		}
	}
	return accepted
}
