// SPDX-License-Identifier: MIT

package wolff

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/isingmc/lattice"
	"github.com/katalvlaran/isingmc/spin"
)

var (
	// ErrInvalidProbability indicates a bond probability outside [0,1].
	ErrInvalidProbability = errors.New("wolff: bond probability out of range")
	// ErrSizeMismatch indicates configuration, table and buffers describe different lattices.
	ErrSizeMismatch = errors.New("wolff: lattice size mismatch")
)

// BondProbability returns p = 1 − exp(−2β) for inverse temperature beta.
// Complexity: O(1).
func BondProbability(beta float64) float64 {
	return -math.Expm1(-2 * beta)
}

// ValidateProbability returns ErrInvalidProbability unless 0 ≤ p ≤ 1.
func ValidateProbability(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidProbability, p)
	}
	return nil
}

// Cluster holds the reusable buffers of the update for one lattice size.
// A Cluster is owned by one goroutine.
type Cluster struct {
	member  []bool
	stack   []int
	members []int
	dBonds  int
}

// NewCluster allocates buffers for a lattice of n sites.
func NewCluster(n int) *Cluster {
	return &Cluster{
		member:  make([]bool, n),
		stack:   make([]int, 0, n),
		members: make([]int, 0, n),
	}
}

// Check returns ErrSizeMismatch unless cfg, adj and the buffers agree on N.
// Drivers call it once before a run of Steps.
func (c *Cluster) Check(cfg *spin.Configuration, adj *lattice.Adjacency) error {
	if cfg.Len() != adj.Len() || len(c.member) != adj.Len() {
		return fmt.Errorf("%w: config %d, adjacency %d, buffers %d",
			ErrSizeMismatch, cfg.Len(), adj.Len(), len(c.member))
	}
	return nil
}

// Members returns the sites flipped by the most recent Step, seed first.
// The slice is reused by the next Step.
func (c *Cluster) Members() []int {
	return c.members
}

// BondChange returns the change of Σ_bonds s_i·s_j caused by the most recent
// Step. Only bonds crossing the cluster boundary change sign, so a running
// energy can be kept without rescanning the lattice.
func (c *Cluster) BondChange() int {
	return c.dBonds
}

// Step performs one Wolff update on cfg and returns the number of flipped sites.
// Inputs are assumed validated: matching sizes (see Check) and p ∈ [0,1].
// It also records BondChange.
// Complexity: O(|C|·d).
func (c *Cluster) Step(cfg *spin.Configuration, adj *lattice.Adjacency, p float64, rng *rand.Rand) int {
	seed := rng.Intn(cfg.Len())
	c.members = append(c.members[:0], seed)
	c.stack = append(c.stack[:0], seed)
	c.member[seed] = true

	for len(c.stack) > 0 {
		u := c.stack[len(c.stack)-1]
		c.stack = c.stack[:len(c.stack)-1]
		su := cfg.At(u)
		for _, v32 := range adj.Neighbors(u) {
			v := int(v32)
			if c.member[v] || cfg.At(v) != su {
				continue
			}
			if rng.Float64() < p {
				c.member[v] = true
				c.stack = append(c.stack, v)
				c.members = append(c.members, v)
			}
		}
	}

	// Boundary bonds, read before the flip: each changes s_u·s_v by -2·s_u·s_v.
	c.dBonds = 0
	for _, u := range c.members {
		su := int(cfg.At(u))
		for _, v := range adj.Neighbors(u) {
			if !c.member[v] {
				c.dBonds -= 2 * su * int(cfg.At(int(v)))
			}
		}
	}

	// Flip only after growth: the spin test above reads pre-update values.
	cfg.Flip(c.members)
	for _, i := range c.members {
		c.member[i] = false
	}
	return len(c.members)
}

// Step is a convenience wrapper that allocates a Cluster for a single update.
// It returns ErrSizeMismatch or ErrInvalidProbability for bad input.
// Use a long-lived Cluster in loops.
func Step(cfg *spin.Configuration, adj *lattice.Adjacency, p float64, rng *rand.Rand) (int, error) {
	if err := ValidateProbability(p); err != nil {
		return 0, err
	}
	c := NewCluster(adj.Len())
	if err := c.Check(cfg, adj); err != nil {
		return 0, err
	}
	return c.Step(cfg, adj, p, rng), nil
}
