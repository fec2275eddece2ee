// SPDX-License-Identifier: MIT

package spin

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/isingmc/lattice"
)

// Sentinel errors for configuration construction.
var (
	// ErrInvalidSide indicates a side length below 1.
	ErrInvalidSide = errors.New("spin: side length must be >= 1")
	// ErrNilRand indicates a random constructor was called with a nil *rand.Rand.
	ErrNilRand = errors.New("spin: rng is required")
	// ErrInvalidSpin indicates an input slice with a wrong length or a value outside {-1,+1}.
	ErrInvalidSpin = errors.New("spin: invalid spin slice")
)

// Up and Down are the two spin values.
const (
	Up   int8 = 1
	Down int8 = -1
)

// Configuration is a mutable L×L field of ±1 spins with a running sum.
type Configuration struct {
	side  int
	spins []int8
	sum   int
}

// NewRandom draws each of the L² sites independently from {-1,+1} using one
// rng.Intn(2) per site in row-major order.
// Complexity: O(L²).
func NewRandom(L int, rng *rand.Rand) (*Configuration, error) {
	if L < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSide, L)
	}
	if rng == nil {
		return nil, ErrNilRand
	}
	c := &Configuration{side: L, spins: make([]int8, L*L)}
	for i := range c.spins {
		if rng.Intn(2) == 0 {
			c.spins[i] = Down
		} else {
			c.spins[i] = Up
		}
		c.sum += int(c.spins[i])
	}

	return c, nil
}

// NewAllUp returns an L×L configuration with every spin +1.
// Complexity: O(L²).
func NewAllUp(L int) (*Configuration, error) {
	if L < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSide, L)
	}
	c := &Configuration{side: L, spins: make([]int8, L*L), sum: L * L}
	for i := range c.spins {
		c.spins[i] = Up
	}

	return c, nil
}

// FromSpins copies an explicit row-major spin slice of length L².
// Complexity: O(L²).
func FromSpins(L int, spins []int8) (*Configuration, error) {
	if L < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSide, L)
	}
	if len(spins) != L*L {
		return nil, fmt.Errorf("%w: length %d, want %d", ErrInvalidSpin, len(spins), L*L)
	}
	c := &Configuration{side: L, spins: make([]int8, len(spins))}
	for i, s := range spins {
		if s != Up && s != Down {
			return nil, fmt.Errorf("%w: value %d at site %d", ErrInvalidSpin, s, i)
		}
		c.spins[i] = s
		c.sum += int(s)
	}

	return c, nil
}

// Len returns the number of sites N = L².
func (c *Configuration) Len() int { return len(c.spins) }

// Side returns L.
func (c *Configuration) Side() int { return c.side }

// At returns the spin at site i.
func (c *Configuration) At(i int) int8 { return c.spins[i] }

// Sum returns Σs over all sites.
func (c *Configuration) Sum() int { return c.sum }

// Magnetization returns Σs/N, always in [-1, 1].
// Complexity: O(1).
func (c *Configuration) Magnetization() float64 {
	return float64(c.sum) / float64(len(c.spins))
}

// Flip negates every site in sites, in place. Each index must appear at most
// once; a repeated index would be flipped back.
// Complexity: O(len(sites)).
func (c *Configuration) Flip(sites []int) {
	for _, i := range sites {
		c.FlipSite(i)
	}
}

// FlipSite negates the spin at site i.
func (c *Configuration) FlipSite(i int) {
	s := c.spins[i]
	c.sum -= 2 * int(s)
	c.spins[i] = -s
}

// Uniform reports whether all spins are equal.
func (c *Configuration) Uniform() bool {
	n := len(c.spins)
	return c.sum == n || c.sum == -n
}

// BondSum returns Σ_bonds s_i·s_j with each bond slot of adj counted once.
// adj must describe the same lattice size.
// Complexity: O(N·d).
func (c *Configuration) BondSum(adj *lattice.Adjacency) int {
	var b int
	for i, s := range c.spins {
		var local int
		for _, j := range adj.Neighbors(i) {
			local += int(c.spins[j])
		}
		b += int(s) * local
	}
	// Every bond was visited from both ends.
	return b / 2
}

// Energy returns the zero-field energy per site, -BondSum/N.
// Complexity: O(N·d).
func (c *Configuration) Energy(adj *lattice.Adjacency) float64 {
	return -float64(c.BondSum(adj)) / float64(len(c.spins))
}

// Grid returns a row-major L×L copy of the spins, the layout a lattice
// snapshot is rendered from.
// Complexity: O(L²).
func (c *Configuration) Grid() [][]int8 {
	g := make([][]int8, c.side)
	for r := 0; r < c.side; r++ {
		g[r] = make([]int8, c.side)
		copy(g[r], c.spins[r*c.side:(r+1)*c.side])
	}
	return g
}

// Spins returns a copy of the row-major spin slice.
func (c *Configuration) Spins() []int8 {
	out := make([]int8, len(c.spins))
	copy(out, c.spins)
	return out
}

// Clone returns an independent copy of c.
func (c *Configuration) Clone() *Configuration {
	return &Configuration{side: c.side, spins: c.Spins(), sum: c.sum}
}
