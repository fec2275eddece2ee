// SPDX-License-Identifier: MIT

package spin_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/isingmc/lattice"
	"github.com/katalvlaran/isingmc/spin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConstructors_Errors covers side, rng and slice validation.
func TestConstructors_Errors(t *testing.T) {
	_, err := spin.NewRandom(0, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, spin.ErrInvalidSide)

	_, err = spin.NewRandom(4, nil)
	assert.ErrorIs(t, err, spin.ErrNilRand)

	_, err = spin.NewAllUp(-1)
	assert.ErrorIs(t, err, spin.ErrInvalidSide)

	_, err = spin.FromSpins(2, []int8{1, 1, 1})
	assert.ErrorIs(t, err, spin.ErrInvalidSpin)

	_, err = spin.FromSpins(2, []int8{1, 0, 1, -1})
	assert.ErrorIs(t, err, spin.ErrInvalidSpin)
}

// TestNewRandom_ValuesAndBalance checks that every site is ±1, the running sum
// matches, and the draw is roughly balanced on a large lattice.
func TestNewRandom_ValuesAndBalance(t *testing.T) {
	c, err := spin.NewRandom(64, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	require.Equal(t, 64*64, c.Len())

	sum := 0
	for i := 0; i < c.Len(); i++ {
		s := c.At(i)
		require.True(t, s == spin.Up || s == spin.Down, "site %d = %d", i, s)
		sum += int(s)
	}
	assert.Equal(t, sum, c.Sum())
	// 4096 fair coins: |M| beyond 0.1 is a > 6σ event.
	assert.InDelta(t, 0.0, c.Magnetization(), 0.1)
}

// TestNewRandom_Deterministic verifies that a seeded stream replays exactly.
func TestNewRandom_Deterministic(t *testing.T) {
	a, err := spin.NewRandom(8, rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	b, err := spin.NewRandom(8, rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	assert.Equal(t, a.Spins(), b.Spins())
}

// TestNewAllUp checks the hysteresis starting state.
func TestNewAllUp(t *testing.T) {
	c, err := spin.NewAllUp(5)
	require.NoError(t, err)
	assert.Equal(t, 25, c.Sum())
	assert.Equal(t, 1.0, c.Magnetization())
	assert.True(t, c.Uniform())
}

// TestFlip_UpdatesSum verifies in-place flips keep the running sum consistent.
func TestFlip_UpdatesSum(t *testing.T) {
	c, err := spin.NewAllUp(3)
	require.NoError(t, err)

	c.Flip([]int{0, 4, 8})
	assert.Equal(t, 3, c.Sum())
	assert.Equal(t, spin.Down, c.At(4))
	assert.False(t, c.Uniform())

	c.FlipSite(4)
	assert.Equal(t, 5, c.Sum())
	assert.Equal(t, spin.Up, c.At(4))

	all := make([]int, 9)
	for i := range all {
		all[i] = i
	}
	c.Flip(all)
	assert.Equal(t, -5, c.Sum())
	assert.InDelta(t, -5.0/9.0, c.Magnetization(), 1e-12)
}

// TestEnergy covers the ordered and checkerboard extremes on a 4×4 square torus.
func TestEnergy(t *testing.T) {
	adj, err := lattice.Build(lattice.Square, 4)
	require.NoError(t, err)

	up, err := spin.NewAllUp(4)
	require.NoError(t, err)
	assert.Equal(t, -2.0, up.Energy(adj), "ordered square lattice: -d/2 per site")

	checker := make([]int8, 16)
	for i := range checker {
		r, c := adj.Coordinate(i)
		if (r+c)%2 == 0 {
			checker[i] = spin.Up
		} else {
			checker[i] = spin.Down
		}
	}
	cb, err := spin.FromSpins(4, checker)
	require.NoError(t, err)
	assert.Equal(t, 2.0, cb.Energy(adj))

	tri, err := lattice.Build(lattice.Triangular, 4)
	require.NoError(t, err)
	assert.Equal(t, -3.0, up.Energy(tri), "ordered triangular lattice: -d/2 per site")
}

// TestBondSum checks BondSum against Energy and a hand count on a 2×2 square
// torus, where each neighbour pair carries two bond slots.
func TestBondSum(t *testing.T) {
	adj, err := lattice.Build(lattice.Square, 2)
	require.NoError(t, err)
	cfg, err := spin.FromSpins(2, []int8{1, 1, 1, -1})
	require.NoError(t, err)
	// 8 bonds: the 4 touching site 3 are -1, the other 4 are +1.
	assert.Equal(t, 0, cfg.BondSum(adj))
	assert.Equal(t, 0.0, cfg.Energy(adj))

	up, err := spin.NewAllUp(2)
	require.NoError(t, err)
	assert.Equal(t, adj.Bonds(), up.BondSum(adj))
	assert.Equal(t, -float64(up.BondSum(adj))/4, up.Energy(adj))
}

// TestGridAndClone checks the row-major snapshot and clone independence.
func TestGridAndClone(t *testing.T) {
	c, err := spin.FromSpins(2, []int8{1, -1, -1, 1})
	require.NoError(t, err)
	assert.Equal(t, [][]int8{{1, -1}, {-1, 1}}, c.Grid())

	d := c.Clone()
	d.FlipSite(1)
	assert.Equal(t, spin.Down, c.At(1))
	assert.Equal(t, spin.Up, d.At(1))
	assert.Equal(t, 0, c.Sum())
	assert.Equal(t, 2, d.Sum())
}

// TestDomains identifies same-spin regions with periodic wrapping.
//
//   - + - -
//   - + - -
//   - - + +
//   - - + +
//
// On the torus the blocks of equal sign touch only at corners, so Square
// connectivity sees 4 domains. The triangular (+1,-1) diagonal links
// (1,2)-(2,1) and, across the wrap, (1,0)-(2,3), leaving 2 domains.
func TestDomains(t *testing.T) {
	spins := []int8{
		1, 1, -1, -1,
		1, 1, -1, -1,
		-1, -1, 1, 1,
		-1, -1, 1, 1,
	}
	c, err := spin.FromSpins(4, spins)
	require.NoError(t, err)

	sq, err := lattice.Build(lattice.Square, 4)
	require.NoError(t, err)
	doms := c.Domains(sq)
	require.Len(t, doms, 4)
	total := 0
	for _, d := range doms {
		assert.Len(t, d, 4)
		total += len(d)
	}
	assert.Equal(t, 16, total)

	tri, err := lattice.Build(lattice.Triangular, 4)
	require.NoError(t, err)
	assert.Len(t, c.Domains(tri), 2)

	up, err := spin.NewAllUp(4)
	require.NoError(t, err)
	assert.Len(t, up.Domains(sq), 1)
}
