// SPDX-License-Identifier: MIT

package lattice

import "fmt"

// Build constructs the adjacency table for geometry g on an L×L torus.
// Returns ErrInvalidParameter if L < MinSide and ErrUnknownGeometry for an
// unknown g. The result is a pure function of (g, L).
// Complexity: O(L²·d) time and memory.
func Build(g Geometry, L int) (*Adjacency, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownGeometry, int(g))
	}
	if L < MinSide {
		return nil, fmt.Errorf("%w: side %d, want >= %d", ErrInvalidParameter, L, MinSide)
	}
	offsets := g.offsets()
	d := len(offsets)
	n := L * L
	a := &Adjacency{
		geometry: g,
		side:     L,
		degree:   d,
		nbr:      make([]int32, n*d),
	}
	for i := 0; i < n; i++ {
		r, c := i/L, i%L
		base := i * d
		for k, off := range offsets {
			a.nbr[base+k] = int32(wrap(r+off[0], L)*L + wrap(c+off[1], L))
		}
	}

	return a, nil
}

// wrap reduces x into [0, L) for x ∈ [-L, 2L).
func wrap(x, L int) int {
	if x < 0 {
		return x + L
	}
	if x >= L {
		return x - L
	}
	return x
}

// Neighbors returns the neighbour indices of site i in Geometry order.
// The returned slice aliases internal storage and must not be modified.
// Complexity: O(1).
func (a *Adjacency) Neighbors(i int) []int32 {
	return a.nbr[i*a.degree : (i+1)*a.degree : (i+1)*a.degree]
}

// Len returns the number of sites N = L².
func (a *Adjacency) Len() int { return a.side * a.side }

// Side returns the side length L.
func (a *Adjacency) Side() int { return a.side }

// Degree returns the neighbour count shared by every site.
func (a *Adjacency) Degree() int { return a.degree }

// Geometry returns the geometry the table was built for.
func (a *Adjacency) Geometry() Geometry { return a.geometry }

// Bonds returns the number of undirected bond slots, N·d/2.
func (a *Adjacency) Bonds() int { return a.Len() * a.degree / 2 }

// Index maps (row, col) to the row-major site index. Coordinates wrap
// periodically, so any integers are accepted.
// Complexity: O(1).
func (a *Adjacency) Index(row, col int) int {
	L := a.side
	row %= L
	if row < 0 {
		row += L
	}
	col %= L
	if col < 0 {
		col += L
	}
	return row*L + col
}

// Coordinate converts a row-major site index back to (row, col).
// Complexity: O(1).
func (a *Adjacency) Coordinate(i int) (row, col int) {
	return i / a.side, i % a.side
}
