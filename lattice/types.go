// SPDX-License-Identifier: MIT

package lattice

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for lattice construction.
var (
	// ErrInvalidParameter indicates a side length below MinSide.
	ErrInvalidParameter = errors.New("lattice: invalid parameter")
	// ErrUnknownGeometry indicates a geometry value that is not Square or Triangular.
	ErrUnknownGeometry = fmt.Errorf("%w: unknown geometry", ErrInvalidParameter)
)

// MinSide is the smallest side length that yields a lattice without self-bonds.
const MinSide = 2

// Geometry selects the lattice connectivity.
type Geometry int

const (
	// Square connects each site to its 4 orthogonal neighbours.
	Square Geometry = iota
	// Triangular adds the (+1,-1) and (-1,+1) diagonals for 6 neighbours.
	Triangular
)

// squareOffsets and triangularOffsets are (dRow, dCol) pairs in neighbour order.
var (
	squareOffsets     = [][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	triangularOffsets = [][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}, {1, -1}, {-1, 1}}
)

// Valid reports whether g is a known geometry.
func (g Geometry) Valid() bool {
	return g == Square || g == Triangular
}

// Degree returns the neighbour count per site: 4 for Square, 6 for Triangular,
// and 0 for an unknown geometry.
func (g Geometry) Degree() int {
	return len(g.offsets())
}

// String returns "Square", "Triangular", or "Geometry(n)" for unknown values.
func (g Geometry) String() string {
	switch g {
	case Square:
		return "Square"
	case Triangular:
		return "Triangular"
	default:
		return fmt.Sprintf("Geometry(%d)", int(g))
	}
}

// offsets returns the (dRow, dCol) neighbour offsets for g, or nil if unknown.
func (g Geometry) offsets() [][2]int {
	switch g {
	case Square:
		return squareOffsets
	case Triangular:
		return triangularOffsets
	default:
		return nil
	}
}

// ParseGeometry converts a case-insensitive name ("square", "triangular",
// or the short forms "sq", "tri") into a Geometry.
// Returns ErrUnknownGeometry for anything else.
func ParseGeometry(s string) (Geometry, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "square", "sq":
		return Square, nil
	case "triangular", "tri":
		return Triangular, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownGeometry, s)
	}
}

// Adjacency is the immutable neighbour table of an L×L periodic lattice.
// Neighbour lists are stored contiguously: site i owns
// nbr[i*degree : (i+1)*degree].
type Adjacency struct {
	geometry Geometry
	side     int
	degree   int
	nbr      []int32
}
