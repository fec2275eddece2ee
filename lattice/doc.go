// SPDX-License-Identifier: MIT

// Package lattice builds the fixed nearest-neighbour topology of a periodic
// (toroidal) two-dimensional lattice of side L, addressed by dense site index.
//
// What:
//
//   - Geometry selects Square (4 neighbours) or Triangular (6 neighbours).
//   - Build(geometry, L) returns an immutable *Adjacency: site i ↦ ordered
//     neighbour indices, all sites having the same degree.
//   - Sites are numbered row-major: i = row·L + col. Index and Coordinate
//     convert between the two forms.
//
// Neighbour order (dRow, dCol), wrapping modulo L:
//
//	Square:     (0,+1) (+1,0) (0,-1) (-1,0)
//	Triangular: Square + (+1,-1) (-1,+1)
//
// Invariants:
//
//   - Symmetry: j ∈ Neighbors(i) ⇔ i ∈ Neighbors(j). Every offset has its
//     negation in the set, so the relation holds as a multiset as well.
//   - Uniform degree: len(Neighbors(i)) == Degree() for every i.
//   - For L == 2 opposite offsets wrap onto the same site. Those bonds are
//     kept as distinct slots so the degree stays uniform.
//
// Complexity:
//
//   - Build: O(L²·d) time and memory, d = 4 or 6.
//   - Neighbors, Index, Coordinate: O(1).
//
// Errors:
//
//   - ErrInvalidParameter: L < 2 (L == 1 degenerates into self-neighbours).
//   - ErrUnknownGeometry: geometry outside {Square, Triangular}; it also
//     matches ErrInvalidParameter under errors.Is.
package lattice
