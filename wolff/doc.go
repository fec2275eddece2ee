// SPDX-License-Identifier: MIT

// Package wolff implements the Wolff single-cluster Monte Carlo update for the
// zero-field Ising model.
//
// What
//
//   - Step grows exactly one randomized same-spin cluster from a uniformly
//     random seed and flips it, returning the cluster size.
//   - A neighbour v of a cluster site u joins with probability p when v is not
//     yet a member and s(v) == s(u). Membership is checked first, so every
//     directed bond u→v is tested at most once per update.
//   - p = BondProbability(β) = 1 − exp(−2β) is the value for which the update
//     satisfies detailed balance at H = 0. It is computed as −expm1(−2β) to
//     keep full precision at high temperature.
//
// Randomness
//
//	The stream is consumed for exactly two things: one rng.Intn(N) for the
//	seed, then one rng.Float64() per tested bond. Traversal is LIFO over a
//	stack and neighbours are visited in lattice.Adjacency order, so a seeded
//	rng replays the same clusters.
//
// Performance
//
//	Cluster reuses a []bool membership array sized N plus a stack and member
//	list; after each flip only the member entries are cleared. Steady-state
//	updates allocate nothing.
//
// Complexity
//
//   - Step: O(|C|·d) time, C = flipped cluster, d = lattice degree.
//   - Memory: O(N) per Cluster.
//
// Errors
//
//   - ErrInvalidProbability from ValidateProbability when p ∉ [0,1] or NaN.
//   - ErrSizeMismatch from (*Cluster).Check when state and table disagree.
package wolff
