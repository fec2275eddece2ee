// SPDX-License-Identifier: MIT

// Package spin holds the Ising spin configuration of one simulation run.
//
// A Configuration is an L×L array of int8 spins in {-1,+1}, indexed row-major
// exactly like lattice.Adjacency. It keeps a running spin sum so the
// magnetization M = Σs/N is available in O(1) after every cluster flip.
//
// Ownership: a Configuration belongs to a single update stream. It is not
// safe for concurrent mutation; parallel drivers give each worker its own.
//
// Constructors:
//
//   - NewRandom(L, rng): every site drawn independently and uniformly from {-1,+1}.
//   - NewAllUp(L): every site +1 (hysteresis starting state).
//   - FromSpins(L, spins): copy of an explicit ±1 slice.
//
// Errors:
//
//   - ErrInvalidSide: L < 1.
//   - ErrNilRand: NewRandom called without a random source.
//   - ErrInvalidSpin: FromSpins given a value outside {-1,+1} or a wrong length.
package spin
