// SPDX-License-Identifier: MIT

// Package rng centralizes deterministic random streams for the simulation drivers.
//
// Goals:
//   - Determinism: same seed ⇒ identical streams across runs and platforms.
//   - Independence: each temperature point gets its own stream derived from
//     (seed, index), so results do not depend on worker scheduling.
//   - No hidden globals; callers own every *rand.Rand they use.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Never share one across workers;
//     call Derive once per worker during setup instead.
package rng

import "math/rand"

// DefaultSeed is used whenever a caller passes seed == 0.
const DefaultSeed int64 = 1

// FromSeed returns a deterministic *rand.Rand.
// Policy: seed == 0 ⇒ DefaultSeed; otherwise the seed is used verbatim.
// Complexity: O(1).
func FromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// Mix combines a parent seed and a stream identifier into a new seed using a
// SplitMix64 finalizer, so neighbouring stream ids give unrelated seeds.
// Complexity: O(1).
func Mix(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// Derive returns the independent stream number `stream` of the family rooted at seed.
// Unlike drawing from a shared parent, Derive(seed, i) is the same no matter
// how many other streams were derived before it.
// Complexity: O(1).
func Derive(seed int64, stream uint64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewSource(Mix(seed, stream)))
}
