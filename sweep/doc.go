// SPDX-License-Identifier: MIT

// Package sweep runs the zero-field Wolff temperature sweep and reduces each
// temperature point into an observable Row.
//
// What
//
//   - Temperatures: NT equally spaced points over [TMin, TMax], both ends
//     included (NT == 1 yields just TMin).
//   - Per point: fresh random configuration, Trials Wolff updates with
//     p = 1 − exp(−2/T), M recorded after each update, then mean|M|,
//     population var(M), χ, Binder U, mean cluster size, mean energy per site
//     and specific heat.
//   - Result rows are in ascending temperature. ClusterSizes concatenates the
//     raw cluster sizes of all points in the same order.
//
// Concurrency
//
//	Points are independent and run on a bounded errgroup pool (WithWorkers).
//	Point i draws from rng.Derive(seed, i), so a given seed produces the same
//	rows for any worker count. Workers write only their own slot.
//
// Cancellation
//
//	ctx is checked before each point starts, never inside a point, so no
//	configuration is left half-flipped. A cancelled run returns the rows that
//	did complete together with an error matching both ErrCancelled and
//	ctx.Err() under errors.Is.
//
// Errors
//
//   - ErrInvalidParameter: any failed precondition; returned before any work.
//   - ErrCancelled: see above.
//
// Numeric degeneracy (⟨M²⟩ ≈ 0) is not an error: the Binder ratio is set to 0,
// the row is flagged, and Metadata records the policy and the count.
package sweep
