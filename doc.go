// SPDX-License-Identifier: MIT

// Package isingmc is a Monte Carlo engine for the two-dimensional Ising model
// on periodic square and triangular lattices.
//
// 🚀 What is isingmc?
//
//	A small, dependency-light library plus CLI that brings together:
//		• Lattice topology: toroidal square (d=4) and triangular (d=6) neighbour tables
//		• Spin state: ±1 configurations with O(1) magnetization
//		• Wolff single-cluster update at zero field
//		• Metropolis single-spin update in an external field
//		• Temperature sweeps: ⟨|M|⟩, χ, Binder ratio, energy, specific heat
//		• Hysteresis loops: M(H) along a closed field path
//		• Persistence: SQLite result store, CSV and lattice dumps
//
// ✨ Why choose isingmc?
//
//   - Reproducible: one seed fixes every stream, whatever the worker count
//   - Cancellable: context-aware drivers return partial results
//   - Pure Go: SQLite via modernc.org/sqlite, no cgo
//
// Packages:
//
//	lattice/    geometry enum and immutable adjacency tables
//	spin/       spin configurations, energy, same-spin domains
//	wolff/      cluster growth and flip
//	metropolis/ acceptance tables and lattice passes
//	sweep/      concurrent temperature sweep over a worker pool
//	hysteresis/ sequential field sweep
//	observable/ moments, susceptibility, Binder ratio, histograms
//	rng/        seeded and derived random streams
//	store/      SQLite store and CSV/lattice export
//	cmd/isingmc command-line front end
//
// Quick start:
//
//	res, err := sweep.Run(ctx, sweep.Request{
//		Geometry: lattice.Square, L: 32,
//		TMin: 1, TMax: 4, NT: 20, Trials: 1000,
//	}, sweep.WithSeed(7), sweep.WithEquilibration(200))
//
//	for _, row := range res.Rows {
//		fmt.Println(row.T, row.MeanAbsM, row.Binder)
//	}
//
// See the package examples for runnable snippets.
package isingmc
