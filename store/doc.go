// SPDX-License-Identifier: MIT

// Package store persists sweep results and hysteresis traces in SQLite and
// exports them as CSV or plain-text lattice dumps.
//
// The database is opened through modernc.org/sqlite (pure Go, no cgo) in WAL
// mode with a single connection, so ":memory:" behaves as one database.
// Schema changes are applied by a versioned migration recorded in the
// schema_version table. Every saved run gets a UUID string id.
//
// Snapshots are not persisted; use WriteLattice to dump them.
package store
