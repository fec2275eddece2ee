// SPDX-License-Identifier: MIT

package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNotFound indicates a run id that is not in the database.
var ErrNotFound = errors.New("store: run not found")

// Run kinds stored in runs.kind.
const (
	KindSweep      = "sweep"
	KindHysteresis = "hysteresis"
)

// DB wraps a SQLite database connection.
type DB struct {
	sql *sql.DB
}

// Open opens (or creates) the SQLite database at path and runs migrations.
// Use ":memory:" for a throwaway database.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("store: ping %s: %w", path, err)
	}
	d := &DB{sql: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("store: migrate %s: %w", path, err)
	}
	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Version returns the applied schema version.
func (d *DB) Version() (int, error) {
	var v int
	err := d.sql.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&v)
	return v, err
}

// appliedVersion returns 0 for a fresh database and the recorded version
// otherwise. Read errors are returned, never mistaken for a fresh file.
func (d *DB) appliedVersion() (int, error) {
	var tables int
	err := d.sql.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'schema_version'").Scan(&tables)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if tables == 0 {
		return 0, nil
	}
	version, err := d.Version()
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

func (d *DB) migrate() error {
	version, err := d.appliedVersion()
	if err != nil {
		return err
	}

	if version < 1 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS runs (
				id          TEXT PRIMARY KEY,
				kind        TEXT NOT NULL,
				created_at  TEXT NOT NULL,
				geometry    TEXT NOT NULL,
				side        INTEGER NOT NULL,
				points      INTEGER NOT NULL,
				params_json TEXT NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

			CREATE TABLE IF NOT EXISTS sweep_rows (
				run_id            TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
				idx               INTEGER NOT NULL,
				temperature       REAL NOT NULL,
				mean_abs_m        REAL NOT NULL,
				var_m             REAL NOT NULL,
				chi               REAL NOT NULL,
				binder            REAL NOT NULL,
				mean_cluster_size REAL NOT NULL,
				binder_degenerate INTEGER NOT NULL DEFAULT 0,
				PRIMARY KEY (run_id, idx)
			);

			CREATE TABLE IF NOT EXISTS hysteresis_points (
				run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
				idx    INTEGER NOT NULL,
				h      REAL NOT NULL,
				m      REAL NOT NULL,
				PRIMARY KEY (run_id, idx)
			);

			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("v1: %w", err)
		}
	}

	if version < 2 {
		_, err := d.sql.Exec(`
			ALTER TABLE sweep_rows ADD COLUMN mean_energy REAL NOT NULL DEFAULT 0;
			ALTER TABLE sweep_rows ADD COLUMN specific_heat REAL NOT NULL DEFAULT 0;

			CREATE TABLE IF NOT EXISTS cluster_sizes (
				run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
				idx    INTEGER NOT NULL,
				size   INTEGER NOT NULL,
				PRIMARY KEY (run_id, idx)
			);

			INSERT OR IGNORE INTO schema_version (version) VALUES (2);
		`)
		if err != nil {
			return fmt.Errorf("v2: %w", err)
		}
	}
	return nil
}
