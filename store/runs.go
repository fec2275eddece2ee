// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/isingmc/hysteresis"
	"github.com/katalvlaran/isingmc/lattice"
	"github.com/katalvlaran/isingmc/sweep"
)

// RunRecord is one row of the runs table.
type RunRecord struct {
	ID        string
	Kind      string
	CreatedAt time.Time
	Geometry  lattice.Geometry
	L         int
	Points    int // sweep rows or trace points stored
}

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type sweepParams struct {
	Request  sweep.Request  `json:"request"`
	Metadata sweep.Metadata `json:"metadata"`
}

type hysteresisParams struct {
	Request hysteresis.Request `json:"request"`
}

// insertRun writes the runs row inside tx and returns the new id.
func insertRun(ctx context.Context, tx *sql.Tx, kind string, g lattice.Geometry, L, points int, params any) (string, error) {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("store: encode params: %w", err)
	}
	id := uuid.New().String()
	_, err = tx.ExecContext(ctx,
		"INSERT INTO runs (id, kind, created_at, geometry, side, points, params_json) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, kind, time.Now().UTC().Format(timeLayout), g.String(), L, points, string(paramsJSON),
	)
	if err != nil {
		return "", fmt.Errorf("store: insert run: %w", err)
	}
	return id, nil
}

// loadParams reads params_json of run id, checking its kind.
func (d *DB) loadParams(ctx context.Context, id, kind string, dst any) error {
	var gotKind, paramsJSON string
	err := d.sql.QueryRowContext(ctx, "SELECT kind, params_json FROM runs WHERE id = ?", id).Scan(&gotKind, &paramsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("store: load run %s: %w", id, err)
	}
	if gotKind != kind {
		return fmt.Errorf("%w: %s is a %s run, want %s", ErrNotFound, id, gotKind, kind)
	}
	if err := json.Unmarshal([]byte(paramsJSON), dst); err != nil {
		return fmt.Errorf("store: decode params of %s: %w", id, err)
	}
	return nil
}

// SaveSweep stores res (rows, cluster sizes and request metadata) in one
// transaction and returns the new run id.
func (d *DB) SaveSweep(ctx context.Context, res *sweep.Result) (string, error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	id, err := insertRun(ctx, tx, KindSweep, res.Request.Geometry, res.Request.L, len(res.Rows),
		sweepParams{Request: res.Request, Metadata: res.Metadata})
	if err != nil {
		return "", err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO sweep_rows (
		run_id, idx, temperature, mean_abs_m, var_m, chi, binder,
		mean_cluster_size, binder_degenerate, mean_energy, specific_heat
	) VALUES (?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return "", fmt.Errorf("store: prepare rows: %w", err)
	}
	defer stmt.Close()
	for i, r := range res.Rows {
		if _, err := stmt.ExecContext(ctx,
			id, i, r.T, r.MeanAbsM, r.VarM, r.Chi, r.Binder,
			r.MeanClusterSize, r.BinderDegenerate, r.MeanEnergy, r.SpecificHeat,
		); err != nil {
			return "", fmt.Errorf("store: insert row %d: %w", i, err)
		}
	}

	sizes, err := tx.PrepareContext(ctx, "INSERT INTO cluster_sizes (run_id, idx, size) VALUES (?, ?, ?)")
	if err != nil {
		return "", fmt.Errorf("store: prepare cluster sizes: %w", err)
	}
	defer sizes.Close()
	for i, s := range res.ClusterSizes {
		if _, err := sizes.ExecContext(ctx, id, i, s); err != nil {
			return "", fmt.Errorf("store: insert cluster size %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("store: commit: %w", err)
	}
	return id, nil
}

// LoadSweep reads back a run stored by SaveSweep. Snapshots are not stored.
// Returns ErrNotFound for an unknown id or a run of another kind.
func (d *DB) LoadSweep(ctx context.Context, id string) (*sweep.Result, error) {
	var p sweepParams
	if err := d.loadParams(ctx, id, KindSweep, &p); err != nil {
		return nil, err
	}
	res := &sweep.Result{Request: p.Request, Metadata: p.Metadata}

	rows, err := d.sql.QueryContext(ctx, `
		SELECT temperature, mean_abs_m, var_m, chi, binder,
			mean_cluster_size, binder_degenerate, mean_energy, specific_heat
		FROM sweep_rows WHERE run_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, fmt.Errorf("store: query rows of %s: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var r sweep.Row
		if err := rows.Scan(&r.T, &r.MeanAbsM, &r.VarM, &r.Chi, &r.Binder,
			&r.MeanClusterSize, &r.BinderDegenerate, &r.MeanEnergy, &r.SpecificHeat); err != nil {
			return nil, fmt.Errorf("store: scan row of %s: %w", id, err)
		}
		res.Rows = append(res.Rows, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: rows of %s: %w", id, err)
	}

	sizes, err := d.sql.QueryContext(ctx, "SELECT size FROM cluster_sizes WHERE run_id = ? ORDER BY idx", id)
	if err != nil {
		return nil, fmt.Errorf("store: query cluster sizes of %s: %w", id, err)
	}
	defer sizes.Close()
	for sizes.Next() {
		var s int
		if err := sizes.Scan(&s); err != nil {
			return nil, fmt.Errorf("store: scan cluster size of %s: %w", id, err)
		}
		res.ClusterSizes = append(res.ClusterSizes, s)
	}
	return res, sizes.Err()
}

// SaveHysteresis stores the request and trace of one field sweep and returns
// the new run id.
func (d *DB) SaveHysteresis(ctx context.Context, req hysteresis.Request, tr *hysteresis.Trace) (string, error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	id, err := insertRun(ctx, tx, KindHysteresis, req.Geometry, req.L, len(tr.Points), hysteresisParams{Request: req})
	if err != nil {
		return "", err
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO hysteresis_points (run_id, idx, h, m) VALUES (?, ?, ?, ?)")
	if err != nil {
		return "", fmt.Errorf("store: prepare points: %w", err)
	}
	defer stmt.Close()
	for i, p := range tr.Points {
		if _, err := stmt.ExecContext(ctx, id, i, p.H, p.M); err != nil {
			return "", fmt.Errorf("store: insert point %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("store: commit: %w", err)
	}
	return id, nil
}

// LoadHysteresis reads back a run stored by SaveHysteresis.
// Returns ErrNotFound for an unknown id or a run of another kind.
func (d *DB) LoadHysteresis(ctx context.Context, id string) (hysteresis.Request, *hysteresis.Trace, error) {
	var p hysteresisParams
	if err := d.loadParams(ctx, id, KindHysteresis, &p); err != nil {
		return hysteresis.Request{}, nil, err
	}
	rows, err := d.sql.QueryContext(ctx, "SELECT h, m FROM hysteresis_points WHERE run_id = ? ORDER BY idx", id)
	if err != nil {
		return p.Request, nil, fmt.Errorf("store: query points of %s: %w", id, err)
	}
	defer rows.Close()

	tr := &hysteresis.Trace{T: p.Request.T}
	for rows.Next() {
		var pt hysteresis.Point
		if err := rows.Scan(&pt.H, &pt.M); err != nil {
			return p.Request, nil, fmt.Errorf("store: scan point of %s: %w", id, err)
		}
		tr.Points = append(tr.Points, pt)
	}
	return p.Request, tr, rows.Err()
}

// ListRuns returns the last limit runs, newest first (limit ≤ 0 ⇒ 50).
func (d *DB) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, kind, created_at, geometry, side, points FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var (
			r               RunRecord
			created, geomID string
		)
		if err := rows.Scan(&r.ID, &r.Kind, &created, &geomID, &r.L, &r.Points); err != nil {
			return nil, fmt.Errorf("store: scan run: %w", err)
		}
		if r.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("store: run %s created_at: %w", r.ID, err)
		}
		if r.Geometry, err = lattice.ParseGeometry(geomID); err != nil {
			return nil, fmt.Errorf("store: run %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteRun removes a run and its dependent rows.
// Returns ErrNotFound if id is unknown.
func (d *DB) DeleteRun(ctx context.Context, id string) error {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("store: delete run %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
