// SPDX-License-Identifier: MIT

package store

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/isingmc/hysteresis"
	"github.com/katalvlaran/isingmc/sweep"
)

// SweepHeader is the column layout of WriteSweepCSV.
var SweepHeader = []string{
	"Temperature", "Magnetization", "Magnetization_Var", "Susceptibility",
	"Binder_Ratio", "Mean_Cluster_Size", "Energy", "Specific_Heat",
}

// TraceHeader is the column layout of WriteTraceCSV.
var TraceHeader = []string{"Field", "Magnetization"}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// WriteSweepCSV writes one header line and one line per row in ascending T.
func WriteSweepCSV(w io.Writer, rows []sweep.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SweepHeader); err != nil {
		return fmt.Errorf("store: csv header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			formatFloat(r.T), formatFloat(r.MeanAbsM), formatFloat(r.VarM), formatFloat(r.Chi),
			formatFloat(r.Binder), formatFloat(r.MeanClusterSize), formatFloat(r.MeanEnergy), formatFloat(r.SpecificHeat),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("store: csv row T=%v: %w", r.T, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTraceCSV writes the (H, M) points of tr in path order.
func WriteTraceCSV(w io.Writer, tr *hysteresis.Trace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TraceHeader); err != nil {
		return fmt.Errorf("store: csv header: %w", err)
	}
	for _, p := range tr.Points {
		if err := cw.Write([]string{formatFloat(p.H), formatFloat(p.M)}); err != nil {
			return fmt.Errorf("store: csv point H=%v: %w", p.H, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// LatticeFileName returns the conventional dump name for temperature T,
// e.g. "lat2.269.dat".
func LatticeFileName(T float64) string {
	return fmt.Sprintf("lat%.3f.dat", T)
}

// WriteLattice writes grid as whitespace-separated ±1 values, one row per line.
func WriteLattice(w io.Writer, grid [][]int8) error {
	bw := bufio.NewWriter(w)
	for _, row := range grid {
		for j, s := range row {
			if j > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(int(s)))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
