// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/katalvlaran/isingmc/hysteresis"
	"github.com/katalvlaran/isingmc/lattice"
	"github.com/katalvlaran/isingmc/metropolis"
	"github.com/katalvlaran/isingmc/sweep"
)

// Config holds every CLI setting. Precedence: Default, then ISINGMC_*
// environment (optionally from .env), then flags.
type Config struct {
	Geometry string
	L        int
	Seed     int64
	Workers  int

	// Temperature sweep.
	TMin          float64
	TMax          float64
	NT            int
	Trials        int
	Equilibration int

	// Field sweep.
	T             float64
	HMax          float64
	FieldPoints   int
	StepsPerField int
	Order         string

	// Outputs.
	DB         string
	CSV        string
	LatticeDir string
	LogLevel   string
}

// Default returns the settings of the interactive front end: a 20×20 square
// lattice, 20 temperatures in [1, 4] with 100 updates each.
func Default() Config {
	return Config{
		Geometry:      "square",
		L:             20,
		Seed:          1,
		TMin:          1,
		TMax:          4,
		NT:            20,
		Trials:        100,
		Equilibration: 0,
		T:             1.5,
		HMax:          2,
		FieldPoints:   21,
		StepsPerField: 10,
		Order:         "random",
		LogLevel:      "info",
	}
}

// ApplyEnv overrides fields from ISINGMC_* variables read through getenv.
// Empty variables are ignored; malformed numbers are errors.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int) error {
		v := getenv(key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", key, v, err)
		}
		*dst = n
		return nil
	}
	float := func(key string, dst *float64) error {
		v := getenv(key)
		if v == "" {
			return nil
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", key, v, err)
		}
		*dst = x
		return nil
	}

	str("ISINGMC_GEOMETRY", &c.Geometry)
	str("ISINGMC_ORDER", &c.Order)
	str("ISINGMC_DB", &c.DB)
	str("ISINGMC_CSV", &c.CSV)
	str("ISINGMC_LATTICE_DIR", &c.LatticeDir)
	str("ISINGMC_LOG_LEVEL", &c.LogLevel)
	if v := getenv("ISINGMC_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("ISINGMC_SEED=%q: %w", v, err)
		}
		c.Seed = n
	}
	for key, dst := range map[string]*int{
		"ISINGMC_L":               &c.L,
		"ISINGMC_WORKERS":         &c.Workers,
		"ISINGMC_NT":              &c.NT,
		"ISINGMC_TRIALS":          &c.Trials,
		"ISINGMC_EQUILIBRATION":   &c.Equilibration,
		"ISINGMC_FIELD_POINTS":    &c.FieldPoints,
		"ISINGMC_STEPS_PER_FIELD": &c.StepsPerField,
	} {
		if err := integer(key, dst); err != nil {
			return err
		}
	}
	for key, dst := range map[string]*float64{
		"ISINGMC_TMIN": &c.TMin,
		"ISINGMC_TMAX": &c.TMax,
		"ISINGMC_T":    &c.T,
		"ISINGMC_HMAX": &c.HMax,
	} {
		if err := float(key, dst); err != nil {
			return err
		}
	}
	return nil
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// SweepRequest converts the settings into a temperature-sweep request.
func (c Config) SweepRequest() (sweep.Request, error) {
	g, err := lattice.ParseGeometry(c.Geometry)
	if err != nil {
		return sweep.Request{}, err
	}
	req := sweep.Request{Geometry: g, L: c.L, TMin: c.TMin, TMax: c.TMax, NT: c.NT, Trials: c.Trials}
	return req, req.Validate()
}

// HysteresisRequest converts the settings into a closed-loop field sweep.
func (c Config) HysteresisRequest() (hysteresis.Request, error) {
	g, err := lattice.ParseGeometry(c.Geometry)
	if err != nil {
		return hysteresis.Request{}, err
	}
	path, err := hysteresis.Loop(c.HMax, c.FieldPoints)
	if err != nil {
		return hysteresis.Request{}, err
	}
	req := hysteresis.Request{Geometry: g, L: c.L, T: c.T, Path: path, StepsPerField: c.StepsPerField}
	return req, req.Validate()
}

// SiteOrder parses Order ("random" or "raster").
func (c Config) SiteOrder() (metropolis.Order, error) {
	switch c.Order {
	case "random", "":
		return metropolis.RandomOrder, nil
	case "raster":
		return metropolis.RasterOrder, nil
	default:
		return 0, fmt.Errorf("unknown site order %q", c.Order)
	}
}
