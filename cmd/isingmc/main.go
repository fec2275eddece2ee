// SPDX-License-Identifier: MIT

// Command isingmc runs temperature sweeps (Wolff) and hysteresis loops
// (Metropolis) of the 2D Ising model from the command line.
//
//	isingmc sweep      [-geometry square] [-L 20] [-tmin 1] [-tmax 4] [-nt 20] [-trials 100] ...
//	isingmc hysteresis [-T 1.5] [-hmax 2] [-points 21] [-steps 10] [-order random] ...
//	isingmc runs       -db results.db
//
// Defaults come from ISINGMC_* variables, optionally read from ./.env.
// Ctrl-C stops the run; completed rows are still printed and saved.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/katalvlaran/isingmc/hysteresis"
	"github.com/katalvlaran/isingmc/store"
	"github.com/katalvlaran/isingmc/sweep"
)

const usage = "usage: isingmc sweep|hysteresis|runs [flags]"

func main() {
	// Load env
	_ = godotenv.Load(".env")

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nisingmc: stopping")
		cancel()
	}()

	code := run(ctx, os.Args[1:], os.Getenv, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run executes one subcommand and returns the process exit code.
func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, usage)
		return 2
	}
	cfg := Default()
	if err := cfg.ApplyEnv(getenv); err != nil {
		fmt.Fprintf(stderr, "isingmc: %v\n", err)
		return 2
	}

	fs := flag.NewFlagSet("isingmc "+args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Geometry, "geometry", cfg.Geometry, "lattice geometry: square or triangular")
	fs.IntVar(&cfg.L, "L", cfg.L, "lattice side length")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "root random seed")
	fs.StringVar(&cfg.DB, "db", cfg.DB, "SQLite file to store the run in")
	fs.StringVar(&cfg.CSV, "csv", cfg.CSV, "CSV file to write")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level: debug, info, warn, error")

	var cmd func(context.Context, Config, *slog.Logger, io.Writer) error
	switch args[0] {
	case "sweep":
		fs.Float64Var(&cfg.TMin, "tmin", cfg.TMin, "lowest temperature")
		fs.Float64Var(&cfg.TMax, "tmax", cfg.TMax, "highest temperature")
		fs.IntVar(&cfg.NT, "nt", cfg.NT, "number of temperature points")
		fs.IntVar(&cfg.Trials, "trials", cfg.Trials, "recorded Wolff updates per temperature")
		fs.IntVar(&cfg.Equilibration, "eq", cfg.Equilibration, "discarded Wolff updates per temperature")
		fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent temperature points (0 = GOMAXPROCS)")
		fs.StringVar(&cfg.LatticeDir, "lattice-dir", cfg.LatticeDir, "directory for final lattice dumps")
		cmd = runSweep
	case "hysteresis":
		fs.Float64Var(&cfg.T, "T", cfg.T, "temperature")
		fs.Float64Var(&cfg.HMax, "hmax", cfg.HMax, "loop amplitude")
		fs.IntVar(&cfg.FieldPoints, "points", cfg.FieldPoints, "field values per branch")
		fs.IntVar(&cfg.StepsPerField, "steps", cfg.StepsPerField, "Metropolis passes per field value")
		fs.StringVar(&cfg.Order, "order", cfg.Order, "site order: random or raster")
		cmd = runHysteresis
	case "runs":
		cmd = listRuns
	default:
		fmt.Fprintln(stderr, usage)
		return 2
	}
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}

	level, err := cfg.Level()
	if err != nil {
		fmt.Fprintf(stderr, "isingmc: %v\n", err)
		return 2
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := cmd(ctx, cfg, logger, stdout); err != nil {
		logger.Error("[MAIN] failed", "cmd", args[0], "err", err)
		return 1
	}
	return 0
}

func runSweep(ctx context.Context, cfg Config, log *slog.Logger, stdout io.Writer) error {
	req, err := cfg.SweepRequest()
	if err != nil {
		return err
	}
	opts := []sweep.Option{
		sweep.WithSeed(cfg.Seed),
		sweep.WithEquilibration(cfg.Equilibration),
		sweep.WithLogger(log),
	}
	if cfg.Workers > 0 {
		opts = append(opts, sweep.WithWorkers(cfg.Workers))
	}
	if cfg.LatticeDir != "" {
		opts = append(opts, sweep.WithSnapshots())
	}

	res, runErr := sweep.Run(ctx, req, opts...)
	if res == nil {
		return runErr
	}
	printSweep(stdout, res)

	if cfg.CSV != "" {
		if err := writeFile(cfg.CSV, func(w io.Writer) error { return store.WriteSweepCSV(w, res.Rows) }); err != nil {
			return err
		}
		log.Info("[MAIN] csv written", "path", cfg.CSV, "rows", len(res.Rows))
	}
	if cfg.LatticeDir != "" {
		if err := os.MkdirAll(cfg.LatticeDir, 0o755); err != nil {
			return fmt.Errorf("lattice dir: %w", err)
		}
		for _, s := range res.Snapshots {
			path := filepath.Join(cfg.LatticeDir, store.LatticeFileName(s.T))
			if err := writeFile(path, func(w io.Writer) error { return store.WriteLattice(w, s.Spins) }); err != nil {
				return err
			}
		}
		log.Info("[MAIN] lattices written", "dir", cfg.LatticeDir, "count", len(res.Snapshots))
	}
	if cfg.DB != "" && len(res.Rows) > 0 {
		id, err := saveToDB(cfg.DB, func(d *store.DB) (string, error) { return d.SaveSweep(ctx, res) })
		if err != nil {
			return err
		}
		log.Info("[MAIN] run stored", "db", cfg.DB, "id", id)
	}
	return runErr
}

func runHysteresis(ctx context.Context, cfg Config, log *slog.Logger, stdout io.Writer) error {
	req, err := cfg.HysteresisRequest()
	if err != nil {
		return err
	}
	order, err := cfg.SiteOrder()
	if err != nil {
		return err
	}
	tr, runErr := hysteresis.Run(ctx, req,
		hysteresis.WithSeed(cfg.Seed),
		hysteresis.WithOrder(order),
		hysteresis.WithLogger(log),
	)
	if tr == nil {
		return runErr
	}
	printTrace(stdout, tr)

	if cfg.CSV != "" {
		if err := writeFile(cfg.CSV, func(w io.Writer) error { return store.WriteTraceCSV(w, tr) }); err != nil {
			return err
		}
		log.Info("[MAIN] csv written", "path", cfg.CSV, "points", len(tr.Points))
	}
	if cfg.DB != "" && len(tr.Points) > 0 {
		id, err := saveToDB(cfg.DB, func(d *store.DB) (string, error) { return d.SaveHysteresis(ctx, req, tr) })
		if err != nil {
			return err
		}
		log.Info("[MAIN] run stored", "db", cfg.DB, "id", id)
	}
	return runErr
}

func listRuns(ctx context.Context, cfg Config, _ *slog.Logger, stdout io.Writer) error {
	if cfg.DB == "" {
		return errors.New("runs: -db is required")
	}
	d, err := store.Open(cfg.DB)
	if err != nil {
		return err
	}
	defer d.Close()
	runs, err := d.ListRuns(ctx, 0)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tCREATED\tGEOMETRY\tL\tPOINTS")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\n", r.ID, r.Kind, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Geometry, r.L, r.Points)
	}
	return tw.Flush()
}

func printSweep(w io.Writer, res *sweep.Result) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "T\t<|M|>\tVar(M)\tChi\tBinder\tCluster\tE\tC\t")
	for _, r := range res.Rows {
		fmt.Fprintf(tw, "%.4f\t%.5f\t%.5f\t%.5f\t%.5f\t%.2f\t%.5f\t%.5f\t\n",
			r.T, r.MeanAbsM, r.VarM, r.Chi, r.Binder, r.MeanClusterSize, r.MeanEnergy, r.SpecificHeat)
	}
	tw.Flush()
}

func printTrace(w io.Writer, tr *hysteresis.Trace) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "H\tM\t")
	for _, p := range tr.Points {
		fmt.Fprintf(tw, "%.4f\t%.5f\t\n", p.H, p.M)
	}
	tw.Flush()
	fmt.Fprintf(w, "loop area: %.5f\n", tr.Area())
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func saveToDB(path string, save func(*store.DB) (string, error)) (string, error) {
	d, err := store.Open(path)
	if err != nil {
		return "", err
	}
	defer d.Close()
	return save(d)
}
