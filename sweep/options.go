// SPDX-License-Identifier: MIT

package sweep

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/katalvlaran/isingmc/rng"
)

// Option configures Run via functional arguments. An invalid value is
// recorded and surfaced as ErrInvalidParameter when Run is called.
type Option func(*Options)

// Options holds the tunables of a sweep.
type Options struct {
	// Seed roots the per-temperature random streams (0 ⇒ rng.DefaultSeed).
	Seed int64
	// Workers bounds the number of temperature points run concurrently.
	Workers int
	// Equilibration is the number of unrecorded updates before sampling.
	Equilibration int
	// Snapshots retains each point's final configuration.
	Snapshots bool
	// Logger receives progress records.
	Logger *slog.Logger

	err error
}

// DefaultOptions returns seed rng.DefaultSeed, GOMAXPROCS workers, no
// equilibration, no snapshots and a discarding logger.
func DefaultOptions() Options {
	return Options{
		Seed:    rng.DefaultSeed,
		Workers: runtime.GOMAXPROCS(0),
		Logger:  slog.New(slog.DiscardHandler),
	}
}

// WithSeed sets the root seed.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// WithWorkers bounds concurrency. n < 1 is invalid.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: workers=%d, want >= 1", ErrInvalidParameter, n)
			return
		}
		o.Workers = n
	}
}

// WithEquilibration discards n updates per point before recording. n < 0 is invalid.
func WithEquilibration(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: equilibration=%d, want >= 0", ErrInvalidParameter, n)
			return
		}
		o.Equilibration = n
	}
}

// WithSnapshots retains the final configuration of every point.
func WithSnapshots() Option {
	return func(o *Options) {
		o.Snapshots = true
	}
}

// WithLogger sets the progress logger; nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
