// SPDX-License-Identifier: MIT

package hysteresis

import (
	"log/slog"
	"math/rand"

	"github.com/katalvlaran/isingmc/metropolis"
	"github.com/katalvlaran/isingmc/rng"
)

// Option configures Run via functional arguments.
type Option func(*Options)

// Options holds the tunables of a field sweep.
type Options struct {
	// Rand is the single random stream of the run.
	Rand *rand.Rand
	// Order selects random or raster site choice in each pass.
	Order metropolis.Order
	// Logger receives progress records.
	Logger *slog.Logger
}

// DefaultOptions returns a stream seeded with rng.DefaultSeed, random site
// order and a discarding logger.
func DefaultOptions() Options {
	return Options{
		Rand:   rng.FromSeed(rng.DefaultSeed),
		Order:  metropolis.RandomOrder,
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithSeed seeds a fresh stream (0 ⇒ rng.DefaultSeed).
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Rand = rng.FromSeed(seed)
	}
}

// WithRand supplies an explicit stream. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("hysteresis: WithRand(nil)")
	}
	return func(o *Options) {
		o.Rand = r
	}
}

// WithOrder selects metropolis.RandomOrder or metropolis.RasterOrder.
func WithOrder(order metropolis.Order) Option {
	return func(o *Options) {
		o.Order = order
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
