// SPDX-License-Identifier: MIT

package hysteresis_test

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/isingmc/hysteresis"
	"github.com/katalvlaran/isingmc/lattice"
	"github.com/katalvlaran/isingmc/metropolis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loop returns a request over the conventional closed path.
func loop(t *testing.T, g lattice.Geometry, L int, T, hMax float64, n, steps int) hysteresis.Request {
	t.Helper()
	path, err := hysteresis.Loop(hMax, n)
	require.NoError(t, err)
	return hysteresis.Request{Geometry: g, L: L, T: T, Path: path, StepsPerField: steps}
}

// TestLoop checks the forward+backward path shape.
func TestLoop(t *testing.T) {
	path, err := hysteresis.Loop(1, 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -0.5, 0, 0.5, 1, 0.5, 0, -0.5, -1}, path)

	_, err = hysteresis.Loop(1, 1)
	assert.ErrorIs(t, err, hysteresis.ErrInvalidParameter)
	_, err = hysteresis.Loop(0, 5)
	assert.ErrorIs(t, err, hysteresis.ErrInvalidParameter)
	_, err = hysteresis.Loop(math.Inf(1), 5)
	assert.ErrorIs(t, err, hysteresis.ErrInvalidParameter)
}

// TestRun_InvalidParameter verifies fail-fast validation.
func TestRun_InvalidParameter(t *testing.T) {
	good := hysteresis.Request{Geometry: lattice.Square, L: 4, T: 1, Path: []float64{0, 1}, StepsPerField: 1}
	cases := []struct {
		name string
		mut  func(*hysteresis.Request)
	}{
		{"SideOne", func(r *hysteresis.Request) { r.L = 1 }},
		{"TZero", func(r *hysteresis.Request) { r.T = 0 }},
		{"TNaN", func(r *hysteresis.Request) { r.T = math.NaN() }},
		{"EmptyPath", func(r *hysteresis.Request) { r.Path = nil }},
		{"InfField", func(r *hysteresis.Request) { r.Path = []float64{0, math.Inf(-1)} }},
		{"NoSteps", func(r *hysteresis.Request) { r.StepsPerField = 0 }},
		{"UnknownGeometry", func(r *hysteresis.Request) { r.Geometry = lattice.Geometry(3) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := good
			tc.mut(&req)
			tr, err := hysteresis.Run(context.Background(), req)
			assert.Nil(t, tr)
			assert.ErrorIs(t, err, hysteresis.ErrInvalidParameter)
		})
	}

	_, err := hysteresis.Run(context.Background(), good, hysteresis.WithOrder(metropolis.Order(9)))
	assert.ErrorIs(t, err, hysteresis.ErrInvalidParameter)

	assert.Panics(t, func() { hysteresis.WithRand(nil) })
}

// TestRun_ClosedLoopMemory checks a sub-critical square lattice: the loop is
// closed, values are finite and in [-1,1], and at H=0 the magnetization
// remembers the branch it came from.
func TestRun_ClosedLoopMemory(t *testing.T) {
	const n = 21
	req := loop(t, lattice.Square, 8, 1.5, 2, n, 5)
	tr, err := hysteresis.Run(context.Background(), req, hysteresis.WithSeed(3))
	require.NoError(t, err)
	require.Len(t, tr.Points, 2*n-1)
	assert.Equal(t, 1.5, tr.T)

	first, last := tr.Points[0], tr.Points[len(tr.Points)-1]
	assert.Equal(t, first.H, last.H)
	for _, p := range tr.Points {
		require.False(t, math.IsNaN(p.M))
		require.GreaterOrEqual(t, p.M, -1.0)
		require.LessOrEqual(t, p.M, 1.0)
	}

	forwardZero, backwardZero := tr.Points[n/2], tr.Points[2*n-2-n/2]
	require.InDelta(t, 0.0, forwardZero.H, 1e-12)
	require.InDelta(t, 0.0, backwardZero.H, 1e-12)
	assert.Less(t, forwardZero.M, -0.5, "coming up from -hMax the lattice is still down")
	assert.Greater(t, backwardZero.M, 0.5, "coming down from +hMax the lattice is still up")

	assert.Equal(t, len(tr.Points), len(tr.Fields()))
	assert.Equal(t, tr.Points[3].M, tr.Magnetizations()[3])
}

// TestRun_AreaShrinksAboveTc compares the loop area below and far above T_c.
func TestRun_AreaShrinksAboveTc(t *testing.T) {
	cold, err := hysteresis.Run(context.Background(), loop(t, lattice.Square, 16, 1.5, 2, 21, 5), hysteresis.WithSeed(4))
	require.NoError(t, err)
	hot, err := hysteresis.Run(context.Background(), loop(t, lattice.Square, 16, 50, 2, 21, 5), hysteresis.WithSeed(4))
	require.NoError(t, err)

	assert.Greater(t, cold.Area(), 1.0)
	assert.Less(t, hot.Area(), cold.Area()/4)
}

// TestRun_Deterministic checks that equal seeds replay the same trace, for
// both site orders and geometries.
func TestRun_Deterministic(t *testing.T) {
	for _, order := range []metropolis.Order{metropolis.RandomOrder, metropolis.RasterOrder} {
		req := loop(t, lattice.Triangular, 6, 3, 1, 9, 2)
		a, err := hysteresis.Run(context.Background(), req, hysteresis.WithOrder(order),
			hysteresis.WithRand(rand.New(rand.NewSource(10))))
		require.NoError(t, err)
		b, err := hysteresis.Run(context.Background(), req, hysteresis.WithOrder(order),
			hysteresis.WithRand(rand.New(rand.NewSource(10))))
		require.NoError(t, err)
		assert.Equal(t, a.Points, b.Points, order.String())
	}
}

// TestRun_Cancelled returns the points recorded before cancellation.
func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tr, err := hysteresis.Run(ctx, loop(t, lattice.Square, 4, 1, 1, 5, 1))
	assert.ErrorIs(t, err, hysteresis.ErrCancelled)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, tr)
	assert.Empty(t, tr.Points)
}

// cancelAfterFields is a slog handler that cancels a context once n field
// points have been recorded.
type cancelAfterFields struct {
	n      int
	seen   *int
	cancel context.CancelFunc
}

func (h cancelAfterFields) Enabled(context.Context, slog.Level) bool { return true }
func (h cancelAfterFields) WithAttrs([]slog.Attr) slog.Handler       { return h }
func (h cancelAfterFields) WithGroup(string) slog.Handler            { return h }
func (h cancelAfterFields) Handle(_ context.Context, r slog.Record) error {
	if r.Message == "[HYST] field done" {
		*h.seen++
		if *h.seen == h.n {
			h.cancel()
		}
	}
	return nil
}

// TestRun_CancelledMidTrace keeps the points recorded before cancellation.
func TestRun_CancelledMidTrace(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req := loop(t, lattice.Square, 4, 1, 1, 5, 1)

	var seen int
	tr, err := hysteresis.Run(ctx, req,
		hysteresis.WithLogger(slog.New(cancelAfterFields{n: 3, seen: &seen, cancel: cancel})))
	assert.ErrorIs(t, err, hysteresis.ErrCancelled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorContains(t, err, "3 of 9 fields recorded")
	require.NotNil(t, tr)
	require.Len(t, tr.Points, 3)
	assert.Equal(t, req.Path[:3], tr.Fields())
}

// TestTrace_Area checks the shoelace formula on a unit square.
func TestTrace_Area(t *testing.T) {
	tr := &hysteresis.Trace{Points: []hysteresis.Point{{H: 0, M: 0}, {H: 1, M: 0}, {H: 1, M: 1}, {H: 0, M: 1}}}
	assert.Equal(t, 1.0, tr.Area())
	assert.Equal(t, 0.0, (&hysteresis.Trace{Points: tr.Points[:2]}).Area())
}
