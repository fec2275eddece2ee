// SPDX-License-Identifier: MIT

// Package observable reduces per-step magnetization (and energy) series into
// the thermodynamic estimates of one temperature point.
//
// All functions are pure reductions over in-memory slices; nothing is cached.
//
// Formulas, with n sites and temperature T:
//
//	⟨|M|⟩, ⟨M²⟩, ⟨M⁴⟩   raw moments over the series
//	var(M)             population variance (divide by len), two-pass
//	χ = n·(⟨M²⟩ − ⟨|M|⟩²)/T
//	U = 1 − ⟨M⁴⟩/(3⟨M²⟩²), and U = 0 when ⟨M²⟩ ≤ DegenerateEps
//	C = n·(⟨e²⟩ − ⟨e⟩²)/T²  (e = energy per site)
package observable

import (
	"errors"
	"math"
)

// ErrEmptySeries is returned when a reduction needs at least one sample.
var ErrEmptySeries = errors.New("observable: empty series")

// DegenerateEps is the ⟨M²⟩ threshold below which the Binder ratio is
// reported as 0 instead of dividing by (nearly) zero.
const DegenerateEps = 1e-12

// BinderPolicy documents the degenerate-case rule for audited outputs.
const BinderPolicy = "binder ratio reported as 0 when <M^2> <= 1e-12"

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
// Complexity: O(len(xs)).
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var s float64
	for _, x := range xs {
		s += x
	}
	return s / float64(len(xs))
}

// MeanAbs returns the mean of |x| over xs, or 0 for an empty slice.
func MeanAbs(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var s float64
	for _, x := range xs {
		s += math.Abs(x)
	}
	return s / float64(len(xs))
}

// Variance returns the population variance of xs using two passes: the mean
// first, then the mean squared deviation, with the compensation term of
// Chan et al. absorbing rounding in the mean. Returns 0 for empty input.
// Complexity: O(len(xs)).
func Variance(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	mu := Mean(xs)
	var ss, comp float64
	for _, x := range xs {
		d := x - mu
		ss += d * d
		comp += d
	}
	v := (ss - comp*comp/float64(n)) / float64(n)
	if v < 0 {
		return 0
	}
	return v
}

// RawMoment returns ⟨x^k⟩ for k ≥ 1, or 0 for empty input.
// Complexity: O(len(xs)·k) worst case; k ≤ 4 in practice.
func RawMoment(xs []float64, k int) float64 {
	if len(xs) == 0 {
		return 0
	}
	var s float64
	for _, x := range xs {
		p := x
		for i := 1; i < k; i++ {
			p *= x
		}
		s += p
	}
	return s / float64(len(xs))
}

// Susceptibility returns χ = n·(m2 − meanAbs²)/T.
func Susceptibility(n int, m2, meanAbs, T float64) float64 {
	return float64(n) * (m2 - meanAbs*meanAbs) / T
}

// BinderRatio returns U = 1 − m4/(3·m2²). When m2 ≤ DegenerateEps it returns
// (0, true) instead of dividing.
func BinderRatio(m2, m4 float64) (u float64, degenerate bool) {
	if m2 <= DegenerateEps {
		return 0, true
	}
	return 1 - m4/(3*m2*m2), false
}

// SpecificHeat returns C = n·(e2 − e²)/T² for per-site energy moments e, e2.
func SpecificHeat(n int, e, e2, T float64) float64 {
	return float64(n) * (e2 - e*e) / (T * T)
}
