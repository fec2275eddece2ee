// SPDX-License-Identifier: MIT

package observable

import "errors"

// ErrInvalidBins is returned when a histogram is requested with bins < 1.
var ErrInvalidBins = errors.New("observable: bins must be >= 1")

// Bin is one histogram interval [Lo, Hi) with its count and probability
// density (count / (total·width)). The last bin is closed on the right.
type Bin struct {
	Lo, Hi  float64
	Count   int
	Density float64
}

// Histogram bins integer samples (e.g. cluster sizes) into `bins` equal-width
// intervals spanning [min, max]. Densities integrate to 1.
// Returns ErrEmptySeries for no samples and ErrInvalidBins for bins < 1.
// When all samples are equal a single bin of width 1 is returned.
// Complexity: O(len(xs) + bins).
func Histogram(xs []int, bins int) ([]Bin, error) {
	if bins < 1 {
		return nil, ErrInvalidBins
	}
	if len(xs) == 0 {
		return nil, ErrEmptySeries
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	total := float64(len(xs))
	if lo == hi {
		return []Bin{{Lo: float64(lo), Hi: float64(lo) + 1, Count: len(xs), Density: 1}}, nil
	}

	width := float64(hi-lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Lo = float64(lo) + float64(i)*width
		out[i].Hi = float64(lo) + float64(i+1)*width
	}
	for _, x := range xs {
		k := int(float64(x-lo) / width)
		if k >= bins {
			k = bins - 1
		}
		out[k].Count++
	}
	for i := range out {
		out[i].Density = float64(out[i].Count) / (total * width)
	}
	return out, nil
}
