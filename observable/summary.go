// SPDX-License-Identifier: MIT

package observable

// Summary holds the reduced magnetization statistics of one series.
type Summary struct {
	Samples          int
	MeanAbs          float64 // ⟨|M|⟩
	Mean             float64 // ⟨M⟩
	Variance         float64 // population var(M)
	M2               float64 // ⟨M²⟩
	M4               float64 // ⟨M⁴⟩
	Susceptibility   float64
	Binder           float64
	BinderDegenerate bool
}

// Summarize reduces a magnetization series measured on n sites at
// temperature T. Returns ErrEmptySeries for an empty series.
// Complexity: O(len(series)).
func Summarize(series []float64, n int, T float64) (Summary, error) {
	if len(series) == 0 {
		return Summary{}, ErrEmptySeries
	}
	s := Summary{
		Samples:  len(series),
		MeanAbs:  MeanAbs(series),
		Mean:     Mean(series),
		Variance: Variance(series),
		M2:       RawMoment(series, 2),
		M4:       RawMoment(series, 4),
	}
	s.Susceptibility = Susceptibility(n, s.M2, s.MeanAbs, T)
	s.Binder, s.BinderDegenerate = BinderRatio(s.M2, s.M4)

	return s, nil
}

// MeanInt returns the mean of an integer series such as cluster sizes,
// or 0 for an empty slice.
func MeanInt(xs []int) float64 {
	if len(xs) == 0 {
		return 0
	}
	var s int
	for _, x := range xs {
		s += x
	}
	return float64(s) / float64(len(xs))
}
