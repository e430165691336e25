package features

import "math"

// Scaler standardizes continuous features to zero mean and unit variance.
// Statistics are computed once over the historical corpus and frozen; every
// later transform applies the same means and deviations.
type Scaler struct {
	means  []float64
	stds   []float64
	fitted bool
}

// NewScaler returns an unfitted scaler for n continuous features.
func NewScaler(n int) *Scaler {
	return &Scaler{
		means: make([]float64, n),
		stds:  make([]float64, n),
	}
}

// Fit computes per-column mean and population standard deviation over the
// given rows. Rows must all have the scaler's column count.
func (s *Scaler) Fit(rows [][]float64) {
	n := len(s.means)
	for i := range s.means {
		s.means[i] = 0
		s.stds[i] = 0
	}
	if len(rows) == 0 {
		s.fitted = true
		return
	}

	for _, row := range rows {
		for i := 0; i < n; i++ {
			s.means[i] += row[i]
		}
	}
	count := float64(len(rows))
	for i := 0; i < n; i++ {
		s.means[i] /= count
	}

	for _, row := range rows {
		for i := 0; i < n; i++ {
			d := row[i] - s.means[i]
			s.stds[i] += d * d
		}
	}
	for i := 0; i < n; i++ {
		s.stds[i] = math.Sqrt(s.stds[i] / count)
	}

	s.fitted = true
}

// Transform scales a single value for column i using the frozen statistics.
// A zero standard deviation maps to 0 instead of dividing.
func (s *Scaler) Transform(i int, v float64) float64 {
	if s.stds[i] == 0 {
		return 0
	}
	return (v - s.means[i]) / s.stds[i]
}

// Fitted reports whether Fit has been called.
func (s *Scaler) Fitted() bool {
	return s.fitted
}
