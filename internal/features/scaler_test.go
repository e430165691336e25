package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScalerFitTransform(t *testing.T) {
	s := NewScaler(2)
	s.Fit([][]float64{
		{1, 10},
		{2, 10},
		{3, 10},
	})

	assert.True(t, s.Fitted())

	// Column 0: mean 2, population std sqrt(2/3).
	assert.InDelta(t, 0, s.Transform(0, 2), 1e-9)
	assert.Greater(t, s.Transform(0, 3), 0.0)
	assert.Less(t, s.Transform(0, 1), 0.0)

	// Column 1 is constant: zero deviation maps to 0, no division fault.
	assert.Equal(t, 0.0, s.Transform(1, 10))
	assert.Equal(t, 0.0, s.Transform(1, 99999))
}

func TestScalerSymmetry(t *testing.T) {
	s := NewScaler(1)
	s.Fit([][]float64{{-5}, {5}})

	assert.InDelta(t, -s.Transform(0, 5), s.Transform(0, -5), 1e-9)
}

func TestScalerEmptyCorpus(t *testing.T) {
	s := NewScaler(1)
	s.Fit(nil)

	assert.True(t, s.Fitted())
	assert.Equal(t, 0.0, s.Transform(0, 123))
}

func TestScalerFrozenAcrossTransforms(t *testing.T) {
	s := NewScaler(1)
	s.Fit([][]float64{{1}, {3}})

	first := s.Transform(0, 2)
	for i := 0; i < 100; i++ {
		s.Transform(0, float64(i))
	}
	assert.Equal(t, first, s.Transform(0, 2))
}
