package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	neighbors := []Neighbor{
		{Sales: 7000, Distance: 1},
		{Sales: 7000, Distance: 2},
		{Sales: 7000, Distance: 3},
		{Sales: 7000, Distance: 4},
		{Sales: 6000, Distance: 5},
	}

	s := Summarize(neighbors)

	assert.InDelta(t, 6800, s.MeanSales, 1e-9)
	assert.Equal(t, 7000.0, s.MedianSales)
	assert.Equal(t, 6000.0, s.MinSales)
	assert.Equal(t, 7000.0, s.MaxSales)
	assert.InDelta(t, 3, s.MeanDistance, 1e-9)
	// Population std of [7000 x4, 6000]: sqrt(160000) = 400.
	assert.InDelta(t, 400, s.StdSales, 1e-9)
	assert.Equal(t, []float64{7000, 7000, 7000, 7000, 6000}, s.Sales)
}

func TestSummarizeEvenMedian(t *testing.T) {
	s := Summarize([]Neighbor{
		{Sales: 100}, {Sales: 400}, {Sales: 200}, {Sales: 300},
	})
	assert.Equal(t, 250.0, s.MedianSales)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0.0, s.MeanSales)
	assert.Equal(t, 0.0, s.StdSales)
	assert.Empty(t, s.Sales)
	assert.False(t, math.IsNaN(s.MedianSales))
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2, Mean([]float64{1, 2, 3}), 1e-9)
}
