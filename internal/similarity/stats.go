package similarity

import (
	"math"
	"sort"
)

// Summary describes the sales and distance distribution of a neighbor set.
type Summary struct {
	MeanSales    float64
	MedianSales  float64
	MinSales     float64
	MaxSales     float64
	StdSales     float64
	MeanDistance float64
	Sales        []float64
	Distances    []float64
}

// Sales extracts the sales values of a neighbor set in retrieval order.
func Sales(neighbors []Neighbor) []float64 {
	sales := make([]float64, len(neighbors))
	for i, n := range neighbors {
		sales[i] = n.Sales
	}
	return sales
}

// Mean returns the arithmetic mean of the given values, 0 for an empty set.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Summarize computes descriptive statistics over a neighbor set.
func Summarize(neighbors []Neighbor) Summary {
	s := Summary{
		Sales:     make([]float64, len(neighbors)),
		Distances: make([]float64, len(neighbors)),
	}
	if len(neighbors) == 0 {
		return s
	}

	s.MinSales = neighbors[0].Sales
	s.MaxSales = neighbors[0].Sales
	for i, n := range neighbors {
		s.Sales[i] = n.Sales
		s.Distances[i] = n.Distance
		if n.Sales < s.MinSales {
			s.MinSales = n.Sales
		}
		if n.Sales > s.MaxSales {
			s.MaxSales = n.Sales
		}
	}
	s.MeanSales = Mean(s.Sales)
	s.MeanDistance = Mean(s.Distances)
	s.MedianSales = median(s.Sales)

	var variance float64
	for _, v := range s.Sales {
		d := v - s.MeanSales
		variance += d * d
	}
	s.StdSales = math.Sqrt(variance / float64(len(s.Sales)))

	return s
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
