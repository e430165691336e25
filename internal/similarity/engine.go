// Package similarity implements exact K-nearest-neighbor search over the
// frozen historical feature corpus.
package similarity

import (
	"fmt"
	"math"
	"sort"
)

// DefaultNeighbors is the number of neighbors retrieved per query.
const DefaultNeighbors = 5

// DimensionMismatchError is returned when a query vector does not match the
// corpus feature space. It indicates a build/encode inconsistency, not a bad
// request.
type DimensionMismatchError struct {
	Want int
	Got  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("feature vector has %d dimensions, corpus expects %d", e.Got, e.Want)
}

// Neighbor is one retrieved historical observation: the sales value it was
// observed with, whether a promotion was running and the Euclidean distance
// to the query vector.
type Neighbor struct {
	Sales    float64 `json:"sales"`
	Promo    bool    `json:"promo"`
	Distance float64 `json:"distance"`
}

// Engine holds the encoded historical corpus. It is populated once during
// initialization and never mutated afterwards, so queries are safe for
// unlimited concurrent readers without locking.
type Engine struct {
	dim     int
	vectors [][]float64
	sales   []float64
	promos  []bool
}

// NewEngine creates an empty engine for the given feature dimensionality.
func NewEngine(dim int) *Engine {
	return &Engine{dim: dim}
}

// Add appends one historical observation to the corpus. Insertion order is
// significant: it is the tie-break for equal distances.
func (e *Engine) Add(vector []float64, sales float64, promo bool) error {
	if len(vector) != e.dim {
		return &DimensionMismatchError{Want: e.dim, Got: len(vector)}
	}
	e.vectors = append(e.vectors, vector)
	e.sales = append(e.sales, sales)
	e.promos = append(e.promos, promo)
	return nil
}

// Len returns the corpus size.
func (e *Engine) Len() int {
	return len(e.vectors)
}

// Dimension returns the corpus feature dimensionality.
func (e *Engine) Dimension() int {
	return e.dim
}

// FindSimilar returns the min(k, corpus size) nearest observations to the
// target vector under Euclidean distance, sorted ascending by distance with
// ties broken by insertion order.
func (e *Engine) FindSimilar(target []float64, k int) ([]Neighbor, error) {
	if len(target) != e.dim {
		return nil, &DimensionMismatchError{Want: e.dim, Got: len(target)}
	}
	if k <= 0 {
		k = DefaultNeighbors
	}

	order := make([]int, len(e.vectors))
	dists := make([]float64, len(e.vectors))
	for i, v := range e.vectors {
		order[i] = i
		dists[i] = squaredDistance(target, v)
	}

	sort.SliceStable(order, func(a, b int) bool {
		return dists[order[a]] < dists[order[b]]
	})

	if k > len(order) {
		k = len(order)
	}
	neighbors := make([]Neighbor, k)
	for i := 0; i < k; i++ {
		idx := order[i]
		neighbors[i] = Neighbor{
			Sales:    e.sales[idx],
			Promo:    e.promos[idx],
			Distance: math.Sqrt(dists[idx]),
		}
	}
	return neighbors, nil
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
