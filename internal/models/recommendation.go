package models

import "time"

// RecommendationRequest is the scenario a caller asks about: a store, a
// target date and whether a promotion would be running.
type RecommendationRequest struct {
	StoreID int    `json:"store_id" binding:"required,min=1"`
	Date    string `json:"date" binding:"required"`
	Promo   *bool  `json:"promo" binding:"required"`
}

// RecommendationResult is the core response: point forecast, benchmark from
// similar historical observations and the generated recommendations.
type RecommendationResult struct {
	StoreID         int       `json:"store_id"`
	Date            string    `json:"date"`
	Promo           bool      `json:"promo"`
	ForecastSales   float64   `json:"forecast_sales"`
	BenchmarkSales  float64   `json:"benchmark_sales"`
	Recommendations []string  `json:"recommendations"`
	NeighborSales   []float64 `json:"similar_sales"`
	ModelType       string    `json:"model_type"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// NeighborStatistics summarizes the sales of the retrieved neighbor set.
type NeighborStatistics struct {
	MeanSales    float64   `json:"mean_sales"`
	MedianSales  float64   `json:"median_sales"`
	MinSales     float64   `json:"min_sales"`
	MaxSales     float64   `json:"max_sales"`
	StdSales     float64   `json:"std_sales"`
	MeanDistance float64   `json:"mean_distance"`
	SalesValues  []float64 `json:"sales_values"`
	Distances    []float64 `json:"distances"`
}

// PerformanceComparison relates the forecast to the neighbor benchmark.
type PerformanceComparison struct {
	Forecast            float64 `json:"forecast"`
	BenchmarkMean       float64 `json:"benchmark_mean"`
	BenchmarkMedian     float64 `json:"benchmark_median"`
	DifferenceMean      float64 `json:"difference_mean"`
	DifferencePctMean   float64 `json:"difference_pct_mean"`
	DifferenceMedian    float64 `json:"difference_median"`
	DifferencePctMedian float64 `json:"difference_pct_median"`
	Category            string  `json:"performance_category"`
}

// DetailedResult extends RecommendationResult with neighbor statistics and a
// performance comparison for the detailed analysis endpoint.
type DetailedResult struct {
	RecommendationResult
	SimilarStatistics NeighborStatistics    `json:"similar_statistics"`
	Performance       PerformanceComparison `json:"performance"`
}

// TrendSummary reports smoothed sales history for a single store.
type TrendSummary struct {
	StoreID      int       `json:"store_id"`
	Window       int       `json:"window"`
	Observations int       `json:"observations"`
	LatestSales  float64   `json:"latest_sales"`
	SMA          float64   `json:"sma"`
	EMA          float64   `json:"ema"`
	Direction    string    `json:"direction"` // "up", "down" or "flat"
	GeneratedAt  time.Time `json:"generated_at"`
}
