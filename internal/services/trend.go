package services

import (
	"fmt"
	"time"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"

	"github.com/Vanohime/Management-Recommendations/internal/models"
)

// DefaultTrendWindow is the moving-average period when none is requested.
const DefaultTrendWindow = 7

// GetStoreTrend computes smoothed sales-history indicators for one store
// over its chronological daily sales series.
func (s *RecommendationService) GetStoreTrend(storeID, window int) (*models.TrendSummary, error) {
	if !s.ready.Load() {
		return nil, models.ErrNotReady
	}
	if window <= 0 {
		window = DefaultTrendWindow
	}

	series, ok := s.history[storeID]
	if !ok {
		return nil, fmt.Errorf("store %d: %w", storeID, models.ErrStoreNotFound)
	}
	if len(series) < window {
		return nil, &models.ValidationError{
			Field:  "window",
			Reason: fmt.Sprintf("store has %d observations, window %d needs at least as many", len(series), window),
		}
	}

	smaIndicator := trend.NewSmaWithPeriod[float64](window)
	sma := helper.ChanToSlice(smaIndicator.Compute(helper.SliceToChan(series)))

	emaIndicator := trend.NewEmaWithPeriod[float64](window)
	ema := helper.ChanToSlice(emaIndicator.Compute(helper.SliceToChan(series)))

	summary := &models.TrendSummary{
		StoreID:      storeID,
		Window:       window,
		Observations: len(series),
		LatestSales:  series[len(series)-1],
		SMA:          sma[len(sma)-1],
		EMA:          ema[len(ema)-1],
		Direction:    trendDirection(sma),
		GeneratedAt:  time.Now().UTC(),
	}

	return summary, nil
}

// trendDirection compares the two most recent smoothed values. Movement
// within 1% counts as flat.
func trendDirection(sma []float64) string {
	if len(sma) < 2 {
		return "flat"
	}
	last, prev := sma[len(sma)-1], sma[len(sma)-2]
	switch {
	case prev > 0 && last > prev*1.01:
		return "up"
	case prev > 0 && last < prev*0.99:
		return "down"
	default:
		return "flat"
	}
}
