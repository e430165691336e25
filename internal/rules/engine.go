// Package rules evaluates the fixed set of business rules that turn a
// forecast and its historical benchmark into operational recommendations.
package rules

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Rule thresholds. Ratios compare forecast against the neighbor benchmark.
const (
	UnderperformanceRatio    = 0.85
	CompetitivePressureRatio = 0.90
	WeekendStaffingRatio     = 0.95
	PromoShareThreshold      = 0.5
	// NearbyCompetitorDistance is the closeness threshold, in meters, below
	// which a competitor counts as operating nearby.
	NearbyCompetitorDistance = 1000.0
)

// Scenario carries the request attributes the rules inspect.
type Scenario struct {
	Promo               bool
	HasCompetitor       bool
	CompetitionDistance float64
	IsWeekend           bool
}

// Input is everything a single rule evaluation sees.
type Input struct {
	Forecast       float64
	NeighborSales  []float64
	NeighborPromos []bool
	Scenario       Scenario
}

// Engine generates recommendation messages. It holds only the message
// printer, so a single instance is safe for concurrent use.
type Engine struct {
	printer *message.Printer
}

// NewEngine returns a rule engine with English number formatting.
func NewEngine() *Engine {
	return &Engine{printer: message.NewPrinter(language.English)}
}

// Generate evaluates each rule independently, in declaration order, and
// returns the messages whose guards held. All rules are checked every call;
// an empty result simply means no rule triggered. A benchmark of zero
// disables the ratio-based rules entirely.
func (e *Engine) Generate(in Input) []string {
	recommendations := []string{}

	benchmark := mean(in.NeighborSales)
	ratioRulesActive := benchmark > 0

	// Rule 1: forecast lags the benchmark of similar observations.
	if ratioRulesActive && in.Forecast < benchmark*UnderperformanceRatio {
		recommendations = append(recommendations, e.printer.Sprintf(
			"Forecast is below typical for similar conditions (%.0f vs %.0f). Review the practices of stronger stores.",
			in.Forecast, benchmark))
	}

	// Rule 2: no promotion planned while most similar observations ran one.
	if !in.Scenario.Promo {
		if share, ok := promoShare(in.NeighborPromos); ok && share > PromoShareThreshold {
			recommendations = append(recommendations, e.printer.Sprintf(
				"%.0f%% of similar observations ran a promotion. Consider launching a promotion.",
				share*100))
		}
	}

	// Rule 3: close competitor combined with a weak forecast.
	if in.Scenario.HasCompetitor && in.Scenario.CompetitionDistance < NearbyCompetitorDistance {
		if ratioRulesActive && in.Forecast < benchmark*CompetitivePressureRatio {
			recommendations = append(recommendations, e.printer.Sprintf(
				"Store operates in a competitive environment (competitor at %.0f m). Review pricing and assortment strategy.",
				in.Scenario.CompetitionDistance))
		}
	}

	// Rule 4: weekend day with a below-typical forecast.
	if in.Scenario.IsWeekend && ratioRulesActive && in.Forecast < benchmark*WeekendStaffingRatio {
		recommendations = append(recommendations,
			"Weekend sales forecast is below typical. Ensure adequate staffing and inventory.")
	}

	return recommendations
}

// CategorizePerformance labels the forecast relative to the benchmark using
// the same thresholds the rules apply. A zero benchmark carries no signal.
func CategorizePerformance(forecast, benchmark float64) string {
	if benchmark <= 0 {
		return "typical"
	}
	ratio := forecast / benchmark
	switch {
	case ratio < UnderperformanceRatio:
		return "well below typical"
	case ratio < CompetitivePressureRatio:
		return "below typical"
	case ratio < WeekendStaffingRatio:
		return "slightly below typical"
	case ratio <= 1.05:
		return "typical"
	default:
		return "above typical"
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// promoShare returns the fraction of neighbors that ran a promotion. The
// second return is false for an empty neighbor set.
func promoShare(promos []bool) (float64, bool) {
	if len(promos) == 0 {
		return 0, false
	}
	count := 0
	for _, p := range promos {
		if p {
			count++
		}
	}
	return float64(count) / float64(len(promos)), true
}
