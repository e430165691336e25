package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeated(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func flags(values ...bool) []bool { return values }

func TestUnderperformanceRule(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name     string
		forecast float64
		fires    bool
	}{
		{"well below benchmark", 1000, true},
		{"just below threshold", 1019, true},
		{"at threshold does not fire", 1020, false},
		{"at benchmark", 1200, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := e.Generate(Input{
				Forecast:       tt.forecast,
				NeighborSales:  repeated(1200, 5),
				NeighborPromos: flags(false, false, false, false, false),
			})
			if tt.fires {
				require.Len(t, recs, 1)
				assert.Contains(t, recs[0], "below typical")
			} else {
				assert.Empty(t, recs)
			}
		})
	}
}

func TestPromotionRule(t *testing.T) {
	e := NewEngine()

	t.Run("fires when most neighbors ran a promotion", func(t *testing.T) {
		recs := e.Generate(Input{
			Forecast:       1000,
			NeighborSales:  repeated(1200, 5),
			NeighborPromos: flags(true, true, true, true, true),
			Scenario:       Scenario{Promo: false},
		})
		require.Len(t, recs, 2)
		assert.Contains(t, recs[0], "below typical")
		assert.Contains(t, recs[1], "promotion")
	})

	t.Run("does not fire when a promotion is already planned", func(t *testing.T) {
		recs := e.Generate(Input{
			Forecast:       2000,
			NeighborSales:  repeated(1200, 5),
			NeighborPromos: flags(true, true, true, true, true),
			Scenario:       Scenario{Promo: true},
		})
		assert.Empty(t, recs)
	})

	t.Run("exactly half does not fire", func(t *testing.T) {
		recs := e.Generate(Input{
			Forecast:       2000,
			NeighborSales:  repeated(1200, 4),
			NeighborPromos: flags(true, true, false, false),
			Scenario:       Scenario{Promo: false},
		})
		assert.Empty(t, recs)
	})
}

func TestCompetitivePressureRule(t *testing.T) {
	e := NewEngine()

	base := Input{
		Forecast:       1000,
		NeighborSales:  repeated(1200, 5),
		NeighborPromos: flags(false, false, false, false, false),
	}

	t.Run("nearby competitor and weak forecast", func(t *testing.T) {
		in := base
		in.Forecast = 1050 // below 0.90 x 1200 but above 0.85 x 1200
		in.Scenario = Scenario{HasCompetitor: true, CompetitionDistance: 200}
		recs := e.Generate(in)
		require.Len(t, recs, 1)
		assert.Contains(t, recs[0], "competitive environment")
	})

	t.Run("distant competitor does not fire", func(t *testing.T) {
		in := base
		in.Forecast = 1050
		in.Scenario = Scenario{HasCompetitor: true, CompetitionDistance: 5000}
		assert.Empty(t, e.Generate(in))
	})

	t.Run("no competitor recorded does not fire", func(t *testing.T) {
		in := base
		in.Forecast = 1050
		in.Scenario = Scenario{HasCompetitor: false}
		assert.Empty(t, e.Generate(in))
	})
}

func TestWeekendStaffingRule(t *testing.T) {
	e := NewEngine()

	recs := e.Generate(Input{
		Forecast:       1100, // below 0.95 x 1200, above 0.90 x 1200
		NeighborSales:  repeated(1200, 5),
		NeighborPromos: flags(false, false, false, false, false),
		Scenario:       Scenario{IsWeekend: true},
	})
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "staffing")

	recs = e.Generate(Input{
		Forecast:       1100,
		NeighborSales:  repeated(1200, 5),
		NeighborPromos: flags(false, false, false, false, false),
		Scenario:       Scenario{IsWeekend: false},
	})
	assert.Empty(t, recs)
}

func TestZeroBenchmarkDisablesRatioRules(t *testing.T) {
	e := NewEngine()

	recs := e.Generate(Input{
		Forecast:       5000,
		NeighborSales:  repeated(0, 5),
		NeighborPromos: flags(false, false, false, false, false),
		Scenario: Scenario{
			HasCompetitor:       true,
			CompetitionDistance: 100,
			IsWeekend:           true,
		},
	})
	assert.Empty(t, recs)
}

func TestEmptyNeighborSet(t *testing.T) {
	e := NewEngine()

	recs := e.Generate(Input{
		Forecast: 5000,
		Scenario: Scenario{Promo: false, IsWeekend: true},
	})
	assert.Empty(t, recs)
}

func TestAllFourRulesFireTogether(t *testing.T) {
	e := NewEngine()

	in := Input{
		Forecast:       5000,
		NeighborSales:  []float64{7000, 7000, 7000, 7000, 6000}, // benchmark 6800
		NeighborPromos: flags(true, true, true, true, false),    // share 0.8
		Scenario: Scenario{
			Promo:               false,
			HasCompetitor:       true,
			CompetitionDistance: 200,
			IsWeekend:           true,
		},
	}

	recs := e.Generate(in)
	require.Len(t, recs, 4)
	assert.Contains(t, recs[0], "below typical")
	assert.Contains(t, recs[1], "promotion")
	assert.Contains(t, recs[1], "80%")
	assert.Contains(t, recs[2], "competitive environment")
	assert.Contains(t, recs[3], "staffing")
}

func TestGenerateDeterministic(t *testing.T) {
	e := NewEngine()

	in := Input{
		Forecast:       5000,
		NeighborSales:  []float64{7000, 7000, 7000, 7000, 6000},
		NeighborPromos: flags(true, true, true, true, false),
		Scenario: Scenario{
			HasCompetitor:       true,
			CompetitionDistance: 200,
			IsWeekend:           true,
		},
	}

	first := e.Generate(in)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, e.Generate(in))
	}
}

func TestCategorizePerformance(t *testing.T) {
	tests := []struct {
		name      string
		forecast  float64
		benchmark float64
		want      string
	}{
		{"well below", 800, 1000, "well below typical"},
		{"below", 870, 1000, "below typical"},
		{"slightly below", 920, 1000, "slightly below typical"},
		{"typical", 1000, 1000, "typical"},
		{"above", 1200, 1000, "above typical"},
		{"zero benchmark has no signal", 5000, 0, "typical"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategorizePerformance(tt.forecast, tt.benchmark))
		})
	}
}
