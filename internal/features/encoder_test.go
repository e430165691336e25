package features

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vanohime/Management-Recommendations/internal/models"
)

func intPtr(v int) *int { return &v }

func testProfile(id int, storeType, assortment string) *models.StoreProfile {
	return &models.StoreProfile{
		ID:                        id,
		StoreType:                 storeType,
		Assortment:                assortment,
		CompetitionDistance:       decimal.NewNullDecimal(decimal.NewFromInt(200)),
		CompetitionOpenSinceMonth: intPtr(6),
		CompetitionOpenSinceYear:  intPtr(2013),
		Promo2:                    true,
		Promo2SinceWeek:           intPtr(10),
		Promo2SinceYear:           intPtr(2014),
	}
}

func testCorpus() []Observation {
	storeA := testProfile(1, "a", "a")
	storeC := testProfile(2, "c", "b")
	base := time.Date(2015, 7, 1, 0, 0, 0, 0, time.UTC)

	obs := make([]Observation, 0, 10)
	for i := 0; i < 5; i++ {
		obs = append(obs, Observation{
			Store: storeA, Date: base.AddDate(0, 0, i), Promo: i%2 == 0,
			StateHoliday: "0", Sales: 5000 + float64(i)*100,
		})
		obs = append(obs, Observation{
			Store: storeC, Date: base.AddDate(0, 0, i), Promo: false,
			StateHoliday: "0", Sales: 7000 + float64(i)*100,
		})
	}
	return obs
}

func fittedEncoder(t *testing.T) *Encoder {
	t.Helper()
	enc := NewEncoder()
	require.NoError(t, enc.Fit(testCorpus()))
	return enc
}

func TestEncoderDimensionalConsistency(t *testing.T) {
	enc := fittedEncoder(t)

	// 12 base features + 2 store types + 2 assortments + 4 state holidays.
	assert.Equal(t, 20, enc.Dimension())
	assert.Len(t, enc.DimensionNames(), enc.Dimension())

	for _, o := range testCorpus() {
		vec, err := enc.EncodeObservation(o)
		require.NoError(t, err)
		assert.Len(t, vec, enc.Dimension())
	}

	query, err := enc.Encode(testProfile(1, "a", "a"), time.Date(2015, 8, 1, 0, 0, 0, 0, time.UTC), true)
	require.NoError(t, err)
	assert.Len(t, query, enc.Dimension())
}

func TestEncoderCalendarFeatures(t *testing.T) {
	enc := fittedEncoder(t)

	// 2015-08-01 was a Saturday.
	saturday := time.Date(2015, 8, 1, 0, 0, 0, 0, time.UTC)
	vec, err := enc.Encode(testProfile(1, "a", "a"), saturday, false)
	require.NoError(t, err)

	assert.Equal(t, 6.0, vec[0], "day_of_week should be ISO Saturday")
	assert.Equal(t, 8.0, vec[3], "month")
	assert.Equal(t, 1.0, vec[4], "day of month")
	assert.Equal(t, 1.0, vec[5], "weekend indicator")

	monday := time.Date(2015, 8, 3, 0, 0, 0, 0, time.UTC)
	vec, err = enc.Encode(testProfile(1, "a", "a"), monday, false)
	require.NoError(t, err)
	assert.Equal(t, 1.0, vec[0])
	assert.Equal(t, 0.0, vec[5])
}

func TestEncoderPromoFlag(t *testing.T) {
	enc := fittedEncoder(t)
	date := time.Date(2015, 8, 1, 0, 0, 0, 0, time.UTC)

	with, err := enc.Encode(testProfile(1, "a", "a"), date, true)
	require.NoError(t, err)
	without, err := enc.Encode(testProfile(1, "a", "a"), date, false)
	require.NoError(t, err)

	assert.Equal(t, 1.0, with[1])
	assert.Equal(t, 0.0, without[1])
}

func TestEncoderCompetitionDefaults(t *testing.T) {
	enc := fittedEncoder(t)
	date := time.Date(2015, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run("no competition data", func(t *testing.T) {
		profile := &models.StoreProfile{ID: 3, StoreType: "a", Assortment: "a"}
		vec, err := enc.Encode(profile, date, false)
		require.NoError(t, err)

		assert.Equal(t, 0.0, vec[7], "has_competition")
		assert.Equal(t, 0.0, vec[9], "has_competition_data")
		assert.Equal(t, 0.0, vec[10], "promo2")
	})

	t.Run("competition opens in the future clamps to zero months", func(t *testing.T) {
		profile := testProfile(4, "a", "a")
		profile.CompetitionOpenSinceYear = intPtr(2020)
		vec, err := enc.Encode(profile, date, false)
		require.NoError(t, err)

		// Months-open raw value 0 scales identically to any other store
		// whose competitor is not yet open.
		noData := &models.StoreProfile{ID: 5, StoreType: "a", Assortment: "a"}
		other, err := enc.Encode(noData, date, false)
		require.NoError(t, err)
		assert.Equal(t, other[8], vec[8])
		assert.Equal(t, 1.0, vec[9], "indicator still reports open-date data present")
	})
}

func TestEncoderUnseenCategoryEncodesAllZero(t *testing.T) {
	enc := fittedEncoder(t)
	date := time.Date(2015, 8, 1, 0, 0, 0, 0, time.UTC)

	vec, err := enc.Encode(testProfile(9, "z", "x"), date, false)
	require.NoError(t, err)

	// Store type group occupies dims 12..13, assortment 14..15.
	assert.Equal(t, []float64{0, 0}, vec[12:14])
	assert.Equal(t, []float64{0, 0}, vec[14:16])
}

func TestEncoderStateHolidayOneHot(t *testing.T) {
	enc := fittedEncoder(t)

	vec, err := enc.EncodeObservation(Observation{
		Store:        testProfile(1, "a", "a"),
		Date:         time.Date(2015, 12, 25, 0, 0, 0, 0, time.UTC),
		StateHoliday: "c",
	})
	require.NoError(t, err)

	// Holiday group is the last four dims, ordered none/public/easter/christmas.
	assert.Equal(t, []float64{0, 0, 0, 1}, vec[16:20])
}

func TestEncoderScalingFreeze(t *testing.T) {
	enc := fittedEncoder(t)
	date := time.Date(2015, 8, 1, 0, 0, 0, 0, time.UTC)

	first, err := enc.Encode(testProfile(1, "a", "a"), date, false)
	require.NoError(t, err)

	// Interleave many unrelated encodes, then repeat: vectors must be
	// bit-identical, proving the statistics never drift after Fit.
	for i := 0; i < 50; i++ {
		_, err := enc.Encode(testProfile(2, "c", "b"), date.AddDate(0, 0, i), i%2 == 0)
		require.NoError(t, err)
	}

	again, err := enc.Encode(testProfile(1, "a", "a"), date, false)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestEncoderErrors(t *testing.T) {
	t.Run("unfitted", func(t *testing.T) {
		enc := NewEncoder()
		_, err := enc.Encode(testProfile(1, "a", "a"), time.Now(), false)
		var encErr *EncodingError
		assert.ErrorAs(t, err, &encErr)
	})

	t.Run("nil profile", func(t *testing.T) {
		enc := fittedEncoder(t)
		_, err := enc.Encode(nil, time.Now(), false)
		var encErr *EncodingError
		assert.ErrorAs(t, err, &encErr)
	})
}
