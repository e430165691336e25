package features

import (
	"fmt"
	"sort"
	"time"

	"github.com/Vanohime/Management-Recommendations/internal/models"
)

// stateHolidays is the fixed category set for the state holiday flag:
// none, public holiday, Easter, Christmas.
var stateHolidays = []string{"0", "a", "b", "c"}

// Indices of the continuous columns inside the scaler.
const (
	scaledCompetitionDistance = iota
	scaledCompetitionMonths
	scaledPromo2Weeks
	numScaledFeatures
)

// Observation is one historical (store, date) row prepared for encoding.
type Observation struct {
	Store         *models.StoreProfile
	Date          time.Time
	Promo         bool
	StateHoliday  string
	SchoolHoliday bool
	Sales         float64
}

// EncodingError indicates a defensive failure while constructing a feature
// vector, e.g. a missing store profile.
type EncodingError struct {
	Reason string
}

func (e *EncodingError) Error() string {
	return "feature encoding failed: " + e.Reason
}

// Encoder converts a (store, date, promo) scenario into a fixed-length
// numeric vector. The categorical lookup tables and scaling statistics are
// captured by Fit over the historical corpus and frozen; every vector built
// afterwards shares the exact same dimensionality and dimension order.
type Encoder struct {
	storeTypes    []string
	assortments   []string
	storeTypeIdx  map[string]int
	assortmentIdx map[string]int
	holidayIdx    map[string]int
	scaler        *Scaler
	fitted        bool
}

// NewEncoder returns an unfitted encoder.
func NewEncoder() *Encoder {
	holidayIdx := make(map[string]int, len(stateHolidays))
	for i, h := range stateHolidays {
		holidayIdx[h] = i
	}
	return &Encoder{
		holidayIdx: holidayIdx,
		scaler:     NewScaler(numScaledFeatures),
	}
}

// Fit captures the categorical lookup tables and scaling statistics from the
// historical corpus. It must be called exactly once before any Encode call.
func (e *Encoder) Fit(observations []Observation) error {
	storeTypeSet := make(map[string]struct{})
	assortmentSet := make(map[string]struct{})
	continuous := make([][]float64, 0, len(observations))

	for i := range observations {
		o := &observations[i]
		if o.Store == nil {
			return &EncodingError{Reason: fmt.Sprintf("observation %d has no store profile", i)}
		}
		storeTypeSet[o.Store.StoreType] = struct{}{}
		assortmentSet[o.Store.Assortment] = struct{}{}

		dist, months, weeks := rawContinuous(o.Store, o.Date)
		continuous = append(continuous, []float64{dist, months, weeks})
	}

	e.storeTypes = sortedKeys(storeTypeSet)
	e.assortments = sortedKeys(assortmentSet)
	e.storeTypeIdx = indexOf(e.storeTypes)
	e.assortmentIdx = indexOf(e.assortments)
	e.scaler.Fit(continuous)
	e.fitted = true

	return nil
}

// Dimension returns the length of every vector produced by the encoder.
func (e *Encoder) Dimension() int {
	return 12 + len(e.storeTypes) + len(e.assortments) + len(stateHolidays)
}

// DimensionNames returns the ordered names of the vector dimensions.
func (e *Encoder) DimensionNames() []string {
	names := []string{
		"day_of_week", "promo", "school_holiday", "month", "day", "is_weekend",
		"competition_distance", "has_competition", "competition_months_open",
		"has_competition_data", "promo2", "promo2_weeks",
	}
	for _, t := range e.storeTypes {
		names = append(names, "store_type_"+t)
	}
	for _, a := range e.assortments {
		names = append(names, "assortment_"+a)
	}
	for _, h := range stateHolidays {
		names = append(names, "state_holiday_"+h)
	}
	return names
}

// Encode builds the feature vector for a query scenario. State holiday and
// school holiday are not part of a scenario request and encode as "none".
func (e *Encoder) Encode(store *models.StoreProfile, date time.Time, promo bool) ([]float64, error) {
	return e.EncodeObservation(Observation{
		Store:        store,
		Date:         date,
		Promo:        promo,
		StateHoliday: "0",
	})
}

// EncodeObservation builds the feature vector for a historical observation.
func (e *Encoder) EncodeObservation(o Observation) ([]float64, error) {
	if !e.fitted {
		return nil, &EncodingError{Reason: "encoder not fitted"}
	}
	if o.Store == nil {
		return nil, &EncodingError{Reason: "store profile is nil"}
	}

	vec := make([]float64, 0, e.Dimension())

	weekday := isoWeekday(o.Date)
	vec = append(vec, float64(weekday))
	vec = append(vec, boolFeature(o.Promo))
	vec = append(vec, boolFeature(o.SchoolHoliday))
	vec = append(vec, float64(o.Date.Month()))
	vec = append(vec, float64(o.Date.Day()))
	vec = append(vec, boolFeature(weekday >= 6))

	dist, months, weeks := rawContinuous(o.Store, o.Date)
	vec = append(vec, e.scaler.Transform(scaledCompetitionDistance, dist))
	vec = append(vec, boolFeature(o.Store.HasCompetitor()))
	vec = append(vec, e.scaler.Transform(scaledCompetitionMonths, months))
	vec = append(vec, boolFeature(o.Store.CompetitionOpenSinceYear != nil && o.Store.CompetitionOpenSinceMonth != nil))
	vec = append(vec, boolFeature(o.Store.Promo2))
	vec = append(vec, e.scaler.Transform(scaledPromo2Weeks, weeks))

	vec = appendOneHot(vec, e.storeTypeIdx, len(e.storeTypes), o.Store.StoreType)
	vec = appendOneHot(vec, e.assortmentIdx, len(e.assortments), o.Store.Assortment)
	vec = appendOneHot(vec, e.holidayIdx, len(stateHolidays), o.StateHoliday)

	return vec, nil
}

// rawContinuous derives the unscaled continuous features from a profile and
// target date. Missing competition or promo metadata defaults to zero; the
// "has data" indicator dimensions carry the distinction.
func rawContinuous(store *models.StoreProfile, date time.Time) (dist, monthsOpen, promoWeeks float64) {
	if store.CompetitionDistance.Valid {
		dist = store.CompetitionDistance.Decimal.InexactFloat64()
	}

	if store.CompetitionOpenSinceYear != nil && store.CompetitionOpenSinceMonth != nil {
		months := (date.Year()-*store.CompetitionOpenSinceYear)*12 +
			(int(date.Month()) - *store.CompetitionOpenSinceMonth)
		if months > 0 {
			monthsOpen = float64(months)
		}
	}

	if store.Promo2 && store.Promo2SinceYear != nil && store.Promo2SinceWeek != nil {
		year, week := date.ISOWeek()
		weeks := (year-*store.Promo2SinceYear)*52 + (week - *store.Promo2SinceWeek)
		if weeks > 0 {
			promoWeeks = float64(weeks)
		}
	}

	return dist, monthsOpen, promoWeeks
}

// isoWeekday maps time.Weekday to ISO numbering: Monday=1 .. Sunday=7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// appendOneHot appends a one-hot group of the given width. Categories unseen
// at fit time encode as all-zero rather than failing.
func appendOneHot(vec []float64, idx map[string]int, width int, value string) []float64 {
	group := make([]float64, width)
	if i, ok := idx[value]; ok {
		group[i] = 1
	}
	return append(vec, group...)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func indexOf(values []string) map[string]int {
	idx := make(map[string]int, len(values))
	for i, v := range values {
		idx[v] = i
	}
	return idx
}
