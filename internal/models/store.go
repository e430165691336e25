package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoreProfile describes the static attributes of a store. Profiles are
// loaded once from the database and treated as read-only afterwards.
type StoreProfile struct {
	ID                        int                 `json:"store_id" db:"store_id"`
	StoreType                 string              `json:"store_type" db:"store_type"`
	Assortment                string              `json:"assortment" db:"assortment"`
	CompetitionDistance       decimal.NullDecimal `json:"competition_distance" db:"competition_distance"`
	CompetitionOpenSinceMonth *int                `json:"competition_open_since_month,omitempty" db:"competition_open_since_month"`
	CompetitionOpenSinceYear  *int                `json:"competition_open_since_year,omitempty" db:"competition_open_since_year"`
	Promo2                    bool                `json:"promo2" db:"promo2"`
	Promo2SinceWeek           *int                `json:"promo2_since_week,omitempty" db:"promo2_since_week"`
	Promo2SinceYear           *int                `json:"promo2_since_year,omitempty" db:"promo2_since_year"`
	PromoInterval             string              `json:"promo_interval,omitempty" db:"promo_interval"`
}

// HasCompetitor reports whether a competitor distance is known for the store.
func (p *StoreProfile) HasCompetitor() bool {
	return p.CompetitionDistance.Valid
}

// SalesRecord is a single observed (store, date) sales row.
type SalesRecord struct {
	StoreID       int             `json:"store_id" db:"store_id"`
	Date          time.Time       `json:"date" db:"date"`
	DayOfWeek     int             `json:"day_of_week" db:"day_of_week"`
	Sales         decimal.Decimal `json:"sales" db:"sales"`
	Customers     int             `json:"customers" db:"customers"`
	Open          bool            `json:"open" db:"open"`
	Promo         bool            `json:"promo" db:"promo"`
	StateHoliday  string          `json:"state_holiday" db:"state_holiday"`
	SchoolHoliday bool            `json:"school_holiday" db:"school_holiday"`
}
