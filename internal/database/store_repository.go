package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Vanohime/Management-Recommendations/internal/models"
)

// QueryPool is the subset of pgxpool.Pool the repository needs. It allows
// tests to substitute a pgxmock pool.
type QueryPool interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// StoreRepository loads store profiles and historical sales observations.
type StoreRepository struct {
	pool QueryPool
}

// NewStoreRepository creates a repository over the given pool.
func NewStoreRepository(pool QueryPool) *StoreRepository {
	return &StoreRepository{pool: pool}
}

// LoadStores returns every store profile keyed by store ID.
func (r *StoreRepository) LoadStores(ctx context.Context) (map[int]*models.StoreProfile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT store_id, store_type, assortment, competition_distance,
		       competition_open_since_month, competition_open_since_year,
		       promo2, promo2_since_week, promo2_since_year, promo_interval
		FROM stores
		ORDER BY store_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}
	defer rows.Close()

	stores := make(map[int]*models.StoreProfile)
	for rows.Next() {
		var p models.StoreProfile
		var promoInterval *string
		if err := rows.Scan(
			&p.ID, &p.StoreType, &p.Assortment, &p.CompetitionDistance,
			&p.CompetitionOpenSinceMonth, &p.CompetitionOpenSinceYear,
			&p.Promo2, &p.Promo2SinceWeek, &p.Promo2SinceYear, &promoInterval,
		); err != nil {
			return nil, fmt.Errorf("failed to scan store row: %w", err)
		}
		if promoInterval != nil {
			p.PromoInterval = *promoInterval
		}
		stores[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read store rows: %w", err)
	}

	return stores, nil
}

// LoadSales returns the historical sales observations used to build the
// feature index: open days with positive sales, in a deterministic order so
// corpus insertion order (the distance tie-break) is stable across restarts.
func (r *StoreRepository) LoadSales(ctx context.Context) ([]models.SalesRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT store_id, date, day_of_week, sales, customers,
		       open, promo, state_holiday, school_holiday
		FROM sales
		WHERE open AND sales > 0
		ORDER BY date, store_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	var records []models.SalesRecord
	for rows.Next() {
		var rec models.SalesRecord
		if err := rows.Scan(
			&rec.StoreID, &rec.Date, &rec.DayOfWeek, &rec.Sales, &rec.Customers,
			&rec.Open, &rec.Promo, &rec.StateHoliday, &rec.SchoolHoliday,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sales row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sales rows: %w", err)
	}

	return records, nil
}
