package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Vanohime/Management-Recommendations/internal/config"
	"github.com/Vanohime/Management-Recommendations/internal/database"
	"github.com/Vanohime/Management-Recommendations/internal/features"
	"github.com/Vanohime/Management-Recommendations/internal/forecast"
	"github.com/Vanohime/Management-Recommendations/internal/models"
	"github.com/Vanohime/Management-Recommendations/internal/rules"
	"github.com/Vanohime/Management-Recommendations/internal/similarity"
)

const dateLayout = "2006-01-02"

// StoreDataRepository loads the historical data the service is built from.
type StoreDataRepository interface {
	LoadStores(ctx context.Context) (map[int]*models.StoreProfile, error)
	LoadSales(ctx context.Context) ([]models.SalesRecord, error)
}

// RecommendationService orchestrates the full pipeline: encode the scenario,
// forecast, retrieve similar historical observations and generate
// recommendations. After Initialize the service holds only immutable state
// and serves unlimited concurrent requests without locking.
type RecommendationService struct {
	config     *config.Config
	repo       StoreDataRepository
	cache      *database.RedisClient
	cacheTTL   time.Duration
	logger     *logrus.Logger
	forecaster forecast.Forecaster
	rules      *rules.Engine

	encoder  *features.Encoder
	engine   *similarity.Engine
	profiles map[int]*models.StoreProfile
	history  map[int][]float64

	ready atomic.Bool
}

// NewRecommendationService wires the service. The cache client may be nil to
// disable response caching.
func NewRecommendationService(
	cfg *config.Config,
	repo StoreDataRepository,
	cache *database.RedisClient,
	forecaster forecast.Forecaster,
	logger *logrus.Logger,
) *RecommendationService {
	var ttl time.Duration
	if cfg.Cache.Enabled {
		ttl, _ = cfg.Cache.CacheTTL()
	}
	if !cfg.Cache.Enabled || ttl <= 0 {
		cache = nil
	}

	return &RecommendationService{
		config:     cfg,
		repo:       repo,
		cache:      cache,
		cacheTTL:   ttl,
		logger:     logger,
		forecaster: forecaster,
		rules:      rules.NewEngine(),
	}
}

// Ready reports whether the historical index has been built.
func (s *RecommendationService) Ready() bool {
	return s.ready.Load()
}

// ModelType names the active forecaster implementation.
func (s *RecommendationService) ModelType() string {
	return s.forecaster.Name()
}

// CorpusSize returns the number of indexed historical observations.
func (s *RecommendationService) CorpusSize() int {
	if s.engine == nil {
		return 0
	}
	return s.engine.Len()
}

// Initialize loads the historical data, fits the feature encoder and builds
// the similarity index. It must complete before the service accepts requests;
// the built state is frozen for the process lifetime.
func (s *RecommendationService) Initialize(ctx context.Context) error {
	start := time.Now()

	stores, err := s.repo.LoadStores(ctx)
	if err != nil {
		return fmt.Errorf("failed to load store profiles: %w", err)
	}
	sales, err := s.repo.LoadSales(ctx)
	if err != nil {
		return fmt.Errorf("failed to load sales history: %w", err)
	}

	observations := make([]features.Observation, 0, len(sales))
	history := make(map[int][]float64)
	skipped := 0
	for i := range sales {
		rec := &sales[i]
		profile, ok := stores[rec.StoreID]
		if !ok {
			skipped++
			continue
		}
		salesValue := rec.Sales.InexactFloat64()
		observations = append(observations, features.Observation{
			Store:         profile,
			Date:          rec.Date,
			Promo:         rec.Promo,
			StateHoliday:  rec.StateHoliday,
			SchoolHoliday: rec.SchoolHoliday,
			Sales:         salesValue,
		})
		// Sales rows arrive date-ordered, so history stays chronological.
		history[rec.StoreID] = append(history[rec.StoreID], salesValue)
	}
	if skipped > 0 {
		s.logger.WithField("rows", skipped).Warn("Skipped sales rows without a store profile")
	}

	encoder := features.NewEncoder()
	if err := encoder.Fit(observations); err != nil {
		return fmt.Errorf("failed to fit feature encoder: %w", err)
	}

	engine := similarity.NewEngine(encoder.Dimension())
	for i := range observations {
		vector, err := encoder.EncodeObservation(observations[i])
		if err != nil {
			return fmt.Errorf("failed to encode observation %d: %w", i, err)
		}
		if err := engine.Add(vector, observations[i].Sales, observations[i].Promo); err != nil {
			return fmt.Errorf("failed to index observation %d: %w", i, err)
		}
	}

	s.encoder = encoder
	s.engine = engine
	s.profiles = stores
	s.history = history
	s.ready.Store(true)

	s.logger.WithFields(logrus.Fields{
		"stores":       len(stores),
		"observations": engine.Len(),
		"dimensions":   encoder.Dimension(),
		"model":        s.forecaster.Name(),
		"duration":     time.Since(start).String(),
	}).Info("Recommendation service initialized")

	return nil
}

// GetRecommendation runs the pipeline for one scenario and returns the
// forecast, the neighbor benchmark and the triggered recommendations.
func (s *RecommendationService) GetRecommendation(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResult, error) {
	if !s.ready.Load() {
		return nil, models.ErrNotReady
	}

	date, promo, err := parseScenario(req)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("rec:%d:%s:%t", req.StoreID, req.Date, promo)
	if cached, ok := s.cachedResult(ctx, cacheKey); ok {
		return cached, nil
	}

	result, _, err := s.evaluate(req.StoreID, date, promo)
	if err != nil {
		return nil, err
	}
	result.Date = req.Date

	s.storeResult(ctx, cacheKey, result)

	return result, nil
}

// GetDetailedAnalysis extends the recommendation with neighbor statistics
// and a benchmark comparison.
func (s *RecommendationService) GetDetailedAnalysis(ctx context.Context, req models.RecommendationRequest) (*models.DetailedResult, error) {
	if !s.ready.Load() {
		return nil, models.ErrNotReady
	}

	date, promo, err := parseScenario(req)
	if err != nil {
		return nil, err
	}

	result, neighbors, err := s.evaluate(req.StoreID, date, promo)
	if err != nil {
		return nil, err
	}
	result.Date = req.Date

	summary := similarity.Summarize(neighbors)
	detailed := &models.DetailedResult{
		RecommendationResult: *result,
		SimilarStatistics: models.NeighborStatistics{
			MeanSales:    summary.MeanSales,
			MedianSales:  summary.MedianSales,
			MinSales:     summary.MinSales,
			MaxSales:     summary.MaxSales,
			StdSales:     summary.StdSales,
			MeanDistance: summary.MeanDistance,
			SalesValues:  summary.Sales,
			Distances:    summary.Distances,
		},
		Performance: comparePerformance(result.ForecastSales, summary),
	}

	return detailed, nil
}

// evaluate is the uncached pipeline: resolve profile, encode, predict,
// retrieve neighbors, generate recommendations. Any failing step aborts the
// sequence and the error propagates unchanged.
func (s *RecommendationService) evaluate(storeID int, date time.Time, promo bool) (*models.RecommendationResult, []similarity.Neighbor, error) {
	profile, ok := s.profiles[storeID]
	if !ok {
		return nil, nil, fmt.Errorf("store %d: %w", storeID, models.ErrStoreNotFound)
	}

	vector, err := s.encoder.Encode(profile, date, promo)
	if err != nil {
		return nil, nil, err
	}

	forecastSales, err := s.forecaster.Predict(vector)
	if err != nil {
		return nil, nil, fmt.Errorf("forecast failed: %w", err)
	}

	neighbors, err := s.engine.FindSimilar(vector, s.config.Similarity.Neighbors)
	if err != nil {
		return nil, nil, err
	}

	neighborSales := similarity.Sales(neighbors)
	neighborPromos := make([]bool, len(neighbors))
	for i, n := range neighbors {
		neighborPromos[i] = n.Promo
	}

	scenario := rules.Scenario{
		Promo:         promo,
		HasCompetitor: profile.HasCompetitor(),
		IsWeekend:     date.Weekday() == time.Saturday || date.Weekday() == time.Sunday,
	}
	if profile.HasCompetitor() {
		scenario.CompetitionDistance = profile.CompetitionDistance.Decimal.InexactFloat64()
	}

	recommendations := s.rules.Generate(rules.Input{
		Forecast:       forecastSales,
		NeighborSales:  neighborSales,
		NeighborPromos: neighborPromos,
		Scenario:       scenario,
	})

	result := &models.RecommendationResult{
		StoreID:         storeID,
		Promo:           promo,
		ForecastSales:   forecastSales,
		BenchmarkSales:  similarity.Mean(neighborSales),
		Recommendations: recommendations,
		NeighborSales:   neighborSales,
		ModelType:       s.forecaster.Name(),
		GeneratedAt:     time.Now().UTC(),
	}

	return result, neighbors, nil
}

func parseScenario(req models.RecommendationRequest) (time.Time, bool, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return time.Time{}, false, &models.ValidationError{
			Field:  "date",
			Reason: fmt.Sprintf("%q is not a valid YYYY-MM-DD date", req.Date),
		}
	}
	if req.Promo == nil {
		return time.Time{}, false, &models.ValidationError{Field: "promo", Reason: "promo flag is required"}
	}
	return date, *req.Promo, nil
}

func comparePerformance(forecastSales float64, summary similarity.Summary) models.PerformanceComparison {
	cmp := models.PerformanceComparison{
		Forecast:         forecastSales,
		BenchmarkMean:    summary.MeanSales,
		BenchmarkMedian:  summary.MedianSales,
		DifferenceMean:   forecastSales - summary.MeanSales,
		DifferenceMedian: forecastSales - summary.MedianSales,
		Category:         rules.CategorizePerformance(forecastSales, summary.MeanSales),
	}
	if summary.MeanSales != 0 {
		cmp.DifferencePctMean = (forecastSales/summary.MeanSales - 1) * 100
	}
	if summary.MedianSales != 0 {
		cmp.DifferencePctMedian = (forecastSales/summary.MedianSales - 1) * 100
	}
	return cmp
}

// cachedResult looks up a previously computed recommendation. Cache failures
// only log; the pipeline result is always recomputable.
func (s *RecommendationService) cachedResult(ctx context.Context, key string) (*models.RecommendationResult, bool) {
	if s.cache == nil {
		return nil, false
	}
	payload, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var result models.RecommendationResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Discarding malformed cached recommendation")
		return nil, false
	}
	return &result, true
}

func (s *RecommendationService) storeResult(ctx context.Context, key string, result *models.RecommendationResult) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Failed to cache recommendation")
	}
}
