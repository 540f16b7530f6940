package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LexiconIndonesia/country-currency-service/common"
	"github.com/LexiconIndonesia/country-currency-service/common/models"
	"github.com/LexiconIndonesia/country-currency-service/common/services"
	"github.com/LexiconIndonesia/country-currency-service/common/work"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const (
	defaultRefreshWorkers = 8
	defaultUpsertTimeout  = 15 * time.Second
	observerTimeout       = 10 * time.Second
)

// RefreshObserver is told about every completed refresh run. Errors are
// logged; they never fail the run.
type RefreshObserver interface {
	OnRefreshed(ctx context.Context, result models.RefreshResult) error
}

// Refresher runs the fetch, normalize, estimate, upsert pipeline.
type Refresher struct {
	source        Source
	repo          services.CountryService
	estimator     *Estimator
	guard         *work.RunGuard
	observers     []RefreshObserver
	workers       int
	upsertTimeout time.Duration
	now           func() time.Time
}

// RefresherOption configures a Refresher
type RefresherOption func(*Refresher)

// WithEstimator replaces the default random estimator
func WithEstimator(e *Estimator) RefresherOption {
	return func(r *Refresher) {
		r.estimator = e
	}
}

// WithRunGuard serializes runs through guard. A nil guard is allowed.
func WithRunGuard(guard *work.RunGuard) RefresherOption {
	return func(r *Refresher) {
		r.guard = guard
	}
}

// WithRefreshObservers registers observers notified after each run
func WithRefreshObservers(observers ...RefreshObserver) RefresherOption {
	return func(r *Refresher) {
		r.observers = append(r.observers, observers...)
	}
}

// WithWorkers sets how many countries are written concurrently
func WithWorkers(n int) RefresherOption {
	return func(r *Refresher) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithUpsertTimeout bounds each single-country write
func WithUpsertTimeout(d time.Duration) RefresherOption {
	return func(r *Refresher) {
		if d > 0 {
			r.upsertTimeout = d
		}
	}
}

// WithClock replaces time.Now for the run timestamp
func WithClock(now func() time.Time) RefresherOption {
	return func(r *Refresher) {
		r.now = now
	}
}

// NewRefresher creates a Refresher
func NewRefresher(source Source, repo services.CountryService, opts ...RefresherOption) *Refresher {
	r := &Refresher{
		source:        source,
		repo:          repo,
		estimator:     NewEstimator(),
		workers:       defaultRefreshWorkers,
		upsertTimeout: defaultUpsertTimeout,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Refresh performs one run. It fails with common.ErrUpstreamUnavailable when
// the country list cannot be fetched, and with common.ErrStorage when not a
// single country could be written. Single-country failures are skipped.
func (r *Refresher) Refresh(ctx context.Context) (models.RefreshResult, error) {
	release, locked := r.guard.Acquire(ctx)
	defer release()

	entries, err := r.source.FetchCountries(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Refresh aborted, country source unavailable")
		return models.RefreshResult{}, err
	}

	rates := r.source.FetchExchangeRates(ctx)

	runID, err := uuid.NewV7()
	if err != nil {
		return models.RefreshResult{}, fmt.Errorf("generating run ID: %w", err)
	}

	// Postgres keeps microseconds; truncating makes the reported time equal the stored one.
	runAt := r.now().UTC().Truncate(time.Microsecond)

	candidates := lo.FilterMap(entries, func(raw RawCountry, _ int) (models.Country, bool) {
		country, ok := Normalize(raw, rates)
		country.LastRefreshedAt = runAt
		return country, ok
	})

	result := models.RefreshResult{
		RunID:           runID.String(),
		LastRefreshedAt: runAt,
		Skipped:         len(entries) - len(candidates),
	}

	// Already-committed records stay committed even if the caller goes away.
	runCtx := context.WithoutCancel(ctx)

	outcomes, stats, firstErr := r.upsertAll(runCtx, result.RunID, candidates)
	for _, outcome := range outcomes {
		switch outcome {
		case models.UpsertCreated:
			result.Created++
		case models.UpsertUpdated:
			result.Updated++
		}
	}
	result.RefreshedCount = len(outcomes)
	result.Failed = len(candidates) - len(outcomes)

	log.Info().
		Str("runID", result.RunID).
		Bool("locked", locked).
		Int("entries", len(entries)).
		Int("rates", len(rates)).
		Int("refreshedCount", result.RefreshedCount).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Int64("tasksCompleted", stats.TasksCompleted).
		Int64("tasksFailed", stats.TasksFailed).
		Time("lastRefreshedAt", runAt).
		Msg("Refresh run finished")

	if len(candidates) > 0 && len(outcomes) == 0 {
		if !errors.Is(firstErr, common.ErrStorage) {
			firstErr = fmt.Errorf("%w: %w", common.ErrStorage, firstErr)
		}
		return result, fmt.Errorf("no country could be stored: %w", firstErr)
	}

	r.notify(runCtx, result)
	return result, nil
}

// upsertAll estimates and writes every candidate on a worker pool and
// returns the outcomes of the successful writes.
func (r *Refresher) upsertAll(ctx context.Context, runID string, candidates []models.Country) ([]models.UpsertOutcome, work.PoolStats, error) {
	if len(candidates) == 0 {
		return nil, work.PoolStats{}, nil
	}

	// Result buffer holds every outcome, so workers never drop one.
	pool, err := work.NewWorkerPoolWithConfig[models.UpsertOutcome](work.PoolConfig{
		NumWorkers:      min(r.workers, len(candidates)),
		TaskChannelSize: len(candidates),
		ResultChanSize:  len(candidates),
		TaskTimeout:     r.upsertTimeout,
	})
	if err != nil {
		return nil, work.PoolStats{}, fmt.Errorf("creating refresh pool: %w", err)
	}
	pool.Start(ctx, "refresh-"+runID)
	defer pool.Stop()

	var firstErr error
	submitted := 0
	for _, candidate := range candidates {
		country := candidate
		task, err := work.NewTask(
			func(ctx context.Context) (models.UpsertOutcome, error) {
				country.EstimatedGDP = r.estimator.Estimate(country.Population, country.ExchangeRate)
				return r.repo.Upsert(ctx, country)
			},
			work.WithID[models.UpsertOutcome](country.Name),
			work.WithErrorHandler[models.UpsertOutcome](func(err error) {
				log.Warn().Err(err).Str("runID", runID).Str("country", country.Name).Msg("Skipping country, upsert failed")
			}),
		)
		if err == nil {
			err = pool.AddTask(ctx, task)
		}
		if err != nil {
			log.Error().Err(err).Str("runID", runID).Str("country", country.Name).Msg("Failed to schedule country upsert")
			firstErr = lo.Ternary(firstErr == nil, err, firstErr)
			continue
		}
		submitted++
	}

	outcomes := make([]models.UpsertOutcome, 0, submitted)
	for i := 0; i < submitted; i++ {
		res := <-pool.Results()
		if !res.IsSuccess() {
			firstErr = lo.Ternary(firstErr == nil, res.Error, firstErr)
			continue
		}
		if res.Result == models.UpsertStale {
			log.Debug().Str("runID", runID).Str("country", res.TaskID).Msg("Newer run already stored country")
		}
		outcomes = append(outcomes, res.Result)
	}

	// Stop waits for the workers, so the counters are final.
	pool.Stop()
	return outcomes, pool.Stats(), firstErr
}

func (r *Refresher) notify(ctx context.Context, result models.RefreshResult) {
	for _, observer := range r.observers {
		obsCtx, cancel := context.WithTimeout(ctx, observerTimeout)
		if err := observer.OnRefreshed(obsCtx, result); err != nil {
			log.Warn().Err(err).Str("runID", result.RunID).Msg("Refresh observer failed")
		}
		cancel()
	}
}
