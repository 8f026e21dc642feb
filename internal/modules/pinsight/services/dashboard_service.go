package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MuhamadAgungGumelar/pinsight-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/modules/pinsight/models"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/modules/pinsight/repositories"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/shared/utils"
)

// DashboardOptions tunes the dashboard passes
type DashboardOptions struct {
	BatchSize         int              // rows fetched per batch when streaming
	MaxProjectionRows int              // 0 = unlimited
	QueryTimeout      time.Duration    // 0 = caller's deadline only
	Now               func() time.Time // nil = time.Now
}

type DashboardService struct {
	observationRepo repositories.ObservationRepo
	summaryRepo     repositories.SummaryRepo
	normalizer      *analytics.Normalizer
	opts            DashboardOptions
}

func NewDashboardService(observationRepo repositories.ObservationRepo, summaryRepo repositories.SummaryRepo, opts DashboardOptions) *DashboardService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &DashboardService{
		observationRepo: observationRepo,
		summaryRepo:     summaryRepo,
		normalizer:      analytics.NewNormalizer(opts.Now),
		opts:            opts,
	}
}

// Now returns the service clock, used to resolve relative filter periods
func (s *DashboardService) Now() time.Time {
	return s.opts.Now()
}

// factPass streams the facts matching a predicate into one accumulator
type factPass func(ctx context.Context, pred analytics.Predicate, acc analytics.Accumulator) error

// Full computes the unfiltered dashboard for a scope; raw data stays in arrival order
func (s *DashboardService) Full(ctx context.Context, scope analytics.AccessScope) (*analytics.Result, error) {
	pred, err := analytics.BuildPredicate(scope, analytics.FilterRequest{})
	if err != nil {
		return nil, err
	}
	return s.run(ctx, pred, analytics.RawStrategy{}, s.rawFacts, false)
}

// Filtered computes the dashboard under the caller's filters; raw data is newest first
func (s *DashboardService) Filtered(ctx context.Context, scope analytics.AccessScope, req analytics.FilterRequest) (*analytics.Result, error) {
	pred, err := analytics.BuildPredicate(scope, req)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, pred, analytics.RawStrategy{}, s.rawFacts, true)
}

// Rollup computes the dashboard from the pre-counted summary table.
// Without an explicit date range only the latest report date under the predicate is used.
// Summary rows carry no pincode, so a pincode filter is rejected rather than applied to rawData alone.
func (s *DashboardService) Rollup(ctx context.Context, scope analytics.AccessScope, req analytics.FilterRequest) (*analytics.Result, error) {
	pred, err := analytics.BuildPredicate(scope, req)
	if err != nil {
		return nil, err
	}
	if pred.HasPincode() {
		return nil, fmt.Errorf("%w: pincode is not available on summary data; use the filter endpoint", analytics.ErrInvalidFilter)
	}

	if !pred.HasDateFilter() {
		latest, ok, err := s.summaryRepo.LatestReportDate(ctx, pred)
		if err != nil {
			return nil, err
		}
		if !ok {
			utils.Logger(ctx).Debug().Msg("summary table has no rows under this scope")
			return analytics.EmptyResult(), nil
		}
		pred = pred.WithDateRange(latest, latest)
		utils.Logger(ctx).Debug().Str("report_date", analytics.DayKey(latest)).Msg("rollup narrowed to latest snapshot")
	}

	return s.run(ctx, pred, analytics.RollupStrategy{}, s.summaryFacts, true)
}

// run fans the raw projection and the five metric passes out as independent
// read-only passes over the same predicate. Each goroutine owns one result slot.
func (s *DashboardService) run(ctx context.Context, pred analytics.Predicate, strategy analytics.Strategy, pass factPass, newestFirst bool) (*analytics.Result, error) {
	if s.opts.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.QueryTimeout)
		defer cancel()
	}

	start := time.Now()
	res := analytics.EmptyResult()

	kpis := analytics.NewKPIAccumulator(strategy)
	series := analytics.NewTimeSeriesAccumulator()
	regional := analytics.NewRegionalAccumulator(strategy)
	platforms := analytics.NewPlatformShareAccumulator()
	brands := analytics.NewBrandCoverageAccumulator(strategy)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := s.project(gctx, pred, newestFirst)
		if err != nil {
			return err
		}
		res.RawData = records
		return nil
	})
	for _, acc := range []analytics.Accumulator{kpis, series, regional, platforms, brands} {
		acc := acc
		g.Go(func() error {
			return pass(gctx, pred, acc)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	res.KPIs = kpis.Result()
	res.TimeSeriesData = series.Result()
	res.RegionalData = regional.Result()
	res.PlatformShareData = platforms.Result()
	res.BrandCoverage = brands.Result()

	utils.Logger(ctx).Info().
		Str("strategy", strategy.Name()).
		Int("raw_rows", len(res.RawData)).
		Int64("skus_tracked", res.KPIs.SKUsTracked).
		Dur("took", time.Since(start)).
		Msg("dashboard computed")

	return res, nil
}

// project is the raw projection stage: matching canonical records in arrival order,
// optionally re-ordered newest report date first (stable)
func (s *DashboardService) project(ctx context.Context, pred analytics.Predicate, newestFirst bool) ([]analytics.CanonicalRecord, error) {
	records := make([]analytics.CanonicalRecord, 0)
	limit := s.opts.MaxProjectionRows

	err := s.observationRepo.Stream(ctx, pred, s.opts.BatchSize, func(batch []models.Observation) error {
		for i := range batch {
			rec := s.normalizer.Normalize(batch[i].ToAnalytics())
			if !pred.Match(rec) {
				continue
			}
			if limit > 0 && len(records) >= limit {
				return fmt.Errorf("%w: more than %d rows", analytics.ErrResourceExhausted, limit)
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if newestFirst {
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].ReportDate.After(records[j].ReportDate)
		})
	}
	return records, nil
}

// rawFacts feeds one fact per matching observation
func (s *DashboardService) rawFacts(ctx context.Context, pred analytics.Predicate, acc analytics.Accumulator) error {
	return s.observationRepo.Stream(ctx, pred, s.opts.BatchSize, func(batch []models.Observation) error {
		for i := range batch {
			rec := s.normalizer.Normalize(batch[i].ToAnalytics())
			if pred.Match(rec) {
				acc.Add(analytics.FactFromRecord(rec))
			}
		}
		return nil
	})
}

// summaryFacts feeds one pre-counted fact per matching rollup row
func (s *DashboardService) summaryFacts(ctx context.Context, pred analytics.Predicate, acc analytics.Accumulator) error {
	return s.summaryRepo.Stream(ctx, pred, s.opts.BatchSize, func(batch []models.Summary) error {
		for i := range batch {
			row := batch[i].ToAnalytics()
			if pred.MatchSummary(row) {
				acc.Add(analytics.FactFromSummary(row))
			}
		}
		return nil
	})
}
