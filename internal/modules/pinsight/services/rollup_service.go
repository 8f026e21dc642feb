package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/MuhamadAgungGumelar/pinsight-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/modules/pinsight/models"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/modules/pinsight/repositories"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/shared/utils"
)

// ErrBuildInProgress is returned when a rollup build is requested while one is running
var ErrBuildInProgress = errors.New("rollup build already in progress")

// BuildReport describes one rollup build
type BuildReport struct {
	BuildID     string        `json:"build_id"`
	RawRows     int           `json:"raw_rows"`
	Skipped     int           `json:"skipped"`      // rows without a parseable report date
	Duplicate   int           `json:"duplicates"`   // repeated pincode rows within a group
	Groups      int           `json:"groups"`       // summary rows written by this build
	SummaryRows int64         `json:"summary_rows"` // size of products_summary afterwards
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
}

type RollupService struct {
	observationRepo repositories.ObservationRepo
	summaryRepo     repositories.SummaryRepo
	streamBatch     int
	upsertBatch     int

	mu      sync.Mutex
	running bool
}

func NewRollupService(observationRepo repositories.ObservationRepo, summaryRepo repositories.SummaryRepo, streamBatch, upsertBatch int) *RollupService {
	if upsertBatch <= 0 {
		upsertBatch = 500
	}
	return &RollupService{
		observationRepo: observationRepo,
		summaryRepo:     summaryRepo,
		streamBatch:     streamBatch,
		upsertBatch:     upsertBatch,
	}
}

// summaryKey is the grouping key of products_summary
type summaryKey struct {
	city, company, client, brand, name, productID, platform, category string
	date                                                              string // YYYY-MM-DD
}

type meanAcc struct {
	sum float64
	n   int
}

func (m *meanAcc) add(raw string) {
	if v, ok := analytics.TryParseNumber(raw); ok {
		m.sum += v
		m.n++
	}
}

func (m *meanAcc) value() *float64 {
	if m.n == 0 {
		return nil
	}
	v := analytics.Round(m.sum/float64(m.n), 2)
	return &v
}

type summaryGroup struct {
	key       summaryKey
	date      time.Time
	pincodes  map[string]struct{}
	listed    int64
	available int64
	mrp       meanAcc
	selling   meanAcc
	discount  meanAcc
}

// Build recomputes products_summary from every raw observation.
// Within a group each pincode counts once (first occurrence wins); rows whose
// report date cannot be parsed are skipped rather than dated to the build day.
func (s *RollupService) Build(ctx context.Context) (*BuildReport, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrBuildInProgress
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	report := &BuildReport{BuildID: uuid.NewString(), StartedAt: time.Now()}
	logger := utils.Logger(ctx).With().Str("build_id", report.BuildID).Logger()
	logger.Info().Msg("rollup build started")

	groups := make(map[summaryKey]*summaryGroup)
	var order []summaryKey

	err := s.observationRepo.Stream(ctx, analytics.Predicate{}, s.streamBatch, func(batch []models.Observation) error {
		for i := range batch {
			obs := &batch[i]
			report.RawRows++

			date, ok := analytics.ParseReportDate(obs.ReportDate)
			if !ok {
				report.Skipped++
				continue
			}

			key := summaryKey{
				city:      obs.City,
				company:   obs.Company,
				client:    obs.ClientName,
				brand:     obs.Brand,
				name:      obs.Name,
				productID: obs.UniqueProductID,
				platform:  obs.Platform,
				category:  obs.Category,
				date:      analytics.DayKey(date),
			}
			g, exists := groups[key]
			if !exists {
				g = &summaryGroup{key: key, date: date, pincodes: make(map[string]struct{})}
				groups[key] = g
				order = append(order, key)
			}

			pincode := strings.TrimSpace(obs.Pincode)
			if _, dup := g.pincodes[pincode]; dup {
				report.Duplicate++
				continue
			}
			g.pincodes[pincode] = struct{}{}

			listed, available := analytics.ParseAvailability(obs.Availability)
			if listed {
				g.listed++
			}
			if available {
				g.available++
			}
			g.mrp.add(obs.MRP)
			g.selling.add(obs.SellingPrice)
			g.discount.add(obs.Discount)
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Msg("rollup build failed while reading observations")
		return nil, err
	}

	batch := make([]models.Summary, 0, s.upsertBatch)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.summaryRepo.Upsert(ctx, batch); err != nil {
			return err
		}
		batch = batch[:0]
		return nil
	}

	for _, key := range order {
		g := groups[key]
		batch = append(batch, g.toSummary())
		if len(batch) >= s.upsertBatch {
			if err := flush(); err != nil {
				logger.Error().Err(err).Msg("rollup build failed while writing summaries")
				return nil, fmt.Errorf("write rollup: %w", err)
			}
		}
	}
	if err := flush(); err != nil {
		logger.Error().Err(err).Msg("rollup build failed while writing summaries")
		return nil, fmt.Errorf("write rollup: %w", err)
	}

	report.Groups = len(order)
	report.SummaryRows, err = s.summaryRepo.Count(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("rollup build failed while counting summaries")
		return nil, err
	}
	report.Duration = time.Since(report.StartedAt)

	logger.Info().
		Int("raw_rows", report.RawRows).
		Int("skipped", report.Skipped).
		Int("duplicates", report.Duplicate).
		Int("groups", report.Groups).
		Int64("summary_rows", report.SummaryRows).
		Dur("took", report.Duration).
		Msg("rollup build finished")

	return report, nil
}

func (g *summaryGroup) toSummary() models.Summary {
	return models.Summary{
		City:            g.key.city,
		Company:         g.key.company,
		ClientName:      g.key.client,
		Brand:           g.key.brand,
		Name:            g.key.name,
		UniqueProductID: g.key.productID,
		Platform:        g.key.platform,
		Category:        g.key.category,
		ReportDate:      datatypes.Date(g.date),
		TotalCount:      int64(len(g.pincodes)),
		ListedCount:     g.listed,
		AvailableCount:  g.available,
		MRP:             g.mrp.value(),
		SellingPrice:    g.selling.value(),
		Discount:        g.discount.value(),
	}
}
