package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm/logger"

	"github.com/MuhamadAgungGumelar/pinsight-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/modules/pinsight/models"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/modules/pinsight/repositories"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/shared/database"
)

var (
	admin = analytics.AccessScope{IsAdmin: true}
	acme  = analytics.AccessScope{ClientName: "acme"}
)

type fixture struct {
	db        *database.DB
	obsRepo   repositories.ObservationRepo
	sumRepo   repositories.SummaryRepo
	dashboard *DashboardService
	rollup    *RollupService
}

func newFixture(t *testing.T, opts DashboardOptions) *fixture {
	t.Helper()
	db, err := database.Open("sqlite", ":memory:", logger.Silent)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.AutoMigrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC) }
	}

	obsRepo := repositories.NewObservationRepo(db.GORM)
	sumRepo := repositories.NewSummaryRepo(db.GORM)
	return &fixture{
		db:        db,
		obsRepo:   obsRepo,
		sumRepo:   sumRepo,
		dashboard: NewDashboardService(obsRepo, sumRepo, opts),
		rollup:    NewRollupService(obsRepo, sumRepo, 2, 2),
	}
}

func obs(client, product, city, pincode, status, reportDate, mrp string) models.Observation {
	return models.Observation{
		UniqueProductID: product,
		Name:            product,
		Brand:           "A",
		ClientName:      client,
		City:            city,
		Pincode:         pincode,
		Platform:        "Blinkit",
		Availability:    status,
		ReportDate:      reportDate,
		MRP:             mrp,
	}
}

func (f *fixture) seed(t *testing.T, rows ...models.Observation) {
	t.Helper()
	if err := f.db.GORM.Create(&rows).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func (f *fixture) seedDefault(t *testing.T) {
	f.seed(t,
		obs("acme", "p1", "Mumbai", "400001", "Yes", "01-01-2024", "₹100"),
		obs("acme", "p1", "Mumbai", "400002", "No", "01-01-2024", "120"),
		obs("acme", "p1", "Mumbai", "400001", "No", "01-01-2024", "999"), // repeated pincode
		obs("acme", "p1", "Mumbai", "400001", "Yes", "02-01-2024", ""),
		obs("acme", "p1", "Mumbai", "400002", "Yes", "02-01-2024", "n/a"),
		obs("acme", "p1", "Mumbai", "400003", "Yes", "garbage", "50"), // undated
		obs("globex", "p9", "Delhi", "110001", "Yes", "03-01-2024", "10"),
	)
}

func TestFilteredNewestFirst(t *testing.T) {
	f := newFixture(t, DashboardOptions{})
	f.seed(t,
		obs("acme", "p1", "Mumbai", "1", "Yes", "01-01-2024", ""),
		obs("acme", "p2", "Mumbai", "2", "Yes", "03-01-2024", ""),
		obs("acme", "p3", "Mumbai", "3", "Yes", "02-01-2024", ""),
		obs("acme", "p4", "Mumbai", "4", "Yes", "03-01-2024", ""),
	)

	res, err := f.dashboard.Filtered(context.Background(), acme, analytics.FilterRequest{})
	if err != nil {
		t.Fatalf("Filtered: %v", err)
	}
	got := make([]string, 0, len(res.RawData))
	for _, r := range res.RawData {
		got = append(got, r.UniqueProductID)
	}
	want := []string{"p2", "p4", "p3", "p1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: got %v, want %v", got, want)
		}
	}

	full, err := f.dashboard.Full(context.Background(), acme)
	if err != nil {
		t.Fatalf("Full: %v", err)
	}
	if full.RawData[0].UniqueProductID != "p1" {
		t.Errorf("full keeps arrival order: got %s first, want p1", full.RawData[0].UniqueProductID)
	}
}

func TestFilteredScopesAndAggregates(t *testing.T) {
	f := newFixture(t, DashboardOptions{BatchSize: 2})
	f.seedDefault(t)

	res, err := f.dashboard.Filtered(context.Background(), acme, analytics.FilterRequest{})
	if err != nil {
		t.Fatalf("Filtered: %v", err)
	}
	if len(res.RawData) != 6 {
		t.Errorf("raw rows: got %d, want 6", len(res.RawData))
	}
	for _, r := range res.RawData {
		if r.ClientName != "acme" {
			t.Errorf("row from %s leaked into acme scope", r.ClientName)
		}
	}
	// 6 rows, all listed, 4 available
	want := analytics.KPIs{SKUsTracked: 6, Penetration: 100, Availability: 67, Coverage: 67}
	if res.KPIs != want {
		t.Errorf("KPIs: got %+v, want %+v", res.KPIs, want)
	}
}

func TestFilteredDateRangeExcludesUndatedRows(t *testing.T) {
	f := newFixture(t, DashboardOptions{})
	f.seedDefault(t)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	res, err := f.dashboard.Filtered(context.Background(), acme, analytics.FilterRequest{From: &from, To: &to})
	if err != nil {
		t.Fatalf("Filtered: %v", err)
	}
	if len(res.RawData) != 5 {
		t.Errorf("raw rows: got %d, want 5 (undated row excluded)", len(res.RawData))
	}

	res, err = f.dashboard.Filtered(context.Background(), acme, analytics.FilterRequest{Pincode: "400002"})
	if err != nil {
		t.Fatalf("Filtered pincode: %v", err)
	}
	if len(res.RawData) != 2 {
		t.Errorf("pincode rows: got %d, want 2", len(res.RawData))
	}
}

func TestProjectionLimit(t *testing.T) {
	f := newFixture(t, DashboardOptions{MaxProjectionRows: 3})
	f.seedDefault(t)

	_, err := f.dashboard.Filtered(context.Background(), acme, analytics.FilterRequest{})
	if !errors.Is(err, analytics.ErrResourceExhausted) {
		t.Errorf("got %v, want ErrResourceExhausted", err)
	}

	res, err := f.dashboard.Filtered(context.Background(), analytics.AccessScope{ClientName: "globex"}, analytics.FilterRequest{})
	if err != nil {
		t.Fatalf("under the limit: %v", err)
	}
	if len(res.RawData) != 1 {
		t.Errorf("raw rows: got %d, want 1", len(res.RawData))
	}
}

func TestClientlessScopeDenied(t *testing.T) {
	f := newFixture(t, DashboardOptions{})
	f.seedDefault(t)

	_, err := f.dashboard.Full(context.Background(), analytics.AccessScope{})
	if !errors.Is(err, analytics.ErrAccessDenied) {
		t.Errorf("Full: got %v, want ErrAccessDenied", err)
	}
	_, err = f.dashboard.Rollup(context.Background(), analytics.AccessScope{Category: "snacks"}, analytics.FilterRequest{})
	if !errors.Is(err, analytics.ErrAccessDenied) {
		t.Errorf("Rollup: got %v, want ErrAccessDenied", err)
	}
}

func TestRollupBuildDedupAndSkip(t *testing.T) {
	f := newFixture(t, DashboardOptions{})
	f.seedDefault(t)
	ctx := context.Background()

	report, err := f.rollup.Build(ctx)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if report.RawRows != 7 || report.Skipped != 1 || report.Duplicate != 1 || report.Groups != 3 {
		t.Errorf("report: got %+v", report)
	}
	if report.BuildID == "" {
		t.Error("missing build id")
	}
	if report.SummaryRows != 3 {
		t.Errorf("summary rows: got %d, want 3", report.SummaryRows)
	}

	var rows []models.Summary
	if err := f.db.GORM.Order("report_date, client_name").Find(&rows).Error; err != nil {
		t.Fatalf("read summaries: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("summaries: got %d, want 3", len(rows))
	}

	first := rows[0]
	if first.TotalCount != 2 || first.ListedCount != 2 || first.AvailableCount != 1 {
		t.Errorf("2024-01-01 counts: got %d/%d/%d, want 2/2/1", first.TotalCount, first.ListedCount, first.AvailableCount)
	}
	if first.MRP == nil || *first.MRP != 110 {
		t.Errorf("2024-01-01 mean mrp: got %v, want 110", first.MRP)
	}
	if rows[1].MRP != nil {
		t.Errorf("2024-01-02 mean mrp: got %v, want NULL", *rows[1].MRP)
	}

	// Rebuilding is idempotent
	if _, err := f.rollup.Build(ctx); err != nil {
		t.Fatalf("second Build: %v", err)
	}
	total, err := f.sumRepo.Count(ctx)
	if err != nil || total != 3 {
		t.Errorf("Count after rebuild: got %d (%v), want 3", total, err)
	}
}

func TestRollupDashboardUsesLatestSnapshot(t *testing.T) {
	f := newFixture(t, DashboardOptions{})
	f.seedDefault(t)
	ctx := context.Background()

	if _, err := f.rollup.Build(ctx); err != nil {
		t.Fatalf("Build: %v", err)
	}

	res, err := f.dashboard.Rollup(ctx, acme, analytics.FilterRequest{})
	if err != nil {
		t.Fatalf("Rollup: %v", err)
	}
	want := analytics.KPIs{SKUsTracked: 1, Penetration: 100, Availability: 100, Coverage: 100}
	if res.KPIs != want {
		t.Errorf("latest KPIs: got %+v, want %+v", res.KPIs, want)
	}
	if len(res.TimeSeriesData) != 1 || res.TimeSeriesData[0].Date != "2024-01-02" {
		t.Errorf("time series: got %+v, want a single 2024-01-02 point", res.TimeSeriesData)
	}
	if len(res.RawData) != 2 {
		t.Errorf("raw rows of the snapshot: got %d, want 2", len(res.RawData))
	}
	if len(res.RegionalData) != 1 || res.RegionalData[0].Pincode != "" {
		t.Errorf("regional: got %+v, want one city-level point", res.RegionalData)
	}
}

func TestRollupDashboardExplicitRange(t *testing.T) {
	f := newFixture(t, DashboardOptions{})
	f.seedDefault(t)
	ctx := context.Background()

	if _, err := f.rollup.Build(ctx); err != nil {
		t.Fatalf("Build: %v", err)
	}

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	res, err := f.dashboard.Rollup(ctx, acme, analytics.FilterRequest{From: &from})
	if err != nil {
		t.Fatalf("Rollup: %v", err)
	}
	// 4 pincode slots, 4 listed, 3 available
	want := analytics.KPIs{SKUsTracked: 1, Penetration: 100, Availability: 75, Coverage: 75}
	if res.KPIs != want {
		t.Errorf("range KPIs: got %+v, want %+v", res.KPIs, want)
	}
	if len(res.TimeSeriesData) != 2 {
		t.Errorf("time series points: got %d, want 2", len(res.TimeSeriesData))
	}
}

func TestRollupDashboardEmptySummary(t *testing.T) {
	f := newFixture(t, DashboardOptions{})
	f.seedDefault(t)

	res, err := f.dashboard.Rollup(context.Background(), admin, analytics.FilterRequest{})
	if err != nil {
		t.Fatalf("Rollup: %v", err)
	}
	if len(res.RawData) != 0 || res.KPIs != (analytics.KPIs{}) || res.BrandCoverage == nil {
		t.Errorf("got %+v, want the empty result", res)
	}
}

func TestMeanPriceRoundedToPaise(t *testing.T) {
	var m meanAcc
	for _, raw := range []string{"100", "100", "₹101", "n/a"} {
		m.add(raw)
	}
	got := m.value()
	if got == nil || *got != 100.33 {
		t.Errorf("mean: got %v, want 100.33", got)
	}

	var empty meanAcc
	empty.add("")
	if empty.value() != nil {
		t.Errorf("mean of unparseable values: got %v, want nil", *empty.value())
	}
}

func TestRollupDashboardRejectsPincode(t *testing.T) {
	f := newFixture(t, DashboardOptions{})
	f.seedDefault(t)
	ctx := context.Background()

	if _, err := f.rollup.Build(ctx); err != nil {
		t.Fatalf("Build: %v", err)
	}

	_, err := f.dashboard.Rollup(ctx, acme, analytics.FilterRequest{Pincode: "400001"})
	if !errors.Is(err, analytics.ErrInvalidFilter) {
		t.Errorf("got %v, want ErrInvalidFilter", err)
	}
}
