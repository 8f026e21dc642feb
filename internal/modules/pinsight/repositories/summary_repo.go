package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MuhamadAgungGumelar/pinsight-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/modules/pinsight/models"
)

// summaryKeyColumns is the unique grouping key of products_summary
var summaryKeyColumns = []clause.Column{
	{Name: "city"},
	{Name: "company"},
	{Name: "client_name"},
	{Name: "brand"},
	{Name: "name"},
	{Name: "unique_product_id"},
	{Name: "platform"},
	{Name: "category"},
	{Name: "report_date"},
}

type SummaryRepo interface {
	// Stream walks rollup rows matching the predicate, including its date range
	Stream(ctx context.Context, pred analytics.Predicate, batchSize int, fn func([]models.Summary) error) error
	// LatestReportDate returns the newest report date under the predicate's non-date constraints
	LatestReportDate(ctx context.Context, pred analytics.Predicate) (time.Time, bool, error)
	// Upsert inserts rows or refreshes the counts of existing grouping keys
	Upsert(ctx context.Context, rows []models.Summary) error
	Count(ctx context.Context) (int64, error)
}

type summaryRepo struct {
	db *gorm.DB
}

func NewSummaryRepo(db *gorm.DB) SummaryRepo {
	return &summaryRepo{db: db}
}

func (r *summaryRepo) Stream(ctx context.Context, pred analytics.Predicate, batchSize int, fn func([]models.Summary) error) error {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	query := applyPredicate(r.db.WithContext(ctx).Model(&models.Summary{}), pred)
	query = applyReportDateRange(query, pred.Dates())

	var batch []models.Summary
	result := query.FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(batch)
	})
	if result.Error != nil {
		return fmt.Errorf("stream summaries: %w", result.Error)
	}
	return nil
}

func (r *summaryRepo) LatestReportDate(ctx context.Context, pred analytics.Predicate) (time.Time, bool, error) {
	var latest []models.Summary
	err := applyPredicate(r.db.WithContext(ctx).Model(&models.Summary{}), pred).
		Select("report_date").
		Order("report_date DESC").
		Limit(1).
		Find(&latest).Error
	if err != nil {
		return time.Time{}, false, fmt.Errorf("latest report date: %w", err)
	}
	if len(latest) == 0 {
		return time.Time{}, false, nil
	}
	return analytics.Day(time.Time(latest[0].ReportDate)), true, nil
}

func (r *summaryRepo) Upsert(ctx context.Context, rows []models.Summary) error {
	if len(rows) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: summaryKeyColumns,
			DoUpdates: clause.AssignmentColumns([]string{
				"total_count", "listed_count", "available_count",
				"mrp", "selling_price", "discount", "updated_at",
			}),
		}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("upsert summaries: %w", err)
	}
	return nil
}

func (r *summaryRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Summary{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count summaries: %w", err)
	}
	return total, nil
}
