package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/pinsight-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/modules/pinsight/models"
)

const defaultBatchSize = 1000

type ObservationRepo interface {
	// Stream walks rows matching the pushed-down predicate in arrival (id) order
	Stream(ctx context.Context, pred analytics.Predicate, batchSize int, fn func([]models.Observation) error) error
}

type observationRepo struct {
	db *gorm.DB
}

func NewObservationRepo(db *gorm.DB) ObservationRepo {
	return &observationRepo{db: db}
}

func (r *observationRepo) Stream(ctx context.Context, pred analytics.Predicate, batchSize int, fn func([]models.Observation) error) error {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	query := applyPredicate(r.db.WithContext(ctx).Model(&models.Observation{}), pred)

	var batch []models.Observation
	result := query.FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(batch)
	})
	if result.Error != nil {
		return fmt.Errorf("stream observations: %w", result.Error)
	}
	return nil
}
