package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/parkline/parkline/internal/domain/rate"
	"github.com/parkline/parkline/internal/infrastructure/persistence/mappers"
	"github.com/parkline/parkline/internal/infrastructure/persistence/models"
	"github.com/parkline/parkline/internal/shared/db"
)

type RateBaseRepository struct {
	db     *gorm.DB
	mapper mappers.RateBaseMapper
}

func NewRateBaseRepository(db *gorm.DB) *RateBaseRepository {
	return &RateBaseRepository{
		db:     db,
		mapper: mappers.NewRateBaseMapper(),
	}
}

func (r *RateBaseRepository) Create(ctx context.Context, rb *rate.RateBase) error {
	model := r.mapper.ToModel(rb)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create rate base: %w", err)
	}
	return rb.SetID(model.ID)
}

// FindCurrentActive narrows the history in SQL and leaves the tie-break
// between overlapping records to rate.SelectEffective.
func (r *RateBaseRepository) FindCurrentActive(ctx context.Context, at time.Time) (*rate.RateBase, error) {
	at = at.UTC()
	var rows []*models.RateBaseModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("active = ? AND start_date <= ?", true, at).
		Where("end_date IS NULL OR end_date > ?", at).
		Order("start_date DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query rate base history: %w", err)
	}

	entities, err := r.mapper.ToEntities(rows)
	if err != nil {
		return nil, err
	}
	return rate.SelectEffective(entities, at), nil
}
