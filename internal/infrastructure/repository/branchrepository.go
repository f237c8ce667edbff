package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/parkline/parkline/internal/domain/branch"
	"github.com/parkline/parkline/internal/infrastructure/persistence/mappers"
	"github.com/parkline/parkline/internal/infrastructure/persistence/models"
	"github.com/parkline/parkline/internal/shared/db"
)

type BranchRepository struct {
	db     *gorm.DB
	mapper mappers.BranchMapper
}

func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{
		db:     db,
		mapper: mappers.NewBranchMapper(),
	}
}

func (r *BranchRepository) GetByID(ctx context.Context, id uint) (*branch.Branch, error) {
	var model models.BranchModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, branch.ErrBranchNotFound
		}
		return nil, fmt.Errorf("failed to get branch: %w", err)
	}
	return r.mapper.ToEntity(&model)
}
