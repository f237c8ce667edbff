package mappers

import (
	"fmt"

	"github.com/parkline/parkline/internal/domain/branch"
	"github.com/parkline/parkline/internal/infrastructure/persistence/models"
)

type BranchMapper interface {
	ToEntity(model *models.BranchModel) (*branch.Branch, error)
}

type BranchMapperImpl struct{}

func NewBranchMapper() BranchMapper {
	return &BranchMapperImpl{}
}

func (m *BranchMapperImpl) ToEntity(model *models.BranchModel) (*branch.Branch, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := branch.ReconstructBranch(
		model.ID,
		model.Name,
		amount(model.RatePerHour),
		model.Active,
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct branch entity: %w", err)
	}
	return entity, nil
}
