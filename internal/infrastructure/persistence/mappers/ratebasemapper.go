package mappers

import (
	"fmt"

	"github.com/parkline/parkline/internal/domain/rate"
	"github.com/parkline/parkline/internal/infrastructure/persistence/models"
	"github.com/parkline/parkline/internal/shared/mapper"
)

type RateBaseMapper interface {
	ToEntity(model *models.RateBaseModel) (*rate.RateBase, error)
	ToEntities(models []*models.RateBaseModel) ([]*rate.RateBase, error)
	ToModel(entity *rate.RateBase) *models.RateBaseModel
}

type RateBaseMapperImpl struct{}

func NewRateBaseMapper() RateBaseMapper {
	return &RateBaseMapperImpl{}
}

func (m *RateBaseMapperImpl) ToEntity(model *models.RateBaseModel) (*rate.RateBase, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := rate.ReconstructRateBase(
		model.ID,
		amount(model.AmountPerHour),
		model.StartDate.UTC(),
		utcPtr(model.EndDate),
		model.Active,
		model.CreatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct rate base entity: %w", err)
	}
	return entity, nil
}

func (m *RateBaseMapperImpl) ToEntities(modelList []*models.RateBaseModel) ([]*rate.RateBase, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.RateBaseModel) uint { return model.ID })
}

func (m *RateBaseMapperImpl) ToModel(entity *rate.RateBase) *models.RateBaseModel {
	return &models.RateBaseModel{
		ID:            entity.ID(),
		AmountPerHour: entity.AmountPerHour(),
		StartDate:     entity.StartDate(),
		EndDate:       entity.EndDate(),
		Active:        entity.IsActive(),
		CreatedAt:     entity.CreatedAt(),
	}
}
