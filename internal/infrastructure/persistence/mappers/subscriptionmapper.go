package mappers

import (
	"fmt"

	"github.com/parkline/parkline/internal/domain/subscription"
	vo "github.com/parkline/parkline/internal/domain/subscription/valueobjects"
	"github.com/parkline/parkline/internal/infrastructure/persistence/models"
	"github.com/parkline/parkline/internal/shared/mapper"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel, plates []string) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) *models.SubscriptionModel
	PlatesToModels(entity *subscription.Subscription) []*models.SubscriptionPlateModel

	PlanToEntity(model *models.SubscriptionPlanModel) (*subscription.Plan, error)
	PlanToModel(entity *subscription.Plan) *models.SubscriptionPlanModel

	OverageToEntity(model *models.SubscriptionOverageModel) *subscription.Overage
	OverageToModel(entity *subscription.Overage) *models.SubscriptionOverageModel
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel, plates []string) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	status, err := vo.NewSubscriptionStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("subscription %d: %w", model.ID, err)
	}

	entity, err := subscription.ReconstructSubscription(
		model.ID,
		model.UserID,
		model.PlanID,
		plates,
		amount(model.FrozenRate),
		amount(model.ConsumedHours),
		model.CycleStart.UTC(),
		status,
		model.Version,
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription entity: %w", err)
	}
	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) *models.SubscriptionModel {
	return &models.SubscriptionModel{
		ID:            entity.ID(),
		UserID:        entity.UserID(),
		PlanID:        entity.PlanID(),
		FrozenRate:    entity.FrozenRate(),
		ConsumedHours: entity.ConsumedHours(),
		CycleStart:    entity.CycleStart(),
		Status:        entity.Status().String(),
		Version:       entity.Version(),
		CreatedAt:     entity.CreatedAt(),
		UpdatedAt:     entity.UpdatedAt(),
	}
}

func (m *SubscriptionMapperImpl) PlatesToModels(entity *subscription.Subscription) []*models.SubscriptionPlateModel {
	return mapper.MapSlice(entity.LicensePlates(), func(plate string) *models.SubscriptionPlateModel {
		return &models.SubscriptionPlateModel{
			SubscriptionID: entity.ID(),
			LicensePlate:   plate,
			CreatedAt:      entity.CreatedAt(),
		}
	})
}

func (m *SubscriptionMapperImpl) PlanToEntity(model *models.SubscriptionPlanModel) (*subscription.Plan, error) {
	if model == nil {
		return nil, nil
	}
	plan, err := subscription.ReconstructPlan(
		model.ID,
		model.Name,
		amount(model.MonthlyHours),
		model.Active,
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct plan entity: %w", err)
	}
	return plan, nil
}

func (m *SubscriptionMapperImpl) PlanToModel(entity *subscription.Plan) *models.SubscriptionPlanModel {
	return &models.SubscriptionPlanModel{
		ID:           entity.ID(),
		Name:         entity.Name(),
		MonthlyHours: entity.MonthlyHours(),
		Active:       entity.IsActive(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}

func (m *SubscriptionMapperImpl) OverageToEntity(model *models.SubscriptionOverageModel) *subscription.Overage {
	if model == nil {
		return nil
	}
	return subscription.ReconstructOverage(
		model.ID,
		model.SubscriptionID,
		model.TicketID,
		amount(model.OverageHours),
		amount(model.RateApplied),
		amount(model.ChargedAmount),
		model.CreatedAt.UTC(),
	)
}

func (m *SubscriptionMapperImpl) OverageToModel(entity *subscription.Overage) *models.SubscriptionOverageModel {
	return &models.SubscriptionOverageModel{
		ID:             entity.ID(),
		SubscriptionID: entity.SubscriptionID(),
		TicketID:       entity.TicketID(),
		OverageHours:   entity.OverageHours(),
		RateApplied:    entity.RateApplied(),
		ChargedAmount:  entity.ChargedAmount(),
		CreatedAt:      entity.CreatedAt(),
	}
}
