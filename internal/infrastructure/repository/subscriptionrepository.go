package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/parkline/parkline/internal/domain/subscription"
	vo "github.com/parkline/parkline/internal/domain/subscription/valueobjects"
	"github.com/parkline/parkline/internal/infrastructure/persistence/mappers"
	"github.com/parkline/parkline/internal/infrastructure/persistence/models"
	"github.com/parkline/parkline/internal/shared/constants"
	"github.com/parkline/parkline/internal/shared/db"
	"github.com/parkline/parkline/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(
	db *gorm.DB,
	logger logger.Interface,
) *SubscriptionRepositoryImpl {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

// Create stores the subscription and its plates atomically.
func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, sub *subscription.Subscription) error {
	return db.NewTransactionManager(r.db).RunInTransaction(ctx, func(txCtx context.Context) error {
		tx := db.GetTxFromContext(txCtx, r.db)

		model := r.mapper.ToModel(sub)
		if err := tx.Create(model).Error; err != nil {
			r.logger.Errorw("failed to create subscription in database", "error", err)
			return fmt.Errorf("failed to create subscription: %w", err)
		}
		if err := sub.SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set subscription ID: %w", err)
		}

		plates := r.mapper.PlatesToModels(sub)
		if len(plates) > 0 {
			if err := tx.Create(&plates).Error; err != nil {
				return fmt.Errorf("failed to create subscription plates: %w", err)
			}
		}

		r.logger.Infow("subscription created", "subscription_id", model.ID, "plan_id", model.PlanID, "plates", len(plates))
		return nil
	})
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	return r.get(ctx, db.GetTxFromContext(ctx, r.db), id)
}

func (r *SubscriptionRepositoryImpl) GetByIDForUpdate(ctx context.Context, id uint) (*subscription.Subscription, error) {
	return r.get(ctx, db.GetTxFromContext(ctx, r.db).Scopes(db.ForUpdate()), id)
}

func (r *SubscriptionRepositoryImpl) get(ctx context.Context, tx *gorm.DB, id uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrSubscriptionNotFound
		}
		r.logger.Errorw("failed to get subscription by ID", "subscription_id", id, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return r.toEntity(ctx, &model)
}

func (r *SubscriptionRepositoryImpl) toEntity(ctx context.Context, model *models.SubscriptionModel) (*subscription.Subscription, error) {
	var plates []string
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.SubscriptionPlateModel{}).
		Where("subscription_id = ?", model.ID).
		Order("id").
		Pluck("license_plate", &plates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription plates: %w", err)
	}
	return r.mapper.ToEntity(model, plates)
}

func (r *SubscriptionRepositoryImpl) FindActiveByPlate(ctx context.Context, plate string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Joins(fmt.Sprintf("JOIN %s sp ON sp.subscription_id = %s.id", constants.TableSubscriptionPlates, constants.TableSubscriptions)).
		Where("sp.license_plate = ?", plate).
		Where(fmt.Sprintf("%s.status = ?", constants.TableSubscriptions), vo.StatusActive.String()).
		Order(fmt.Sprintf("%s.id DESC", constants.TableSubscriptions)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find subscription by plate: %w", err)
	}
	return r.toEntity(ctx, &model)
}

// AddConsumedHours is a compare-and-swap on the version column. The increment
// happens in SQL so the stored value never depends on a stale read.
func (r *SubscriptionRepositoryImpl) AddConsumedHours(ctx context.Context, id uint, delta decimal.Decimal, expectedVersion int) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.SubscriptionModel{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]any{
			"consumed_hours": gorm.Expr("consumed_hours + ?", delta),
			"version":        gorm.Expr("version + 1"),
			"updated_at":     time.Now().UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to add consumed hours", "subscription_id", id, "error", result.Error)
		return fmt.Errorf("failed to add consumed hours: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.Warnw("subscription version changed, consumption not applied",
			"subscription_id", id,
			"expected_version", expectedVersion,
		)
		return subscription.ErrConcurrentUpdate
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) ResetCycles(ctx context.Context, cycleStart time.Time) (int64, error) {
	cycleStart = cycleStart.UTC()
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.SubscriptionModel{}).
		Where("cycle_start < ?", cycleStart).
		Updates(map[string]any{
			"consumed_hours": decimal.Zero,
			"cycle_start":    cycleStart,
			"version":        gorm.Expr("version + 1"),
			"updated_at":     time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to reset subscription cycles: %w", result.Error)
	}
	return result.RowsAffected, nil
}

type PlanRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
}

func NewPlanRepository(db *gorm.DB) *PlanRepositoryImpl {
	return &PlanRepositoryImpl{db: db, mapper: mappers.NewSubscriptionMapper()}
}

func (r *PlanRepositoryImpl) Create(ctx context.Context, plan *subscription.Plan) error {
	model := r.mapper.PlanToModel(plan)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create subscription plan: %w", err)
	}
	return plan.SetID(model.ID)
}

func (r *PlanRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Plan, error) {
	var model models.SubscriptionPlanModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get subscription plan: %w", err)
	}
	return r.mapper.PlanToEntity(&model)
}

type OverageRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
}

func NewOverageRepository(db *gorm.DB) *OverageRepositoryImpl {
	return &OverageRepositoryImpl{db: db, mapper: mappers.NewSubscriptionMapper()}
}

func (r *OverageRepositoryImpl) Create(ctx context.Context, o *subscription.Overage) error {
	model := r.mapper.OverageToModel(o)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create subscription overage: %w", err)
	}
	o.SetID(model.ID)
	return nil
}

// GetByTicketID returns nil, nil when the ticket had no overage.
func (r *OverageRepositoryImpl) GetByTicketID(ctx context.Context, ticketID uint) (*subscription.Overage, error) {
	var model models.SubscriptionOverageModel
	err := db.GetTxFromContext(ctx, r.db).Where("ticket_id = ?", ticketID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subscription overage: %w", err)
	}
	return r.mapper.OverageToEntity(&model), nil
}
