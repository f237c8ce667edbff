package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/parkline/parkline/internal/domain/ticket"
	"github.com/parkline/parkline/internal/infrastructure/persistence/mappers"
	"github.com/parkline/parkline/internal/infrastructure/persistence/models"
	"github.com/parkline/parkline/internal/shared/db"
)

type ChargeRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewChargeRepository(db *gorm.DB) *ChargeRepository {
	return &ChargeRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *ChargeRepository) Create(ctx context.Context, c *ticket.Charge) error {
	model := r.mapper.ChargeToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ticket charge: %w", err)
	}

	c.SetID(model.ID)
	return nil
}

func (r *ChargeRepository) GetByTicketID(ctx context.Context, ticketID uint) (*ticket.Charge, error) {
	var model models.TicketChargeModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("ticket_id = ?", ticketID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticket.ErrChargeNotFound
		}
		return nil, fmt.Errorf("failed to get ticket charge: %w", err)
	}
	return r.mapper.ChargeToDomain(&model)
}
