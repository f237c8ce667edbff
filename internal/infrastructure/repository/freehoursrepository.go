package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/parkline/parkline/internal/domain/ticket"
	"github.com/parkline/parkline/internal/infrastructure/persistence/mappers"
	"github.com/parkline/parkline/internal/infrastructure/persistence/models"
	"github.com/parkline/parkline/internal/shared/db"
)

type FreeHoursRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewFreeHoursRepository(db *gorm.DB) *FreeHoursRepository {
	return &FreeHoursRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *FreeHoursRepository) Create(ctx context.Context, g *ticket.FreeHoursGrant) error {
	model := r.mapper.GrantToModel(g)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create free hours grant: %w", err)
	}

	g.SetID(model.ID)
	return nil
}

func (r *FreeHoursRepository) SumGrantedHoursByTicketID(ctx context.Context, ticketID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Model(&models.FreeHoursGrantModel{}).
		Select("COALESCE(SUM(granted_hours), 0)").
		Where("ticket_id = ?", ticketID).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum free hours: %w", err)
	}
	return total.Round(2), nil
}
