package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/parkline/parkline/internal/domain/subscription"
	vo "github.com/parkline/parkline/internal/domain/subscription/valueobjects"
	"github.com/parkline/parkline/internal/infrastructure/persistence/models"
	"github.com/parkline/parkline/internal/shared/logger"
)

func createPlan(t *testing.T, gdb *gorm.DB, name, hours string) *subscription.Plan {
	t.Helper()
	plan, err := subscription.NewPlan(name, decimal.RequireFromString(hours))
	require.NoError(t, err)
	require.NoError(t, NewPlanRepository(gdb).Create(context.Background(), plan))
	return plan
}

func createSubscription(t *testing.T, repo *SubscriptionRepositoryImpl, planID uint, rate string, cycle time.Time, plates ...string) *subscription.Subscription {
	t.Helper()
	sub, err := subscription.NewSubscription(1, planID, plates, decimal.RequireFromString(rate), cycle)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), sub))
	return sub
}

func TestSubscriptionRepository_CreateAndLookup(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSubscriptionRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	plan := createPlan(t, gdb, "Fleet 40", "40")
	sub := createSubscription(t, repo, plan.ID(), "12", day0, "abc 123", "XYZ789", "ABC123")
	require.NotZero(t, sub.ID())

	got, err := repo.GetByID(ctx, sub.ID())
	require.NoError(t, err)
	assert.Equal(t, []string{"ABC123", "XYZ789"}, got.LicensePlates())
	assert.Equal(t, "12.00", got.FrozenRate().StringFixed(2))
	assert.True(t, got.ConsumedHours().IsZero())
	assert.Equal(t, vo.StatusActive, got.Status())
	assert.Equal(t, 1, got.Version())

	byPlate, err := repo.FindActiveByPlate(ctx, "XYZ789")
	require.NoError(t, err)
	require.NotNil(t, byPlate)
	assert.Equal(t, sub.ID(), byPlate.ID())

	none, err := repo.FindActiveByPlate(ctx, "NOPE000")
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = repo.GetByID(ctx, 404)
	assert.ErrorIs(t, err, subscription.ErrSubscriptionNotFound)

	gotPlan, err := NewPlanRepository(gdb).GetByID(ctx, plan.ID())
	require.NoError(t, err)
	assert.Equal(t, "40.00", gotPlan.MonthlyHours().StringFixed(2))

	_, err = NewPlanRepository(gdb).GetByID(ctx, 404)
	assert.ErrorIs(t, err, subscription.ErrPlanNotFound)
}

func TestSubscriptionRepository_FindActiveByPlateSkipsInactive(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSubscriptionRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	plan := createPlan(t, gdb, "Basic", "10")
	sub := createSubscription(t, repo, plan.ID(), "10", day0, "ABC123")
	require.NoError(t, gdb.Model(&models.SubscriptionModel{}).
		Where("id = ?", sub.ID()).
		Update("status", vo.StatusSuspended.String()).Error)

	got, err := repo.FindActiveByPlate(ctx, "ABC123")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSubscriptionRepository_AddConsumedHours(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSubscriptionRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	plan := createPlan(t, gdb, "Basic", "10")
	sub := createSubscription(t, repo, plan.ID(), "0", day0, "ABC123")

	require.NoError(t, repo.AddConsumedHours(ctx, sub.ID(), decimal.RequireFromString("2.5"), 1))

	got, err := repo.GetByID(ctx, sub.ID())
	require.NoError(t, err)
	assert.Equal(t, "2.50", got.ConsumedHours().StringFixed(2))
	assert.Equal(t, 2, got.Version())

	// the stale version no longer matches
	err = repo.AddConsumedHours(ctx, sub.ID(), decimal.NewFromInt(1), 1)
	assert.ErrorIs(t, err, subscription.ErrConcurrentUpdate)

	require.NoError(t, repo.AddConsumedHours(ctx, sub.ID(), decimal.RequireFromString("0.75"), 2))
	got, err = repo.GetByID(ctx, sub.ID())
	require.NoError(t, err)
	assert.Equal(t, "3.25", got.ConsumedHours().StringFixed(2))
	assert.Equal(t, 3, got.Version())
}

func TestSubscriptionRepository_ResetCycles(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSubscriptionRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	plan := createPlan(t, gdb, "Basic", "10")
	march := createSubscription(t, repo, plan.ID(), "0", day0, "AAA111")
	february := createSubscription(t, repo, plan.ID(), "0", day0.AddDate(0, -1, 0), "BBB222")
	april := day0.AddDate(0, 1, 0)
	current := createSubscription(t, repo, plan.ID(), "0", april, "CCC333")

	for _, s := range []*subscription.Subscription{march, february, current} {
		require.NoError(t, repo.AddConsumedHours(ctx, s.ID(), decimal.NewFromInt(4), 1))
	}

	n, err := repo.ResetCycles(ctx, april)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	for _, s := range []*subscription.Subscription{march, february} {
		got, err := repo.GetByID(ctx, s.ID())
		require.NoError(t, err)
		assert.True(t, got.ConsumedHours().IsZero())
		assert.True(t, got.CycleStart().Equal(april))
		assert.Equal(t, 3, got.Version())
	}

	untouched, err := repo.GetByID(ctx, current.ID())
	require.NoError(t, err)
	assert.Equal(t, "4.00", untouched.ConsumedHours().StringFixed(2))

	// running again in the same month is a no-op
	n, err = repo.ResetCycles(ctx, april)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOverageRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewOverageRepository(gdb)
	ctx := context.Background()

	none, err := repo.GetByTicketID(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, none)

	o, err := subscription.NewOverage(2, 5, decimal.NewFromInt(2), decimal.NewFromInt(18), decimal.NewFromInt(36), t10)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, o))

	got, err := repo.GetByTicketID(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint(2), got.SubscriptionID())
	assert.Equal(t, "2.00", got.OverageHours().StringFixed(2))
	assert.Equal(t, "36.00", got.ChargedAmount().StringFixed(2))
}
