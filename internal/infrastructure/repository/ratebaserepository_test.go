package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkline/parkline/internal/domain/rate"
)

func TestRateBaseRepository_FindCurrentActive(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewRateBaseRepository(gdb)
	ctx := context.Background()

	none, err := repo.FindCurrentActive(ctx, t10)
	require.NoError(t, err)
	assert.Nil(t, none)

	jan := day0.AddDate(0, -2, 0)
	feb := day0.AddDate(0, -1, 0)
	seedRateBase(t, gdb, "10", jan, nil, true)
	febID := seedRateBase(t, gdb, "12", feb, nil, true)
	seedRateBase(t, gdb, "99", day0, nil, false)
	future := t10.Add(24 * time.Hour)
	seedRateBase(t, gdb, "50", future, nil, true)
	endsAt := t10
	seedRateBase(t, gdb, "30", day0, &endsAt, true)

	got, err := repo.FindCurrentActive(ctx, t10)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, febID, got.ID(), "end date is exclusive, inactive and future records are skipped")
	assert.Equal(t, "12.00", got.AmountPerHour().StringFixed(2))

	got, err = repo.FindCurrentActive(ctx, t10.Add(-time.Second))
	require.NoError(t, err)
	assert.Equal(t, "30.00", got.AmountPerHour().StringFixed(2))

	got, err = repo.FindCurrentActive(ctx, future)
	require.NoError(t, err)
	assert.Equal(t, "50.00", got.AmountPerHour().StringFixed(2))
}

func TestRateBaseRepository_SameStartPrefersLatestRecord(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewRateBaseRepository(gdb)
	ctx := context.Background()

	first, err := rate.NewRateBase(decimal.NewFromInt(10), day0, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))
	second, err := rate.NewRateBase(decimal.NewFromInt(11), day0, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, second))
	assert.Greater(t, second.ID(), first.ID())

	got, err := repo.FindCurrentActive(ctx, t10)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second.ID(), got.ID())
}

func TestBranchRepository_GetByID(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewBranchRepository(gdb)
	ctx := context.Background()

	id := seedBranch(t, gdb, "Airport", "7.5", false)
	br, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Airport", br.Name())
	assert.Equal(t, "7.50", br.RatePerHour().StringFixed(2))
	assert.False(t, br.IsActive())

	_, err = repo.GetByID(ctx, 404)
	assert.Error(t, err)
}
