package rate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func mustRate(t *testing.T, id uint, amount int64, start time.Time, end *time.Time, active bool) *RateBase {
	t.Helper()
	r, err := ReconstructRateBase(id, decimal.NewFromInt(amount), start, end, active, start)
	require.NoError(t, err)
	return r
}

func TestNewRateBase_Validation(t *testing.T) {
	end := day(1)

	_, err := NewRateBase(decimal.Zero, day(1), nil)
	assert.Error(t, err)

	_, err = NewRateBase(decimal.NewFromInt(20), time.Time{}, nil)
	assert.Error(t, err)

	_, err = NewRateBase(decimal.NewFromInt(20), day(1), &end)
	assert.Error(t, err)

	r, err := NewRateBase(decimal.NewFromInt(20), day(1), nil)
	require.NoError(t, err)
	assert.True(t, r.IsActive())
}

func TestRateBase_IsEffectiveAt(t *testing.T) {
	end := day(10)
	r := mustRate(t, 1, 20, day(5), &end, true)

	assert.False(t, r.IsEffectiveAt(day(4)))
	assert.True(t, r.IsEffectiveAt(day(5)))
	assert.True(t, r.IsEffectiveAt(day(9)))
	assert.False(t, r.IsEffectiveAt(day(10)), "end date is exclusive")

	inactive := mustRate(t, 2, 20, day(1), nil, false)
	assert.False(t, inactive.IsEffectiveAt(day(5)))
}

func TestSelectEffective(t *testing.T) {
	end := day(8)
	rates := []*RateBase{
		mustRate(t, 1, 10, day(1), nil, true),
		mustRate(t, 2, 12, day(3), nil, true),
		mustRate(t, 3, 14, day(3), nil, true),
		mustRate(t, 4, 30, day(6), &end, true),
		mustRate(t, 5, 99, day(7), nil, false),
	}

	tests := []struct {
		name   string
		at     time.Time
		wantID uint
	}{
		{"only first", day(2), 1},
		{"same start date, highest id wins", day(4), 3},
		{"latest start wins", day(7), 4},
		{"expired record ignored", day(9), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectEffective(rates, tt.at)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID())
		})
	}

	assert.Nil(t, SelectEffective(rates, time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, SelectEffective(nil, day(1)))
}
