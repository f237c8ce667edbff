package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parkline/parkline/internal/domain/branch"
	"github.com/parkline/parkline/internal/domain/rate"
	"github.com/parkline/parkline/internal/domain/subscription"
	"github.com/parkline/parkline/internal/domain/ticket"
)

type mockTxRunner struct {
	calls int
}

func (m *mockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockTicketRepository struct {
	CreateFunc           func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc          func(ctx context.Context, id uint) (*ticket.Ticket, error)
	GetByIDForUpdateFunc func(ctx context.Context, id uint) (*ticket.Ticket, error)
	CompleteFunc         func(ctx context.Context, t *ticket.Ticket) error
	FindOpenByPlateFunc  func(ctx context.Context, plate string) (*ticket.Ticket, error)
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ticket.ErrTicketNotFound
}

func (m *mockTicketRepository) GetByIDForUpdate(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *mockTicketRepository) Complete(ctx context.Context, t *ticket.Ticket) error {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) FindOpenByPlate(ctx context.Context, plate string) (*ticket.Ticket, error) {
	if m.FindOpenByPlateFunc != nil {
		return m.FindOpenByPlateFunc(ctx, plate)
	}
	return nil, nil
}

type mockChargeRepository struct {
	CreateFunc        func(ctx context.Context, c *ticket.Charge) error
	GetByTicketIDFunc func(ctx context.Context, ticketID uint) (*ticket.Charge, error)
	created           []*ticket.Charge
}

func (m *mockChargeRepository) Create(ctx context.Context, c *ticket.Charge) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, c); err != nil {
			return err
		}
	}
	m.created = append(m.created, c)
	return nil
}

func (m *mockChargeRepository) GetByTicketID(ctx context.Context, ticketID uint) (*ticket.Charge, error) {
	if m.GetByTicketIDFunc != nil {
		return m.GetByTicketIDFunc(ctx, ticketID)
	}
	return nil, ticket.ErrChargeNotFound
}

type mockFreeHoursRepository struct {
	CreateFunc func(ctx context.Context, g *ticket.FreeHoursGrant) error
	SumFunc    func(ctx context.Context, ticketID uint) (decimal.Decimal, error)
}

func (m *mockFreeHoursRepository) Create(ctx context.Context, g *ticket.FreeHoursGrant) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, g)
	}
	return nil
}

func (m *mockFreeHoursRepository) SumGrantedHoursByTicketID(ctx context.Context, ticketID uint) (decimal.Decimal, error) {
	if m.SumFunc != nil {
		return m.SumFunc(ctx, ticketID)
	}
	return decimal.Zero, nil
}

type mockSubscriptionRepository struct {
	CreateFunc            func(ctx context.Context, s *subscription.Subscription) error
	GetByIDFunc           func(ctx context.Context, id uint) (*subscription.Subscription, error)
	FindActiveByPlateFunc func(ctx context.Context, plate string) (*subscription.Subscription, error)
	AddConsumedHoursFunc  func(ctx context.Context, id uint, delta decimal.Decimal, expectedVersion int) error
	ResetCyclesFunc       func(ctx context.Context, cycleStart time.Time) (int64, error)
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	return nil
}

func (m *mockSubscriptionRepository) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, subscription.ErrSubscriptionNotFound
}

func (m *mockSubscriptionRepository) GetByIDForUpdate(ctx context.Context, id uint) (*subscription.Subscription, error) {
	return m.GetByID(ctx, id)
}

func (m *mockSubscriptionRepository) FindActiveByPlate(ctx context.Context, plate string) (*subscription.Subscription, error) {
	if m.FindActiveByPlateFunc != nil {
		return m.FindActiveByPlateFunc(ctx, plate)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) AddConsumedHours(ctx context.Context, id uint, delta decimal.Decimal, expectedVersion int) error {
	if m.AddConsumedHoursFunc != nil {
		return m.AddConsumedHoursFunc(ctx, id, delta, expectedVersion)
	}
	return nil
}

func (m *mockSubscriptionRepository) ResetCycles(ctx context.Context, cycleStart time.Time) (int64, error) {
	if m.ResetCyclesFunc != nil {
		return m.ResetCyclesFunc(ctx, cycleStart)
	}
	return 0, nil
}

type mockPlanRepository struct {
	GetByIDFunc func(ctx context.Context, id uint) (*subscription.Plan, error)
}

func (m *mockPlanRepository) Create(ctx context.Context, p *subscription.Plan) error {
	return nil
}

func (m *mockPlanRepository) GetByID(ctx context.Context, id uint) (*subscription.Plan, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, subscription.ErrPlanNotFound
}

type mockOverageRepository struct {
	created []*subscription.Overage
}

func (m *mockOverageRepository) Create(ctx context.Context, o *subscription.Overage) error {
	m.created = append(m.created, o)
	return nil
}

func (m *mockOverageRepository) GetByTicketID(ctx context.Context, ticketID uint) (*subscription.Overage, error) {
	for _, o := range m.created {
		if o.TicketID() == ticketID {
			return o, nil
		}
	}
	return nil, nil
}

type mockRateBaseRepository struct {
	FindCurrentActiveFunc func(ctx context.Context, at time.Time) (*rate.RateBase, error)
}

func (m *mockRateBaseRepository) Create(ctx context.Context, r *rate.RateBase) error {
	return nil
}

func (m *mockRateBaseRepository) FindCurrentActive(ctx context.Context, at time.Time) (*rate.RateBase, error) {
	if m.FindCurrentActiveFunc != nil {
		return m.FindCurrentActiveFunc(ctx, at)
	}
	return nil, nil
}

type mockBranchRepository struct {
	GetByIDFunc func(ctx context.Context, id uint) (*branch.Branch, error)
}

func (m *mockBranchRepository) GetByID(ctx context.Context, id uint) (*branch.Branch, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, branch.ErrBranchNotFound
}

type mockExitGuard struct {
	err      error
	released int
}

func (m *mockExitGuard) Acquire(ctx context.Context, ticketID uint) (func(), error) {
	if m.err != nil {
		return nil, m.err
	}
	return func() { m.released++ }, nil
}

type mockMetrics struct {
	mu      sync.Mutex
	exits   map[string]int
	entries map[string]int
	billed  decimal.Decimal
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{exits: map[string]int{}, entries: map[string]int{}}
}

func (m *mockMetrics) RecordEntry(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[result]++
}

func (m *mockMetrics) RecordExit(result string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exits[result]++
}

func (m *mockMetrics) RecordCharge(amount, _ decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.billed = m.billed.Add(amount)
}
