package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/parkline/parkline/internal/application/parking/usecases"
	"github.com/parkline/parkline/internal/shared/biztime"
	"github.com/parkline/parkline/internal/shared/logger"
)

const cycleResetTimeout = 10 * time.Minute

type CycleResetRecorder interface {
	RecordCycleReset(count int64)
}

// CycleResetScheduler zeroes subscription consumption at the start of each
// billing month. It runs once on start so a missed tick (process down at
// midnight on the 1st) is caught up.
type CycleResetScheduler struct {
	resetUC  usecases.ResetSubscriptionCyclesExecutor
	metrics  CycleResetRecorder
	logger   logger.Interface
	cron     *cron.Cron
	schedule string
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewCycleResetScheduler validates schedule (standard five-field cron,
// evaluated in the business timezone). metrics may be nil.
func NewCycleResetScheduler(
	resetUC usecases.ResetSubscriptionCyclesExecutor,
	schedule string,
	metrics CycleResetRecorder,
	logger logger.Interface,
) (*CycleResetScheduler, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid cycle reset schedule %q: %w", schedule, err)
	}
	return &CycleResetScheduler{
		resetUC:  resetUC,
		metrics:  metrics,
		logger:   logger,
		cron:     cron.New(cron.WithLocation(biztime.Location())),
		schedule: schedule,
	}, nil
}

// Start runs the reset immediately, then on every schedule tick until Stop
// or ctx is cancelled.
func (s *CycleResetScheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		s.runReset(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule cycle reset: %w", err)
	}

	s.logger.Infow("starting cycle reset scheduler", "schedule", s.schedule)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runReset(ctx)
	}()

	s.cron.Start()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

// Stop waits for a running reset to finish.
func (s *CycleResetScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping cycle reset scheduler")
		<-s.cron.Stop().Done()
		s.wg.Wait()
		s.logger.Infow("cycle reset scheduler stopped")
	})
}

// NextRun reports when the next scheduled reset fires after from.
func (s *CycleResetScheduler) NextRun(from time.Time) time.Time {
	sched, err := cron.ParseStandard(s.schedule)
	if err != nil {
		return time.Time{}
	}
	return sched.Next(from.In(biztime.Location())).UTC()
}

func (s *CycleResetScheduler) runReset(parent context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), cycleResetTimeout)
	defer cancel()

	startTime := time.Now()
	result, err := s.resetUC.Execute(ctx)
	if err != nil {
		s.logger.Errorw("failed to reset subscription cycles",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordCycleReset(result.Reset)
	}
	if result.Reset > 0 {
		s.logger.Infow("subscription cycles reset",
			"count", result.Reset,
			"cycle_start", result.CycleStart,
			"duration", time.Since(startTime),
		)
	}
}
