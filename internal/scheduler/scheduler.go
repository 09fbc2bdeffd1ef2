// Package scheduler runs the background sweeps: daily penalty accrual on
// overdue loans and the minutely deferred-notification sweep. The scheduler
// owns the timers; the accrual service owns the rules.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/unit-solidarite/backend/internal/core/ports/services"
)

// Scheduler runs background goroutines for the time-driven business checks.
type Scheduler struct {
	accrualSvc    portssvc.AccrualSvcFacade
	logger        *slog.Logger
	accrualHour   int
	sweepInterval time.Duration
	stopChan      chan struct{}
}

// New creates a scheduler. accrualHour is the local hour of day for the daily
// penalty sweep; sweepInterval drives the deferred-notification sweep.
func New(accrualSvc portssvc.AccrualSvcFacade, logger *slog.Logger, accrualHour int, sweepInterval time.Duration) *Scheduler {
	return &Scheduler{
		accrualSvc:    accrualSvc,
		logger:        logger,
		accrualHour:   accrualHour,
		sweepInterval: sweepInterval,
		stopChan:      make(chan struct{}),
	}
}

// Start launches the background goroutines. The penalty sweep also runs once
// at startup so a restart never skips a day.
func (s *Scheduler) Start() {
	s.logger.Info("Scheduler started", slog.Int("accrual_hour", s.accrualHour), slog.Duration("sweep_interval", s.sweepInterval))

	go s.runAccrualLoop()
	go s.runNotifyLoop()
}

// Stop gracefully stops all goroutines.
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) runAccrualLoop() {
	s.accruePenalties()

	for {
		select {
		case <-time.After(s.untilNextAccrual(time.Now())):
			s.accruePenalties()
		case <-s.stopChan:
			return
		}
	}
}

// untilNextAccrual returns the wait until the next occurrence of the
// configured hour, always in the future.
func (s *Scheduler) untilNextAccrual(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.accrualHour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

func (s *Scheduler) accruePenalties() {
	ctx := context.Background()
	count, err := s.accrualSvc.AccruePenalties(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Error("Penalty accrual sweep failed", slog.String("error", err.Error()), slog.Int("penalized", count))
		return
	}
	if count > 0 {
		s.logger.Info("Penalty accrual sweep done", slog.Int("penalized", count))
	}
}

func (s *Scheduler) runNotifyLoop() {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx := context.Background()
			if _, err := s.accrualSvc.NotifyPendingLoans(ctx); err != nil {
				s.logger.Error("Notification sweep failed", slog.String("error", err.Error()))
			}
		case <-s.stopChan:
			return
		}
	}
}
