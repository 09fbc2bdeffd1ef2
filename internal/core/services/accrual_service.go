package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/unit-solidarite/backend/internal/apperrors"
	"github.com/unit-solidarite/backend/internal/core/domain"
	portsrepo "github.com/unit-solidarite/backend/internal/core/ports/repositories"
	portssvc "github.com/unit-solidarite/backend/internal/core/ports/services"
	"github.com/unit-solidarite/backend/internal/middleware"
)

// PenaltyPeriodDays is the length of one late period; each completed period
// past the due date accrues one PenaltyPerPeriod unit.
const PenaltyPeriodDays = 7

// PenaltyPerPeriod is the penalty amount accrued per completed late period.
var PenaltyPerPeriod = decimal.NewFromInt(10)

// accrualService hosts the time-driven sweeps: late-repayment penalty accrual
// and the deferred loan-creation notifications.
type accrualService struct {
	loanRepo   portsrepo.LoanRepositoryFacade
	memberRepo portsrepo.MemberReader
	notifier   portssvc.Notifier
}

// NewAccrualService creates a new AccrualService.
func NewAccrualService(loanRepo portsrepo.LoanRepositoryFacade, memberRepo portsrepo.MemberReader, notifier portssvc.Notifier) portssvc.AccrualSvcFacade {
	return &accrualService{
		loanRepo:   loanRepo,
		memberRepo: memberRepo,
		notifier:   notifier,
	}
}

var _ portssvc.AccrualSvcFacade = (*accrualService)(nil)

// PenaltyOwed returns the total penalty an active loan should carry when it
// is daysOverdue days past due: one PenaltyPerPeriod per completed period.
func PenaltyOwed(daysOverdue int) decimal.Decimal {
	periods := daysOverdue / PenaltyPeriodDays
	return PenaltyPerPeriod.Mul(decimal.NewFromInt(int64(periods)))
}

// AccruePenalties sweeps active overdue loans as of today. The owed penalty is
// recomputed from scratch against the due date, and only the positive delta
// over the loan's recorded high-water mark is applied. Running the sweep twice
// on the same day is therefore a no-op.
func (s *accrualService) AccruePenalties(ctx context.Context, today time.Time) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	loans, err := s.loanRepo.ListActiveLoansDueBefore(ctx, domain.TruncateToDay(today))
	if err != nil {
		return 0, fmt.Errorf("failed to list overdue loans: %w", err)
	}

	penalized := 0
	var firstErr error
	for i := range loans {
		loan := loans[i]

		owed := PenaltyOwed(loan.DaysOverdue(today))
		if !owed.GreaterThan(loan.PenaltiesAccrued) {
			continue
		}
		delta := owed.Sub(loan.PenaltiesAccrued)

		now := time.Now().UTC()
		loanID := loan.LoanID
		fine := domain.Fine{
			FineID:      uuid.NewString(),
			MemberID:    loan.BorrowerID,
			LoanID:      &loanID,
			Type:        domain.TypeLateLoanRepayment,
			Amount:      delta,
			Category:    domain.CategoryFinancial,
			Description: fmt.Sprintf("Pénalité de retard sur le prêt %s (%d jours de retard)", loan.LoanID, loan.DaysOverdue(today)),
			Status:      domain.FinePending,
			Automatic:   true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}

		loan.PenaltiesAccrued = owed
		loan.TotalOwed = loan.TotalOwed.Add(delta)
		loan.LastUpdatedAt = now

		if err := s.loanRepo.ApplyPenalty(ctx, loan, fine); err != nil {
			// A conflict means a concurrent sweep or a repayment closed the
			// loan first; anything else is recorded and the sweep moves on.
			if !errors.Is(err, apperrors.ErrConflict) && firstErr == nil {
				firstErr = fmt.Errorf("failed to apply penalty on loan %s: %w", loan.LoanID, err)
			}
			logger.Warn("Penalty application skipped", slog.String("loan_id", loan.LoanID), slog.String("error", err.Error()))
			continue
		}
		penalized++

		s.notify(ctx, domain.NotificationIntent{
			RecipientID: loan.BorrowerID,
			Kind:        domain.NotifyLoanPenalty,
			Data: map[string]any{
				"loanID":       loan.LoanID,
				"penaltyDelta": delta.String(),
				"totalOwed":    loan.TotalOwed.String(),
			},
		})

		logger.Info("Penalty accrued",
			slog.String("loan_id", loan.LoanID),
			slog.String("delta", delta.String()),
			slog.String("penalties_accrued", owed.String()))
	}

	return penalized, firstErr
}

// NotifyPendingLoans emits the deferred creation notification intents for
// loans whose request never reached the borrower and the treasurer, then
// marks them. A loan stays queued for the next sweep until at least one
// intent is delivered.
func (s *accrualService) NotifyPendingLoans(ctx context.Context) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	loans, err := s.loanRepo.ListUnnotifiedLoans(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list unnotified loans: %w", err)
	}
	if len(loans) == 0 {
		return 0, nil
	}

	treasurer, err := s.memberRepo.FindActiveMemberByRole(ctx, domain.RoleTreasurer)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return 0, fmt.Errorf("failed to resolve treasurer: %w", err)
	}

	notified := 0
	for i := range loans {
		loan := loans[i]
		delivered := 0

		if s.notifyOK(ctx, domain.NotificationIntent{
			RecipientID: loan.BorrowerID,
			Kind:        domain.NotifyLoanRequestedBorrower,
			Data: map[string]any{
				"loanID":    loan.LoanID,
				"principal": loan.Principal.String(),
				"totalOwed": loan.TotalOwed.String(),
				"dueDate":   loan.DueDate.Format(time.RFC3339),
			},
		}) {
			delivered++
		}

		if treasurer != nil {
			if s.notifyOK(ctx, domain.NotificationIntent{
				RecipientID: treasurer.MemberID,
				Kind:        domain.NotifyLoanRequestedTreasurer,
				Data: map[string]any{
					"loanID":     loan.LoanID,
					"borrowerID": loan.BorrowerID,
					"principal":  loan.Principal.String(),
				},
			}) {
				delivered++
			}
		}

		if delivered == 0 {
			continue
		}
		if err := s.loanRepo.MarkLoanNotified(ctx, loan.LoanID); err != nil {
			logger.Warn("Failed to mark loan notified", slog.String("loan_id", loan.LoanID), slog.String("error", err.Error()))
			continue
		}
		notified++
	}

	if notified > 0 {
		logger.Info("Deferred loan notifications emitted", slog.Int("count", notified))
	}
	return notified, nil
}

func (s *accrualService) notify(ctx context.Context, intent domain.NotificationIntent) {
	s.notifyOK(ctx, intent)
}

func (s *accrualService) notifyOK(ctx context.Context, intent domain.NotificationIntent) bool {
	if s.notifier == nil {
		return false
	}
	if err := s.notifier.Notify(ctx, intent); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Notification delivery failed",
			slog.String("kind", string(intent.Kind)),
			slog.String("recipient_id", intent.RecipientID),
			slog.String("error", err.Error()))
		return false
	}
	return true
}
