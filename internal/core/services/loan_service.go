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
	"github.com/unit-solidarite/backend/internal/dto"
	"github.com/unit-solidarite/backend/internal/middleware"
)

// InterestRatePercent is the flat interest rate applied to every loan at
// creation time, frozen per loan.
var InterestRatePercent = decimal.NewFromInt(5)

var (
	ErrOpenLoanExists    = errors.New("borrower already has a pending or active loan")
	ErrCeilingExceeded   = errors.New("requested principal exceeds the borrow ceiling")
	ErrAlreadyProcessed  = errors.New("loan has already been processed")
	ErrLoanNotActive     = errors.New("loan is not active")
	ErrExceedsRemaining  = errors.New("amount exceeds the remaining balance")
	ErrNotYourLoan       = errors.New("only the borrower may act on this loan")
	ErrPrincipalPositive = errors.New("principal must be positive")
)

// loanService drives the loan lifecycle: request, decision, repayment and
// borrower withdrawal. Every transition is a single atomic repository write.
type loanService struct {
	loanRepo  portsrepo.LoanRepositoryFacade
	fundSvc   portssvc.FundSvcFacade
	memberSvc portssvc.MemberSvcFacade
	notifier  portssvc.Notifier
}

// NewLoanService creates a new LoanService.
func NewLoanService(loanRepo portsrepo.LoanRepositoryFacade, fundSvc portssvc.FundSvcFacade, memberSvc portssvc.MemberSvcFacade, notifier portssvc.Notifier) portssvc.LoanSvcFacade {
	return &loanService{
		loanRepo:  loanRepo,
		fundSvc:   fundSvc,
		memberSvc: memberSvc,
		notifier:  notifier,
	}
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

// ComputeInterest returns ceil(principal * rate / 100).
func ComputeInterest(principal, ratePercent decimal.Decimal) decimal.Decimal {
	return principal.Mul(ratePercent).Div(decimal.NewFromInt(100)).Ceil()
}

// RequestLoan validates the borrow ceiling and the single-open-loan rule and
// persists a new pending loan. The creation notification intents are emitted
// later by the deferred notification sweep, so a notification outage can
// never block a loan request.
func (s *loanService) RequestLoan(ctx context.Context, borrowerID string, req dto.CreateLoanRequest) (*domain.Loan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	borrower, err := s.memberSvc.GetMemberByID(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	if !borrower.IsActive {
		return nil, fmt.Errorf("%w: member account is blocked", apperrors.ErrForbidden)
	}

	if !req.Principal.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPrincipalPositive)
	}

	_, err = s.loanRepo.FindOpenLoanByBorrower(ctx, borrowerID)
	if err == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrOpenLoanExists)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check for open loan", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check for open loan: %w", err)
	}

	fund, err := s.fundSvc.ComputeFund(ctx)
	if err != nil {
		logger.Error("Failed to compute fund for ceiling check", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute fund: %w", err)
	}
	if req.Principal.GreaterThan(fund.BorrowCeiling) {
		return nil, fmt.Errorf("%w: %s (ceiling %s, 50%% of available fund)", apperrors.ErrValidation, ErrCeilingExceeded, fund.BorrowCeiling.String())
	}

	now := time.Now().UTC()
	interest := ComputeInterest(req.Principal, InterestRatePercent)
	loan := domain.Loan{
		LoanID:           uuid.NewString(),
		BorrowerID:       borrowerID,
		Principal:        req.Principal,
		Interest:         interest,
		InterestRate:     InterestRatePercent,
		TotalOwed:        req.Principal.Add(interest),
		Motive:           req.Motive,
		Status:           domain.LoanPending,
		DueDate:          domain.AddMonthsClamped(now, 1),
		AmountRepaid:     decimal.Zero,
		PenaltiesAccrued: decimal.Zero,
		Notified:         false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     borrowerID,
			LastUpdatedAt: now,
			LastUpdatedBy: borrowerID,
		},
	}

	if err := s.loanRepo.SaveLoan(ctx, loan); err != nil {
		// The store's partial unique index closes the check-then-act gap:
		// two near-simultaneous requests may both pass the lookup above, but
		// only one insert wins.
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrOpenLoanExists)
		}
		logger.Error("Failed to save loan", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save loan: %w", err)
	}

	logger.Info("Loan requested", slog.String("loan_id", loan.LoanID), slog.String("principal", loan.Principal.String()), slog.String("total_owed", loan.TotalOwed.String()))
	return &loan, nil
}

// ProcessLoan applies the treasurer's one-shot decision on a pending loan.
// Approval activates the loan immediately: disbursement is assumed on
// approval in the association's convention.
func (s *loanService) ProcessLoan(ctx context.Context, loanID string, req dto.ProcessLoanRequest, processorID string) (*domain.Loan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.memberSvc.AuthorizeRole(ctx, processorID, domain.RoleTreasurer); err != nil {
		logger.Warn("Authorization failed for ProcessLoan", slog.String("processor_id", processorID), slog.String("error", err.Error()))
		return nil, err
	}

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status != domain.LoanPending {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAlreadyProcessed)
	}

	newStatus := domain.LoanActive
	if req.Decision == dto.DecisionReject {
		newStatus = domain.LoanRejected
	}

	now := time.Now().UTC()
	if err := s.loanRepo.DecideLoan(ctx, loanID, newStatus, processorID, now, req.Note); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAlreadyProcessed)
		}
		logger.Error("Failed to decide loan", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		return nil, fmt.Errorf("failed to decide loan %s: %w", loanID, err)
	}

	loan.Status = newStatus
	loan.ProcessedBy = &processorID
	loan.ProcessedAt = &now
	loan.ProcessingNote = req.Note
	loan.LastUpdatedAt = now
	loan.LastUpdatedBy = processorID

	s.notify(ctx, domain.NotificationIntent{
		RecipientID: loan.BorrowerID,
		Kind:        domain.NotifyLoanDecision,
		Data: map[string]any{
			"loanID":   loan.LoanID,
			"decision": string(newStatus),
			"note":     req.Note,
		},
	})

	logger.Info("Loan processed", slog.String("loan_id", loanID), slog.String("decision", string(newStatus)))
	return loan, nil
}

// RecordRepayment appends a repayment event to an active loan. The event and
// the loan update are one database transaction; once the cumulative repaid
// amount covers the total owed the loan closes as repaid.
func (s *loanService) RecordRepayment(ctx context.Context, loanID string, req dto.RecordRepaymentRequest, actorID string) (*domain.Loan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.memberSvc.AuthorizeRole(ctx, actorID, domain.RoleTreasurer); err != nil {
		logger.Warn("Authorization failed for RecordRepayment", slog.String("actor_id", actorID), slog.String("error", err.Error()))
		return nil, err
	}

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status != domain.LoanActive {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrLoanNotActive)
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: repayment amount must be positive", apperrors.ErrValidation)
	}
	remaining := loan.Remaining()
	if req.Amount.GreaterThan(remaining) {
		return nil, fmt.Errorf("%w: %s (remaining %s)", apperrors.ErrConflict, ErrExceedsRemaining, remaining.String())
	}

	now := time.Now().UTC()
	repayment := domain.Repayment{
		RepaymentID: uuid.NewString(),
		LoanID:      loan.LoanID,
		Amount:      req.Amount,
		Kind:        domain.RepaymentPrincipal,
		Note:        req.Note,
		RecordedAt:  now,
		RecordedBy:  actorID,
	}

	loan.AmountRepaid = loan.AmountRepaid.Add(req.Amount)
	if loan.AmountRepaid.GreaterThanOrEqual(loan.TotalOwed) {
		loan.Status = domain.LoanRepaid
	}
	loan.LastUpdatedAt = now
	loan.LastUpdatedBy = actorID

	if err := s.loanRepo.SaveRepayment(ctx, *loan, repayment); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrLoanNotActive)
		}
		logger.Error("Failed to save repayment", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		return nil, fmt.Errorf("failed to save repayment for loan %s: %w", loanID, err)
	}

	loan.Repayments, err = s.loanRepo.FindRepaymentsByLoanID(ctx, loanID)
	if err != nil {
		logger.Warn("Failed to reload repayment history", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		loan.Repayments = nil
	}

	logger.Info("Repayment recorded", slog.String("loan_id", loanID), slog.String("amount", req.Amount.String()), slog.String("new_status", string(loan.Status)))
	return loan, nil
}

// WithdrawLoan deletes the requester's own still-pending loan request. No
// ledger trace remains since no money moved.
func (s *loanService) WithdrawLoan(ctx context.Context, loanID string, requesterID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return err
	}
	if loan.BorrowerID != requesterID {
		return fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrNotYourLoan)
	}
	if loan.Status != domain.LoanPending {
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAlreadyProcessed)
	}

	if err := s.loanRepo.DeleteLoan(ctx, loanID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAlreadyProcessed)
		}
		logger.Error("Failed to delete loan", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		return fmt.Errorf("failed to delete loan %s: %w", loanID, err)
	}

	logger.Info("Loan withdrawn", slog.String("loan_id", loanID))
	return nil
}

// GetLoanByID retrieves a loan with its repayment history. Borrowers may only
// read their own loans; officer roles may read any.
func (s *loanService) GetLoanByID(ctx context.Context, loanID string, requesterID string) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if loan.BorrowerID != requesterID {
		if err := s.memberSvc.AuthorizeRole(ctx, requesterID, domain.OfficerRoles...); err != nil {
			return nil, err
		}
	}

	loan.Repayments, err = s.loanRepo.FindRepaymentsByLoanID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to load repayments for loan %s: %w", loanID, err)
	}
	return loan, nil
}

// ListLoans retrieves every loan. Restricted to officer roles.
func (s *loanService) ListLoans(ctx context.Context, requesterID string) ([]domain.Loan, error) {
	if err := s.memberSvc.AuthorizeRole(ctx, requesterID, domain.OfficerRoles...); err != nil {
		return nil, err
	}
	return s.loanRepo.ListLoans(ctx)
}

// ListMyLoans retrieves the requester's own loans.
func (s *loanService) ListMyLoans(ctx context.Context, borrowerID string) ([]domain.Loan, error) {
	return s.loanRepo.ListLoansByBorrower(ctx, borrowerID)
}

// LoanStats aggregates the loan book with the live fund snapshot. Officer
// roles only.
func (s *loanService) LoanStats(ctx context.Context, requesterID string) (*dto.LoanStatsResponse, error) {
	if err := s.memberSvc.AuthorizeRole(ctx, requesterID, domain.OfficerRoles...); err != nil {
		return nil, err
	}

	loans, err := s.loanRepo.ListLoans(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans for stats: %w", err)
	}

	fund, err := s.fundSvc.ComputeFund(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute fund for stats: %w", err)
	}

	stats := &dto.LoanStatsResponse{
		Total:         len(loans),
		TotalLent:     decimal.Zero,
		Outstanding:   decimal.Zero,
		Fund:          fund,
		BorrowCeiling: fund.BorrowCeiling,
	}
	for i := range loans {
		switch loans[i].Status {
		case domain.LoanPending:
			stats.Pending++
		case domain.LoanActive:
			stats.Active++
			stats.TotalLent = stats.TotalLent.Add(loans[i].Principal)
			stats.Outstanding = stats.Outstanding.Add(loans[i].Remaining())
		case domain.LoanRejected:
			stats.Rejected++
		case domain.LoanRepaid:
			stats.Repaid++
			stats.TotalLent = stats.TotalLent.Add(loans[i].Principal)
		}
	}
	return stats, nil
}

// notify emits a notification intent and swallows delivery failures: they are
// logged, never escalated into a ledger mutation failure.
func (s *loanService) notify(ctx context.Context, intent domain.NotificationIntent) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, intent); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Notification delivery failed",
			slog.String("kind", string(intent.Kind)),
			slog.String("recipient_id", intent.RecipientID),
			slog.String("error", err.Error()))
	}
}
