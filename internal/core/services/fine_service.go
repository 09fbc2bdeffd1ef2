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

var (
	ErrUnknownFineType = errors.New("unknown fine type")
	ErrNegativeAmount  = errors.New("fine amount must not be negative")
	ErrFineFinalized   = errors.New("fine is already finalized")
	ErrAmountRequired  = errors.New("an amount is required for the 'autre' fine type")
)

// fineService provides the fine ledger operations.
type fineService struct {
	fineRepo  portsrepo.FineRepositoryFacade
	memberSvc portssvc.MemberSvcFacade
}

// NewFineService creates a new FineService.
func NewFineService(fineRepo portsrepo.FineRepositoryFacade, memberSvc portssvc.MemberSvcFacade) portssvc.FineSvcFacade {
	return &fineService{
		fineRepo:  fineRepo,
		memberSvc: memberSvc,
	}
}

var _ portssvc.FineSvcFacade = (*fineService)(nil)

// resolveFine derives the amount and category for a fine request from the
// catalog. Catalog types carry their canonical amount; "autre" requires a
// caller-supplied one. An explicit amount overrides the canonical default.
func resolveFine(fineType domain.FineType, amount *decimal.Decimal) (decimal.Decimal, domain.FineCategory, error) {
	info, ok := domain.FineCatalog[fineType]
	if !ok {
		return decimal.Zero, "", fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, ErrUnknownFineType, fineType)
	}

	resolved := info.Amount
	if fineType == domain.TypeOther {
		if amount == nil {
			return decimal.Zero, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountRequired)
		}
		resolved = *amount
	} else if amount != nil {
		resolved = *amount
	}

	if resolved.IsNegative() {
		return decimal.Zero, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativeAmount)
	}
	return resolved, info.Category, nil
}

// CreateFine issues a manual fine against a member. Censor only.
func (s *fineService) CreateFine(ctx context.Context, req dto.CreateFineRequest, creatorID string) (*domain.Fine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.memberSvc.AuthorizeRole(ctx, creatorID, domain.RoleCensor); err != nil {
		logger.Warn("Authorization failed for CreateFine", slog.String("creator_id", creatorID), slog.String("error", err.Error()))
		return nil, err
	}

	if _, err := s.memberSvc.GetMemberByID(ctx, req.MemberID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: member %s", apperrors.ErrNotFound, req.MemberID)
		}
		return nil, fmt.Errorf("failed to verify member %s: %w", req.MemberID, err)
	}

	amount, category, err := resolveFine(req.Type, req.Amount)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	fine := domain.Fine{
		FineID:      uuid.NewString(),
		MemberID:    req.MemberID,
		MeetingID:   req.MeetingID,
		Type:        req.Type,
		Amount:      amount,
		Category:    category,
		Description: req.Description,
		Status:      domain.FinePending,
		Automatic:   false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.fineRepo.SaveFine(ctx, fine); err != nil {
		logger.Error("Failed to save fine", slog.String("error", err.Error()), slog.String("fined_member_id", req.MemberID))
		return nil, fmt.Errorf("failed to save fine: %w", err)
	}

	logger.Info("Fine created", slog.String("fine_id", fine.FineID), slog.String("fine_type", string(fine.Type)), slog.String("amount", fine.Amount.String()))
	return &fine, nil
}

// CreateAutomaticFine inserts a system-generated fine. The caller is trusted
// core code (attendance rules, loan penalty accrual); no actor authorization
// applies and CreatedBy stays empty to mark the fine as system-issued.
func (s *fineService) CreateAutomaticFine(ctx context.Context, fine domain.Fine) (*domain.Fine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if fine.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativeAmount)
	}
	if fine.FineID == "" {
		fine.FineID = uuid.NewString()
	}
	if fine.Status == "" {
		fine.Status = domain.FinePending
	}
	fine.Automatic = true

	now := time.Now().UTC()
	if fine.CreatedAt.IsZero() {
		fine.CreatedAt = now
	}
	fine.LastUpdatedAt = now

	if err := s.fineRepo.SaveFine(ctx, fine); err != nil {
		logger.Error("Failed to save automatic fine", slog.String("error", err.Error()), slog.String("fined_member_id", fine.MemberID))
		return nil, fmt.Errorf("failed to save automatic fine: %w", err)
	}

	logger.Info("Automatic fine created", slog.String("fine_id", fine.FineID), slog.String("fine_type", string(fine.Type)))
	return &fine, nil
}

// PayFine settles a pending fine. Censor only. Paid is terminal: paying an
// already paid or cancelled fine fails with a conflict.
func (s *fineService) PayFine(ctx context.Context, fineID string, actorID string) (*domain.Fine, error) {
	return s.finalize(ctx, fineID, actorID, domain.FinePaid)
}

// CancelFine voids a pending fine. Censor only. Cancelled is terminal.
func (s *fineService) CancelFine(ctx context.Context, fineID string, actorID string) (*domain.Fine, error) {
	return s.finalize(ctx, fineID, actorID, domain.FineCancelled)
}

func (s *fineService) finalize(ctx context.Context, fineID string, actorID string, status domain.FineStatus) (*domain.Fine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.memberSvc.AuthorizeRole(ctx, actorID, domain.RoleCensor); err != nil {
		logger.Warn("Authorization failed for fine finalization", slog.String("actor_id", actorID), slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	var paidAt *time.Time
	if status == domain.FinePaid {
		paidAt = &now
	}

	if err := s.fineRepo.FinalizeFine(ctx, fineID, status, paidAt, actorID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrFineFinalized)
		}
		return nil, err
	}

	fine, err := s.fineRepo.FindFineByID(ctx, fineID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload fine %s: %w", fineID, err)
	}

	logger.Info("Fine finalized", slog.String("fine_id", fineID), slog.String("new_status", string(status)))
	return fine, nil
}

// ListFines retrieves fines matching the filter. Restricted to officer roles.
func (s *fineService) ListFines(ctx context.Context, requesterID string, filter portsrepo.FineFilter) ([]domain.Fine, error) {
	if err := s.memberSvc.AuthorizeRole(ctx, requesterID, domain.OfficerRoles...); err != nil {
		return nil, err
	}
	return s.fineRepo.ListFines(ctx, filter)
}

// ListMyFines retrieves the requester's own fines with the pending total.
func (s *fineService) ListMyFines(ctx context.Context, memberID string) (*dto.MyFinesResponse, error) {
	fines, err := s.fineRepo.ListFines(ctx, portsrepo.FineFilter{MemberID: &memberID})
	if err != nil {
		return nil, fmt.Errorf("failed to list fines for member %s: %w", memberID, err)
	}

	totalPending := decimal.Zero
	for i := range fines {
		if fines[i].Status == domain.FinePending {
			totalPending = totalPending.Add(fines[i].Amount)
		}
	}

	return &dto.MyFinesResponse{
		Count:        len(fines),
		TotalPending: totalPending,
		Fines:        dto.ToFineResponses(fines),
	}, nil
}

// FineStats aggregates the fine ledger by status and category. Officer roles only.
func (s *fineService) FineStats(ctx context.Context, requesterID string) (*dto.FineStatsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.memberSvc.AuthorizeRole(ctx, requesterID, domain.OfficerRoles...); err != nil {
		return nil, err
	}

	byStatus, err := s.fineRepo.AggregateFinesByStatus(ctx)
	if err != nil {
		logger.Error("Failed to aggregate fines by status", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to aggregate fines by status: %w", err)
	}

	byCategory, err := s.fineRepo.AggregateFinesByCategory(ctx)
	if err != nil {
		logger.Error("Failed to aggregate fines by category", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to aggregate fines by category: %w", err)
	}

	totalPaid, err := s.fineRepo.SumFinesByStatus(ctx, domain.FinePaid)
	if err != nil {
		return nil, fmt.Errorf("failed to sum paid fines: %w", err)
	}
	totalUnpaid, err := s.fineRepo.SumFinesByStatus(ctx, domain.FinePending)
	if err != nil {
		return nil, fmt.Errorf("failed to sum pending fines: %w", err)
	}

	return &dto.FineStatsResponse{
		ByStatus:    byStatus,
		ByCategory:  byCategory,
		TotalPaid:   totalPaid,
		TotalUnpaid: totalUnpaid,
	}, nil
}
