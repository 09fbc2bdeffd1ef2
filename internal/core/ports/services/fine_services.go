package services

import (
	"context"

	"github.com/unit-solidarite/backend/internal/core/domain"
	portsrepo "github.com/unit-solidarite/backend/internal/core/ports/repositories"
	"github.com/unit-solidarite/backend/internal/dto"
)

// FineReaderSvc defines read operations for the fine ledger.
type FineReaderSvc interface {
	// ListFines retrieves fines matching the filter. Restricted to officer roles.
	ListFines(ctx context.Context, requesterID string, filter portsrepo.FineFilter) ([]domain.Fine, error)

	// ListMyFines retrieves the requester's own fines with their pending total.
	ListMyFines(ctx context.Context, memberID string) (*dto.MyFinesResponse, error)

	// FineStats aggregates the ledger by status and by category. Restricted to
	// officer roles.
	FineStats(ctx context.Context, requesterID string) (*dto.FineStatsResponse, error)
}

// FineWriterSvc defines the fine lifecycle operations.
type FineWriterSvc interface {
	// CreateFine issues a manual fine. Censor only. The amount defaults from
	// the catalog unless the type is "autre".
	CreateFine(ctx context.Context, req dto.CreateFineRequest, creatorID string) (*domain.Fine, error)

	// CreateAutomaticFine inserts a system-generated fine on behalf of a
	// business rule (attendance lateness, loan penalty accrual). No actor
	// authorization applies; the caller is trusted core code.
	CreateAutomaticFine(ctx context.Context, fine domain.Fine) (*domain.Fine, error)

	// PayFine settles a pending fine. Censor only.
	PayFine(ctx context.Context, fineID string, actorID string) (*domain.Fine, error)

	// CancelFine voids a pending fine. Censor only.
	CancelFine(ctx context.Context, fineID string, actorID string) (*domain.Fine, error)
}

// FineSvcFacade combines all fine service interfaces.
type FineSvcFacade interface {
	FineReaderSvc
	FineWriterSvc
}
