package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/unit-solidarite/backend/internal/core/domain"
)

// FineFilter narrows fine listings. Nil fields match everything.
type FineFilter struct {
	Status   *domain.FineStatus
	MemberID *string
}

// FineAggregate is one bucket of a grouped fine summation.
type FineAggregate struct {
	Key    string          `json:"key"`
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// FineReader defines read operations for fine data.
type FineReader interface {
	// FindFineByID retrieves a single fine by its identifier.
	FindFineByID(ctx context.Context, fineID string) (*domain.Fine, error)

	// ListFines retrieves fines matching the filter, newest first.
	ListFines(ctx context.Context, filter FineFilter) ([]domain.Fine, error)

	// SumFinesByStatus sums the amount of all fines in the given status.
	SumFinesByStatus(ctx context.Context, status domain.FineStatus) (decimal.Decimal, error)

	// AggregateFinesByStatus groups all fines by status with count and total amount.
	AggregateFinesByStatus(ctx context.Context) ([]FineAggregate, error)

	// AggregateFinesByCategory groups all fines by category with count and total amount.
	AggregateFinesByCategory(ctx context.Context) ([]FineAggregate, error)
}

// FineWriter defines write operations for fine data.
type FineWriter interface {
	// SaveFine inserts a new fine row.
	SaveFine(ctx context.Context, fine domain.Fine) error

	// FinalizeFine transitions a pending fine to paid or cancelled in a single
	// conditional update. It returns apperrors.ErrNotFound when the fine does
	// not exist and apperrors.ErrConflict when it already left pending.
	FinalizeFine(ctx context.Context, fineID string, status domain.FineStatus, paidAt *time.Time, updatedBy string, updatedAt time.Time) error
}

// FineRepositoryFacade combines all fine repository interfaces.
type FineRepositoryFacade interface {
	FineReader
	FineWriter
}
