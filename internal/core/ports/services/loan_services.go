package services

import (
	"context"

	"github.com/unit-solidarite/backend/internal/core/domain"
	"github.com/unit-solidarite/backend/internal/dto"
)

// LoanReaderSvc defines read operations for loan data.
type LoanReaderSvc interface {
	// GetLoanByID retrieves a loan with its repayment history. Borrowers may
	// only read their own loans; officer roles may read any.
	GetLoanByID(ctx context.Context, loanID string, requesterID string) (*domain.Loan, error)

	// ListLoans retrieves every loan. Restricted to officer roles.
	ListLoans(ctx context.Context, requesterID string) ([]domain.Loan, error)

	// ListMyLoans retrieves the requester's own loans.
	ListMyLoans(ctx context.Context, borrowerID string) ([]domain.Loan, error)

	// LoanStats aggregates loan counts and amounts together with the live
	// fund snapshot. Restricted to officer roles.
	LoanStats(ctx context.Context, requesterID string) (*dto.LoanStatsResponse, error)
}

// LoanWriterSvc defines the loan lifecycle transitions.
type LoanWriterSvc interface {
	// RequestLoan validates the borrow ceiling and the single-open-loan rule,
	// then persists a new pending loan for the borrower.
	RequestLoan(ctx context.Context, borrowerID string, req dto.CreateLoanRequest) (*domain.Loan, error)

	// ProcessLoan applies the treasurer's one-shot approve/reject decision.
	ProcessLoan(ctx context.Context, loanID string, req dto.ProcessLoanRequest, processorID string) (*domain.Loan, error)

	// RecordRepayment appends a repayment event to an active loan, closing it
	// once the full balance is covered. Treasurer only.
	RecordRepayment(ctx context.Context, loanID string, req dto.RecordRepaymentRequest, actorID string) (*domain.Loan, error)

	// WithdrawLoan deletes the requester's own still-pending loan request.
	WithdrawLoan(ctx context.Context, loanID string, requesterID string) error
}

// LoanSvcFacade combines all loan service interfaces.
type LoanSvcFacade interface {
	LoanReaderSvc
	LoanWriterSvc
}
