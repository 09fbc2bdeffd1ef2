package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/unit-solidarite/backend/internal/core/domain"
)

// LoanReader defines read operations for loan data.
type LoanReader interface {
	// FindLoanByID retrieves a loan, without its repayment history.
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// FindOpenLoanByBorrower retrieves the borrower's loan in a non-terminal
	// status, or apperrors.ErrNotFound when the borrower has none.
	FindOpenLoanByBorrower(ctx context.Context, borrowerID string) (*domain.Loan, error)

	// ListLoans retrieves every loan, newest first.
	ListLoans(ctx context.Context) ([]domain.Loan, error)

	// ListLoansByBorrower retrieves the borrower's loans, newest first.
	ListLoansByBorrower(ctx context.Context, borrowerID string) ([]domain.Loan, error)

	// ListActiveLoansDueBefore retrieves active loans whose due date falls
	// strictly before the given day. Used by the penalty accrual sweep.
	ListActiveLoansDueBefore(ctx context.Context, day time.Time) ([]domain.Loan, error)

	// ListUnnotifiedLoans retrieves loans whose creation notification intents
	// have not been emitted yet.
	ListUnnotifiedLoans(ctx context.Context) ([]domain.Loan, error)

	// FindRepaymentsByLoanID retrieves the loan's repayment events in the
	// order they were recorded.
	FindRepaymentsByLoanID(ctx context.Context, loanID string) ([]domain.Repayment, error)

	// SumLoanInterestByStatus sums the interest of all loans in the given status.
	SumLoanInterestByStatus(ctx context.Context, status domain.LoanStatus) (decimal.Decimal, error)

	// SumLoanPrincipalByStatus sums the principal of all loans in the given status.
	SumLoanPrincipalByStatus(ctx context.Context, status domain.LoanStatus) (decimal.Decimal, error)
}

// LoanWriter defines write operations for loan data. Each method is a single
// atomic transition: a conditional update (or one database transaction for
// the repayment and penalty paths) so concurrent callers can never observe a
// partially applied state.
type LoanWriter interface {
	// SaveLoan inserts a new pending loan. The store enforces the single
	// non-terminal loan per borrower with a partial unique index; a violation
	// surfaces as apperrors.ErrConflict.
	SaveLoan(ctx context.Context, loan domain.Loan) error

	// DecideLoan applies the one-shot approve/reject transition. It returns
	// apperrors.ErrConflict when the loan already left pending.
	DecideLoan(ctx context.Context, loanID string, status domain.LoanStatus, processedBy string, processedAt time.Time, note string) error

	// SaveRepayment appends the repayment event and applies the updated
	// amountRepaid/status to the loan within one database transaction,
	// conditional on the loan still being active.
	SaveRepayment(ctx context.Context, loan domain.Loan, repayment domain.Repayment) error

	// ApplyPenalty raises the loan's penaltiesAccrued/totalOwed to the given
	// loan state and inserts the delta fine within one database transaction.
	ApplyPenalty(ctx context.Context, loan domain.Loan, fine domain.Fine) error

	// DeleteLoan removes a pending loan request. Returns apperrors.ErrConflict
	// when the loan was processed in the meantime.
	DeleteLoan(ctx context.Context, loanID string) error

	// MarkLoanNotified flips the creation-notification flag.
	MarkLoanNotified(ctx context.Context, loanID string) error
}

// LoanRepositoryFacade combines all loan repository interfaces.
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
}
