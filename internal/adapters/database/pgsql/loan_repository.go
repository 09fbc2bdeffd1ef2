package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/unit-solidarite/backend/internal/apperrors"
	"github.com/unit-solidarite/backend/internal/core/domain"
	portsrepo "github.com/unit-solidarite/backend/internal/core/ports/repositories"
)

type PgxLoanRepository struct {
	pool *pgxpool.Pool
}

// NewPgxLoanRepository creates a new repository for loan and repayment data.
func NewPgxLoanRepository(pool *pgxpool.Pool) portsrepo.LoanRepositoryFacade {
	return &PgxLoanRepository{pool: pool}
}

var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

const loanColumns = `loan_id, borrower_id, principal, interest, interest_rate, total_owed, motive, status, due_date, amount_repaid, penalties_accrued, notified, processed_by, processed_at, processing_note, created_at, created_by, last_updated_at, last_updated_by`

func scanLoan(row pgx.Row) (*domain.Loan, error) {
	var l domain.Loan
	err := row.Scan(
		&l.LoanID,
		&l.BorrowerID,
		&l.Principal,
		&l.Interest,
		&l.InterestRate,
		&l.TotalOwed,
		&l.Motive,
		&l.Status,
		&l.DueDate,
		&l.AmountRepaid,
		&l.PenaltiesAccrued,
		&l.Notified,
		&l.ProcessedBy,
		&l.ProcessedAt,
		&l.ProcessingNote,
		&l.CreatedAt,
		&l.CreatedBy,
		&l.LastUpdatedAt,
		&l.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.pool.Exec(ctx, query,
		loan.LoanID,
		loan.BorrowerID,
		loan.Principal,
		loan.Interest,
		loan.InterestRate,
		loan.TotalOwed,
		loan.Motive,
		loan.Status,
		loan.DueDate,
		loan.AmountRepaid,
		loan.PenaltiesAccrued,
		loan.Notified,
		loan.ProcessedBy,
		loan.ProcessedAt,
		loan.ProcessingNote,
		loan.CreatedAt,
		loan.CreatedBy,
		loan.LastUpdatedAt,
		loan.LastUpdatedBy,
	)
	if err != nil {
		// The partial unique index on (borrower_id) over non-terminal statuses
		// enforces the single-open-loan rule at the store.
		if isUniqueViolation(err) {
			return fmt.Errorf("borrower already has an open loan: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to save loan: %w", err)
	}
	return nil
}

// DecideLoan is a conditional update: the WHERE clause only matches a loan
// still pending, so the decision is one-shot even under concurrent callers.
func (r *PgxLoanRepository) DecideLoan(ctx context.Context, loanID string, status domain.LoanStatus, processedBy string, processedAt time.Time, note string) error {
	query := `
		UPDATE loans
		SET status = $1, processed_by = $2, processed_at = $3, processing_note = $4, last_updated_at = $3, last_updated_by = $2
		WHERE loan_id = $5 AND status = $6;
	`
	cmdTag, err := r.pool.Exec(ctx, query, status, processedBy, processedAt, note, loanID, domain.LoanPending)
	if err != nil {
		return fmt.Errorf("failed to decide loan %s: %w", loanID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("loan %s is not pending: %w", loanID, apperrors.ErrConflict)
	}
	return nil
}

// SaveRepayment inserts the repayment event and applies the updated loan state
// within one DB transaction, conditional on the loan still being active.
func (r *PgxLoanRepository) SaveRepayment(ctx context.Context, loan domain.Loan, repayment domain.Repayment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	loanQuery := `
		UPDATE loans
		SET amount_repaid = $1, status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE loan_id = $5 AND status = $6;
	`
	cmdTag, err := tx.Exec(ctx, loanQuery,
		loan.AmountRepaid,
		loan.Status,
		loan.LastUpdatedAt,
		loan.LastUpdatedBy,
		loan.LoanID,
		domain.LoanActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update loan %s for repayment: %w", loan.LoanID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("loan %s is not active: %w", loan.LoanID, apperrors.ErrConflict)
	}

	repaymentQuery := `
		INSERT INTO loan_repayments (repayment_id, loan_id, amount, kind, note, recorded_at, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, repaymentQuery,
		repayment.RepaymentID,
		repayment.LoanID,
		repayment.Amount,
		repayment.Kind,
		repayment.Note,
		repayment.RecordedAt,
		repayment.RecordedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert repayment for loan %s: %w", loan.LoanID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit repayment for loan %s: %w", loan.LoanID, err)
	}
	return nil
}

// ApplyPenalty raises the loan's penalty high-water mark and inserts the delta
// fine within one DB transaction. The update is conditional on the recorded
// penalties still being below the new mark, which makes a re-run a no-op.
func (r *PgxLoanRepository) ApplyPenalty(ctx context.Context, loan domain.Loan, fine domain.Fine) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	loanQuery := `
		UPDATE loans
		SET penalties_accrued = $1, total_owed = $2, last_updated_at = $3
		WHERE loan_id = $4 AND status = $5 AND penalties_accrued < $1;
	`
	cmdTag, err := tx.Exec(ctx, loanQuery,
		loan.PenaltiesAccrued,
		loan.TotalOwed,
		loan.LastUpdatedAt,
		loan.LoanID,
		domain.LoanActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update loan %s for penalty: %w", loan.LoanID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("penalty already applied or loan %s not active: %w", loan.LoanID, apperrors.ErrConflict)
	}

	fineQuery := `
		INSERT INTO fines (fine_id, member_id, meeting_id, loan_id, type, amount, category, description, status, paid_at, automatic, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, fineQuery,
		fine.FineID,
		fine.MemberID,
		fine.MeetingID,
		fine.LoanID,
		fine.Type,
		fine.Amount,
		fine.Category,
		fine.Description,
		fine.Status,
		fine.PaidAt,
		fine.Automatic,
		fine.CreatedAt,
		fine.CreatedBy,
		fine.LastUpdatedAt,
		fine.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert penalty fine for loan %s: %w", loan.LoanID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit penalty for loan %s: %w", loan.LoanID, err)
	}
	return nil
}

// DeleteLoan removes a pending loan request outright.
func (r *PgxLoanRepository) DeleteLoan(ctx context.Context, loanID string) error {
	query := `DELETE FROM loans WHERE loan_id = $1 AND status = $2;`
	cmdTag, err := r.pool.Exec(ctx, query, loanID, domain.LoanPending)
	if err != nil {
		return fmt.Errorf("failed to delete loan %s: %w", loanID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("loan %s is not pending: %w", loanID, apperrors.ErrConflict)
	}
	return nil
}

func (r *PgxLoanRepository) MarkLoanNotified(ctx context.Context, loanID string) error {
	query := `UPDATE loans SET notified = TRUE WHERE loan_id = $1;`
	cmdTag, err := r.pool.Exec(ctx, query, loanID)
	if err != nil {
		return fmt.Errorf("failed to mark loan %s notified: %w", loanID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1;`
	l, err := scanLoan(r.pool.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find loan by ID %s: %w", loanID, err)
	}
	return l, nil
}

func (r *PgxLoanRepository) FindOpenLoanByBorrower(ctx context.Context, borrowerID string) (*domain.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE borrower_id = $1 AND status = ANY($2)
		LIMIT 1;
	`
	statuses := make([]string, len(domain.NonTerminalLoanStatuses))
	for i, s := range domain.NonTerminalLoanStatuses {
		statuses[i] = string(s)
	}
	l, err := scanLoan(r.pool.QueryRow(ctx, query, borrowerID, statuses))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find open loan for borrower %s: %w", borrowerID, err)
	}
	return l, nil
}

func (r *PgxLoanRepository) ListLoans(ctx context.Context) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans ORDER BY created_at DESC;`
	return r.queryLoans(ctx, query)
}

func (r *PgxLoanRepository) ListLoansByBorrower(ctx context.Context, borrowerID string) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE borrower_id = $1 ORDER BY created_at DESC;`
	return r.queryLoans(ctx, query, borrowerID)
}

func (r *PgxLoanRepository) ListActiveLoansDueBefore(ctx context.Context, day time.Time) ([]domain.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE status = $1 AND due_date < $2
		ORDER BY due_date;
	`
	return r.queryLoans(ctx, query, domain.LoanActive, day)
}

func (r *PgxLoanRepository) ListUnnotifiedLoans(ctx context.Context) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE NOT notified ORDER BY created_at;`
	return r.queryLoans(ctx, query)
}

func (r *PgxLoanRepository) queryLoans(ctx context.Context, query string, args ...any) ([]domain.Loan, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans: %w", err)
	}
	defer rows.Close()

	loans := []domain.Loan{}
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		loans = append(loans, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loan rows: %w", err)
	}
	return loans, nil
}

func (r *PgxLoanRepository) FindRepaymentsByLoanID(ctx context.Context, loanID string) ([]domain.Repayment, error) {
	query := `
		SELECT repayment_id, loan_id, amount, kind, note, recorded_at, recorded_by
		FROM loan_repayments
		WHERE loan_id = $1
		ORDER BY recorded_at, repayment_id;
	`
	rows, err := r.pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to query repayments for loan %s: %w", loanID, err)
	}
	defer rows.Close()

	repayments := []domain.Repayment{}
	for rows.Next() {
		var rp domain.Repayment
		if err := rows.Scan(
			&rp.RepaymentID,
			&rp.LoanID,
			&rp.Amount,
			&rp.Kind,
			&rp.Note,
			&rp.RecordedAt,
			&rp.RecordedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan repayment row for loan %s: %w", loanID, err)
		}
		repayments = append(repayments, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating repayment rows for loan %s: %w", loanID, err)
	}
	return repayments, nil
}

func (r *PgxLoanRepository) SumLoanInterestByStatus(ctx context.Context, status domain.LoanStatus) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(interest), 0) FROM loans WHERE status = $1;`
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, status).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum loan interest with status %s: %w", status, err)
	}
	return total, nil
}

func (r *PgxLoanRepository) SumLoanPrincipalByStatus(ctx context.Context, status domain.LoanStatus) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(principal), 0) FROM loans WHERE status = $1;`
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, status).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum loan principal with status %s: %w", status, err)
	}
	return total, nil
}
