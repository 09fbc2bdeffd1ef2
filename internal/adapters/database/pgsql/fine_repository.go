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

type PgxFineRepository struct {
	pool *pgxpool.Pool
}

// NewPgxFineRepository creates a new repository for fine data.
func NewPgxFineRepository(pool *pgxpool.Pool) portsrepo.FineRepositoryFacade {
	return &PgxFineRepository{pool: pool}
}

var _ portsrepo.FineRepositoryFacade = (*PgxFineRepository)(nil)

const fineColumns = `fine_id, member_id, meeting_id, loan_id, type, amount, category, description, status, paid_at, automatic, created_at, created_by, last_updated_at, last_updated_by`

func scanFine(row pgx.Row) (*domain.Fine, error) {
	var f domain.Fine
	err := row.Scan(
		&f.FineID,
		&f.MemberID,
		&f.MeetingID,
		&f.LoanID,
		&f.Type,
		&f.Amount,
		&f.Category,
		&f.Description,
		&f.Status,
		&f.PaidAt,
		&f.Automatic,
		&f.CreatedAt,
		&f.CreatedBy,
		&f.LastUpdatedAt,
		&f.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PgxFineRepository) SaveFine(ctx context.Context, fine domain.Fine) error {
	query := `
		INSERT INTO fines (` + fineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.pool.Exec(ctx, query,
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
		return fmt.Errorf("failed to save fine: %w", err)
	}
	return nil
}

// FinalizeFine is a conditional update: the WHERE clause only matches a fine
// still pending, so two concurrent finalizations cannot both succeed.
func (r *PgxFineRepository) FinalizeFine(ctx context.Context, fineID string, status domain.FineStatus, paidAt *time.Time, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE fines
		SET status = $1, paid_at = $2, last_updated_at = $3, last_updated_by = $4
		WHERE fine_id = $5 AND status = $6;
	`
	cmdTag, err := r.pool.Exec(ctx, query, status, paidAt, updatedAt, updatedBy, fineID, domain.FinePending)
	if err != nil {
		return fmt.Errorf("failed to finalize fine %s: %w", fineID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM fines WHERE fine_id = $1);`, fineID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check fine %s: %w", fineID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("fine %s already finalized: %w", fineID, apperrors.ErrConflict)
	}
	return nil
}

func (r *PgxFineRepository) FindFineByID(ctx context.Context, fineID string) (*domain.Fine, error) {
	query := `SELECT ` + fineColumns + ` FROM fines WHERE fine_id = $1;`
	f, err := scanFine(r.pool.QueryRow(ctx, query, fineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fine by ID %s: %w", fineID, err)
	}
	return f, nil
}

func (r *PgxFineRepository) ListFines(ctx context.Context, filter portsrepo.FineFilter) ([]domain.Fine, error) {
	query := `SELECT ` + fineColumns + ` FROM fines WHERE 1=1`
	args := []any{}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.MemberID != nil {
		args = append(args, *filter.MemberID)
		query += fmt.Sprintf(" AND member_id = $%d", len(args))
	}
	query += " ORDER BY created_at DESC;"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fines: %w", err)
	}
	defer rows.Close()

	fines := []domain.Fine{}
	for rows.Next() {
		f, err := scanFine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fine row: %w", err)
		}
		fines = append(fines, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fine rows: %w", err)
	}
	return fines, nil
}

func (r *PgxFineRepository) SumFinesByStatus(ctx context.Context, status domain.FineStatus) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM fines WHERE status = $1;`
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, status).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum fines with status %s: %w", status, err)
	}
	return total, nil
}

func (r *PgxFineRepository) AggregateFinesByStatus(ctx context.Context) ([]portsrepo.FineAggregate, error) {
	query := `
		SELECT status, COUNT(*), COALESCE(SUM(amount), 0)
		FROM fines
		GROUP BY status
		ORDER BY status;
	`
	return r.aggregate(ctx, query)
}

func (r *PgxFineRepository) AggregateFinesByCategory(ctx context.Context) ([]portsrepo.FineAggregate, error) {
	query := `
		SELECT category, COUNT(*), COALESCE(SUM(amount), 0)
		FROM fines
		GROUP BY category
		ORDER BY category;
	`
	return r.aggregate(ctx, query)
}

func (r *PgxFineRepository) aggregate(ctx context.Context, query string) ([]portsrepo.FineAggregate, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate fines: %w", err)
	}
	defer rows.Close()

	aggregates := []portsrepo.FineAggregate{}
	for rows.Next() {
		var a portsrepo.FineAggregate
		if err := rows.Scan(&a.Key, &a.Count, &a.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan fine aggregate row: %w", err)
		}
		aggregates = append(aggregates, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fine aggregate rows: %w", err)
	}
	return aggregates, nil
}
