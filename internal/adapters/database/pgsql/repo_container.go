package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/unit-solidarite/backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgx-backed repositories into the provider
// consumed by the service container.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		FineRepo:   NewPgxFineRepository(dbPool),
		LoanRepo:   NewPgxLoanRepository(dbPool),
		MemberRepo: NewPgxMemberRepository(dbPool),
	}
}
