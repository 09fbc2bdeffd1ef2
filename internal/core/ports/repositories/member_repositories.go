package repositories

import (
	"context"

	"github.com/unit-solidarite/backend/internal/core/domain"
)

// MemberReader defines read operations for member data.
type MemberReader interface {
	// FindMemberByID retrieves a member by identifier.
	FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// FindMemberByEmail retrieves a member by email address.
	FindMemberByEmail(ctx context.Context, email string) (*domain.Member, error)

	// FindActiveMemberByRole retrieves one active member holding the role
	// (the association has a single treasurer, censor and president).
	FindActiveMemberByRole(ctx context.Context, role domain.MemberRole) (*domain.Member, error)

	// ListMembers retrieves all members.
	ListMembers(ctx context.Context) ([]domain.Member, error)
}

// MemberWriter defines write operations for member data.
type MemberWriter interface {
	// SaveMember inserts a new member. A duplicate email surfaces as
	// apperrors.ErrDuplicate.
	SaveMember(ctx context.Context, member domain.Member) error
}

// MemberRepositoryFacade combines all member repository interfaces.
type MemberRepositoryFacade interface {
	MemberReader
	MemberWriter
}
