package services

import (
	"context"

	"github.com/unit-solidarite/backend/internal/core/domain"
	"github.com/unit-solidarite/backend/internal/dto"
)

// MemberAuthorizerSvc is the role gate the treasury core consults before
// money-moving transitions. It is re-checked inside the core services even
// though routing already authenticated the actor: the core is the last line
// of defense for the monetary invariants.
type MemberAuthorizerSvc interface {
	// AuthorizeRole returns apperrors.ErrForbidden when the member does not
	// hold one of the roles or is blocked, apperrors.ErrNotFound when the
	// member does not exist.
	AuthorizeRole(ctx context.Context, memberID string, roles ...domain.MemberRole) error
}

// MemberReaderSvc defines read operations for member data.
type MemberReaderSvc interface {
	GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error)
	ListMembers(ctx context.Context, requesterID string) ([]domain.Member, error)
}

// MemberWriterSvc defines member management operations.
type MemberWriterSvc interface {
	// CreateMember registers a new member. President only.
	CreateMember(ctx context.Context, req dto.CreateMemberRequest, creatorID string) (*domain.Member, error)
}

// AuthSvc authenticates members and issues access tokens.
type AuthSvc interface {
	// Login verifies credentials and returns a signed JWT with the member.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

// MemberSvcFacade combines all member service interfaces.
type MemberSvcFacade interface {
	MemberAuthorizerSvc
	MemberReaderSvc
	MemberWriterSvc
	AuthSvc
}
