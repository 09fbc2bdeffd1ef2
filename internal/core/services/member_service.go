package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/unit-solidarite/backend/internal/apperrors"
	"github.com/unit-solidarite/backend/internal/core/domain"
	portsrepo "github.com/unit-solidarite/backend/internal/core/ports/repositories"
	portssvc "github.com/unit-solidarite/backend/internal/core/ports/services"
	"github.com/unit-solidarite/backend/internal/dto"
	"github.com/unit-solidarite/backend/internal/middleware"
	"github.com/unit-solidarite/backend/internal/platform/config"
	"github.com/unit-solidarite/backend/internal/utils"
)

// ErrInvalidCredentials is returned on login failure without revealing
// whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// memberService provides member management, authentication and the role
// authorization gate consulted by the treasury core.
type memberService struct {
	memberRepo portsrepo.MemberRepositoryFacade
	cfg        *config.Config
}

// NewMemberService creates a new MemberService.
func NewMemberService(memberRepo portsrepo.MemberRepositoryFacade, cfg *config.Config) portssvc.MemberSvcFacade {
	return &memberService{
		memberRepo: memberRepo,
		cfg:        cfg,
	}
}

var _ portssvc.MemberSvcFacade = (*memberService)(nil)

// AuthorizeRole verifies that the member exists, is active and holds one of
// the given roles. The check runs inside the core services even though
// routing already authenticated the actor, so treasury mutations never trust
// the transport layer alone.
func (s *memberService) AuthorizeRole(ctx context.Context, memberID string, roles ...domain.MemberRole) error {
	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return err
	}
	if !member.IsActive {
		return fmt.Errorf("%w: member account is blocked", apperrors.ErrForbidden)
	}
	if !member.HasRole(roles...) {
		return fmt.Errorf("%w: role %s is not allowed to perform this action", apperrors.ErrForbidden, member.Role)
	}
	return nil
}

// GetMemberByID retrieves a member by identifier.
func (s *memberService) GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	return s.memberRepo.FindMemberByID(ctx, memberID)
}

// ListMembers retrieves all members. Restricted to officer roles.
func (s *memberService) ListMembers(ctx context.Context, requesterID string) ([]domain.Member, error) {
	if err := s.AuthorizeRole(ctx, requesterID, domain.OfficerRoles...); err != nil {
		return nil, err
	}
	return s.memberRepo.ListMembers(ctx)
}

// CreateMember registers a new member. President only.
func (s *memberService) CreateMember(ctx context.Context, req dto.CreateMemberRequest, creatorID string) (*domain.Member, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeRole(ctx, creatorID, domain.RolePresident); err != nil {
		logger.Warn("Authorization failed for CreateMember", slog.String("creator_id", creatorID), slog.String("error", err.Error()))
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	member := domain.Member{
		MemberID:     uuid.NewString(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Role:         req.Role,
		IsActive:     true,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.memberRepo.SaveMember(ctx, member); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: a member with email %s already exists", apperrors.ErrDuplicate, req.Email)
		}
		logger.Error("Failed to save member", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save member: %w", err)
	}

	logger.Info("Member created", slog.String("new_member_id", member.MemberID), slog.String("role", string(member.Role)))
	return &member, nil
}

// Login verifies credentials and issues a signed JWT.
func (s *memberService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	member, err := s.memberRepo.FindMemberByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		logger.Error("Failed to look up member for login", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up member: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, member.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !member.IsActive {
		return nil, fmt.Errorf("%w: member account is blocked", apperrors.ErrForbidden)
	}

	token, err := utils.GenerateJWT(member.MemberID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	logger.Info("Member logged in", slog.String("login_member_id", member.MemberID))
	return &dto.LoginResponse{
		Token:  token,
		Member: dto.ToMemberResponse(member),
	}, nil
}
