package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/unit-solidarite/backend/internal/apperrors"
	"github.com/unit-solidarite/backend/internal/core/domain"
	portssvc "github.com/unit-solidarite/backend/internal/core/ports/services"
	"github.com/unit-solidarite/backend/internal/core/services"
	"github.com/unit-solidarite/backend/internal/dto"
	"github.com/unit-solidarite/backend/internal/platform/config"
	"github.com/unit-solidarite/backend/internal/utils"
)

type MemberServiceTestSuite struct {
	suite.Suite
	mockRepo *MockMemberRepository
	service  portssvc.MemberSvcFacade
	ctx      context.Context
}

func (s *MemberServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockMemberRepository)
	cfg := &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "unit-solidarite-test",
	}
	s.service = services.NewMemberService(s.mockRepo, cfg)
	s.ctx = context.Background()
}

func (s *MemberServiceTestSuite) member(role domain.MemberRole, active bool) *domain.Member {
	hash, err := utils.HashPassword("correct-horse")
	s.Require().NoError(err)
	return &domain.Member{
		MemberID:     "member-1",
		FirstName:    "Awa",
		LastName:     "Diop",
		Email:        "awa@example.com",
		Role:         role,
		IsActive:     active,
		PasswordHash: hash,
	}
}

func (s *MemberServiceTestSuite) TestAuthorizeRole_Allowed() {
	s.mockRepo.On("FindMemberByID", s.ctx, "member-1").Return(s.member(domain.RoleTreasurer, true), nil).Once()

	err := s.service.AuthorizeRole(s.ctx, "member-1", domain.RolePresident, domain.RoleTreasurer)

	s.NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *MemberServiceTestSuite) TestAuthorizeRole_WrongRole() {
	s.mockRepo.On("FindMemberByID", s.ctx, "member-1").Return(s.member(domain.RoleMember, true), nil).Once()

	err := s.service.AuthorizeRole(s.ctx, "member-1", domain.RoleTreasurer)

	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *MemberServiceTestSuite) TestAuthorizeRole_BlockedMember() {
	s.mockRepo.On("FindMemberByID", s.ctx, "member-1").Return(s.member(domain.RoleTreasurer, false), nil).Once()

	err := s.service.AuthorizeRole(s.ctx, "member-1", domain.RoleTreasurer)

	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *MemberServiceTestSuite) TestCreateMember_Success() {
	president := s.member(domain.RolePresident, true)
	s.mockRepo.On("FindMemberByID", s.ctx, "member-1").Return(president, nil).Once()
	s.mockRepo.On("SaveMember", s.ctx, mock.MatchedBy(func(m domain.Member) bool {
		return m.Email == "new@example.com" &&
			m.Role == domain.RoleMember &&
			m.IsActive &&
			m.MemberID != "" &&
			m.PasswordHash != "" &&
			m.PasswordHash != "s3cret-pass" &&
			m.CreatedBy == "member-1"
	})).Return(nil).Once()

	created, err := s.service.CreateMember(s.ctx, dto.CreateMemberRequest{
		FirstName: "Moussa",
		LastName:  "Ba",
		Email:     "new@example.com",
		Password:  "s3cret-pass",
		Role:      domain.RoleMember,
	}, "member-1")

	s.Require().NoError(err)
	s.True(utils.CheckPasswordHash("s3cret-pass", created.PasswordHash))
	s.mockRepo.AssertExpectations(s.T())
}

func (s *MemberServiceTestSuite) TestCreateMember_NotPresident() {
	s.mockRepo.On("FindMemberByID", s.ctx, "member-1").Return(s.member(domain.RoleTreasurer, true), nil).Once()

	_, err := s.service.CreateMember(s.ctx, dto.CreateMemberRequest{
		FirstName: "Moussa",
		LastName:  "Ba",
		Email:     "new@example.com",
		Password:  "s3cret-pass",
		Role:      domain.RoleMember,
	}, "member-1")

	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockRepo.AssertNotCalled(s.T(), "SaveMember", mock.Anything, mock.Anything)
}

func (s *MemberServiceTestSuite) TestCreateMember_DuplicateEmail() {
	s.mockRepo.On("FindMemberByID", s.ctx, "member-1").Return(s.member(domain.RolePresident, true), nil).Once()
	s.mockRepo.On("SaveMember", s.ctx, mock.AnythingOfType("domain.Member")).Return(apperrors.ErrDuplicate).Once()

	_, err := s.service.CreateMember(s.ctx, dto.CreateMemberRequest{
		FirstName: "Moussa",
		LastName:  "Ba",
		Email:     "awa@example.com",
		Password:  "s3cret-pass",
		Role:      domain.RoleMember,
	}, "member-1")

	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *MemberServiceTestSuite) TestLogin_Success() {
	member := s.member(domain.RoleMember, true)
	s.mockRepo.On("FindMemberByEmail", s.ctx, "awa@example.com").Return(member, nil).Once()

	resp, err := s.service.Login(s.ctx, dto.LoginRequest{Email: "awa@example.com", Password: "correct-horse"})

	s.Require().NoError(err)
	s.NotEmpty(resp.Token)
	s.Equal("member-1", resp.Member.MemberID)
}

func (s *MemberServiceTestSuite) TestLogin_WrongPassword() {
	member := s.member(domain.RoleMember, true)
	s.mockRepo.On("FindMemberByEmail", s.ctx, "awa@example.com").Return(member, nil).Once()

	_, err := s.service.Login(s.ctx, dto.LoginRequest{Email: "awa@example.com", Password: "wrong"})

	s.ErrorIs(err, services.ErrInvalidCredentials)
}

func (s *MemberServiceTestSuite) TestLogin_UnknownEmail() {
	s.mockRepo.On("FindMemberByEmail", s.ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.Login(s.ctx, dto.LoginRequest{Email: "ghost@example.com", Password: "whatever"})

	// Unknown email and wrong password are indistinguishable to the caller.
	s.ErrorIs(err, services.ErrInvalidCredentials)
}

func (s *MemberServiceTestSuite) TestLogin_BlockedMember() {
	member := s.member(domain.RoleMember, false)
	s.mockRepo.On("FindMemberByEmail", s.ctx, "awa@example.com").Return(member, nil).Once()

	_, err := s.service.Login(s.ctx, dto.LoginRequest{Email: "awa@example.com", Password: "correct-horse"})

	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *MemberServiceTestSuite) TestListMembers_OfficerOnly() {
	s.mockRepo.On("FindMemberByID", s.ctx, "member-1").Return(s.member(domain.RoleMember, true), nil).Once()

	_, err := s.service.ListMembers(s.ctx, "member-1")

	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockRepo.AssertNotCalled(s.T(), "ListMembers", mock.Anything)
}

func TestMemberServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MemberServiceTestSuite))
}
