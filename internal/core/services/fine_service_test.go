package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/unit-solidarite/backend/internal/apperrors"
	"github.com/unit-solidarite/backend/internal/core/domain"
	portsrepo "github.com/unit-solidarite/backend/internal/core/ports/repositories"
	portssvc "github.com/unit-solidarite/backend/internal/core/ports/services"
	"github.com/unit-solidarite/backend/internal/core/services"
	"github.com/unit-solidarite/backend/internal/dto"
)

type FineServiceTestSuite struct {
	suite.Suite
	mockFineRepo  *MockFineRepository
	mockMemberSvc *MockMemberService
	service       portssvc.FineSvcFacade
}

func (suite *FineServiceTestSuite) SetupTest() {
	suite.mockFineRepo = new(MockFineRepository)
	suite.mockMemberSvc = new(MockMemberService)
	suite.service = services.NewFineService(suite.mockFineRepo, suite.mockMemberSvc)
}

func (suite *FineServiceTestSuite) TestCreateFine_CatalogAmountApplied() {
	ctx := context.Background()
	censorID := uuid.NewString()
	member := activeMember(domain.RoleMember)
	req := dto.CreateFineRequest{
		MemberID: member.MemberID,
		Type:     domain.TypeUnexcusedAbsence,
	}

	suite.mockMemberSvc.On("AuthorizeRole", ctx, censorID, domain.RoleCensor).Return(nil).Once()
	suite.mockMemberSvc.On("GetMemberByID", ctx, member.MemberID).Return(member, nil).Once()
	suite.mockFineRepo.On("SaveFine", ctx, mock.AnythingOfType("domain.Fine")).Return(nil).Once()

	fine, err := suite.service.CreateFine(ctx, req, censorID)

	suite.Require().NoError(err)
	suite.True(fine.Amount.Equal(decimal.NewFromInt(50)), "got %s", fine.Amount)
	suite.Equal(domain.CategoryAbsence, fine.Category)
	suite.Equal(domain.FinePending, fine.Status)
	suite.False(fine.Automatic)
	suite.Equal(censorID, fine.CreatedBy)
}

func (suite *FineServiceTestSuite) TestCreateFine_ExplicitAmountOverrides() {
	ctx := context.Background()
	censorID := uuid.NewString()
	member := activeMember(domain.RoleMember)
	amount := decimal.NewFromInt(25)
	req := dto.CreateFineRequest{
		MemberID: member.MemberID,
		Type:     domain.TypeSimpleLateness,
		Amount:   &amount,
	}

	suite.mockMemberSvc.On("AuthorizeRole", ctx, censorID, domain.RoleCensor).Return(nil).Once()
	suite.mockMemberSvc.On("GetMemberByID", ctx, member.MemberID).Return(member, nil).Once()
	suite.mockFineRepo.On("SaveFine", ctx, mock.AnythingOfType("domain.Fine")).Return(nil).Once()

	fine, err := suite.service.CreateFine(ctx, req, censorID)

	suite.Require().NoError(err)
	suite.True(fine.Amount.Equal(amount))
}

func (suite *FineServiceTestSuite) TestCreateFine_OtherRequiresAmount() {
	ctx := context.Background()
	censorID := uuid.NewString()
	member := activeMember(domain.RoleMember)
	req := dto.CreateFineRequest{
		MemberID: member.MemberID,
		Type:     domain.TypeOther,
	}

	suite.mockMemberSvc.On("AuthorizeRole", ctx, censorID, domain.RoleCensor).Return(nil).Once()
	suite.mockMemberSvc.On("GetMemberByID", ctx, member.MemberID).Return(member, nil).Once()

	fine, err := suite.service.CreateFine(ctx, req, censorID)

	suite.Require().Error(err)
	suite.Nil(fine)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockFineRepo.AssertNotCalled(suite.T(), "SaveFine", mock.Anything, mock.Anything)
}

func (suite *FineServiceTestSuite) TestCreateFine_UnknownType() {
	ctx := context.Background()
	censorID := uuid.NewString()
	member := activeMember(domain.RoleMember)
	req := dto.CreateFineRequest{
		MemberID: member.MemberID,
		Type:     domain.FineType("inexistant"),
	}

	suite.mockMemberSvc.On("AuthorizeRole", ctx, censorID, domain.RoleCensor).Return(nil).Once()
	suite.mockMemberSvc.On("GetMemberByID", ctx, member.MemberID).Return(member, nil).Once()

	fine, err := suite.service.CreateFine(ctx, req, censorID)

	suite.Require().Error(err)
	suite.Nil(fine)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FineServiceTestSuite) TestCreateFine_NegativeAmountRejected() {
	ctx := context.Background()
	censorID := uuid.NewString()
	member := activeMember(domain.RoleMember)
	amount := decimal.NewFromInt(-10)
	req := dto.CreateFineRequest{
		MemberID: member.MemberID,
		Type:     domain.TypeOther,
		Amount:   &amount,
	}

	suite.mockMemberSvc.On("AuthorizeRole", ctx, censorID, domain.RoleCensor).Return(nil).Once()
	suite.mockMemberSvc.On("GetMemberByID", ctx, member.MemberID).Return(member, nil).Once()

	fine, err := suite.service.CreateFine(ctx, req, censorID)

	suite.Require().Error(err)
	suite.Nil(fine)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FineServiceTestSuite) TestCreateFine_NotCensor() {
	ctx := context.Background()
	actorID := uuid.NewString()
	req := dto.CreateFineRequest{
		MemberID: uuid.NewString(),
		Type:     domain.TypeSimpleLateness,
	}

	suite.mockMemberSvc.On("AuthorizeRole", ctx, actorID, domain.RoleCensor).Return(apperrors.ErrForbidden).Once()

	fine, err := suite.service.CreateFine(ctx, req, actorID)

	suite.Require().Error(err)
	suite.Nil(fine)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *FineServiceTestSuite) TestPayFine_Success() {
	ctx := context.Background()
	censorID := uuid.NewString()
	fineID := uuid.NewString()
	paid := &domain.Fine{FineID: fineID, Status: domain.FinePaid}

	suite.mockMemberSvc.On("AuthorizeRole", ctx, censorID, domain.RoleCensor).Return(nil).Once()
	suite.mockFineRepo.On("FinalizeFine", ctx, fineID, domain.FinePaid, mock.AnythingOfType("*time.Time"), censorID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockFineRepo.On("FindFineByID", ctx, fineID).Return(paid, nil).Once()

	fine, err := suite.service.PayFine(ctx, fineID, censorID)

	suite.Require().NoError(err)
	suite.Equal(domain.FinePaid, fine.Status)
}

func (suite *FineServiceTestSuite) TestPayFine_AlreadyFinalized() {
	ctx := context.Background()
	censorID := uuid.NewString()
	fineID := uuid.NewString()

	suite.mockMemberSvc.On("AuthorizeRole", ctx, censorID, domain.RoleCensor).Return(nil).Once()
	suite.mockFineRepo.On("FinalizeFine", ctx, fineID, domain.FinePaid, mock.AnythingOfType("*time.Time"), censorID, mock.AnythingOfType("time.Time")).Return(apperrors.ErrConflict).Once()

	fine, err := suite.service.PayFine(ctx, fineID, censorID)

	suite.Require().Error(err)
	suite.Nil(fine)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *FineServiceTestSuite) TestCancelFine_NoPaidAt() {
	ctx := context.Background()
	censorID := uuid.NewString()
	fineID := uuid.NewString()
	cancelled := &domain.Fine{FineID: fineID, Status: domain.FineCancelled}

	suite.mockMemberSvc.On("AuthorizeRole", ctx, censorID, domain.RoleCensor).Return(nil).Once()
	suite.mockFineRepo.On("FinalizeFine", ctx, fineID, domain.FineCancelled, (*time.Time)(nil), censorID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockFineRepo.On("FindFineByID", ctx, fineID).Return(cancelled, nil).Once()

	fine, err := suite.service.CancelFine(ctx, fineID, censorID)

	suite.Require().NoError(err)
	suite.Equal(domain.FineCancelled, fine.Status)
	suite.Nil(fine.PaidAt)
}

func (suite *FineServiceTestSuite) TestListMyFines_PendingTotal() {
	ctx := context.Background()
	memberID := uuid.NewString()
	fines := []domain.Fine{
		{FineID: uuid.NewString(), MemberID: memberID, Status: domain.FinePending, Amount: decimal.NewFromInt(10)},
		{FineID: uuid.NewString(), MemberID: memberID, Status: domain.FinePending, Amount: decimal.NewFromInt(50)},
		{FineID: uuid.NewString(), MemberID: memberID, Status: domain.FinePaid, Amount: decimal.NewFromInt(20)},
		{FineID: uuid.NewString(), MemberID: memberID, Status: domain.FineCancelled, Amount: decimal.NewFromInt(100)},
	}

	suite.mockFineRepo.On("ListFines", ctx, portsrepo.FineFilter{MemberID: &memberID}).Return(fines, nil).Once()

	resp, err := suite.service.ListMyFines(ctx, memberID)

	suite.Require().NoError(err)
	suite.Equal(4, resp.Count)
	suite.True(resp.TotalPending.Equal(decimal.NewFromInt(60)), "got %s", resp.TotalPending)
}

func (suite *FineServiceTestSuite) TestCreateAutomaticFine_FillsDefaults() {
	ctx := context.Background()
	input := domain.Fine{
		MemberID: uuid.NewString(),
		Type:     domain.TypeLateLoanRepayment,
		Amount:   decimal.NewFromInt(10),
		Category: domain.CategoryFinancial,
	}

	suite.mockFineRepo.On("SaveFine", ctx, mock.AnythingOfType("domain.Fine")).Return(nil).Once()

	fine, err := suite.service.CreateAutomaticFine(ctx, input)

	suite.Require().NoError(err)
	suite.NotEmpty(fine.FineID)
	suite.Equal(domain.FinePending, fine.Status)
	suite.True(fine.Automatic)
	suite.Empty(fine.CreatedBy)
}

func (suite *FineServiceTestSuite) TestFineCatalog_Complete() {
	// Every catalog entry except "autre" carries a positive canonical amount.
	for fineType, info := range domain.FineCatalog {
		if fineType == domain.TypeOther {
			suite.True(info.Amount.IsZero())
			continue
		}
		suite.True(info.Amount.IsPositive(), "type %s has amount %s", fineType, info.Amount)
		suite.NotEmpty(info.Label)
		suite.NotEmpty(info.Category)
	}
	suite.Len(domain.FineCatalog, 13)
}

func TestFineServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FineServiceTestSuite))
}
