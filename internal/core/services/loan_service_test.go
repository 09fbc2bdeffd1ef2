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
	portssvc "github.com/unit-solidarite/backend/internal/core/ports/services"
	"github.com/unit-solidarite/backend/internal/core/services"
	"github.com/unit-solidarite/backend/internal/dto"
)

type LoanServiceTestSuite struct {
	suite.Suite
	mockLoanRepo  *MockLoanRepository
	mockFundSvc   *MockFundService
	mockMemberSvc *MockMemberService
	mockNotifier  *MockNotifier
	service       portssvc.LoanSvcFacade
}

func (suite *LoanServiceTestSuite) SetupTest() {
	suite.mockLoanRepo = new(MockLoanRepository)
	suite.mockFundSvc = new(MockFundService)
	suite.mockMemberSvc = new(MockMemberService)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewLoanService(suite.mockLoanRepo, suite.mockFundSvc, suite.mockMemberSvc, suite.mockNotifier)
}

func activeMember(role domain.MemberRole) *domain.Member {
	return &domain.Member{
		MemberID: uuid.NewString(),
		Role:     role,
		IsActive: true,
	}
}

func fundWithAvailable(available int64) domain.FundSnapshot {
	return domain.NewFundSnapshot(decimal.NewFromInt(available), decimal.Zero, decimal.Zero)
}

func (suite *LoanServiceTestSuite) TestRequestLoan_Success() {
	ctx := context.Background()
	borrower := activeMember(domain.RoleMember)
	req := dto.CreateLoanRequest{
		Principal: decimal.NewFromInt(100),
		Motive:    "frais scolaires",
	}

	suite.mockMemberSvc.On("GetMemberByID", ctx, borrower.MemberID).Return(borrower, nil).Once()
	suite.mockLoanRepo.On("FindOpenLoanByBorrower", ctx, borrower.MemberID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockFundSvc.On("ComputeFund", ctx).Return(fundWithAvailable(400), nil).Once()
	suite.mockLoanRepo.On("SaveLoan", ctx, mock.AnythingOfType("domain.Loan")).Return(nil).Once()

	loan, err := suite.service.RequestLoan(ctx, borrower.MemberID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(loan)
	suite.Equal(domain.LoanPending, loan.Status)
	suite.True(loan.Interest.Equal(decimal.NewFromInt(5)), "interest should be 5%% of 100")
	suite.True(loan.TotalOwed.Equal(decimal.NewFromInt(105)))
	suite.False(loan.Notified)
	suite.WithinDuration(domain.AddMonthsClamped(time.Now().UTC(), 1), loan.DueDate, time.Minute)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestRequestLoan_InterestRoundsUp() {
	ctx := context.Background()
	borrower := activeMember(domain.RoleMember)
	req := dto.CreateLoanRequest{
		Principal: decimal.NewFromInt(101),
		Motive:    "urgence",
	}

	suite.mockMemberSvc.On("GetMemberByID", ctx, borrower.MemberID).Return(borrower, nil).Once()
	suite.mockLoanRepo.On("FindOpenLoanByBorrower", ctx, borrower.MemberID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockFundSvc.On("ComputeFund", ctx).Return(fundWithAvailable(400), nil).Once()
	suite.mockLoanRepo.On("SaveLoan", ctx, mock.AnythingOfType("domain.Loan")).Return(nil).Once()

	loan, err := suite.service.RequestLoan(ctx, borrower.MemberID, req)

	suite.Require().NoError(err)
	// 101 * 5 / 100 = 5.05, rounded up to the next whole unit
	suite.True(loan.Interest.Equal(decimal.NewFromInt(6)), "got %s", loan.Interest)
	suite.True(loan.TotalOwed.Equal(decimal.NewFromInt(107)))
}

func (suite *LoanServiceTestSuite) TestRequestLoan_CeilingExceeded() {
	ctx := context.Background()
	borrower := activeMember(domain.RoleMember)
	req := dto.CreateLoanRequest{
		Principal: decimal.NewFromInt(201),
		Motive:    "trop gros",
	}

	suite.mockMemberSvc.On("GetMemberByID", ctx, borrower.MemberID).Return(borrower, nil).Once()
	suite.mockLoanRepo.On("FindOpenLoanByBorrower", ctx, borrower.MemberID).Return(nil, apperrors.ErrNotFound).Once()
	// available 400 -> ceiling 200
	suite.mockFundSvc.On("ComputeFund", ctx).Return(fundWithAvailable(400), nil).Once()

	loan, err := suite.service.RequestLoan(ctx, borrower.MemberID, req)

	suite.Require().Error(err)
	suite.Nil(loan)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "SaveLoan", mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestRequestLoan_OpenLoanExists() {
	ctx := context.Background()
	borrower := activeMember(domain.RoleMember)
	req := dto.CreateLoanRequest{
		Principal: decimal.NewFromInt(50),
		Motive:    "deuxieme pret",
	}
	existing := &domain.Loan{LoanID: uuid.NewString(), BorrowerID: borrower.MemberID, Status: domain.LoanActive}

	suite.mockMemberSvc.On("GetMemberByID", ctx, borrower.MemberID).Return(borrower, nil).Once()
	suite.mockLoanRepo.On("FindOpenLoanByBorrower", ctx, borrower.MemberID).Return(existing, nil).Once()

	loan, err := suite.service.RequestLoan(ctx, borrower.MemberID, req)

	suite.Require().Error(err)
	suite.Nil(loan)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LoanServiceTestSuite) TestRequestLoan_NonPositivePrincipal() {
	ctx := context.Background()
	borrower := activeMember(domain.RoleMember)
	req := dto.CreateLoanRequest{
		Principal: decimal.Zero,
		Motive:    "rien",
	}

	suite.mockMemberSvc.On("GetMemberByID", ctx, borrower.MemberID).Return(borrower, nil).Once()

	loan, err := suite.service.RequestLoan(ctx, borrower.MemberID, req)

	suite.Require().Error(err)
	suite.Nil(loan)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LoanServiceTestSuite) TestRequestLoan_RaceLostOnInsert() {
	ctx := context.Background()
	borrower := activeMember(domain.RoleMember)
	req := dto.CreateLoanRequest{
		Principal: decimal.NewFromInt(50),
		Motive:    "course",
	}

	suite.mockMemberSvc.On("GetMemberByID", ctx, borrower.MemberID).Return(borrower, nil).Once()
	suite.mockLoanRepo.On("FindOpenLoanByBorrower", ctx, borrower.MemberID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockFundSvc.On("ComputeFund", ctx).Return(fundWithAvailable(400), nil).Once()
	suite.mockLoanRepo.On("SaveLoan", ctx, mock.AnythingOfType("domain.Loan")).Return(apperrors.ErrConflict).Once()

	loan, err := suite.service.RequestLoan(ctx, borrower.MemberID, req)

	suite.Require().Error(err)
	suite.Nil(loan)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LoanServiceTestSuite) TestProcessLoan_Approve() {
	ctx := context.Background()
	treasurerID := uuid.NewString()
	loan := &domain.Loan{
		LoanID:     uuid.NewString(),
		BorrowerID: uuid.NewString(),
		Status:     domain.LoanPending,
	}
	req := dto.ProcessLoanRequest{Decision: dto.DecisionApprove, Note: "ok"}

	suite.mockMemberSvc.On("AuthorizeRole", ctx, treasurerID, domain.RoleTreasurer).Return(nil).Once()
	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("DecideLoan", ctx, loan.LoanID, domain.LoanActive, treasurerID, mock.AnythingOfType("time.Time"), "ok").Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, mock.AnythingOfType("domain.NotificationIntent")).Return(nil).Once()

	processed, err := suite.service.ProcessLoan(ctx, loan.LoanID, req, treasurerID)

	suite.Require().NoError(err)
	suite.Equal(domain.LoanActive, processed.Status)
	suite.Require().NotNil(processed.ProcessedBy)
	suite.Equal(treasurerID, *processed.ProcessedBy)
	suite.mockLoanRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestProcessLoan_AlreadyProcessed() {
	ctx := context.Background()
	treasurerID := uuid.NewString()
	loan := &domain.Loan{
		LoanID: uuid.NewString(),
		Status: domain.LoanActive,
	}
	req := dto.ProcessLoanRequest{Decision: dto.DecisionReject}

	suite.mockMemberSvc.On("AuthorizeRole", ctx, treasurerID, domain.RoleTreasurer).Return(nil).Once()
	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()

	processed, err := suite.service.ProcessLoan(ctx, loan.LoanID, req, treasurerID)

	suite.Require().Error(err)
	suite.Nil(processed)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "DecideLoan", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestProcessLoan_NotTreasurer() {
	ctx := context.Background()
	actorID := uuid.NewString()
	req := dto.ProcessLoanRequest{Decision: dto.DecisionApprove}

	suite.mockMemberSvc.On("AuthorizeRole", ctx, actorID, domain.RoleTreasurer).Return(apperrors.ErrForbidden).Once()

	processed, err := suite.service.ProcessLoan(ctx, uuid.NewString(), req, actorID)

	suite.Require().Error(err)
	suite.Nil(processed)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *LoanServiceTestSuite) TestRecordRepayment_ClosesLoanWhenFullyRepaid() {
	ctx := context.Background()
	treasurerID := uuid.NewString()
	loan := &domain.Loan{
		LoanID:       uuid.NewString(),
		BorrowerID:   uuid.NewString(),
		Status:       domain.LoanActive,
		TotalOwed:    decimal.NewFromInt(105),
		AmountRepaid: decimal.NewFromInt(100),
	}
	req := dto.RecordRepaymentRequest{Amount: decimal.NewFromInt(5)}

	suite.mockMemberSvc.On("AuthorizeRole", ctx, treasurerID, domain.RoleTreasurer).Return(nil).Once()
	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("SaveRepayment", ctx, mock.AnythingOfType("domain.Loan"), mock.AnythingOfType("domain.Repayment")).Return(nil).Once()
	suite.mockLoanRepo.On("FindRepaymentsByLoanID", ctx, loan.LoanID).Return([]domain.Repayment{}, nil).Once()

	updated, err := suite.service.RecordRepayment(ctx, loan.LoanID, req, treasurerID)

	suite.Require().NoError(err)
	suite.Equal(domain.LoanRepaid, updated.Status)
	suite.True(updated.AmountRepaid.Equal(decimal.NewFromInt(105)))
	suite.True(updated.Remaining().IsZero())
}

func (suite *LoanServiceTestSuite) TestRecordRepayment_ExceedsRemaining() {
	ctx := context.Background()
	treasurerID := uuid.NewString()
	loan := &domain.Loan{
		LoanID:       uuid.NewString(),
		Status:       domain.LoanActive,
		TotalOwed:    decimal.NewFromInt(105),
		AmountRepaid: decimal.NewFromInt(100),
	}
	req := dto.RecordRepaymentRequest{Amount: decimal.NewFromInt(6)}

	suite.mockMemberSvc.On("AuthorizeRole", ctx, treasurerID, domain.RoleTreasurer).Return(nil).Once()
	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()

	updated, err := suite.service.RecordRepayment(ctx, loan.LoanID, req, treasurerID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "SaveRepayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestRecordRepayment_LoanNotActive() {
	ctx := context.Background()
	treasurerID := uuid.NewString()
	loan := &domain.Loan{
		LoanID: uuid.NewString(),
		Status: domain.LoanPending,
	}
	req := dto.RecordRepaymentRequest{Amount: decimal.NewFromInt(10)}

	suite.mockMemberSvc.On("AuthorizeRole", ctx, treasurerID, domain.RoleTreasurer).Return(nil).Once()
	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()

	updated, err := suite.service.RecordRepayment(ctx, loan.LoanID, req, treasurerID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LoanServiceTestSuite) TestWithdrawLoan_Success() {
	ctx := context.Background()
	borrowerID := uuid.NewString()
	loan := &domain.Loan{
		LoanID:     uuid.NewString(),
		BorrowerID: borrowerID,
		Status:     domain.LoanPending,
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("DeleteLoan", ctx, loan.LoanID).Return(nil).Once()

	err := suite.service.WithdrawLoan(ctx, loan.LoanID, borrowerID)

	suite.Require().NoError(err)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestWithdrawLoan_NotBorrower() {
	ctx := context.Background()
	loan := &domain.Loan{
		LoanID:     uuid.NewString(),
		BorrowerID: uuid.NewString(),
		Status:     domain.LoanPending,
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()

	err := suite.service.WithdrawLoan(ctx, loan.LoanID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "DeleteLoan", mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestWithdrawLoan_AlreadyProcessed() {
	ctx := context.Background()
	borrowerID := uuid.NewString()
	loan := &domain.Loan{
		LoanID:     uuid.NewString(),
		BorrowerID: borrowerID,
		Status:     domain.LoanActive,
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()

	err := suite.service.WithdrawLoan(ctx, loan.LoanID, borrowerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LoanServiceTestSuite) TestLoanStats_Aggregation() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	loans := []domain.Loan{
		{Status: domain.LoanPending, Principal: decimal.NewFromInt(30)},
		{Status: domain.LoanActive, Principal: decimal.NewFromInt(100), TotalOwed: decimal.NewFromInt(105), AmountRepaid: decimal.NewFromInt(40)},
		{Status: domain.LoanRepaid, Principal: decimal.NewFromInt(50), TotalOwed: decimal.NewFromInt(53), AmountRepaid: decimal.NewFromInt(53)},
		{Status: domain.LoanRejected, Principal: decimal.NewFromInt(500)},
	}

	suite.mockMemberSvc.On("AuthorizeRole", ctx, requesterID, domain.RolePresident, domain.RoleTreasurer, domain.RoleCensor).Return(nil).Once()
	suite.mockLoanRepo.On("ListLoans", ctx).Return(loans, nil).Once()
	suite.mockFundSvc.On("ComputeFund", ctx).Return(fundWithAvailable(200), nil).Once()

	stats, err := suite.service.LoanStats(ctx, requesterID)

	suite.Require().NoError(err)
	suite.Equal(4, stats.Total)
	suite.Equal(1, stats.Pending)
	suite.Equal(1, stats.Active)
	suite.Equal(1, stats.Rejected)
	suite.Equal(1, stats.Repaid)
	suite.True(stats.TotalLent.Equal(decimal.NewFromInt(150)), "got %s", stats.TotalLent)
	suite.True(stats.Outstanding.Equal(decimal.NewFromInt(65)), "got %s", stats.Outstanding)
	suite.True(stats.BorrowCeiling.Equal(decimal.NewFromInt(100)))
}

func (suite *LoanServiceTestSuite) TestComputeInterest() {
	cases := []struct {
		principal int64
		expected  int64
	}{
		{100, 5},
		{101, 6},
		{20, 1},
		{1, 1},
		{200, 10},
	}
	for _, tc := range cases {
		got := services.ComputeInterest(decimal.NewFromInt(tc.principal), decimal.NewFromInt(5))
		suite.True(got.Equal(decimal.NewFromInt(tc.expected)), "principal %d: got %s want %d", tc.principal, got, tc.expected)
	}
}

func TestLoanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LoanServiceTestSuite))
}
