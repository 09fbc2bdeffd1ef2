package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/unit-solidarite/backend/internal/core/domain"
	portsrepo "github.com/unit-solidarite/backend/internal/core/ports/repositories"
	"github.com/unit-solidarite/backend/internal/dto"
)

// MockFineRepository is a mock type for the FineRepositoryFacade interface
type MockFineRepository struct {
	mock.Mock
}

func (m *MockFineRepository) FindFineByID(ctx context.Context, fineID string) (*domain.Fine, error) {
	args := m.Called(ctx, fineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fine), args.Error(1)
}

func (m *MockFineRepository) ListFines(ctx context.Context, filter portsrepo.FineFilter) ([]domain.Fine, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Fine), args.Error(1)
}

func (m *MockFineRepository) SumFinesByStatus(ctx context.Context, status domain.FineStatus) (decimal.Decimal, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockFineRepository) AggregateFinesByStatus(ctx context.Context) ([]portsrepo.FineAggregate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.FineAggregate), args.Error(1)
}

func (m *MockFineRepository) AggregateFinesByCategory(ctx context.Context) ([]portsrepo.FineAggregate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.FineAggregate), args.Error(1)
}

func (m *MockFineRepository) SaveFine(ctx context.Context, fine domain.Fine) error {
	args := m.Called(ctx, fine)
	return args.Error(0)
}

func (m *MockFineRepository) FinalizeFine(ctx context.Context, fineID string, status domain.FineStatus, paidAt *time.Time, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, fineID, status, paidAt, updatedBy, updatedAt)
	return args.Error(0)
}

// MockLoanRepository is a mock type for the LoanRepositoryFacade interface
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) FindOpenLoanByBorrower(ctx context.Context, borrowerID string) (*domain.Loan, error) {
	args := m.Called(ctx, borrowerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListLoans(ctx context.Context) ([]domain.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListLoansByBorrower(ctx context.Context, borrowerID string) ([]domain.Loan, error) {
	args := m.Called(ctx, borrowerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListActiveLoansDueBefore(ctx context.Context, day time.Time) ([]domain.Loan, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListUnnotifiedLoans(ctx context.Context) ([]domain.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) FindRepaymentsByLoanID(ctx context.Context, loanID string) ([]domain.Repayment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Repayment), args.Error(1)
}

func (m *MockLoanRepository) SumLoanInterestByStatus(ctx context.Context, status domain.LoanStatus) (decimal.Decimal, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLoanRepository) SumLoanPrincipalByStatus(ctx context.Context, status domain.LoanStatus) (decimal.Decimal, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) DecideLoan(ctx context.Context, loanID string, status domain.LoanStatus, processedBy string, processedAt time.Time, note string) error {
	args := m.Called(ctx, loanID, status, processedBy, processedAt, note)
	return args.Error(0)
}

func (m *MockLoanRepository) SaveRepayment(ctx context.Context, loan domain.Loan, repayment domain.Repayment) error {
	args := m.Called(ctx, loan, repayment)
	return args.Error(0)
}

func (m *MockLoanRepository) ApplyPenalty(ctx context.Context, loan domain.Loan, fine domain.Fine) error {
	args := m.Called(ctx, loan, fine)
	return args.Error(0)
}

func (m *MockLoanRepository) DeleteLoan(ctx context.Context, loanID string) error {
	args := m.Called(ctx, loanID)
	return args.Error(0)
}

func (m *MockLoanRepository) MarkLoanNotified(ctx context.Context, loanID string) error {
	args := m.Called(ctx, loanID)
	return args.Error(0)
}

// MockMemberRepository is a mock type for the MemberRepositoryFacade interface
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) FindMemberByEmail(ctx context.Context, email string) (*domain.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) FindActiveMemberByRole(ctx context.Context, role domain.MemberRole) (*domain.Member, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) ListMembers(ctx context.Context) ([]domain.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

func (m *MockMemberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

// MockMemberService is a mock type for the MemberSvcFacade interface
type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) AuthorizeRole(ctx context.Context, memberID string, roles ...domain.MemberRole) error {
	callArgs := []interface{}{ctx, memberID}
	for _, r := range roles {
		callArgs = append(callArgs, r)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

func (m *MockMemberService) GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberService) ListMembers(ctx context.Context, requesterID string) ([]domain.Member, error) {
	args := m.Called(ctx, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

func (m *MockMemberService) CreateMember(ctx context.Context, req dto.CreateMemberRequest, creatorID string) (*domain.Member, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

// MockFundService is a mock type for the FundSvcFacade interface
type MockFundService struct {
	mock.Mock
}

func (m *MockFundService) ComputeFund(ctx context.Context) (domain.FundSnapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.FundSnapshot), args.Error(1)
}

// MockNotifier is a mock type for the Notifier interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, intent domain.NotificationIntent) error {
	args := m.Called(ctx, intent)
	return args.Error(0)
}
