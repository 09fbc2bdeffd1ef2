package services

import (
	portsrepo "github.com/unit-solidarite/backend/internal/core/ports/repositories"
	portssvc "github.com/unit-solidarite/backend/internal/core/ports/services"
	"github.com/unit-solidarite/backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier portssvc.Notifier) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Member and fund services first since the others depend on them
	container.Member = NewMemberService(repos.MemberRepo, cfg)
	container.Fund = NewFundService(repos.FineRepo, repos.LoanRepo)

	container.Fine = NewFineService(repos.FineRepo, container.Member)
	container.Loan = NewLoanService(repos.LoanRepo, container.Fund, container.Member, notifier)
	container.Accrual = NewAccrualService(repos.LoanRepo, repos.MemberRepo, notifier)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.MemberSvcFacade  = (*memberService)(nil)
	_ portssvc.FundSvcFacade    = (*fundService)(nil)
	_ portssvc.FineSvcFacade    = (*fineService)(nil)
	_ portssvc.LoanSvcFacade    = (*loanService)(nil)
	_ portssvc.AccrualSvcFacade = (*accrualService)(nil)
)
