package services

// ServiceContainer bundles the service facades handed to the HTTP layer and
// the scheduler at startup.
type ServiceContainer struct {
	Member  MemberSvcFacade
	Fund    FundSvcFacade
	Fine    FineSvcFacade
	Loan    LoanSvcFacade
	Accrual AccrualSvcFacade
}
