package services

import (
	"context"
	"fmt"

	"github.com/unit-solidarite/backend/internal/core/domain"
	portsrepo "github.com/unit-solidarite/backend/internal/core/ports/repositories"
	portssvc "github.com/unit-solidarite/backend/internal/core/ports/services"
)

// fundService computes the treasury snapshot from the fine and loan ledgers.
type fundService struct {
	fineRepo portsrepo.FineReader
	loanRepo portsrepo.LoanReader
}

// NewFundService creates a new FundService.
func NewFundService(fineRepo portsrepo.FineReader, loanRepo portsrepo.LoanReader) portssvc.FundSvcFacade {
	return &fundService{
		fineRepo: fineRepo,
		loanRepo: loanRepo,
	}
}

var _ portssvc.FundSvcFacade = (*fundService)(nil)

// ComputeFund aggregates paid fines and collected interest minus outstanding
// principal. The result is derived fresh on every call.
func (s *fundService) ComputeFund(ctx context.Context) (domain.FundSnapshot, error) {
	finesCollected, err := s.fineRepo.SumFinesByStatus(ctx, domain.FinePaid)
	if err != nil {
		return domain.FundSnapshot{}, fmt.Errorf("failed to sum paid fines: %w", err)
	}

	interestCollected, err := s.loanRepo.SumLoanInterestByStatus(ctx, domain.LoanRepaid)
	if err != nil {
		return domain.FundSnapshot{}, fmt.Errorf("failed to sum repaid loan interest: %w", err)
	}

	outstandingPrincipal, err := s.loanRepo.SumLoanPrincipalByStatus(ctx, domain.LoanActive)
	if err != nil {
		return domain.FundSnapshot{}, fmt.Errorf("failed to sum active loan principal: %w", err)
	}

	return domain.NewFundSnapshot(finesCollected, interestCollected, outstandingPrincipal), nil
}
