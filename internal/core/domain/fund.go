package domain

import "github.com/shopspring/decimal"

// FundSnapshot is the derived, non-persisted view of the treasury. It is
// recomputed from the full fine and loan history on every read and never
// cached.
type FundSnapshot struct {
	FinesCollected       decimal.Decimal `json:"finesCollected"`       // sum of paid fines
	InterestCollected    decimal.Decimal `json:"interestCollected"`    // sum of interest on repaid loans
	TotalFund            decimal.Decimal `json:"totalFund"`            // finesCollected + interestCollected
	OutstandingPrincipal decimal.Decimal `json:"outstandingPrincipal"` // principal out on active loans
	AvailableFund        decimal.Decimal `json:"availableFund"`        // totalFund - outstandingPrincipal
	BorrowCeiling        decimal.Decimal `json:"borrowCeiling"`        // floor(availableFund * 0.5)
}

// NewFundSnapshot derives the snapshot fields from the three ledger aggregates.
func NewFundSnapshot(finesCollected, interestCollected, outstandingPrincipal decimal.Decimal) FundSnapshot {
	total := finesCollected.Add(interestCollected)
	available := total.Sub(outstandingPrincipal)
	return FundSnapshot{
		FinesCollected:       finesCollected,
		InterestCollected:    interestCollected,
		TotalFund:            total,
		OutstandingPrincipal: outstandingPrincipal,
		AvailableFund:        available,
		BorrowCeiling:        available.Div(decimal.NewFromInt(2)).Floor(),
	}
}
