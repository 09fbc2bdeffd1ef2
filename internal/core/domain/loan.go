package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus indicates the state of a loan. rejected and repaid are terminal;
// a pending loan withdrawn by its borrower is deleted outright since no money
// moved. The original "approuve" label is folded into en_cours at processing
// time: an approved loan is immediately considered disbursed.
type LoanStatus string

const (
	LoanPending  LoanStatus = "en_attente"
	LoanActive   LoanStatus = "en_cours"
	LoanRejected LoanStatus = "refuse"
	LoanRepaid   LoanStatus = "rembourse"
)

// NonTerminalLoanStatuses are the statuses that block a borrower from
// requesting another loan.
var NonTerminalLoanStatuses = []LoanStatus{LoanPending, LoanActive}

// RepaymentKind distinguishes principal repayments from penalty settlements.
type RepaymentKind string

const (
	RepaymentPrincipal RepaymentKind = "capital"
	RepaymentPenalty   RepaymentKind = "penalite"
)

// Repayment is one event in a loan's ordered repayment history.
type Repayment struct {
	RepaymentID string          `json:"repaymentID"`
	LoanID      string          `json:"loanID"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        RepaymentKind   `json:"kind"`
	Note        string          `json:"note"`
	RecordedAt  time.Time       `json:"recordedAt"`
	RecordedBy  string          `json:"recordedBy"`
}

// Loan represents a member's borrowing against the treasury fund.
type Loan struct {
	LoanID           string          `json:"loanID"`
	BorrowerID       string          `json:"borrowerID"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`     // fixed at creation, ceil(principal*rate/100)
	InterestRate     decimal.Decimal `json:"interestRate"` // percentage, frozen per loan
	TotalOwed        decimal.Decimal `json:"totalOwed"`    // principal + interest + penalties accrued
	Motive           string          `json:"motive"`
	Status           LoanStatus      `json:"status"`
	DueDate          time.Time       `json:"dueDate"`
	AmountRepaid     decimal.Decimal `json:"amountRepaid"`
	PenaltiesAccrued decimal.Decimal `json:"penaltiesAccrued"`
	Notified         bool            `json:"notified"` // creation notification intents emitted
	ProcessedBy      *string         `json:"processedBy,omitempty"`
	ProcessedAt      *time.Time      `json:"processedAt,omitempty"`
	ProcessingNote   string          `json:"processingNote,omitempty"`
	Repayments       []Repayment     `json:"repayments,omitempty"`
	AuditFields
}

// Remaining returns the outstanding balance still owed on the loan.
func (l *Loan) Remaining() decimal.Decimal {
	return l.TotalOwed.Sub(l.AmountRepaid)
}

// IsOverdue reports whether an active loan passed its due date as of the
// given day.
func (l *Loan) IsOverdue(today time.Time) bool {
	return l.Status == LoanActive && TruncateToDay(l.DueDate).Before(TruncateToDay(today))
}

// DaysOverdue returns the number of whole days the loan is past its due date,
// zero when not overdue.
func (l *Loan) DaysOverdue(today time.Time) int {
	due := TruncateToDay(l.DueDate)
	day := TruncateToDay(today)
	if !day.After(due) {
		return 0
	}
	return int(day.Sub(due) / (24 * time.Hour))
}
