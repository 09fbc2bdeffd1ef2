package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/unit-solidarite/backend/internal/core/domain"
)

// CreateLoanRequest is the payload for a member's loan request.
type CreateLoanRequest struct {
	Principal decimal.Decimal `json:"principal" binding:"required,gt=0"`
	Motive    string          `json:"motive" binding:"required"`
}

// ProcessLoanRequest carries the treasurer's decision on a pending loan.
type ProcessLoanRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approuve refuse"`
	Note     string `json:"note"`
}

// DecisionApprove and DecisionReject are the accepted ProcessLoanRequest decisions.
const (
	DecisionApprove = "approuve"
	DecisionReject  = "refuse"
)

// RecordRepaymentRequest is the payload for recording a repayment event.
type RecordRepaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Note   string          `json:"note"`
}

// RepaymentResponse is one repayment event in a loan's history.
type RepaymentResponse struct {
	RepaymentID string          `json:"repaymentID"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        string          `json:"kind"`
	Note        string          `json:"note,omitempty"`
	RecordedAt  time.Time       `json:"recordedAt"`
}

// LoanResponse is the API representation of a loan.
type LoanResponse struct {
	LoanID           string              `json:"loanID"`
	BorrowerID       string              `json:"borrowerID"`
	Principal        decimal.Decimal     `json:"principal"`
	Interest         decimal.Decimal     `json:"interest"`
	InterestRate     decimal.Decimal     `json:"interestRate"`
	TotalOwed        decimal.Decimal     `json:"totalOwed"`
	Motive           string              `json:"motive"`
	Status           string              `json:"status"`
	DueDate          time.Time           `json:"dueDate"`
	AmountRepaid     decimal.Decimal     `json:"amountRepaid"`
	Remaining        decimal.Decimal     `json:"remaining"`
	PenaltiesAccrued decimal.Decimal     `json:"penaltiesAccrued"`
	ProcessedBy      *string             `json:"processedBy,omitempty"`
	ProcessedAt      *time.Time          `json:"processedAt,omitempty"`
	ProcessingNote   string              `json:"processingNote,omitempty"`
	Repayments       []RepaymentResponse `json:"repayments,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
}

// LoanStatsResponse aggregates the loan book for the officer dashboard.
type LoanStatsResponse struct {
	Total         int                 `json:"total"`
	Pending       int                 `json:"pending"`
	Active        int                 `json:"active"`
	Rejected      int                 `json:"rejected"`
	Repaid        int                 `json:"repaid"`
	TotalLent     decimal.Decimal     `json:"totalLent"`     // principal of loans that were ever disbursed
	Outstanding   decimal.Decimal     `json:"outstanding"`   // balance still owed on active loans
	Fund          domain.FundSnapshot `json:"fund"`          // live treasury snapshot
	BorrowCeiling decimal.Decimal     `json:"borrowCeiling"` // convenience copy of Fund.BorrowCeiling
}

// ToRepaymentResponse converts a domain.Repayment to its API representation.
func ToRepaymentResponse(r *domain.Repayment) RepaymentResponse {
	return RepaymentResponse{
		RepaymentID: r.RepaymentID,
		Amount:      r.Amount,
		Kind:        string(r.Kind),
		Note:        r.Note,
		RecordedAt:  r.RecordedAt,
	}
}

// ToLoanResponse converts a domain.Loan to its API representation.
func ToLoanResponse(l *domain.Loan) LoanResponse {
	resp := LoanResponse{
		LoanID:           l.LoanID,
		BorrowerID:       l.BorrowerID,
		Principal:        l.Principal,
		Interest:         l.Interest,
		InterestRate:     l.InterestRate,
		TotalOwed:        l.TotalOwed,
		Motive:           l.Motive,
		Status:           string(l.Status),
		DueDate:          l.DueDate,
		AmountRepaid:     l.AmountRepaid,
		Remaining:        l.Remaining(),
		PenaltiesAccrued: l.PenaltiesAccrued,
		ProcessedBy:      l.ProcessedBy,
		ProcessedAt:      l.ProcessedAt,
		ProcessingNote:   l.ProcessingNote,
		CreatedAt:        l.CreatedAt,
	}
	if len(l.Repayments) > 0 {
		resp.Repayments = make([]RepaymentResponse, len(l.Repayments))
		for i := range l.Repayments {
			resp.Repayments[i] = ToRepaymentResponse(&l.Repayments[i])
		}
	}
	return resp
}

// ToLoanResponses converts a slice of loans.
func ToLoanResponses(loans []domain.Loan) []LoanResponse {
	responses := make([]LoanResponse, len(loans))
	for i := range loans {
		responses[i] = ToLoanResponse(&loans[i])
	}
	return responses
}
