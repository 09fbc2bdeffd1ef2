package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/unit-solidarite/backend/internal/core/domain"
	portsrepo "github.com/unit-solidarite/backend/internal/core/ports/repositories"
)

// CreateFineRequest is the payload for a censor-issued fine. Amount is only
// honored for the "autre" type; catalog types carry their canonical amount.
type CreateFineRequest struct {
	MemberID    string           `json:"memberID" binding:"required"`
	Type        domain.FineType  `json:"type" binding:"required"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description string           `json:"description"`
	MeetingID   *string          `json:"meetingID,omitempty"`
}

// FineResponse is the API representation of a fine.
type FineResponse struct {
	FineID      string          `json:"fineID"`
	MemberID    string          `json:"memberID"`
	MeetingID   *string         `json:"meetingID,omitempty"`
	LoanID      *string         `json:"loanID,omitempty"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status"`
	PaidAt      *time.Time      `json:"paidAt,omitempty"`
	Automatic   bool            `json:"automatic"`
	CreatedBy   string          `json:"createdBy,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// MyFinesResponse lists a member's own fines with the total still pending.
type MyFinesResponse struct {
	Count        int             `json:"count"`
	TotalPending decimal.Decimal `json:"totalPending"`
	Fines        []FineResponse  `json:"fines"`
}

// FineStatsResponse is the officer-facing ledger summary.
type FineStatsResponse struct {
	ByStatus    []portsrepo.FineAggregate `json:"byStatus"`
	ByCategory  []portsrepo.FineAggregate `json:"byCategory"`
	TotalPaid   decimal.Decimal           `json:"totalPaid"`
	TotalUnpaid decimal.Decimal           `json:"totalUnpaid"`
}

// ToFineResponse converts a domain.Fine to its API representation.
func ToFineResponse(f *domain.Fine) FineResponse {
	return FineResponse{
		FineID:      f.FineID,
		MemberID:    f.MemberID,
		MeetingID:   f.MeetingID,
		LoanID:      f.LoanID,
		Type:        string(f.Type),
		Amount:      f.Amount,
		Category:    string(f.Category),
		Description: f.Description,
		Status:      string(f.Status),
		PaidAt:      f.PaidAt,
		Automatic:   f.Automatic,
		CreatedBy:   f.CreatedBy,
		CreatedAt:   f.CreatedAt,
	}
}

// ToFineResponses converts a slice of fines.
func ToFineResponses(fines []domain.Fine) []FineResponse {
	responses := make([]FineResponse, len(fines))
	for i := range fines {
		responses[i] = ToFineResponse(&fines[i])
	}
	return responses
}
