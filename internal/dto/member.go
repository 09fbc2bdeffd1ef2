package dto

import (
	"time"

	"github.com/unit-solidarite/backend/internal/core/domain"
)

// CreateMemberRequest registers a new association member.
type CreateMemberRequest struct {
	FirstName string            `json:"firstName" binding:"required"`
	LastName  string            `json:"lastName" binding:"required"`
	Email     string            `json:"email" binding:"required,email"`
	Password  string            `json:"password" binding:"required,min=8"`
	Role      domain.MemberRole `json:"role" binding:"required,oneof=president tresorier censeur membre"`
}

// LoginRequest carries member credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// MemberResponse is the API representation of a member.
type MemberResponse struct {
	MemberID  string    `json:"memberID"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	Token  string         `json:"token"`
	Member MemberResponse `json:"member"`
}

// ToMemberResponse converts a domain.Member to its API representation.
func ToMemberResponse(m *domain.Member) MemberResponse {
	return MemberResponse{
		MemberID:  m.MemberID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		Role:      string(m.Role),
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

// ToMemberResponses converts a slice of members.
func ToMemberResponses(members []domain.Member) []MemberResponse {
	responses := make([]MemberResponse, len(members))
	for i := range members {
		responses[i] = ToMemberResponse(&members[i])
	}
	return responses
}
