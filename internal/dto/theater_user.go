package dto

import (
	"time"

	"github.com/screenbites/concession_backend/internal/core/domain"
)

// CreateTheaterUserRequest defines the payload for creating a staff account.
// The PIN is generated server-side and returned once in the create response.
type CreateTheaterUserRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"fullName" binding:"required,max=100"`
	Email       string `json:"email" binding:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty,max=20"`
	RoleID      string `json:"roleID" binding:"required"`
}

// UpdateTheaterUserRequest defines the payload for updating a staff account.
type UpdateTheaterUserRequest struct {
	FullName    *string `json:"fullName,omitempty" binding:"omitempty,max=100"`
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	PhoneNumber *string `json:"phoneNumber,omitempty" binding:"omitempty,max=20"`
	RoleID      *string `json:"roleID,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
	Password    *string `json:"password,omitempty" binding:"omitempty,min=8"`
}

// TheaterUserResponse is the API representation of a staff account. Credential
// hashes are never included.
type TheaterUserResponse struct {
	UserID      string     `json:"userID"`
	Username    string     `json:"username"`
	FullName    string     `json:"fullName"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phoneNumber"`
	RoleID      string     `json:"roleID"`
	IsActive    bool       `json:"isActive"`
	LastLogin   *time.Time `json:"lastLogin,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreateTheaterUserResponse carries the generated PIN alongside the account.
// The PIN is only ever returned here.
type CreateTheaterUserResponse struct {
	TheaterUserResponse
	Pin string `json:"pin"`
}

// ToTheaterUserResponse maps a domain staff account to its API representation.
func ToTheaterUserResponse(u domain.TheaterUser) TheaterUserResponse {
	return TheaterUserResponse{
		UserID:      u.UserID,
		Username:    u.Username,
		FullName:    u.FullName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		RoleID:      u.RoleID,
		IsActive:    u.IsActive,
		LastLogin:   u.LastLogin,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.LastUpdatedAt,
	}
}

// ToTheaterUserResponses maps a slice of domain staff accounts.
func ToTheaterUserResponses(users []domain.TheaterUser) []TheaterUserResponse {
	out := make([]TheaterUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToTheaterUserResponse(u))
	}
	return out
}
