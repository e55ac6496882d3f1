package dto

import (
	"time"

	"github.com/screenbites/concession_backend/internal/core/domain"
)

// CreateTheaterRequest provisions a new theater together with its first admin
// account. The default page set and the default admin role are seeded
// server-side.
type CreateTheaterRequest struct {
	Name          string `json:"name" binding:"required,min=2,max=100"`
	Description   string `json:"description" binding:"max=500"`
	City          string `json:"city" binding:"max=100"`
	AdminUsername string `json:"adminUsername" binding:"required,min=3,max=50"`
	AdminPassword string `json:"adminPassword" binding:"required,min=8"`
	AdminFullName string `json:"adminFullName" binding:"required,max=100"`
	AdminEmail    string `json:"adminEmail" binding:"omitempty,email"`
}

// UpdateTheaterRequest defines the payload for updating a theater.
type UpdateTheaterRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=500"`
	City        *string `json:"city,omitempty" binding:"omitempty,max=100"`
}

// TheaterResponse is the API representation of a theater.
type TheaterResponse struct {
	TheaterID   string    `json:"theaterID"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	City        string    `json:"city"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToTheaterResponse maps a domain theater to its API representation.
func ToTheaterResponse(t domain.Theater) TheaterResponse {
	return TheaterResponse{
		TheaterID:   t.TheaterID,
		Name:        t.Name,
		Description: t.Description,
		City:        t.City,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.LastUpdatedAt,
	}
}
