package dto

import (
	"time"

	"github.com/screenbites/concession_backend/internal/core/domain"
)

// CreatePageAccessRequest defines the payload for registering a page in a
// theater's page catalog.
type CreatePageAccessRequest struct {
	Page     string `json:"page" binding:"required,min=2,max=50"`
	PageName string `json:"pageName" binding:"required,max=100"`
	Route    string `json:"route" binding:"required,max=200"`
}

// UpdatePageAccessRequest defines the payload for updating a page entry.
type UpdatePageAccessRequest struct {
	PageName *string `json:"pageName,omitempty" binding:"omitempty,max=100"`
	Route    *string `json:"route,omitempty" binding:"omitempty,max=200"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// PageAccessResponse is the API representation of a page catalog entry.
type PageAccessResponse struct {
	PageID    string    `json:"pageID"`
	Page      string    `json:"page"`
	PageName  string    `json:"pageName"`
	Route     string    `json:"route"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToPageAccessResponse maps a domain page entry to its API representation.
func ToPageAccessResponse(p domain.PageAccess) PageAccessResponse {
	return PageAccessResponse{
		PageID:    p.PageID,
		Page:      p.Page,
		PageName:  p.PageName,
		Route:     p.Route,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.LastUpdatedAt,
	}
}

// ToPageAccessResponses maps a slice of domain page entries.
func ToPageAccessResponses(pages []domain.PageAccess) []PageAccessResponse {
	out := make([]PageAccessResponse, 0, len(pages))
	for _, p := range pages {
		out = append(out, ToPageAccessResponse(p))
	}
	return out
}
