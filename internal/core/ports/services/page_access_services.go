package services

import (
	"context"

	"github.com/screenbites/concession_backend/internal/core/domain"
	"github.com/screenbites/concession_backend/internal/dto"
)

// PageAccessService manages a theater's catalog of gateable pages.
type PageAccessService interface {
	// CreatePage registers a page in the theater's catalog.
	CreatePage(ctx context.Context, theaterID string, req dto.CreatePageAccessRequest, creatorUserID string) (*domain.PageAccess, error)

	// GetPageByID retrieves one page entry or apperrors.ErrNotFound.
	GetPageByID(ctx context.Context, theaterID, pageID string) (*domain.PageAccess, error)

	// ListPages retrieves a page of the theater's page catalog.
	ListPages(ctx context.Context, theaterID string, limit, offset int) ([]domain.PageAccess, error)

	// UpdatePage applies the non-nil fields of the request.
	UpdatePage(ctx context.Context, theaterID, pageID string, req dto.UpdatePageAccessRequest, updaterUserID string) (*domain.PageAccess, error)

	// RemovePage removes a page entry. Idempotent.
	RemovePage(ctx context.Context, theaterID, pageID string, updaterUserID string) error
}
