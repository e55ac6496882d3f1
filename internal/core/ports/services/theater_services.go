package services

import (
	"context"

	"github.com/screenbites/concession_backend/internal/core/domain"
	"github.com/screenbites/concession_backend/internal/dto"
)

// TheaterProvisionResult is everything created when a theater is provisioned.
// AdminPin is the generated admin PIN in the clear; it is returned exactly
// once and never stored outside its bcrypt hash.
type TheaterProvisionResult struct {
	Theater   domain.Theater
	AdminRole domain.Role
	AdminUser domain.TheaterUser
	AdminPin  string
}

// TheaterService manages theater tenants and their initial provisioning.
type TheaterService interface {
	// CreateTheater provisions a theater with its default page catalog, the
	// seeded admin role and the first admin account.
	CreateTheater(ctx context.Context, req dto.CreateTheaterRequest) (*TheaterProvisionResult, error)

	// GetTheaterByID retrieves a theater by its ID.
	GetTheaterByID(ctx context.Context, theaterID string) (*domain.Theater, error)

	// ListTheaters retrieves a page of theaters.
	ListTheaters(ctx context.Context, limit, offset int) ([]domain.Theater, error)

	// UpdateTheater applies the non-nil fields of the request.
	UpdateTheater(ctx context.Context, theaterID string, req dto.UpdateTheaterRequest, updaterUserID string) (*domain.Theater, error)

	// DeactivateTheater marks a theater inactive.
	DeactivateTheater(ctx context.Context, theaterID string, updaterUserID string) error
}
