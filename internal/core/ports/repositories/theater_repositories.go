package repositories

import (
	"context"
	"time"

	"github.com/screenbites/concession_backend/internal/core/domain"
)

// TheaterReader defines read operations for theater data
type TheaterReader interface {
	// FindTheaterByID retrieves a specific theater by its ID.
	FindTheaterByID(ctx context.Context, theaterID string) (*domain.Theater, error)

	// ListTheaters retrieves a page of theaters.
	ListTheaters(ctx context.Context, limit int, offset int) ([]domain.Theater, error)
}

// TheaterWriter defines write operations for theater data
type TheaterWriter interface {
	// SaveTheater persists a new theater.
	SaveTheater(ctx context.Context, theater domain.Theater) error

	// UpdateTheater persists changed fields, conditional on the version read.
	UpdateTheater(ctx context.Context, theater domain.Theater) error

	// DeactivateTheater marks a theater inactive.
	DeactivateTheater(ctx context.Context, theaterID string, updatedBy string, now time.Time) error
}

// TheaterRepositoryFacade combines all theater-related repository interfaces.
type TheaterRepositoryFacade interface {
	TheaterReader
	TheaterWriter
}
