package services

import (
	"context"

	"github.com/screenbites/concession_backend/internal/core/domain"
	"github.com/screenbites/concession_backend/internal/dto"
)

// TheaterUserService manages staff accounts and authenticates logins.
type TheaterUserService interface {
	// CreateUser adds a staff account and returns it together with the
	// generated PIN in the clear. The PIN is never retrievable afterwards.
	CreateUser(ctx context.Context, theaterID string, req dto.CreateTheaterUserRequest, creatorUserID string) (*domain.TheaterUser, string, error)

	// GetUserByID retrieves one staff account or apperrors.ErrNotFound.
	GetUserByID(ctx context.Context, theaterID, userID string) (*domain.TheaterUser, error)

	// ListUsers retrieves a page of the theater's staff accounts.
	ListUsers(ctx context.Context, theaterID string, limit, offset int) ([]domain.TheaterUser, error)

	// UpdateUser applies the non-nil fields of the request.
	UpdateUser(ctx context.Context, theaterID, userID string, req dto.UpdateTheaterUserRequest, updaterUserID string) (*domain.TheaterUser, error)

	// RemoveUser removes a staff account. Idempotent.
	RemoveUser(ctx context.Context, theaterID, userID string, updaterUserID string) error

	// Authenticate verifies a password or PIN login, maintaining the failed
	// attempt counter and lockout window. Invalid credentials and locked
	// accounts both surface as apperrors.ErrUnauthorized-wrapped errors
	// without revealing which.
	Authenticate(ctx context.Context, req dto.LoginRequest) (*domain.TheaterUser, error)
}
