package services

import (
	"context"

	"github.com/screenbites/concession_backend/internal/core/domain"
	"github.com/screenbites/concession_backend/internal/dto"
)

// RoleService manages a theater's roles and resolves them into realized
// permission sets.
type RoleService interface {
	// CreateRole adds a role to the theater's role set.
	CreateRole(ctx context.Context, theaterID string, req dto.CreateRoleRequest, creatorUserID string) (*domain.Role, error)

	// GetRoleByID retrieves one role or apperrors.ErrNotFound.
	GetRoleByID(ctx context.Context, theaterID, roleID string) (*domain.Role, error)

	// ListRoles retrieves a page of the theater's roles.
	ListRoles(ctx context.Context, theaterID string, limit, offset int) ([]domain.Role, error)

	// UpdateRole applies the non-nil fields of the request. Roles flagged
	// canEdit=false reject the update with apperrors.ErrForbidden.
	UpdateRole(ctx context.Context, theaterID, roleID string, req dto.UpdateRoleRequest, updaterUserID string) (*domain.Role, error)

	// RemoveRole removes a role from the theater. Idempotent: removing an
	// absent role succeeds. Roles flagged canDelete=false reject the removal
	// with apperrors.ErrForbidden.
	RemoveRole(ctx context.Context, theaterID, roleID string, updaterUserID string) error

	// ResolvePermissions turns a role reference into the realized access set.
	// A dangling or inactive reference resolves to the denied set rather than
	// an error; only infrastructure failures return one.
	ResolvePermissions(ctx context.Context, theaterID, roleID string) (domain.ResolvedAccess, error)
}
