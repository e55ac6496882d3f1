package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/screenbites/concession_backend/internal/apperrors"
	"github.com/screenbites/concession_backend/internal/core/domain"
	portsrepo "github.com/screenbites/concession_backend/internal/core/ports/repositories"
	portssvc "github.com/screenbites/concession_backend/internal/core/ports/services"
	"github.com/screenbites/concession_backend/internal/dto"
)

// roleService implements the RoleService interface
type roleService struct {
	BaseService
	roleRepo portsrepo.ArrayDocumentRepository[domain.Role]
}

// NewRoleService creates a new role service with the provided dependencies
func NewRoleService(roleRepo portsrepo.ArrayDocumentRepository[domain.Role]) portssvc.RoleService {
	return &roleService{roleRepo: roleRepo}
}

var _ portssvc.RoleService = (*roleService)(nil)

// validatePermissionPages rejects permission lists that name the same page
// more than once. A grant and a deny for one page would make access checks
// depend on entry order.
func validatePermissionPages(permissions []domain.Permission) error {
	seen := make(map[string]struct{}, len(permissions))
	for _, p := range permissions {
		key := strings.ToLower(p.Page)
		if _, dup := seen[key]; dup {
			return apperrors.NewValidationFailedError("permission page " + p.Page + " is listed more than once")
		}
		seen[key] = struct{}{}
	}
	return nil
}

func (s *roleService) CreateRole(ctx context.Context, theaterID string, req dto.CreateRoleRequest, creatorUserID string) (*domain.Role, error) {
	permissions := dto.ToPermissions(req.Permissions)
	if err := validatePermissionPages(permissions); err != nil {
		return nil, err
	}

	now := time.Now()
	role := domain.Role{
		RoleID:        uuid.NewString(),
		Name:          req.Name,
		Description:   req.Description,
		IsActive:      true,
		Priority:      req.Priority,
		IsAdminRole:   req.IsAdminRole,
		CanDelete:     true,
		CanEdit:       true,
		Permissions:   permissions,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	err := mutateDocument(ctx, s.roleRepo, theaterID, now, func(doc *domain.ArrayDocument[domain.Role]) error {
		for _, existing := range doc.Items {
			if strings.EqualFold(existing.Name, role.Name) {
				return apperrors.NewDuplicateError("role name " + role.Name + " already exists")
			}
		}
		doc.Items = append(doc.Items, role)
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to create role",
				slog.String("theater_id", theaterID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Role created successfully",
		slog.String("theater_id", theaterID),
		slog.String("role_id", role.RoleID),
		slog.String("creator_id", creatorUserID))
	return &role, nil
}

func (s *roleService) GetRoleByID(ctx context.Context, theaterID, roleID string) (*domain.Role, error) {
	doc, err := s.roleRepo.FindByTheater(ctx, theaterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("role " + roleID + " not found")
		}
		return nil, err
	}
	idx := doc.FindItem(roleID)
	if idx < 0 {
		return nil, apperrors.NewNotFoundError("role " + roleID + " not found")
	}
	role := doc.Items[idx]
	return &role, nil
}

func (s *roleService) ListRoles(ctx context.Context, theaterID string, limit, offset int) ([]domain.Role, error) {
	doc, err := s.roleRepo.FindOrCreateByTheater(ctx, theaterID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list roles",
			slog.String("theater_id", theaterID))
		return nil, err
	}
	return paginate(doc.Items, limit, offset), nil
}

func (s *roleService) UpdateRole(ctx context.Context, theaterID, roleID string, req dto.UpdateRoleRequest, updaterUserID string) (*domain.Role, error) {
	var newPermissions []domain.Permission
	if req.Permissions != nil {
		newPermissions = dto.ToPermissions(*req.Permissions)
		if err := validatePermissionPages(newPermissions); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	var updated domain.Role

	err := mutateDocument(ctx, s.roleRepo, theaterID, now, func(doc *domain.ArrayDocument[domain.Role]) error {
		idx := doc.FindItem(roleID)
		if idx < 0 {
			return apperrors.NewNotFoundError("role " + roleID + " not found")
		}
		role := &doc.Items[idx]
		if !role.CanEdit {
			return apperrors.NewForbiddenError("role " + role.Name + " cannot be edited")
		}

		if req.Name != nil {
			for _, existing := range doc.Items {
				if existing.RoleID != roleID && strings.EqualFold(existing.Name, *req.Name) {
					return apperrors.NewDuplicateError("role name " + *req.Name + " already exists")
				}
			}
			role.Name = *req.Name
		}
		if req.Description != nil {
			role.Description = *req.Description
		}
		if req.Priority != nil {
			role.Priority = *req.Priority
		}
		if req.IsActive != nil {
			role.IsActive = *req.IsActive
		}
		if req.IsAdminRole != nil {
			role.IsAdminRole = *req.IsAdminRole
		}
		if req.Permissions != nil {
			role.Permissions = newPermissions
		}
		role.LastUpdatedAt = now
		updated = *role
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Role updated successfully",
		slog.String("theater_id", theaterID),
		slog.String("role_id", roleID),
		slog.String("updater_id", updaterUserID))
	return &updated, nil
}

func (s *roleService) RemoveRole(ctx context.Context, theaterID, roleID string, updaterUserID string) error {
	now := time.Now()
	err := mutateDocument(ctx, s.roleRepo, theaterID, now, func(doc *domain.ArrayDocument[domain.Role]) error {
		idx := doc.FindItem(roleID)
		if idx < 0 {
			// Removing an already absent role is a success.
			return errNoChange
		}
		if !doc.Items[idx].CanDelete {
			return apperrors.NewForbiddenError("role " + doc.Items[idx].Name + " cannot be deleted")
		}
		doc.Items = append(doc.Items[:idx], doc.Items[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Role removed",
		slog.String("theater_id", theaterID),
		slog.String("role_id", roleID),
		slog.String("updater_id", updaterUserID))
	return nil
}

// ResolvePermissions fails closed: any unresolvable role reference yields the
// denied access set rather than an error, so a stale session degrades to no
// access instead of breaking the request pipeline.
func (s *roleService) ResolvePermissions(ctx context.Context, theaterID, roleID string) (domain.ResolvedAccess, error) {
	doc, err := s.roleRepo.FindByTheater(ctx, theaterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Role resolution found no role document, denying access",
				slog.String("theater_id", theaterID),
				slog.String("role_id", roleID))
			return domain.DeniedAccess(), nil
		}
		return domain.ResolvedAccess{}, err
	}

	idx := doc.FindItem(roleID)
	if idx < 0 {
		s.LogWarn(ctx, "Role reference is dangling, denying access",
			slog.String("theater_id", theaterID),
			slog.String("role_id", roleID))
		return domain.DeniedAccess(), nil
	}

	role := doc.Items[idx]
	if !role.IsActive {
		s.LogWarn(ctx, "Role is inactive, denying access",
			slog.String("theater_id", theaterID),
			slog.String("role_id", roleID))
		return domain.DeniedAccess(), nil
	}

	userType := domain.UserTypeTheaterUser
	if role.IsAdminRole {
		userType = domain.UserTypeTheaterAdmin
	}

	return domain.ResolvedAccess{
		RoleID:      role.RoleID,
		RoleName:    role.Name,
		UserType:    userType,
		Pages:       role.AccessiblePages(),
		Permissions: role.Permissions,
	}, nil
}
