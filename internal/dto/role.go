package dto

import (
	"time"

	"github.com/screenbites/concession_backend/internal/core/domain"
)

// PermissionInput is one page grant inside a role create/update payload.
type PermissionInput struct {
	Page      string `json:"page" binding:"required"`
	PageName  string `json:"pageName"`
	Route     string `json:"route"`
	HasAccess bool   `json:"hasAccess"`
}

// CreateRoleRequest defines the payload for creating a role in a theater.
type CreateRoleRequest struct {
	Name        string            `json:"name" binding:"required,min=2,max=50"`
	Description string            `json:"description" binding:"max=500"`
	Priority    int               `json:"priority" binding:"gte=0"`
	IsAdminRole bool              `json:"isAdminRole"`
	Permissions []PermissionInput `json:"permissions" binding:"dive"`
}

// UpdateRoleRequest defines the payload for updating a role. Nil fields are
// left untouched.
type UpdateRoleRequest struct {
	Name        *string            `json:"name,omitempty" binding:"omitempty,min=2,max=50"`
	Description *string            `json:"description,omitempty" binding:"omitempty,max=500"`
	Priority    *int               `json:"priority,omitempty" binding:"omitempty,gte=0"`
	IsActive    *bool              `json:"isActive,omitempty"`
	IsAdminRole *bool              `json:"isAdminRole,omitempty"`
	Permissions *[]PermissionInput `json:"permissions,omitempty" binding:"omitempty,dive"`
}

// RoleResponse is the API representation of a role.
type RoleResponse struct {
	RoleID      string              `json:"roleID"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	IsActive    bool                `json:"isActive"`
	Priority    int                 `json:"priority"`
	IsDefault   bool                `json:"isDefault"`
	IsAdminRole bool                `json:"isAdminRole"`
	CanDelete   bool                `json:"canDelete"`
	CanEdit     bool                `json:"canEdit"`
	Permissions []domain.Permission `json:"permissions"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// ResolvedAccessResponse is the realized permission set for one user.
type ResolvedAccessResponse struct {
	RoleID      string              `json:"roleID"`
	RoleName    string              `json:"roleName"`
	UserType    string              `json:"userType"`
	Pages       []string            `json:"pages"`
	Permissions []domain.Permission `json:"permissions"`
}

// ToRoleResponse maps a domain role to its API representation.
func ToRoleResponse(r domain.Role) RoleResponse {
	return RoleResponse{
		RoleID:      r.RoleID,
		Name:        r.Name,
		Description: r.Description,
		IsActive:    r.IsActive,
		Priority:    r.Priority,
		IsDefault:   r.IsDefault,
		IsAdminRole: r.IsAdminRole,
		CanDelete:   r.CanDelete,
		CanEdit:     r.CanEdit,
		Permissions: r.Permissions,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.LastUpdatedAt,
	}
}

// ToRoleResponses maps a slice of domain roles.
func ToRoleResponses(roles []domain.Role) []RoleResponse {
	out := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, ToRoleResponse(r))
	}
	return out
}

// ToResolvedAccessResponse maps a resolved access set to its API form.
func ToResolvedAccessResponse(a domain.ResolvedAccess) ResolvedAccessResponse {
	return ResolvedAccessResponse{
		RoleID:      a.RoleID,
		RoleName:    a.RoleName,
		UserType:    string(a.UserType),
		Pages:       a.Pages,
		Permissions: a.Permissions,
	}
}

// ToPermissions converts permission inputs to domain permissions.
func ToPermissions(in []PermissionInput) []domain.Permission {
	out := make([]domain.Permission, 0, len(in))
	for _, p := range in {
		out = append(out, domain.Permission{
			Page:      p.Page,
			PageName:  p.PageName,
			Route:     p.Route,
			HasAccess: p.HasAccess,
		})
	}
	return out
}
