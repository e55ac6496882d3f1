package domain

import "time"

// Permission is a single page-level access grant inside a role.
type Permission struct {
	Page      string `json:"page"`     // lookup key, unique within a role
	PageName  string `json:"pageName"` // display label
	Route     string `json:"route"`
	HasAccess bool   `json:"hasAccess"`
}

// Role is a named bundle of page permissions, scoped to one theater and stored
// as an item inside the theater's roles document.
type Role struct {
	RoleID      string       `json:"roleID"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	IsActive    bool         `json:"isActive"`
	Priority    int          `json:"priority"`
	IsGlobal    bool         `json:"isGlobal"`
	IsDefault   bool         `json:"isDefault"`   // fallback role seeded into newly created theaters
	IsAdminRole bool         `json:"isAdminRole"` // explicit privilege flag, not inferred from the name
	CanDelete   bool         `json:"canDelete"`
	CanEdit     bool         `json:"canEdit"`
	Permissions []Permission `json:"permissions"`
	CreatedAt   time.Time    `json:"createdAt"`
	LastUpdatedAt time.Time  `json:"lastUpdatedAt"`
}

func (r Role) GetItemID() string { return r.RoleID }

// AccessiblePages returns the page keys the role grants access to.
func (r Role) AccessiblePages() []string {
	pages := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		if p.HasAccess {
			pages = append(pages, p.Page)
		}
	}
	return pages
}

// HasPageAccess reports whether the role grants access to the given page key.
func (r Role) HasPageAccess(page string) bool {
	for _, p := range r.Permissions {
		if p.Page == page {
			return p.HasAccess
		}
	}
	return false
}

// UserType is the coarse privilege label derived from the resolved role.
type UserType string

const (
	UserTypeTheaterAdmin UserType = "theater_admin"
	UserTypeTheaterUser  UserType = "theater_user"
)

// ResolvedAccess is the realized access-control list for one user's role
// reference. A dangling or inactive reference resolves to the zero value with
// UserType degraded to UserTypeTheaterUser (fail closed, never an error).
type ResolvedAccess struct {
	RoleID      string       `json:"roleID"`
	RoleName    string       `json:"roleName"`
	UserType    UserType     `json:"userType"`
	Pages       []string     `json:"pages"`
	Permissions []Permission `json:"permissions"`
}

// DeniedAccess is the fail-closed resolution result.
func DeniedAccess() ResolvedAccess {
	return ResolvedAccess{
		UserType:    UserTypeTheaterUser,
		Pages:       []string{},
		Permissions: []Permission{},
	}
}

// CanAccess reports whether the resolved permission set covers the page key.
// Admin roles implicitly pass.
func (a ResolvedAccess) CanAccess(page string) bool {
	if a.UserType == UserTypeTheaterAdmin {
		return true
	}
	for _, p := range a.Pages {
		if p == page {
			return true
		}
	}
	return false
}
