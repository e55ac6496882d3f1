package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/screenbites/concession_backend/internal/core/domain"
	portssvc "github.com/screenbites/concession_backend/internal/core/ports/services"
)

// RequireTheaterScope rejects requests whose :theater_id path parameter does
// not match the theater the token was issued for. Cross-theater access is
// never allowed, whatever the role grants.
func RequireTheaterScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenTheaterID, ok := GetTheaterIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing theater scope"})
			return
		}
		if pathTheaterID := c.Param("theater_id"); pathTheaterID != "" && pathTheaterID != tokenTheaterID {
			GetLoggerFromCtx(c.Request.Context()).Warn("Cross-theater access rejected",
				"path_theater_id", pathTheaterID)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access to this theater is not allowed"})
			return
		}
		c.Next()
	}
}

// RequirePage gates a route behind a page-level permission. The caller's role
// is resolved on every request, so a role edit takes effect immediately; a
// dangling or inactive role resolves to no access.
func RequirePage(roleSvc portssvc.RoleService, page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		access, ok := resolveAccess(c, roleSvc)
		if !ok {
			return
		}
		if !access.CanAccess(page) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have access to this page"})
			return
		}
		c.Next()
	}
}

// RequireAdmin gates a route behind the admin role flag.
func RequireAdmin(roleSvc portssvc.RoleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		access, ok := resolveAccess(c, roleSvc)
		if !ok {
			return
		}
		if access.UserType != domain.UserTypeTheaterAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

func resolveAccess(c *gin.Context, roleSvc portssvc.RoleService) (domain.ResolvedAccess, bool) {
	theaterID, okTheater := GetTheaterIDFromContext(c)
	roleID, okRole := GetRoleIDFromContext(c)
	if !okTheater || !okRole {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing session scope"})
		return domain.ResolvedAccess{}, false
	}

	access, err := roleSvc.ResolvePermissions(c.Request.Context(), theaterID, roleID)
	if err != nil {
		GetLoggerFromCtx(c.Request.Context()).Error("Failed to resolve permissions", "error", err.Error())
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve permissions"})
		return domain.ResolvedAccess{}, false
	}
	return access, true
}
