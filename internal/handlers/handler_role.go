package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/screenbites/concession_backend/internal/core/ports/services"
	"github.com/screenbites/concession_backend/internal/dto"
	"github.com/screenbites/concession_backend/internal/middleware"
)

// roleHandler handles HTTP requests related to roles.
type roleHandler struct {
	roleService portssvc.RoleService
}

func newRoleHandler(rs portssvc.RoleService) *roleHandler {
	return &roleHandler{roleService: rs}
}

// registerRoleRoutes registers role management routes nested under a theater.
func registerRoleRoutes(rg *gin.RouterGroup, roleService portssvc.RoleService) {
	h := newRoleHandler(roleService)

	// The caller's own resolved access is readable with any valid session.
	rg.GET("/access", h.getMyAccess)

	roles := rg.Group("/roles", middleware.RequirePage(roleService, "roles"))
	{
		roles.POST("", h.createRole)
		roles.GET("", h.listRoles)
		roles.GET("/:role_id", h.getRole)
		roles.PUT("/:role_id", h.updateRole)
		roles.DELETE("/:role_id", h.removeRole)
		roles.GET("/:role_id/permissions", h.resolveRolePermissions)
	}
}

// getMyAccess godoc
// @Summary Get the caller's resolved access
// @Description Resolves the caller's role into the realized page permission set. A dangling role yields the denied set.
// @Tags roles
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Success 200 {object} dto.ResolvedAccessResponse
// @Security BearerAuth
// @Router /theaters/{theater_id}/access [get]
func (h *roleHandler) getMyAccess(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	roleID, _ := middleware.GetRoleIDFromContext(c)

	access, err := h.roleService.ResolvePermissions(c.Request.Context(), theaterID, roleID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to resolve access")
		return
	}
	c.JSON(http.StatusOK, dto.ToResolvedAccessResponse(access))
}

// createRole godoc
// @Summary Create a role
// @Tags roles
// @Accept  json
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   role body dto.CreateRoleRequest true "Role details"
// @Success 201 {object} dto.RoleResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 400 {object} map[string]string "Role name already exists"
// @Security BearerAuth
// @Router /theaters/{theater_id}/roles [post]
func (h *roleHandler) createRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")

	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRole", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	role, err := h.roleService.CreateRole(c.Request.Context(), theaterID, req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create role")
		return
	}
	c.JSON(http.StatusCreated, dto.ToRoleResponse(*role))
}

// listRoles godoc
// @Summary List roles
// @Tags roles
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   limit query int false "Page size"
// @Param   offset query int false "Page offset"
// @Success 200 {array} dto.RoleResponse
// @Security BearerAuth
// @Router /theaters/{theater_id}/roles [get]
func (h *roleHandler) listRoles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	limit, offset := parsePagination(c)

	roles, err := h.roleService.ListRoles(c.Request.Context(), theaterID, limit, offset)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list roles")
		return
	}
	c.JSON(http.StatusOK, dto.ToRoleResponses(roles))
}

// getRole godoc
// @Summary Get a role
// @Tags roles
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   role_id path string true "Role ID"
// @Success 200 {object} dto.RoleResponse
// @Failure 404 {object} map[string]string "Role not found"
// @Security BearerAuth
// @Router /theaters/{theater_id}/roles/{role_id} [get]
func (h *roleHandler) getRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	roleID := c.Param("role_id")

	role, err := h.roleService.GetRoleByID(c.Request.Context(), theaterID, roleID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to get role")
		return
	}
	c.JSON(http.StatusOK, dto.ToRoleResponse(*role))
}

// updateRole godoc
// @Summary Update a role
// @Tags roles
// @Accept  json
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   role_id path string true "Role ID"
// @Param   role body dto.UpdateRoleRequest true "Fields to update"
// @Success 200 {object} dto.RoleResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Role is not editable"
// @Failure 404 {object} map[string]string "Role not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Security BearerAuth
// @Router /theaters/{theater_id}/roles/{role_id} [put]
func (h *roleHandler) updateRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	roleID := c.Param("role_id")

	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateRole", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	role, err := h.roleService.UpdateRole(c.Request.Context(), theaterID, roleID, req, updaterUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update role")
		return
	}
	c.JSON(http.StatusOK, dto.ToRoleResponse(*role))
}

// removeRole godoc
// @Summary Remove a role
// @Description Removes a role. Removing an absent role succeeds; protected roles cannot be removed.
// @Tags roles
// @Param   theater_id path string true "Theater ID"
// @Param   role_id path string true "Role ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Role is protected"
// @Security BearerAuth
// @Router /theaters/{theater_id}/roles/{role_id} [delete]
func (h *roleHandler) removeRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	roleID := c.Param("role_id")

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.roleService.RemoveRole(c.Request.Context(), theaterID, roleID, updaterUserID); err != nil {
		respondWithError(c, logger, err, "Failed to remove role")
		return
	}
	c.Status(http.StatusNoContent)
}

// resolveRolePermissions godoc
// @Summary Resolve a role's permissions
// @Description Resolves any role reference into the realized access set, the same way the permission gate does.
// @Tags roles
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   role_id path string true "Role ID"
// @Success 200 {object} dto.ResolvedAccessResponse
// @Security BearerAuth
// @Router /theaters/{theater_id}/roles/{role_id}/permissions [get]
func (h *roleHandler) resolveRolePermissions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	roleID := c.Param("role_id")

	access, err := h.roleService.ResolvePermissions(c.Request.Context(), theaterID, roleID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to resolve permissions")
		return
	}
	c.JSON(http.StatusOK, dto.ToResolvedAccessResponse(access))
}
