package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/screenbites/concession_backend/internal/core/ports/services"
	"github.com/screenbites/concession_backend/internal/dto"
	"github.com/screenbites/concession_backend/internal/middleware"
)

// theaterHandler handles HTTP requests related to theaters.
type theaterHandler struct {
	theaterService portssvc.TheaterService
}

func newTheaterHandler(ts portssvc.TheaterService) *theaterHandler {
	return &theaterHandler{theaterService: ts}
}

// registerTheaterProvisioningRoutes registers the public theater signup route.
func registerTheaterProvisioningRoutes(rg *gin.RouterGroup, theaterService portssvc.TheaterService) {
	h := newTheaterHandler(theaterService)
	rg.POST("/theaters", h.createTheater)
}

// registerTheaterRoutes registers the authenticated theater management routes.
func registerTheaterRoutes(rg *gin.RouterGroup, theaterService portssvc.TheaterService, roleService portssvc.RoleService) {
	h := newTheaterHandler(theaterService)

	theaters := rg.Group("/theaters")
	{
		theaters.GET("/:theater_id", middleware.RequireTheaterScope(), h.getTheater)
		theaters.PUT("/:theater_id", middleware.RequireTheaterScope(), middleware.RequireAdmin(roleService), h.updateTheater)
		theaters.DELETE("/:theater_id", middleware.RequireTheaterScope(), middleware.RequireAdmin(roleService), h.deactivateTheater)
	}
}

// createTheater godoc
// @Summary Provision a new theater
// @Description Creates a theater with its default pages, protected admin role and first admin account. The admin PIN is returned exactly once.
// @Tags theaters
// @Accept  json
// @Produce  json
// @Param   theater body dto.CreateTheaterRequest true "Theater and admin details"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create theater"
// @Router /theaters [post]
func (h *theaterHandler) createTheater(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTheaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTheater", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	result, err := h.theaterService.CreateTheater(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create theater")
		return
	}

	logger.Info("Theater created successfully", slog.String("theater_id", result.Theater.TheaterID))
	c.JSON(http.StatusCreated, gin.H{
		"theater":   dto.ToTheaterResponse(result.Theater),
		"adminRole": dto.ToRoleResponse(result.AdminRole),
		"adminUser": dto.CreateTheaterUserResponse{
			TheaterUserResponse: dto.ToTheaterUserResponse(result.AdminUser),
			Pin:                 result.AdminPin,
		},
	})
}

// getTheater godoc
// @Summary Get theater details
// @Tags theaters
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Success 200 {object} dto.TheaterResponse
// @Failure 404 {object} map[string]string "Theater not found"
// @Security BearerAuth
// @Router /theaters/{theater_id} [get]
func (h *theaterHandler) getTheater(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")

	theater, err := h.theaterService.GetTheaterByID(c.Request.Context(), theaterID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to get theater")
		return
	}
	c.JSON(http.StatusOK, dto.ToTheaterResponse(*theater))
}

// updateTheater godoc
// @Summary Update theater details
// @Tags theaters
// @Accept  json
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   theater body dto.UpdateTheaterRequest true "Fields to update"
// @Success 200 {object} dto.TheaterResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Theater not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Security BearerAuth
// @Router /theaters/{theater_id} [put]
func (h *theaterHandler) updateTheater(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")

	var req dto.UpdateTheaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTheater", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	theater, err := h.theaterService.UpdateTheater(c.Request.Context(), theaterID, req, updaterUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update theater")
		return
	}
	c.JSON(http.StatusOK, dto.ToTheaterResponse(*theater))
}

// deactivateTheater godoc
// @Summary Deactivate a theater
// @Tags theaters
// @Param   theater_id path string true "Theater ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Theater not found"
// @Security BearerAuth
// @Router /theaters/{theater_id} [delete]
func (h *theaterHandler) deactivateTheater(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.theaterService.DeactivateTheater(c.Request.Context(), theaterID, updaterUserID); err != nil {
		respondWithError(c, logger, err, "Failed to deactivate theater")
		return
	}
	c.Status(http.StatusNoContent)
}
