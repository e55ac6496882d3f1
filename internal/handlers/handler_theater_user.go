package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/screenbites/concession_backend/internal/core/ports/services"
	"github.com/screenbites/concession_backend/internal/dto"
	"github.com/screenbites/concession_backend/internal/middleware"
)

// theaterUserHandler handles HTTP requests related to staff accounts.
type theaterUserHandler struct {
	userService portssvc.TheaterUserService
}

func newTheaterUserHandler(us portssvc.TheaterUserService) *theaterUserHandler {
	return &theaterUserHandler{userService: us}
}

// registerTheaterUserRoutes registers staff management routes nested under a theater.
func registerTheaterUserRoutes(rg *gin.RouterGroup, userService portssvc.TheaterUserService, roleService portssvc.RoleService) {
	h := newTheaterUserHandler(userService)

	users := rg.Group("/users", middleware.RequirePage(roleService, "staff"))
	{
		users.POST("", h.createUser)
		users.GET("", h.listUsers)
		users.GET("/:user_id", h.getUser)
		users.PUT("/:user_id", h.updateUser)
		users.DELETE("/:user_id", h.removeUser)
	}
}

// createUser godoc
// @Summary Create a staff account
// @Description Creates a staff account. The generated PIN is returned exactly once.
// @Tags staff
// @Accept  json
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   user body dto.CreateTheaterUserRequest true "Account details"
// @Success 201 {object} dto.CreateTheaterUserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 400 {object} map[string]string "Username already exists"
// @Security BearerAuth
// @Router /theaters/{theater_id}/users [post]
func (h *theaterUserHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")

	var req dto.CreateTheaterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateUser", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, pin, err := h.userService.CreateUser(c.Request.Context(), theaterID, req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create staff account")
		return
	}
	c.JSON(http.StatusCreated, dto.CreateTheaterUserResponse{
		TheaterUserResponse: dto.ToTheaterUserResponse(*user),
		Pin:                 pin,
	})
}

// listUsers godoc
// @Summary List staff accounts
// @Tags staff
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   limit query int false "Page size"
// @Param   offset query int false "Page offset"
// @Success 200 {array} dto.TheaterUserResponse
// @Security BearerAuth
// @Router /theaters/{theater_id}/users [get]
func (h *theaterUserHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	limit, offset := parsePagination(c)

	users, err := h.userService.ListUsers(c.Request.Context(), theaterID, limit, offset)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list staff accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToTheaterUserResponses(users))
}

// getUser godoc
// @Summary Get a staff account
// @Tags staff
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   user_id path string true "User ID"
// @Success 200 {object} dto.TheaterUserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /theaters/{theater_id}/users/{user_id} [get]
func (h *theaterUserHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	userID := c.Param("user_id")

	user, err := h.userService.GetUserByID(c.Request.Context(), theaterID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to get staff account")
		return
	}
	c.JSON(http.StatusOK, dto.ToTheaterUserResponse(*user))
}

// updateUser godoc
// @Summary Update a staff account
// @Tags staff
// @Accept  json
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   user_id path string true "User ID"
// @Param   user body dto.UpdateTheaterUserRequest true "Fields to update"
// @Success 200 {object} dto.TheaterUserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Security BearerAuth
// @Router /theaters/{theater_id}/users/{user_id} [put]
func (h *theaterUserHandler) updateUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	userID := c.Param("user_id")

	var req dto.UpdateTheaterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateUser", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), theaterID, userID, req, updaterUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update staff account")
		return
	}
	c.JSON(http.StatusOK, dto.ToTheaterUserResponse(*user))
}

// removeUser godoc
// @Summary Remove a staff account
// @Description Removes a staff account. Removing an absent account succeeds.
// @Tags staff
// @Param   theater_id path string true "Theater ID"
// @Param   user_id path string true "User ID"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /theaters/{theater_id}/users/{user_id} [delete]
func (h *theaterUserHandler) removeUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	userID := c.Param("user_id")

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.userService.RemoveUser(c.Request.Context(), theaterID, userID, updaterUserID); err != nil {
		respondWithError(c, logger, err, "Failed to remove staff account")
		return
	}
	c.Status(http.StatusNoContent)
}
