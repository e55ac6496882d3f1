package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/screenbites/concession_backend/internal/core/ports/services"
	"github.com/screenbites/concession_backend/internal/dto"
	"github.com/screenbites/concession_backend/internal/middleware"
	"github.com/screenbites/concession_backend/internal/platform/config"
	"github.com/screenbites/concession_backend/internal/utils"
)

// authHandler handles HTTP requests related to authentication.
type authHandler struct {
	cfg         *config.Config
	userService portssvc.TheaterUserService
	roleService portssvc.RoleService
}

func newAuthHandler(cfg *config.Config, userService portssvc.TheaterUserService, roleService portssvc.RoleService) *authHandler {
	return &authHandler{
		cfg:         cfg,
		userService: userService,
		roleService: roleService,
	}
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(cfg, services.TheaterUser, services.Role)
	rg.POST("/login", h.login)
}

// login godoc
// @Summary Staff login
// @Description Authenticates a staff account by password or PIN and returns a theater-scoped token.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Login failed"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}
	if req.Password == "" && req.Pin == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either password or pin is required"})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "Login failed")
		return
	}

	access, err := h.roleService.ResolvePermissions(c.Request.Context(), req.TheaterID, user.RoleID)
	if err != nil {
		respondWithError(c, logger, err, "Login failed")
		return
	}

	token, err := utils.GenerateJWT(user.UserID, req.TheaterID, user.RoleID,
		h.cfg.JWTSecret, h.cfg.JWTExpiryDuration, h.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	logger.Info("Login succeeded",
		slog.String("theater_id", req.TheaterID),
		slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:  token,
		User:   dto.ToTheaterUserResponse(*user),
		Access: dto.ToResolvedAccessResponse(access),
	})
}
