package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/screenbites/concession_backend/internal/core/ports/services"
	"github.com/screenbites/concession_backend/internal/dto"
	"github.com/screenbites/concession_backend/internal/middleware"
)

// pageAccessHandler handles HTTP requests related to the page catalog.
type pageAccessHandler struct {
	pageService portssvc.PageAccessService
}

func newPageAccessHandler(ps portssvc.PageAccessService) *pageAccessHandler {
	return &pageAccessHandler{pageService: ps}
}

// registerPageAccessRoutes registers page catalog routes nested under a theater.
// The catalog defines what roles can grant, so managing it is admin-only.
func registerPageAccessRoutes(rg *gin.RouterGroup, pageService portssvc.PageAccessService, roleService portssvc.RoleService) {
	h := newPageAccessHandler(pageService)

	pages := rg.Group("/pages")
	{
		pages.GET("", h.listPages)
		pages.GET("/:page_id", h.getPage)

		adminOnly := pages.Group("", middleware.RequireAdmin(roleService))
		{
			adminOnly.POST("", h.createPage)
			adminOnly.PUT("/:page_id", h.updatePage)
			adminOnly.DELETE("/:page_id", h.removePage)
		}
	}
}

// createPage godoc
// @Summary Register a page
// @Tags pages
// @Accept  json
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   page body dto.CreatePageAccessRequest true "Page details"
// @Success 201 {object} dto.PageAccessResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 400 {object} map[string]string "Page already exists"
// @Security BearerAuth
// @Router /theaters/{theater_id}/pages [post]
func (h *pageAccessHandler) createPage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")

	var req dto.CreatePageAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePage", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, err := h.pageService.CreatePage(c.Request.Context(), theaterID, req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create page entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPageAccessResponse(*page))
}

// listPages godoc
// @Summary List the page catalog
// @Tags pages
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   limit query int false "Page size"
// @Param   offset query int false "Page offset"
// @Success 200 {array} dto.PageAccessResponse
// @Security BearerAuth
// @Router /theaters/{theater_id}/pages [get]
func (h *pageAccessHandler) listPages(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	limit, offset := parsePagination(c)

	pages, err := h.pageService.ListPages(c.Request.Context(), theaterID, limit, offset)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list pages")
		return
	}
	c.JSON(http.StatusOK, dto.ToPageAccessResponses(pages))
}

// getPage godoc
// @Summary Get a page entry
// @Tags pages
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   page_id path string true "Page ID"
// @Success 200 {object} dto.PageAccessResponse
// @Failure 404 {object} map[string]string "Page not found"
// @Security BearerAuth
// @Router /theaters/{theater_id}/pages/{page_id} [get]
func (h *pageAccessHandler) getPage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	pageID := c.Param("page_id")

	page, err := h.pageService.GetPageByID(c.Request.Context(), theaterID, pageID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to get page entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToPageAccessResponse(*page))
}

// updatePage godoc
// @Summary Update a page entry
// @Tags pages
// @Accept  json
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   page_id path string true "Page ID"
// @Param   page body dto.UpdatePageAccessRequest true "Fields to update"
// @Success 200 {object} dto.PageAccessResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Page not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Security BearerAuth
// @Router /theaters/{theater_id}/pages/{page_id} [put]
func (h *pageAccessHandler) updatePage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	pageID := c.Param("page_id")

	var req dto.UpdatePageAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePage", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, err := h.pageService.UpdatePage(c.Request.Context(), theaterID, pageID, req, updaterUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update page entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToPageAccessResponse(*page))
}

// removePage godoc
// @Summary Remove a page entry
// @Description Removes a page entry. Removing an absent page succeeds.
// @Tags pages
// @Param   theater_id path string true "Theater ID"
// @Param   page_id path string true "Page ID"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /theaters/{theater_id}/pages/{page_id} [delete]
func (h *pageAccessHandler) removePage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	pageID := c.Param("page_id")

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.pageService.RemovePage(c.Request.Context(), theaterID, pageID, updaterUserID); err != nil {
		respondWithError(c, logger, err, "Failed to remove page entry")
		return
	}
	c.Status(http.StatusNoContent)
}
