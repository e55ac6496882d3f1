package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/screenbites/concession_backend/internal/core/ports/services"
	"github.com/screenbites/concession_backend/internal/dto"
	"github.com/screenbites/concession_backend/internal/middleware"
)

// qrCodeHandler handles HTTP requests related to QR code labels.
type qrCodeHandler struct {
	qrService portssvc.QRCodeService
}

func newQRCodeHandler(qs portssvc.QRCodeService) *qrCodeHandler {
	return &qrCodeHandler{qrService: qs}
}

// registerQRCodeRoutes registers QR code label routes nested under a theater.
func registerQRCodeRoutes(rg *gin.RouterGroup, qrService portssvc.QRCodeService, roleService portssvc.RoleService) {
	h := newQRCodeHandler(qrService)

	codes := rg.Group("/qr-codes", middleware.RequirePage(roleService, "qr-codes"))
	{
		codes.POST("", h.createQRCodeName)
		codes.GET("", h.listQRCodeNames)
		codes.GET("/:qr_id", h.getQRCodeName)
		codes.PUT("/:qr_id", h.updateQRCodeName)
		codes.DELETE("/:qr_id", h.removeQRCodeName)
	}
}

// createQRCodeName godoc
// @Summary Register a QR code label
// @Tags qr-codes
// @Accept  json
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   qr body dto.CreateQRCodeNameRequest true "Label details"
// @Success 201 {object} dto.QRCodeNameResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 400 {object} map[string]string "Name already exists"
// @Security BearerAuth
// @Router /theaters/{theater_id}/qr-codes [post]
func (h *qrCodeHandler) createQRCodeName(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")

	var req dto.CreateQRCodeNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateQRCodeName", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	code, err := h.qrService.CreateQRCodeName(c.Request.Context(), theaterID, req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create QR code name")
		return
	}
	c.JSON(http.StatusCreated, dto.ToQRCodeNameResponse(*code))
}

// listQRCodeNames godoc
// @Summary List QR code labels
// @Tags qr-codes
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   limit query int false "Page size"
// @Param   offset query int false "Page offset"
// @Success 200 {array} dto.QRCodeNameResponse
// @Security BearerAuth
// @Router /theaters/{theater_id}/qr-codes [get]
func (h *qrCodeHandler) listQRCodeNames(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	limit, offset := parsePagination(c)

	codes, err := h.qrService.ListQRCodeNames(c.Request.Context(), theaterID, limit, offset)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list QR code names")
		return
	}
	c.JSON(http.StatusOK, dto.ToQRCodeNameResponses(codes))
}

// getQRCodeName godoc
// @Summary Get a QR code label
// @Tags qr-codes
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   qr_id path string true "QR code ID"
// @Success 200 {object} dto.QRCodeNameResponse
// @Failure 404 {object} map[string]string "QR code not found"
// @Security BearerAuth
// @Router /theaters/{theater_id}/qr-codes/{qr_id} [get]
func (h *qrCodeHandler) getQRCodeName(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	qrID := c.Param("qr_id")

	code, err := h.qrService.GetQRCodeNameByID(c.Request.Context(), theaterID, qrID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to get QR code name")
		return
	}
	c.JSON(http.StatusOK, dto.ToQRCodeNameResponse(*code))
}

// updateQRCodeName godoc
// @Summary Update a QR code label
// @Tags qr-codes
// @Accept  json
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   qr_id path string true "QR code ID"
// @Param   qr body dto.UpdateQRCodeNameRequest true "Fields to update"
// @Success 200 {object} dto.QRCodeNameResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "QR code not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Security BearerAuth
// @Router /theaters/{theater_id}/qr-codes/{qr_id} [put]
func (h *qrCodeHandler) updateQRCodeName(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	qrID := c.Param("qr_id")

	var req dto.UpdateQRCodeNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateQRCodeName", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	code, err := h.qrService.UpdateQRCodeName(c.Request.Context(), theaterID, qrID, req, updaterUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update QR code name")
		return
	}
	c.JSON(http.StatusOK, dto.ToQRCodeNameResponse(*code))
}

// removeQRCodeName godoc
// @Summary Remove a QR code label
// @Description Removes a QR code label. Removing an absent label succeeds.
// @Tags qr-codes
// @Param   theater_id path string true "Theater ID"
// @Param   qr_id path string true "QR code ID"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /theaters/{theater_id}/qr-codes/{qr_id} [delete]
func (h *qrCodeHandler) removeQRCodeName(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	qrID := c.Param("qr_id")

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.qrService.RemoveQRCodeName(c.Request.Context(), theaterID, qrID, updaterUserID); err != nil {
		respondWithError(c, logger, err, "Failed to remove QR code name")
		return
	}
	c.Status(http.StatusNoContent)
}
