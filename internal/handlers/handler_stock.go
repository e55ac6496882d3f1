package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/screenbites/concession_backend/internal/core/ports/services"
	"github.com/screenbites/concession_backend/internal/dto"
	"github.com/screenbites/concession_backend/internal/middleware"
)

// stockHandler handles HTTP requests related to monthly stock ledgers.
type stockHandler struct {
	stockService portssvc.StockService
}

func newStockHandler(ss portssvc.StockService) *stockHandler {
	return &stockHandler{stockService: ss}
}

// registerStockRoutes registers the per-product stock ledger routes.
func registerStockRoutes(rg *gin.RouterGroup, stockService portssvc.StockService, roleService portssvc.RoleService) {
	h := newStockHandler(stockService)

	stock := rg.Group("/products/:product_id/stock", middleware.RequirePage(roleService, "inventory"))
	{
		stock.POST("/receipts", h.recordReceipt)
		stock.GET("/ledger", h.getLedger)
	}
}

// registerStockAdminRoutes registers the sweep trigger, admin-only.
func registerStockAdminRoutes(rg *gin.RouterGroup, stockService portssvc.StockService, roleService portssvc.RoleService) {
	h := newStockHandler(stockService)
	rg.POST("/admin/stock/sweep", middleware.RequireAdmin(roleService), h.sweepExpiredStock)
}

// recordReceipt godoc
// @Summary Record received stock
// @Description Books received quantity into the product's monthly ledger, creating the month with the prior closing balance as carry forward.
// @Tags stock
// @Accept  json
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   product_id path string true "Product ID"
// @Param   receipt body dto.RecordStockReceiptRequest true "Receipt details"
// @Success 201 {object} dto.MonthlyStockLedgerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Security BearerAuth
// @Router /theaters/{theater_id}/products/{product_id}/stock/receipts [post]
func (h *stockHandler) recordReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	productID := c.Param("product_id")

	var req dto.RecordStockReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordReceipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ledger, err := h.stockService.RecordReceipt(c.Request.Context(), theaterID, productID, req, actorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record stock receipt")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMonthlyStockLedgerResponse(*ledger))
}

// getLedger godoc
// @Summary Get a monthly stock ledger
// @Description Returns the product's ledger for the given month. Defaults to the current month when year/month are omitted.
// @Tags stock
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   product_id path string true "Product ID"
// @Param   year query int false "Calendar year"
// @Param   month query int false "Calendar month (1-12)"
// @Success 200 {object} dto.MonthlyStockLedgerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Ledger not found"
// @Security BearerAuth
// @Router /theaters/{theater_id}/products/{product_id}/stock/ledger [get]
func (h *stockHandler) getLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	productID := c.Param("product_id")

	now := time.Now()
	year, month := now.Year(), int(now.Month())
	if raw := c.Query("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		year = v
	}
	if raw := c.Query("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
			return
		}
		month = v
	}

	ledger, err := h.stockService.GetLedger(c.Request.Context(), theaterID, productID, year, month)
	if err != nil {
		respondWithError(c, logger, err, "Failed to get stock ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthlyStockLedgerResponse(*ledger))
}

// sweepExpiredStock godoc
// @Summary Trigger an expired-stock sweep
// @Description Expires every due batch across all ledgers and reports the outcome. The same sweep runs daily on a schedule.
// @Tags stock
// @Produce  json
// @Success 200 {object} dto.SweepSummaryResponse
// @Failure 403 {object} map[string]string "Admin access required"
// @Security BearerAuth
// @Router /admin/stock/sweep [post]
func (h *stockHandler) sweepExpiredStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.stockService.SweepExpiredStock(c.Request.Context(), time.Now())
	if err != nil {
		respondWithError(c, logger, err, "Failed to sweep expired stock")
		return
	}
	c.JSON(http.StatusOK, dto.SweepSummaryResponse{
		AsOf:            summary.AsOf,
		LedgersScanned:  summary.LedgersScanned,
		LedgersSwept:    summary.LedgersSwept,
		LedgersFailed:   summary.LedgersFailed,
		QuantityExpired: summary.QuantityExpired,
	})
}
