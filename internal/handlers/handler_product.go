package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/screenbites/concession_backend/internal/core/ports/services"
	"github.com/screenbites/concession_backend/internal/dto"
	"github.com/screenbites/concession_backend/internal/middleware"
)

// productHandler handles HTTP requests related to the concession catalog.
type productHandler struct {
	productService portssvc.ProductService
}

func newProductHandler(ps portssvc.ProductService) *productHandler {
	return &productHandler{productService: ps}
}

// registerProductRoutes registers catalog routes nested under a theater,
// including the per-product stock ledger routes.
func registerProductRoutes(rg *gin.RouterGroup, productService portssvc.ProductService, stockService portssvc.StockService, roleService portssvc.RoleService) {
	h := newProductHandler(productService)

	products := rg.Group("/products", middleware.RequirePage(roleService, "products"))
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/:product_id", h.getProduct)
		products.PUT("/:product_id", h.updateProduct)
		products.DELETE("/:product_id", h.deactivateProduct)
	}

	// Stock movement is gated on the inventory page, not the catalog page.
	registerStockRoutes(rg, stockService, roleService)
}

// createProduct godoc
// @Summary Create a product
// @Tags products
// @Accept  json
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /theaters/{theater_id}/products [post]
func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), theaterID, req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProductResponse(*product))
}

// listProducts godoc
// @Summary List products
// @Tags products
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   limit query int false "Page size"
// @Param   offset query int false "Page offset"
// @Success 200 {array} dto.ProductResponse
// @Security BearerAuth
// @Router /theaters/{theater_id}/products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	limit, offset := parsePagination(c)

	products, err := h.productService.ListProducts(c.Request.Context(), theaterID, limit, offset)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list products")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponses(products))
}

// getProduct godoc
// @Summary Get a product
// @Tags products
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   product_id path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /theaters/{theater_id}/products/{product_id} [get]
func (h *productHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	productID := c.Param("product_id")

	product, err := h.productService.GetProductByID(c.Request.Context(), theaterID, productID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to get product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(*product))
}

// updateProduct godoc
// @Summary Update a product
// @Description Updates catalog fields. Stock cannot be changed here; it only moves through the stock ledger.
// @Tags products
// @Accept  json
// @Produce  json
// @Param   theater_id path string true "Theater ID"
// @Param   product_id path string true "Product ID"
// @Param   product body dto.UpdateProductRequest true "Fields to update"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Security BearerAuth
// @Router /theaters/{theater_id}/products/{product_id} [put]
func (h *productHandler) updateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	productID := c.Param("product_id")

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), theaterID, productID, req, updaterUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(*product))
}

// deactivateProduct godoc
// @Summary Deactivate a product
// @Tags products
// @Param   theater_id path string true "Theater ID"
// @Param   product_id path string true "Product ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /theaters/{theater_id}/products/{product_id} [delete]
func (h *productHandler) deactivateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	theaterID := c.Param("theater_id")
	productID := c.Param("product_id")

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.productService.DeactivateProduct(c.Request.Context(), theaterID, productID, updaterUserID); err != nil {
		respondWithError(c, logger, err, "Failed to deactivate product")
		return
	}
	c.Status(http.StatusNoContent)
}
