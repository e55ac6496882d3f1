package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/screenbites/concession_backend/internal/core/domain"
)

// CreateProductRequest defines the payload for creating a catalog product.
type CreateProductRequest struct {
	Name         string          `json:"name" binding:"required,min=2,max=100"`
	Description  string          `json:"description" binding:"max=500"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3"`
}

// UpdateProductRequest defines the payload for updating a catalog product.
// Stock is deliberately absent; it only moves through ledger operations.
type UpdateProductRequest struct {
	Name         *string          `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Description  *string          `json:"description,omitempty" binding:"omitempty,max=500"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	CurrencyCode *string          `json:"currencyCode,omitempty" binding:"omitempty,len=3"`
	IsActive     *bool            `json:"isActive,omitempty"`
}

// ProductResponse is the API representation of a catalog product.
type ProductResponse struct {
	ProductID    string          `json:"productID"`
	TheaterID    string          `json:"theaterID"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	CurrencyCode string          `json:"currencyCode"`
	CurrentStock int64           `json:"currentStock"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ToProductResponse maps a domain product to its API representation.
func ToProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:    p.ProductID,
		TheaterID:    p.TheaterID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		CurrencyCode: p.CurrencyCode,
		CurrentStock: p.CurrentStock,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.LastUpdatedAt,
	}
}

// ToProductResponses maps a slice of domain products.
func ToProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out
}
