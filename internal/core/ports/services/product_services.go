package services

import (
	"context"

	"github.com/screenbites/concession_backend/internal/core/domain"
	"github.com/screenbites/concession_backend/internal/dto"
)

// ProductService manages the concession catalog.
type ProductService interface {
	// CreateProduct adds a product to the theater's catalog.
	CreateProduct(ctx context.Context, theaterID string, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)

	// GetProductByID retrieves one product or apperrors.ErrNotFound. The
	// product must belong to the given theater.
	GetProductByID(ctx context.Context, theaterID, productID string) (*domain.Product, error)

	// ListProducts retrieves a page of the theater's products.
	ListProducts(ctx context.Context, theaterID string, limit, offset int) ([]domain.Product, error)

	// UpdateProduct applies the non-nil fields of the request. Stock never
	// moves through here.
	UpdateProduct(ctx context.Context, theaterID, productID string, req dto.UpdateProductRequest, updaterUserID string) (*domain.Product, error)

	// DeactivateProduct marks a product inactive.
	DeactivateProduct(ctx context.Context, theaterID, productID string, updaterUserID string) error
}
