package repositories

import (
	"context"
	"time"

	"github.com/screenbites/concession_backend/internal/core/domain"
)

// ProductReader defines read operations for the product catalog
type ProductReader interface {
	// FindProductByID retrieves a product by its ID.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProductsByTheater retrieves a page of a theater's products.
	ListProductsByTheater(ctx context.Context, theaterID string, limit int, offset int) ([]domain.Product, error)
}

// ProductWriter defines write operations for the product catalog
type ProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct persists changed fields, conditional on the version read.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// DeactivateProduct marks a product inactive.
	DeactivateProduct(ctx context.Context, productID string, updatedBy string, now time.Time) error
}

// ProductRepositoryFacade combines all product-related repository interfaces.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
