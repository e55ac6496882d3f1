package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/screenbites/concession_backend/internal/apperrors"
	"github.com/screenbites/concession_backend/internal/core/domain"
	portsrepo "github.com/screenbites/concession_backend/internal/core/ports/repositories"
	portssvc "github.com/screenbites/concession_backend/internal/core/ports/services"
	"github.com/screenbites/concession_backend/internal/dto"
)

// productService implements the ProductService interface
type productService struct {
	BaseService
	productRepo portsrepo.ProductRepositoryFacade
	theaterRepo portsrepo.TheaterReader
}

// NewProductService creates a new catalog service with the provided dependencies
func NewProductService(
	productRepo portsrepo.ProductRepositoryFacade,
	theaterRepo portsrepo.TheaterReader,
) portssvc.ProductService {
	return &productService{
		productRepo: productRepo,
		theaterRepo: theaterRepo,
	}
}

var _ portssvc.ProductService = (*productService)(nil)

func (s *productService) CreateProduct(ctx context.Context, theaterID string, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	if _, err := s.theaterRepo.FindTheaterByID(ctx, theaterID); err != nil {
		return nil, err
	}
	if req.Price.IsNegative() {
		return nil, apperrors.NewValidationFailedError("price must not be negative")
	}

	now := time.Now()
	product := domain.Product{
		ProductID:    uuid.NewString(),
		TheaterID:    theaterID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		CurrencyCode: req.CurrencyCode,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		s.LogError(ctx, err, "Failed to save product",
			slog.String("theater_id", theaterID))
		return nil, err
	}

	s.LogInfo(ctx, "Product created successfully",
		slog.String("theater_id", theaterID),
		slog.String("product_id", product.ProductID),
		slog.String("creator_id", creatorUserID))
	return &product, nil
}

// findTheaterProduct loads a product and verifies it belongs to the theater.
// A product from another theater is indistinguishable from a missing one.
func (s *productService) findTheaterProduct(ctx context.Context, theaterID, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.TheaterID != theaterID {
		return nil, apperrors.NewNotFoundError("product " + productID + " not found")
	}
	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, theaterID, productID string) (*domain.Product, error) {
	return s.findTheaterProduct(ctx, theaterID, productID)
}

func (s *productService) ListProducts(ctx context.Context, theaterID string, limit, offset int) ([]domain.Product, error) {
	products, err := s.productRepo.ListProductsByTheater(ctx, theaterID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list products",
			slog.String("theater_id", theaterID))
		return nil, err
	}
	if products == nil {
		return []domain.Product{}, nil
	}
	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, theaterID, productID string, req dto.UpdateProductRequest, updaterUserID string) (*domain.Product, error) {
	product, err := s.findTheaterProduct(ctx, theaterID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, apperrors.NewValidationFailedError("price must not be negative")
		}
		product.Price = *req.Price
	}
	if req.CurrencyCode != nil {
		product.CurrencyCode = *req.CurrencyCode
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.LastUpdatedAt = time.Now()
	product.LastUpdatedBy = updaterUserID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		s.LogError(ctx, err, "Failed to update product",
			slog.String("theater_id", theaterID),
			slog.String("product_id", productID))
		return nil, err
	}
	product.Version++

	s.LogInfo(ctx, "Product updated successfully",
		slog.String("theater_id", theaterID),
		slog.String("product_id", productID),
		slog.String("updater_id", updaterUserID))
	return product, nil
}

func (s *productService) DeactivateProduct(ctx context.Context, theaterID, productID string, updaterUserID string) error {
	if _, err := s.findTheaterProduct(ctx, theaterID, productID); err != nil {
		return err
	}

	if err := s.productRepo.DeactivateProduct(ctx, productID, updaterUserID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate product",
				slog.String("product_id", productID))
		}
		return err
	}

	s.LogInfo(ctx, "Product deactivated",
		slog.String("theater_id", theaterID),
		slog.String("product_id", productID),
		slog.String("updater_id", updaterUserID))
	return nil
}
