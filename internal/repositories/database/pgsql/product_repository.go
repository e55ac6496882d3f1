package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/screenbites/concession_backend/internal/apperrors"
	"github.com/screenbites/concession_backend/internal/core/domain"
	portsrepo "github.com/screenbites/concession_backend/internal/core/ports/repositories"
)

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for catalog products.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

var FULL_PRODUCT_SELECT_QUERY = `
SELECT
	p.product_id, p.theater_id, p.name, p.description, p.price, p.currency_code,
	p.current_stock, p.is_active,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by, p.version
FROM products p
`

func (r *PgxProductRepository) getProducts(ctx context.Context, filterQuery string, args ...any) ([]domain.Product, error) {
	query := FULL_PRODUCT_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query products", err)
	}
	defer rows.Close()
	products, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Product])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Product{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect product rows", err)
	}

	return products, nil
}

func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	query := `
		INSERT INTO products (
			product_id, theater_id, name, description, price, currency_code,
			current_stock, is_active,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		product.ProductID,
		product.TheaterID,
		product.Name,
		product.Description,
		product.Price,
		product.CurrencyCode,
		product.CurrentStock,
		product.IsActive,
		product.CreatedAt,
		product.CreatedBy,
		product.LastUpdatedAt,
		product.LastUpdatedBy,
		1,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewDuplicateError("product ID " + product.ProductID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("theater " + product.TheaterID + " does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save product "+product.ProductID, err)
	}
	return nil
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `WHERE p.product_id = $1`
	products, err := r.getProducts(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, apperrors.NewNotFoundError("product " + productID + " not found")
	}
	return &products[0], nil
}

func (r *PgxProductRepository) ListProductsByTheater(ctx context.Context, theaterID string, limit int, offset int) ([]domain.Product, error) {
	query := `WHERE p.theater_id = $1 ORDER BY p.name LIMIT $2 OFFSET $3`
	return r.getProducts(ctx, query, theaterID, limit, offset)
}

func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, currency_code = $4, is_active = $5,
			last_updated_at = $6, last_updated_by = $7, version = version + 1
		WHERE product_id = $8 AND version = $9;
	`
	result, err := r.Pool.Exec(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.CurrencyCode,
		product.IsActive,
		product.LastUpdatedAt,
		product.LastUpdatedBy,
		product.ProductID,
		product.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update product "+product.ProductID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewVersionConflictError("product " + product.ProductID + " was modified concurrently")
	}
	return nil
}

func (r *PgxProductRepository) DeactivateProduct(ctx context.Context, productID string, updatedBy string, now time.Time) error {
	query := `
		UPDATE products
		SET is_active = false, last_updated_at = $1, last_updated_by = $2, version = version + 1
		WHERE product_id = $3;
	`
	result, err := r.Pool.Exec(ctx, query, now, updatedBy, productID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate product "+productID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("product " + productID + " not found")
	}
	return nil
}
