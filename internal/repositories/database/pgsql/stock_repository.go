package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/screenbites/concession_backend/internal/apperrors"
	"github.com/screenbites/concession_backend/internal/core/domain"
	portsrepo "github.com/screenbites/concession_backend/internal/core/ports/repositories"
)

// PgxStockLedgerRepository persists monthly stock ledgers. Every write also
// refreshes the owning product's current_stock to the ledger's closing balance
// inside the same transaction, keeping the denormalized cache consistent with
// the ledger on every successful commit.
type PgxStockLedgerRepository struct {
	BaseRepository
}

func newPgxStockLedgerRepository(pool *pgxpool.Pool) portsrepo.StockLedgerRepositoryFacade {
	return &PgxStockLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.StockLedgerRepositoryFacade = (*PgxStockLedgerRepository)(nil)

var FULL_LEDGER_SELECT_QUERY = `
SELECT
	l.ledger_id, l.theater_id, l.product_id, l.year, l.month,
	l.carry_forward, l.stock_details, l.closing_balance,
	l.created_at, l.created_by, l.last_updated_at, l.last_updated_by, l.version
FROM monthly_stock_ledgers l
`

func (r *PgxStockLedgerRepository) getLedgers(ctx context.Context, filterQuery string, args ...any) ([]domain.MonthlyStockLedger, error) {
	query := FULL_LEDGER_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query stock ledgers", err)
	}
	defer rows.Close()

	var ledgers []domain.MonthlyStockLedger
	for rows.Next() {
		var l domain.MonthlyStockLedger
		var rawDetails []byte
		err := rows.Scan(
			&l.LedgerID,
			&l.TheaterID,
			&l.ProductID,
			&l.Year,
			&l.Month,
			&l.CarryForward,
			&rawDetails,
			&l.ClosingBalance,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
			&l.Version,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan stock ledger row", err)
		}
		if err := json.Unmarshal(rawDetails, &l.StockDetails); err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode stock details for ledger "+l.LedgerID, err)
		}
		ledgers = append(ledgers, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating stock ledger rows", err)
	}

	return ledgers, nil
}

func (r *PgxStockLedgerRepository) FindLedger(ctx context.Context, productID string, year, month int) (*domain.MonthlyStockLedger, error) {
	query := `WHERE l.product_id = $1 AND l.year = $2 AND l.month = $3`
	ledgers, err := r.getLedgers(ctx, query, productID, year, month)
	if err != nil {
		return nil, err
	}
	if len(ledgers) == 0 {
		return nil, apperrors.NewNotFoundError("no stock ledger for product " + productID + " in the requested month")
	}
	return &ledgers[0], nil
}

// ListLedgersWithExpirableStock filters on the JSONB entries server-side so
// the sweep only loads ledgers that actually have work to do.
func (r *PgxStockLedgerRepository) ListLedgersWithExpirableStock(ctx context.Context, asOf time.Time) ([]domain.MonthlyStockLedger, error) {
	query := `
		WHERE EXISTS (
			SELECT 1 FROM jsonb_array_elements(l.stock_details) AS entry
			WHERE entry->>'expireDate' IS NOT NULL
			  AND (entry->>'expireDate')::timestamptz <= $1
			  AND COALESCE((entry->>'expiredStock')::bigint, 0) < (entry->>'invordStock')::bigint
		)
		ORDER BY l.theater_id, l.product_id`
	return r.getLedgers(ctx, query, asOf)
}

func (r *PgxStockLedgerRepository) SaveLedger(ctx context.Context, ledger domain.MonthlyStockLedger) error {
	rawDetails, err := marshalStockDetails(ledger.StockDetails)
	if err != nil {
		return err
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO monthly_stock_ledgers (
			ledger_id, theater_id, product_id, year, month,
			carry_forward, stock_details, closing_balance,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, query,
		ledger.LedgerID,
		ledger.TheaterID,
		ledger.ProductID,
		ledger.Year,
		ledger.Month,
		ledger.CarryForward,
		rawDetails,
		ledger.ClosingBalance,
		ledger.CreatedAt,
		ledger.CreatedBy,
		ledger.LastUpdatedAt,
		ledger.LastUpdatedBy,
		1,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation on (product_id, year, month)
				return apperrors.NewVersionConflictError("stock ledger for product " + ledger.ProductID + " was created concurrently")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("product " + ledger.ProductID + " does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save stock ledger "+ledger.LedgerID, err)
	}

	if err := syncProductStock(ctx, tx, ledger); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxStockLedgerRepository) UpdateLedger(ctx context.Context, ledger domain.MonthlyStockLedger) error {
	rawDetails, err := marshalStockDetails(ledger.StockDetails)
	if err != nil {
		return err
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE monthly_stock_ledgers
		SET carry_forward = $1, stock_details = $2, closing_balance = $3,
			last_updated_at = $4, last_updated_by = $5, version = version + 1
		WHERE ledger_id = $6 AND version = $7;
	`
	result, err := tx.Exec(ctx, query,
		ledger.CarryForward,
		rawDetails,
		ledger.ClosingBalance,
		ledger.LastUpdatedAt,
		ledger.LastUpdatedBy,
		ledger.LedgerID,
		ledger.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update stock ledger "+ledger.LedgerID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewVersionConflictError("stock ledger " + ledger.LedgerID + " was modified concurrently")
	}

	if err := syncProductStock(ctx, tx, ledger); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// syncProductStock refreshes the product's denormalized stock, but only when
// this ledger is the product's latest month. A backfill into an older month
// must not clobber the current balance.
func syncProductStock(ctx context.Context, tx pgx.Tx, ledger domain.MonthlyStockLedger) error {
	query := `
		UPDATE products
		SET current_stock = $1, last_updated_at = $2, last_updated_by = $3, version = version + 1
		WHERE product_id = $4
		  AND NOT EXISTS (
			SELECT 1 FROM monthly_stock_ledgers newer
			WHERE newer.product_id = $4
			  AND (newer.year, newer.month) > ($5, $6)
		  );
	`
	_, err := tx.Exec(ctx, query,
		ledger.ClosingBalance,
		ledger.LastUpdatedAt,
		ledger.LastUpdatedBy,
		ledger.ProductID,
		ledger.Year,
		ledger.Month,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to sync current stock for product "+ledger.ProductID, err)
	}
	return nil
}

func marshalStockDetails(details []domain.StockEntry) ([]byte, error) {
	if details == nil {
		details = []domain.StockEntry{}
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to encode stock details", err)
	}
	return raw, nil
}
