package repositories

import (
	"context"
	"time"

	"github.com/screenbites/concession_backend/internal/core/domain"
)

// StockLedgerReader defines read operations for monthly stock ledgers
type StockLedgerReader interface {
	// FindLedger retrieves the ledger for a product and calendar month, or
	// apperrors.ErrNotFound.
	FindLedger(ctx context.Context, productID string, year, month int) (*domain.MonthlyStockLedger, error)

	// ListLedgersWithExpirableStock retrieves every ledger holding at least one
	// entry whose expiry date is at or before asOf and which still has
	// unexpired quantity. Used by the daily sweep.
	ListLedgersWithExpirableStock(ctx context.Context, asOf time.Time) ([]domain.MonthlyStockLedger, error)
}

// StockLedgerWriter defines write operations for monthly stock ledgers.
// Both writes also sync the owning product's denormalized current_stock to the
// ledger's closing balance inside the same database transaction, so the cache
// cannot drift from the ledger on a successful write.
type StockLedgerWriter interface {
	// SaveLedger inserts a new monthly ledger.
	SaveLedger(ctx context.Context, ledger domain.MonthlyStockLedger) error

	// UpdateLedger rewrites an existing ledger, conditional on the version
	// read. Returns apperrors.ErrConflict on a lost race.
	UpdateLedger(ctx context.Context, ledger domain.MonthlyStockLedger) error
}

// StockLedgerRepositoryFacade combines all stock-ledger repository interfaces.
type StockLedgerRepositoryFacade interface {
	StockLedgerReader
	StockLedgerWriter
}
