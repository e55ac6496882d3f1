package services

import (
	"context"
	"time"

	"github.com/screenbites/concession_backend/internal/core/domain"
	"github.com/screenbites/concession_backend/internal/dto"
)

// StockService maintains the monthly stock ledgers and the products'
// denormalized current stock.
type StockService interface {
	// RecordReceipt books received quantity into the product's ledger for the
	// receipt month, creating the ledger with the prior month's closing
	// balance as carry forward when it does not exist yet.
	RecordReceipt(ctx context.Context, theaterID, productID string, req dto.RecordStockReceiptRequest, actorUserID string) (*domain.MonthlyStockLedger, error)

	// GetLedger retrieves the product's ledger for one calendar month.
	GetLedger(ctx context.Context, theaterID, productID string, year, month int) (*domain.MonthlyStockLedger, error)

	// SweepExpiredStock expires every due batch across all ledgers. Best
	// effort: a ledger that fails is counted and skipped, not fatal.
	SweepExpiredStock(ctx context.Context, asOf time.Time) (*domain.SweepSummary, error)
}
