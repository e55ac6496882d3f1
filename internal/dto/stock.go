package dto

import (
	"time"

	"github.com/screenbites/concession_backend/internal/core/domain"
)

// RecordStockReceiptRequest defines the payload for recording received stock
// against a product. Date defaults to now when omitted.
type RecordStockReceiptRequest struct {
	Quantity   int64      `json:"quantity" binding:"required,gt=0"`
	Date       *time.Time `json:"date,omitempty"`
	ExpireDate *time.Time `json:"expireDate,omitempty"`
}

// StockEntryResponse is one dated batch inside a monthly ledger.
type StockEntryResponse struct {
	Date         time.Time  `json:"date"`
	InvordStock  int64      `json:"invordStock"`
	ExpiredStock int64      `json:"expiredStock"`
	Balance      int64      `json:"balance"`
	ExpireDate   *time.Time `json:"expireDate,omitempty"`
}

// MonthlyStockLedgerResponse is the API representation of a monthly ledger.
type MonthlyStockLedgerResponse struct {
	LedgerID       string               `json:"ledgerID"`
	TheaterID      string               `json:"theaterID"`
	ProductID      string               `json:"productID"`
	Year           int                  `json:"year"`
	Month          int                  `json:"month"`
	CarryForward   int64                `json:"carryForward"`
	StockDetails   []StockEntryResponse `json:"stockDetails"`
	ClosingBalance int64                `json:"closingBalance"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

// SweepSummaryResponse reports one expired-stock sweep run.
type SweepSummaryResponse struct {
	AsOf            time.Time `json:"asOf"`
	LedgersScanned  int       `json:"ledgersScanned"`
	LedgersSwept    int       `json:"ledgersSwept"`
	LedgersFailed   int       `json:"ledgersFailed"`
	QuantityExpired int64     `json:"quantityExpired"`
}

// ToMonthlyStockLedgerResponse maps a domain ledger to its API representation.
func ToMonthlyStockLedgerResponse(l domain.MonthlyStockLedger) MonthlyStockLedgerResponse {
	entries := make([]StockEntryResponse, 0, len(l.StockDetails))
	for _, e := range l.StockDetails {
		entries = append(entries, StockEntryResponse{
			Date:         e.Date,
			InvordStock:  e.InvordStock,
			ExpiredStock: e.ExpiredStock,
			Balance:      e.Balance,
			ExpireDate:   e.ExpireDate,
		})
	}
	return MonthlyStockLedgerResponse{
		LedgerID:       l.LedgerID,
		TheaterID:      l.TheaterID,
		ProductID:      l.ProductID,
		Year:           l.Year,
		Month:          l.Month,
		CarryForward:   l.CarryForward,
		StockDetails:   entries,
		ClosingBalance: l.ClosingBalance,
		UpdatedAt:      l.LastUpdatedAt,
	}
}
