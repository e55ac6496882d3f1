package domain_test

import (
	"testing"
	"time"

	"github.com/screenbites/concession_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestMonthlyStockLedger_Recalculate(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name         string
		ledger       domain.MonthlyStockLedger
		wantBalances []int64
		wantClosing  int64
	}{
		{
			name:         "empty ledger closes at carry forward",
			ledger:       domain.MonthlyStockLedger{CarryForward: 42},
			wantBalances: nil,
			wantClosing:  42,
		},
		{
			name: "receipts accumulate onto carry forward",
			ledger: domain.MonthlyStockLedger{
				CarryForward: 100,
				StockDetails: []domain.StockEntry{
					{Date: day(1), InvordStock: 50},
					{Date: day(2), InvordStock: 30},
				},
			},
			wantBalances: []int64{150, 180},
			wantClosing:  180,
		},
		{
			name: "expired stock reduces the running total",
			ledger: domain.MonthlyStockLedger{
				CarryForward: 100,
				StockDetails: []domain.StockEntry{
					{Date: day(1), InvordStock: 50},
					{Date: day(2), InvordStock: 30, ExpiredStock: 30},
				},
			},
			wantBalances: []int64{150, 150},
			wantClosing:  150,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.ledger.Recalculate()
			for i, want := range tt.wantBalances {
				assert.Equal(t, want, tt.ledger.StockDetails[i].Balance)
			}
			assert.Equal(t, tt.wantClosing, tt.ledger.ClosingBalance)
		})
	}
}

func TestMonthlyStockLedger_AddReceipt(t *testing.T) {
	day1 := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)

	ledger := domain.MonthlyStockLedger{CarryForward: 10}

	ledger.AddReceipt(day1, 5, nil)
	ledger.AddReceipt(day1, 3, nil)
	assert.Len(t, ledger.StockDetails, 1, "same day and expiry should merge")
	assert.Equal(t, int64(8), ledger.StockDetails[0].InvordStock)
	assert.Equal(t, int64(18), ledger.ClosingBalance)

	ledger.AddReceipt(day1, 4, timePtr(expiry))
	assert.Len(t, ledger.StockDetails, 2, "different expiry should append")
	assert.Equal(t, int64(22), ledger.ClosingBalance)
}

func TestMonthlyStockLedger_ExpireAsOf(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
	}
	asOf := day(15)

	ledger := domain.MonthlyStockLedger{
		CarryForward: 100,
		StockDetails: []domain.StockEntry{
			{Date: day(1), InvordStock: 50}, // no expiry, untouched
			{Date: day(2), InvordStock: 30, ExpireDate: timePtr(day(10))},
			{Date: day(3), InvordStock: 20, ExpireDate: timePtr(day(25))}, // not yet due
		},
	}
	ledger.Recalculate()
	assert.Equal(t, int64(200), ledger.ClosingBalance)

	expired := ledger.ExpireAsOf(asOf)
	assert.Equal(t, int64(30), expired)
	assert.Equal(t, int64(30), ledger.StockDetails[1].ExpiredStock)
	assert.Equal(t, int64(150), ledger.StockDetails[1].Balance)
	assert.Equal(t, int64(170), ledger.ClosingBalance)

	// Second sweep with the same cut-off is a no-op.
	expired = ledger.ExpireAsOf(asOf)
	assert.Zero(t, expired)
	assert.Equal(t, int64(170), ledger.ClosingBalance)
}

func TestPreviousMonth(t *testing.T) {
	y, m := domain.PreviousMonth(2026, 1)
	assert.Equal(t, 2025, y)
	assert.Equal(t, 12, m)

	y, m = domain.PreviousMonth(2026, 7)
	assert.Equal(t, 2026, y)
	assert.Equal(t, 6, m)
}
