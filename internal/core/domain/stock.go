package domain

import "time"

// StockEntry is one dated batch of stock received for a product within a
// monthly ledger. InvordStock is the received quantity (the field name is the
// platform's historical wire name for inward stock); ExpiredStock is how much
// of that batch has since expired. Balance is the running total up to and
// including this entry and is recomputed, never set directly.
type StockEntry struct {
	Date         time.Time  `json:"date"`
	InvordStock  int64      `json:"invordStock"`
	ExpiredStock int64      `json:"expiredStock"`
	Balance      int64      `json:"balance"`
	ExpireDate   *time.Time `json:"expireDate,omitempty"`
}

// MonthlyStockLedger is the per-product, per-calendar-month running-balance
// record. StockDetails is strictly chronological: each entry's balance depends
// on the cumulative effect of all prior entries, so order matters.
type MonthlyStockLedger struct {
	LedgerID       string       `json:"ledgerID"`
	TheaterID      string       `json:"theaterID"`
	ProductID      string       `json:"productID"`
	Year           int          `json:"year"`
	Month          int          `json:"month"` // 1-12
	CarryForward   int64        `json:"carryForward"` // opening balance from the prior month's closing
	StockDetails   []StockEntry `json:"stockDetails"`
	ClosingBalance int64        `json:"closingBalance"`
	Version        int64        `json:"-"`
	AuditFields
}

// Recalculate rebuilds every entry's running balance from CarryForward and
// updates ClosingBalance. The invariant maintained is
//
//	balance_i = balance_{i-1} + invordStock_i - expiredStock_i
//
// starting from CarryForward, so the closing balance always equals the carry
// forward plus total received minus total expired.
func (l *MonthlyStockLedger) Recalculate() {
	running := l.CarryForward
	for i := range l.StockDetails {
		e := &l.StockDetails[i]
		running += e.InvordStock - e.ExpiredStock
		e.Balance = running
	}
	l.ClosingBalance = running
}

// AddReceipt merges a received quantity into the entry with the same calendar
// date and expiry date, or appends a new entry, then recomputes balances.
func (l *MonthlyStockLedger) AddReceipt(date time.Time, quantity int64, expireDate *time.Time) {
	day := date.Truncate(24 * time.Hour)
	for i := range l.StockDetails {
		e := &l.StockDetails[i]
		if e.Date.Equal(day) && sameExpiry(e.ExpireDate, expireDate) {
			e.InvordStock += quantity
			l.Recalculate()
			return
		}
	}
	l.StockDetails = append(l.StockDetails, StockEntry{
		Date:        day,
		InvordStock: quantity,
		ExpireDate:  expireDate,
	})
	l.Recalculate()
}

// ExpireAsOf marks every entry whose expiry date has passed as fully expired
// and recomputes the running balances. The received quantity stays recorded in
// InvordStock so the running-total invariant keeps holding; idempotence comes
// from only touching entries that still have unexpired quantity. It returns
// the total quantity expired by this call.
func (l *MonthlyStockLedger) ExpireAsOf(asOf time.Time) int64 {
	var expired int64
	for i := range l.StockDetails {
		e := &l.StockDetails[i]
		if e.ExpireDate == nil || e.ExpireDate.After(asOf) {
			continue
		}
		if e.ExpiredStock >= e.InvordStock {
			continue // already swept
		}
		expired += e.InvordStock - e.ExpiredStock
		e.ExpiredStock = e.InvordStock
	}
	if expired > 0 {
		l.Recalculate()
	}
	return expired
}

func sameExpiry(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// SweepSummary reports the outcome of one expired-stock sweep run. Failures
// are per ledger; a sweep keeps going past individual conflicts.
type SweepSummary struct {
	AsOf            time.Time `json:"asOf"`
	LedgersScanned  int       `json:"ledgersScanned"`
	LedgersSwept    int       `json:"ledgersSwept"`
	LedgersFailed   int       `json:"ledgersFailed"`
	QuantityExpired int64     `json:"quantityExpired"`
}

// NextMonth returns the (year, month) pair following the ledger's month.
func (l *MonthlyStockLedger) NextMonth() (int, int) {
	if l.Month == 12 {
		return l.Year + 1, 1
	}
	return l.Year, l.Month + 1
}

// PreviousMonth returns the (year, month) pair preceding the given one.
func PreviousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}
