package domain

import "github.com/shopspring/decimal"

// Product is a concession catalog item belonging to one theater. CurrentStock
// is a derived cache of the product's monthly ledger closing balance; it is
// only written through stock-ledger operations, never directly.
type Product struct {
	ProductID    string          `json:"productID" db:"product_id"` // Primary Key (UUID)
	TheaterID    string          `json:"theaterID" db:"theater_id"`
	Name         string          `json:"name" db:"name"`
	Description  string          `json:"description" db:"description"`
	Price        decimal.Decimal `json:"price" db:"price"`
	CurrencyCode string          `json:"currencyCode" db:"currency_code"`
	CurrentStock int64           `json:"currentStock" db:"current_stock"`
	IsActive     bool            `json:"isActive" db:"is_active"`
	Version      int64           `json:"-" db:"version"`
	AuditFields
}
