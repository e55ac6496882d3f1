package domain

// Theater represents a tenant: a cinema location owning its own products,
// staff, roles and QR counters.
type Theater struct {
	TheaterID   string `json:"theaterID" db:"theater_id"` // Primary Key (UUID)
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	City        string `json:"city" db:"city"`
	IsActive    bool   `json:"isActive" db:"is_active"`
	Version     int64  `json:"-" db:"version"`
	AuditFields
}
