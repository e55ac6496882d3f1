package domain

import "time"

// ArrayItem is implemented by every entity kind stored inside a theater-scoped
// array document (roles, theater users, page access entries, QR code names).
type ArrayItem interface {
	GetItemID() string
}

// ArrayDocument is the single per-theater document holding the embedded items
// of one entity kind. Exactly one document exists per (theater, entity kind);
// it is created lazily on first use. The Version field drives optimistic
// concurrency: every item mutation rewrites Items conditionally on the version
// read, so concurrent writers cannot silently drop each other's changes.
type ArrayDocument[T ArrayItem] struct {
	TheaterID     string    `json:"theaterID"`
	Items         []T       `json:"items"`
	Version       int64     `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"updatedAt"`
}

// FindItem returns the index of the item with the given identifier, or -1.
func (d *ArrayDocument[T]) FindItem(itemID string) int {
	for i := range d.Items {
		if d.Items[i].GetItemID() == itemID {
			return i
		}
	}
	return -1
}
