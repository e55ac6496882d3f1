package domain

import "time"

// PageAccess is one gateable back-office page registered for a theater. The
// page key is what role permissions and the HTTP permission gate refer to.
type PageAccess struct {
	PageID        string    `json:"pageID"`
	Page          string    `json:"page"` // lookup key, unique within the theater
	PageName      string    `json:"pageName"`
	Route         string    `json:"route"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

func (p PageAccess) GetItemID() string { return p.PageID }

// DefaultPages is the page catalog seeded into a newly created theater.
func DefaultPages() []PageAccess {
	seed := []struct{ page, name, route string }{
		{"dashboard", "Dashboard", "/dashboard"},
		{"products", "Products", "/products"},
		{"inventory", "Inventory", "/inventory"},
		{"orders", "Orders", "/orders"},
		{"staff", "Staff", "/staff"},
		{"roles", "Roles", "/roles"},
		{"qr-codes", "QR Codes", "/qr-codes"},
		{"settings", "Settings", "/settings"},
	}
	pages := make([]PageAccess, 0, len(seed))
	for _, s := range seed {
		pages = append(pages, PageAccess{
			Page:     s.page,
			PageName: s.name,
			Route:    s.route,
			IsActive: true,
		})
	}
	return pages
}
