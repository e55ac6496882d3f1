package repositories

import "github.com/screenbites/concession_backend/internal/core/domain"

// RepositoryProvider holds all repository instances for injection into the
// service layer.
type RepositoryProvider struct {
	TheaterRepo TheaterRepositoryFacade
	RoleRepo    ArrayDocumentRepository[domain.Role]
	UserRepo    ArrayDocumentRepository[domain.TheaterUser]
	PageRepo    ArrayDocumentRepository[domain.PageAccess]
	QRRepo      ArrayDocumentRepository[domain.QRCodeName]
	ProductRepo ProductRepositoryFacade
	StockRepo   StockLedgerRepositoryFacade
}
