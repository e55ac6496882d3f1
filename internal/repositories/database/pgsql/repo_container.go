package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/screenbites/concession_backend/internal/core/domain"
	portsrepo "github.com/screenbites/concession_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	theaterRepo := newPgxTheaterRepository(dbPool)
	roleRepo := newPgxArrayDocumentRepository[domain.Role](dbPool, "theater_roles")
	userRepo := newPgxArrayDocumentRepository[domain.TheaterUser](dbPool, "theater_users")
	pageRepo := newPgxArrayDocumentRepository[domain.PageAccess](dbPool, "theater_page_access")
	qrRepo := newPgxArrayDocumentRepository[domain.QRCodeName](dbPool, "theater_qr_names")
	productRepo := newPgxProductRepository(dbPool)
	stockRepo := newPgxStockLedgerRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TheaterRepo: theaterRepo,
		RoleRepo:    roleRepo,
		UserRepo:    userRepo,
		PageRepo:    pageRepo,
		QRRepo:      qrRepo,
		ProductRepo: productRepo,
		StockRepo:   stockRepo,
	}
}
