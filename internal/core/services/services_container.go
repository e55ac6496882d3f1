package services

import (
	portsrepo "github.com/screenbites/concession_backend/internal/core/ports/repositories"
	portssvc "github.com/screenbites/concession_backend/internal/core/ports/services"
	"github.com/screenbites/concession_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Theater = NewTheaterService(
		repos.TheaterRepo,
		repos.RoleRepo,
		repos.UserRepo,
		repos.PageRepo,
		repos.QRRepo,
	)
	container.Role = NewRoleService(repos.RoleRepo)
	container.TheaterUser = NewTheaterUserService(
		repos.UserRepo,
		repos.RoleRepo,
		repos.TheaterRepo,
		cfg.MaxLoginAttempts,
		cfg.LockoutDuration,
	)
	container.PageAccess = NewPageAccessService(repos.PageRepo)
	container.QRCode = NewQRCodeService(repos.QRRepo)
	container.Product = NewProductService(repos.ProductRepo, repos.TheaterRepo)
	container.Stock = NewStockService(repos.StockRepo, repos.ProductRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.TheaterService     = (*theaterService)(nil)
	_ portssvc.RoleService        = (*roleService)(nil)
	_ portssvc.TheaterUserService = (*theaterUserService)(nil)
	_ portssvc.StockService       = (*stockService)(nil)
)
