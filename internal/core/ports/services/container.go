package services

// ServiceContainer holds all service instances for injection into the HTTP
// layer.
type ServiceContainer struct {
	Theater     TheaterService
	Role        RoleService
	TheaterUser TheaterUserService
	PageAccess  PageAccessService
	QRCode      QRCodeService
	Product     ProductService
	Stock       StockService
}
