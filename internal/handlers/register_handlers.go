package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"

	"github.com/screenbites/concession_backend/cmd/docs"
	portssvc "github.com/screenbites/concession_backend/internal/core/ports/services"
	"github.com/screenbites/concession_backend/internal/middleware"
	"github.com/screenbites/concession_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	loginLimiter *limiter.Limiter,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public routes: login is rate limited, theater signup shares the limiter.
	public := r.Group("", middleware.RateLimit(loginLimiter))
	registerAuthRoutes(public.Group("/auth"), cfg, services)
	registerTheaterProvisioningRoutes(public.Group("/api/v1"), services.Theater)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerTheaterRoutes(v1, services.Theater, services.Role)
	registerStockAdminRoutes(v1, services.Stock, services.Role)

	// Everything nested under a theater is scoped to the token's theater.
	theaterScoped := v1.Group("/theaters/:theater_id", middleware.RequireTheaterScope())
	{
		registerRoleRoutes(theaterScoped, services.Role)
		registerTheaterUserRoutes(theaterScoped, services.TheaterUser, services.Role)
		registerPageAccessRoutes(theaterScoped, services.PageAccess, services.Role)
		registerQRCodeRoutes(theaterScoped, services.QRCode, services.Role)
		registerProductRoutes(theaterScoped, services.Product, services.Stock, services.Role)
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
