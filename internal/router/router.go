// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bazarco/backend/internal/cache"
	"github.com/bazarco/backend/internal/config"
	"github.com/bazarco/backend/internal/handlers"
	"github.com/bazarco/backend/internal/i18n"
	"github.com/bazarco/backend/internal/middleware"
	"github.com/bazarco/backend/internal/repositories"
	"github.com/bazarco/backend/internal/search"
	"github.com/bazarco/backend/internal/services"
	"github.com/bazarco/backend/internal/utils"
)

// Clients are the process-lifetime outbound clients built once at start.
type Clients struct {
	Mirror     search.Mirror
	FacetCache cache.FacetCache
	Images     services.ImageStore
	Shopify    services.ExternalCatalog
	Mailer     services.Mailer
}

func Initialize(db *gorm.DB, cfg *config.Config, clients Clients) *gin.Engine {
	if clients.FacetCache == nil {
		clients.FacetCache = cache.NoopCache{}
	}

	// Repositories
	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	favouriteRepo := repositories.NewFavouriteRepository(db)
	userRepo := repositories.NewUserRepository(db)
	invitationRepo := repositories.NewInvitationRepository(db)

	// Services
	catalogService := services.NewCatalogService(categoryRepo, tagRepo, clients.FacetCache)
	browseService := services.NewBrowseService(productRepo, categoryRepo, tagRepo, catalogService, clients.Mirror)
	productService := services.NewProductService(productRepo, categoryRepo, tagRepo,
		clients.Images, clients.Shopify, search.NewProjector(clients.Mirror))
	favouriteService := services.NewFavouriteService(favouriteRepo, productRepo)
	authService := services.NewAuthService(userRepo, clients.Mailer, cfg)
	notifyService := services.NewNotifyService(invitationRepo, clients.Mailer)
	healthService := services.NewHealthService(db, cfg.Environment)

	// Handlers
	healthHandler := handlers.NewHealthHandler(healthService)
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	favouriteHandler := handlers.NewFavouriteHandler(favouriteService)
	notifyHandler := handlers.NewNotifyHandler(notifyService)
	productHandler := handlers.NewProductHandler(productService, browseService)

	authRequired := middleware.AuthRequired(userRepo)
	authLimit := middleware.PerMinute(cfg.RateLimit.AuthRequestsPerMinute)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.PerMinute(cfg.RateLimit.RequestsPerMinute).Middleware())
	r.Use(middleware.AuditLogMiddleware(db))

	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", authLimit.Middleware(), authHandler.Signup)
		auth.POST("/login", authLimit.Middleware(), authHandler.Login)
		auth.POST("/dev-login", authLimit.Middleware(), authHandler.DevLogin)
		auth.POST("/forgot-password", authLimit.Middleware(), authHandler.ForgotPassword)
		auth.POST("/reset-password", authLimit.Middleware(), authHandler.ResetPassword)
		auth.GET("/me", authRequired, authHandler.GetProfile)
		auth.PATCH("/profile", authRequired, authHandler.UpdateProfile)
	}

	categories := r.Group("/categories")
	{
		categories.GET("", catalogHandler.ListCategories)
		categories.POST("", authRequired, catalogHandler.CreateCategory)
		categories.DELETE("/:id", authRequired, catalogHandler.DeleteCategory)
	}

	tags := r.Group("/tags")
	{
		tags.GET("", catalogHandler.ListTags)
		tags.POST("", authRequired, catalogHandler.CreateTag)
		tags.DELETE("/:id", authRequired, catalogHandler.DeleteTag)
	}

	favourites := r.Group("/favourites")
	favourites.Use(authRequired)
	{
		favourites.GET("", favouriteHandler.List)
		favourites.GET("/check/:productId", favouriteHandler.Check)
		favourites.POST("/:productId", favouriteHandler.Add)
		favourites.DELETE("/:productId", favouriteHandler.Remove)
	}

	r.POST("/notify", notifyHandler.SignUp)

	products := r.Group("/products")
	products.Use(authRequired)
	{
		products.GET("/browse", productHandler.Browse)
		products.GET("", productHandler.ListMine)
		products.POST("", productHandler.Create)
		products.PATCH("/:id", productHandler.Update)
		products.DELETE("/:id", productHandler.Delete)
		products.PATCH("/:id/archive", productHandler.Archive)
		products.PATCH("/:id/unarchive", productHandler.Unarchive)
	}

	r.NoRoute(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusNotFound, utils.T(c, i18n.KeyRouteNotFound))
	})

	return r
}
