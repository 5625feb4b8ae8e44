package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kapehan/pos-api/internal/config"
	"github.com/kapehan/pos-api/internal/domain/enum"
	"github.com/kapehan/pos-api/internal/presentation/http/handler"
	"github.com/kapehan/pos-api/internal/presentation/http/middleware"
	"github.com/kapehan/pos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Order     *handler.OrderHandler
	Catalog   *handler.CatalogHandler
	Inventory *handler.InventoryHandler
	Customer  *handler.CustomerHandler
	Shift     *handler.ShiftHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
	Logger     *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Public routes
		v1.POST("/auth/login", h.Auth.Login)
		v1.GET("/track/:token", h.Order.Track)

		// Protected routes
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	admin := string(enum.RoleAdmin)
	cashier := string(enum.RoleCashier)
	kitchen := string(enum.RoleKitchen)

	protected.POST("/auth/register", middleware.RequireRole(admin), h.Auth.Register)

	orders := protected.Group("/orders")
	{
		orders.POST("", h.Order.Create)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/pay", middleware.RequireRole(admin, cashier), h.Order.Pay)
		orders.PATCH("/:id/status", middleware.RequireRole(admin, cashier, kitchen), h.Order.UpdateStatus)
		orders.POST("/:id/complete", middleware.RequireRole(admin, cashier, kitchen), h.Order.Complete)
		orders.POST("/:id/void", middleware.RequireRole(admin, cashier), h.Order.Void)
		orders.POST("/:id/refund", middleware.RequireRole(admin, cashier), h.Order.Refund)
		orders.POST("/sync", middleware.RequireRole(admin, cashier), h.Order.Sync)
	}

	protected.GET("/menu", h.Catalog.Menu)

	products := protected.Group("/products")
	{
		products.GET("", h.Catalog.ListProducts)
		products.POST("", middleware.RequireRole(admin), h.Catalog.CreateProduct)
		products.PATCH("/:id", middleware.RequireRole(admin), h.Catalog.UpdateProduct)
		products.DELETE("/:id", middleware.RequireRole(admin), h.Catalog.DeactivateProduct)
		products.GET("/:id/recipe", h.Catalog.GetRecipe)
		products.POST("/:id/recipe", middleware.RequireRole(admin), h.Catalog.SetRecipe)
	}

	options := protected.Group("/options")
	{
		options.POST("", middleware.RequireRole(admin), h.Catalog.CreateOption)
		options.DELETE("/:id", middleware.RequireRole(admin), h.Catalog.DeactivateOption)
	}

	stock := protected.Group("/stock")
	{
		stock.GET("", h.Inventory.ListStockItems)
		stock.POST("", middleware.RequireRole(admin), h.Inventory.CreateStockItem)
		stock.GET("/:id/movements", h.Inventory.ListMovements)
		stock.GET("/:id/drift", middleware.RequireRole(admin), h.Inventory.CheckDrift)
		stock.GET("/reconcile", middleware.RequireRole(admin), h.Inventory.Reconcile)
		stock.POST("/wastage", middleware.RequireRole(admin, cashier), h.Inventory.RecordWastage)
		stock.POST("/adjust", middleware.RequireRole(admin), h.Inventory.Adjust)
	}

	purchaseOrders := protected.Group("/purchase-orders")
	{
		purchaseOrders.POST("", middleware.RequireRole(admin), h.Inventory.CreatePurchaseOrder)
		purchaseOrders.POST("/:id/receive", middleware.RequireRole(admin, cashier), h.Inventory.ReceivePurchaseOrder)
	}

	counts := protected.Group("/inventory-counts")
	{
		counts.POST("", middleware.RequireRole(admin, cashier), h.Inventory.CreateCount)
		counts.POST("/:id/submit", middleware.RequireRole(admin, cashier), h.Inventory.SubmitCount)
		counts.POST("/:id/post", middleware.RequireRole(admin), h.Inventory.PostCount)
	}

	customers := protected.Group("/customers")
	{
		customers.POST("/identify", h.Customer.Identify)
		customers.GET("/:id/stamps", h.Customer.StampBalance)
	}

	shifts := protected.Group("/shifts")
	{
		shifts.POST("", middleware.RequireRole(admin, cashier), h.Shift.Open)
		shifts.GET("/:id", h.Shift.Get)
		shifts.POST("/:id/close", middleware.RequireRole(admin, cashier), h.Shift.Close)
	}
}
