package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/kapehan/pos-api/internal/application/service"
	"github.com/kapehan/pos-api/internal/config"
	"github.com/kapehan/pos-api/internal/domain/event"
	"github.com/kapehan/pos-api/internal/infrastructure/database"
	"github.com/kapehan/pos-api/internal/infrastructure/notifier"
	"github.com/kapehan/pos-api/internal/infrastructure/repository"
	"github.com/kapehan/pos-api/internal/presentation/http/handler"
	"github.com/kapehan/pos-api/internal/presentation/http/routes"
	"github.com/kapehan/pos-api/pkg/logger"
	"github.com/kapehan/pos-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zapLogger, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	location, err := time.LoadLocation(cfg.Database.Timezone)
	if err != nil {
		log.Printf("Warning: unknown timezone %q, using local time", cfg.Database.Timezone)
		location = time.Local
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	txManager := repository.NewTxManager(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	counterRepo := repository.NewOrderCounterRepository(db)
	productRepo := repository.NewProductRepository(db)
	stockRepo := repository.NewStockRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	poRepo := repository.NewPurchaseOrderRepository(db)
	countRepo := repository.NewInventoryCountRepository(db)
	loyaltyRepo := repository.NewLoyaltyRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	userRepo := repository.NewUserRepository(db)
	shiftRepo := repository.NewShiftRepository(db)

	// Initialize the branch event notifier
	var eventNotifier event.Notifier = event.NoopNotifier{}
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		eventNotifier = notifier.NewRedisNotifier(redisClient, zapLogger)
	}

	// Initialize services
	inventoryService := service.NewInventoryService(txManager, stockRepo, recipeRepo, poRepo, countRepo, zapLogger)
	loyaltyService := service.NewLoyaltyService(loyaltyRepo, zapLogger)
	orderService := service.NewOrderService(
		txManager, orderRepo, paymentRepo, counterRepo, productRepo, customerRepo,
		inventoryService, loyaltyService, eventNotifier,
		cfg.POS.VATRate, location, zapLogger,
	)
	syncService := service.NewSyncService(orderService, orderRepo, zapLogger)
	catalogService := service.NewCatalogService(productRepo, recipeRepo, stockRepo, cfg.POS.StockThreshold, location)
	customerService := service.NewCustomerService(customerRepo, loyaltyService)
	authService := service.NewAuthService(userRepo, jwtManager)
	shiftService := service.NewShiftService(shiftRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Order:     handler.NewOrderHandler(orderService, syncService, cfg.POS.AdminPIN),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Inventory: handler.NewInventoryHandler(inventoryService),
		Customer:  handler.NewCustomerHandler(customerService),
		Shift:     handler.NewShiftHandler(shiftService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
		Logger:     zapLogger,
	})

	addr := ":" + cfg.App.Port
	log.Printf("Starting %s on %s", cfg.App.Name, addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
