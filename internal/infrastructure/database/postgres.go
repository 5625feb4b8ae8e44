package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kapehan/pos-api/internal/config"
	"github.com/kapehan/pos-api/internal/domain/entity"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		// Locations and people
		&entity.Branch{},
		&entity.User{},
		&entity.Customer{},

		// Catalog
		&entity.Product{},
		&entity.ProductOption{},
		&entity.Recipe{},
		&entity.RecipeLine{},

		// Inventory
		&entity.StockItem{},
		&entity.StockMovement{},
		&entity.PurchaseOrder{},
		&entity.PurchaseOrderItem{},
		&entity.InventoryCount{},
		&entity.InventoryCountLine{},

		// Orders and settlement
		&entity.Order{},
		&entity.OrderItem{},
		&entity.OrderItemOption{},
		&entity.Payment{},
		&entity.OrderToken{},
		&entity.OrderCounter{},

		// Loyalty
		&entity.LoyaltyAccount{},
		&entity.LoyaltyLedgerEntry{},

		// Operations
		&entity.Shift{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
