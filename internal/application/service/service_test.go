package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kapehan/pos-api/internal/domain/entity"
	"github.com/kapehan/pos-api/internal/domain/enum"
	"github.com/kapehan/pos-api/internal/infrastructure/database"
	"github.com/kapehan/pos-api/internal/infrastructure/notifier"
	"github.com/kapehan/pos-api/internal/infrastructure/repository"
)

// setupTestDB opens a per-test in-memory SQLite database. The shared-cache
// DSN keyed by test name keeps the schema alive across connections while
// isolating tests from one another; a single connection avoids SQLite's
// write contention.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// testEnv wires the full service graph against one test database, with an
// in-memory notifier to assert on published events.
type testEnv struct {
	db        *gorm.DB
	events    *notifier.MemoryNotifier
	orders    *OrderService
	sync      *SyncService
	inventory *InventoryService
	loyalty   *LoyaltyService
	catalog   *CatalogService
	customers *CustomerService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	log := zap.NewNop()
	txManager := repository.NewTxManager(db)
	events := notifier.NewMemoryNotifier()

	stockRepo := repository.NewStockRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)

	inventory := NewInventoryService(
		txManager,
		stockRepo,
		recipeRepo,
		repository.NewPurchaseOrderRepository(db),
		repository.NewInventoryCountRepository(db),
		log,
	)
	loyalty := NewLoyaltyService(repository.NewLoyaltyRepository(db), log)
	orders := NewOrderService(
		txManager,
		orderRepo,
		repository.NewPaymentRepository(db),
		repository.NewOrderCounterRepository(db),
		productRepo,
		customerRepo,
		inventory,
		loyalty,
		events,
		0.12,
		time.UTC,
		log,
	)

	return &testEnv{
		db:        db,
		events:    events,
		orders:    orders,
		sync:      NewSyncService(orders, orderRepo, log),
		inventory: inventory,
		loyalty:   loyalty,
		catalog:   NewCatalogService(productRepo, recipeRepo, stockRepo, 0, time.UTC),
		customers: NewCustomerService(customerRepo, loyalty),
	}
}

var branchSeq int

func createBranch(t *testing.T, db *gorm.DB) *entity.Branch {
	t.Helper()
	branchSeq++
	branch := &entity.Branch{
		Name: fmt.Sprintf("Branch %d", branchSeq),
		Code: fmt.Sprintf("BR%03d", branchSeq),
	}
	require.NoError(t, db.Create(branch).Error)
	return branch
}

func createProduct(t *testing.T, db *gorm.DB, branchID uuid.UUID, name string, price int64, isDrink bool) *entity.Product {
	t.Helper()
	product := &entity.Product{
		BranchID: branchID,
		Name:     name,
		Price:    price,
		IsDrink:  isDrink,
		IsActive: true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func createOption(t *testing.T, db *gorm.DB, product *entity.Product, optType enum.OptionType, name string, delta int64) *entity.ProductOption {
	t.Helper()
	option := &entity.ProductOption{
		BranchID:   product.BranchID,
		ProductID:  product.ID,
		Type:       optType,
		Name:       name,
		PriceDelta: delta,
		IsActive:   true,
	}
	require.NoError(t, db.Create(option).Error)
	return option
}

func createStockItem(t *testing.T, db *gorm.DB, branchID uuid.UUID, name string, unit enum.StockUnit, onHand float64) *entity.StockItem {
	t.Helper()
	item := &entity.StockItem{
		BranchID: branchID,
		Name:     name,
		Unit:     unit,
		OnHand:   onHand,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func createRecipe(t *testing.T, db *gorm.DB, productID uuid.UUID, lines ...entity.RecipeLine) *entity.Recipe {
	t.Helper()
	recipe := &entity.Recipe{ProductID: productID, Lines: lines}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

func createCustomer(t *testing.T, db *gorm.DB, phone string) *entity.Customer {
	t.Helper()
	customer := &entity.Customer{Phone: phone}
	require.NoError(t, db.Create(customer).Error)
	return customer
}
