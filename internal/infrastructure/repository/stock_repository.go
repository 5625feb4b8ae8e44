package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kapehan/pos-api/internal/domain/entity"
	domainRepo "github.com/kapehan/pos-api/internal/domain/repository"
	"github.com/kapehan/pos-api/pkg/apperror"
)

type stockRepository struct {
	db *gorm.DB
}

// NewStockRepository creates a new stock repository
func NewStockRepository(db *gorm.DB) domainRepo.StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) CreateItem(ctx context.Context, item *entity.StockItem) error {
	return conn(ctx, r.db).Create(item).Error
}

func (r *stockRepository) GetItem(ctx context.Context, id uuid.UUID) (*entity.StockItem, error) {
	var item entity.StockItem
	err := conn(ctx, r.db).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFoundError("Stock item")
		}
		return nil, err
	}
	return &item, nil
}

func (r *stockRepository) ListItems(ctx context.Context, branchID uuid.UUID) ([]entity.StockItem, error) {
	var items []entity.StockItem
	err := conn(ctx, r.db).
		Where("branch_id = ?", branchID).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *stockRepository) AppendMovement(ctx context.Context, movement *entity.StockMovement) error {
	return conn(ctx, r.db).Create(movement).Error
}

func (r *stockRepository) AdjustOnHand(ctx context.Context, itemID uuid.UUID, delta float64) error {
	result := conn(ctx, r.db).Model(&entity.StockItem{}).
		Where("id = ?", itemID).
		Update("on_hand", gorm.Expr("on_hand + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewNotFoundError("Stock item")
	}
	return nil
}

func (r *stockRepository) SetOnHand(ctx context.Context, itemID uuid.UUID, quantity float64) error {
	result := conn(ctx, r.db).Model(&entity.StockItem{}).
		Where("id = ?", itemID).
		Update("on_hand", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewNotFoundError("Stock item")
	}
	return nil
}

func (r *stockRepository) ListMovements(ctx context.Context, itemID uuid.UUID) ([]entity.StockMovement, error) {
	var movements []entity.StockMovement
	err := conn(ctx, r.db).
		Where("stock_item_id = ?", itemID).
		Order("created_at DESC").
		Find(&movements).Error
	return movements, err
}

func (r *stockRepository) SumMovements(ctx context.Context, itemID uuid.UUID) (float64, error) {
	var total float64
	err := conn(ctx, r.db).Model(&entity.StockMovement{}).
		Where("stock_item_id = ?", itemID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) domainRepo.RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *entity.Recipe) error {
	return conn(ctx, r.db).Create(recipe).Error
}

func (r *recipeRepository) GetByProductID(ctx context.Context, productID uuid.UUID) (*entity.Recipe, error) {
	var recipe entity.Recipe
	err := conn(ctx, r.db).
		Preload("Lines").
		Where("product_id = ?", productID).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFoundError("Recipe")
		}
		return nil, err
	}
	return &recipe, nil
}

type purchaseOrderRepository struct {
	db *gorm.DB
}

// NewPurchaseOrderRepository creates a new purchase order repository
func NewPurchaseOrderRepository(db *gorm.DB) domainRepo.PurchaseOrderRepository {
	return &purchaseOrderRepository{db: db}
}

func (r *purchaseOrderRepository) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	return conn(ctx, r.db).Create(po).Error
}

func (r *purchaseOrderRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := conn(ctx, r.db).
		Preload("Items").
		Where("id = ?", id).
		First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFoundError("Purchase order")
		}
		return nil, err
	}
	return &po, nil
}

func (r *purchaseOrderRepository) AddItem(ctx context.Context, item *entity.PurchaseOrderItem) error {
	return conn(ctx, r.db).Create(item).Error
}

func (r *purchaseOrderRepository) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	return conn(ctx, r.db).Save(po).Error
}

type inventoryCountRepository struct {
	db *gorm.DB
}

// NewInventoryCountRepository creates a new inventory count repository
func NewInventoryCountRepository(db *gorm.DB) domainRepo.InventoryCountRepository {
	return &inventoryCountRepository{db: db}
}

func (r *inventoryCountRepository) Create(ctx context.Context, count *entity.InventoryCount) error {
	return conn(ctx, r.db).Create(count).Error
}

func (r *inventoryCountRepository) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.InventoryCount, error) {
	var count entity.InventoryCount
	err := conn(ctx, r.db).
		Preload("Lines").
		Where("id = ?", id).
		First(&count).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFoundError("Inventory count")
		}
		return nil, err
	}
	return &count, nil
}

func (r *inventoryCountRepository) Update(ctx context.Context, count *entity.InventoryCount) error {
	return conn(ctx, r.db).Save(count).Error
}
