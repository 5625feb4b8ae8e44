package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kapehan/pos-api/internal/domain/entity"
)

// StockRepository defines the interface for stock items and the movement
// ledger. Movements are append-only; on-hand writes must happen in the same
// transaction as the movement they mirror.
type StockRepository interface {
	CreateItem(ctx context.Context, item *entity.StockItem) error
	GetItem(ctx context.Context, id uuid.UUID) (*entity.StockItem, error)
	ListItems(ctx context.Context, branchID uuid.UUID) ([]entity.StockItem, error)
	AppendMovement(ctx context.Context, movement *entity.StockMovement) error
	// AdjustOnHand applies a signed delta to the cached balance as a single
	// atomic expression (on_hand = on_hand + delta).
	AdjustOnHand(ctx context.Context, itemID uuid.UUID, delta float64) error
	// SetOnHand overwrites the cached balance; used when posting counts.
	SetOnHand(ctx context.Context, itemID uuid.UUID, quantity float64) error
	ListMovements(ctx context.Context, itemID uuid.UUID) ([]entity.StockMovement, error)
	// SumMovements recomputes the balance from the ledger for drift checks.
	SumMovements(ctx context.Context, itemID uuid.UUID) (float64, error)
}

// RecipeRepository defines the interface for product bills of materials.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *entity.Recipe) error
	GetByProductID(ctx context.Context, productID uuid.UUID) (*entity.Recipe, error)
}

// PurchaseOrderRepository defines the interface for purchase order documents.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error)
	AddItem(ctx context.Context, item *entity.PurchaseOrderItem) error
	Update(ctx context.Context, po *entity.PurchaseOrder) error
}

// InventoryCountRepository defines the interface for manual stock counts.
type InventoryCountRepository interface {
	Create(ctx context.Context, count *entity.InventoryCount) error
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.InventoryCount, error)
	Update(ctx context.Context, count *entity.InventoryCount) error
}
