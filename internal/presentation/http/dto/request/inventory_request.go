package request

import "github.com/google/uuid"

// CreateStockItemRequest represents a stock item creation request
type CreateStockItemRequest struct {
	BranchID uuid.UUID `json:"branch_id" binding:"required"`
	Name     string    `json:"name" binding:"required,min=1,max=255"`
	Unit     string    `json:"unit" binding:"required"`
}

// PurchaseOrderItemRequest represents one line of a purchase order
type PurchaseOrderItemRequest struct {
	StockItemID uuid.UUID `json:"stock_item_id" binding:"required"`
	Quantity    float64   `json:"quantity" binding:"required,gt=0"`
	UnitCost    float64   `json:"unit_cost" binding:"min=0"`
}

// CreatePurchaseOrderRequest represents a purchase order creation request
type CreatePurchaseOrderRequest struct {
	BranchID uuid.UUID                  `json:"branch_id" binding:"required"`
	Supplier *string                    `json:"supplier" binding:"omitempty,max=255"`
	Items    []PurchaseOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// WastageRequest represents a wastage declaration
type WastageRequest struct {
	StockItemID uuid.UUID `json:"stock_item_id" binding:"required"`
	Quantity    float64   `json:"quantity" binding:"required,gt=0"`
	Reason      string    `json:"reason" binding:"required,min=1,max=255"`
}

// AdjustmentRequest represents a manual stock adjustment
type AdjustmentRequest struct {
	StockItemID uuid.UUID `json:"stock_item_id" binding:"required"`
	Delta       float64   `json:"delta" binding:"required"`
	Reason      string    `json:"reason" binding:"required,min=1,max=255"`
}

// CountLineRequest represents one counted item in an inventory count
type CountLineRequest struct {
	StockItemID uuid.UUID `json:"stock_item_id" binding:"required"`
	CountedQty  float64   `json:"counted_qty" binding:"min=0"`
}

// CreateCountRequest represents an inventory count creation request
type CreateCountRequest struct {
	BranchID uuid.UUID          `json:"branch_id" binding:"required"`
	Lines    []CountLineRequest `json:"lines" binding:"required,min=1,dive"`
}
