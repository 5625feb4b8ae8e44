package request

import "github.com/google/uuid"

// CreateProductRequest represents a product creation request. Prices arrive
// in major units and are converted to minor units at the boundary.
type CreateProductRequest struct {
	BranchID      uuid.UUID `json:"branch_id" binding:"required"`
	Name          string    `json:"name" binding:"required,min=1,max=255"`
	Description   *string   `json:"description"`
	Price         float64   `json:"price" binding:"min=0"`
	IsDrink       bool      `json:"is_drink"`
	AvailableFrom *string   `json:"available_from" binding:"omitempty,len=5"`
	AvailableTo   *string   `json:"available_to" binding:"omitempty,len=5"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name          *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" binding:"omitempty,min=0"`
	IsDrink       *bool    `json:"is_drink"`
	AvailableFrom *string  `json:"available_from" binding:"omitempty,len=5"`
	AvailableTo   *string  `json:"available_to" binding:"omitempty,len=5"`
	IsActive      *bool    `json:"is_active"`
}

// CreateOptionRequest represents a product option creation request
type CreateOptionRequest struct {
	BranchID    uuid.UUID  `json:"branch_id" binding:"required"`
	ProductID   uuid.UUID  `json:"product_id" binding:"required"`
	Type        string     `json:"type" binding:"required"`
	Name        string     `json:"name" binding:"required,min=1,max=255"`
	PriceDelta  float64    `json:"price_delta"`
	StockItemID *uuid.UUID `json:"stock_item_id"`
}

// RecipeLineRequest represents one ingredient of a recipe
type RecipeLineRequest struct {
	StockItemID uuid.UUID `json:"stock_item_id" binding:"required"`
	Quantity    float64   `json:"quantity" binding:"required,gt=0"`
}

// SetRecipeRequest represents a recipe assignment request
type SetRecipeRequest struct {
	Lines []RecipeLineRequest `json:"lines" binding:"required,min=1,dive"`
}
