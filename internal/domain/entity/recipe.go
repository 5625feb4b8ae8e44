package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kapehan/pos-api/internal/domain/enum"
)

// Recipe is the bill of materials for one product. A product with no recipe
// is inventory-untracked and selling it has no stock effect.
type Recipe struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"product_id"`

	Lines []RecipeLine `gorm:"foreignKey:RecipeID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new recipe
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Recipe model
func (Recipe) TableName() string {
	return "recipes"
}

// RecipeLine maps a recipe to one stock item and the quantity consumed per
// unit sold.
type RecipeLine struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"recipe_id"`
	StockItemID uuid.UUID      `gorm:"type:uuid;not null" json:"stock_item_id"`
	Quantity    float64        `gorm:"type:numeric(14,3);not null" json:"quantity"`
	Unit        enum.StockUnit `gorm:"size:5;not null" json:"unit"`

	StockItem StockItem `gorm:"foreignKey:StockItemID" json:"stock_item,omitempty"`
}

// BeforeCreate generates a UUID before creating a new recipe line
func (l *RecipeLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RecipeLine model
func (RecipeLine) TableName() string {
	return "recipe_lines"
}
