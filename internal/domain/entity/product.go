package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kapehan/pos-api/internal/domain/enum"
)

// Product is a sellable menu item. Price is the unit price copied onto order
// items at order-entry time; the catalog is not consulted again at
// settlement.
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BranchID      uuid.UUID `gorm:"type:uuid;not null;index" json:"branch_id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Description   *string   `gorm:"type:text" json:"description,omitempty"`
	Price         int64     `gorm:"not null" json:"-"` // minor units
	IsDrink       bool      `gorm:"default:false" json:"is_drink"`
	TaxCategory   string    `gorm:"size:20;default:'VAT'" json:"tax_category"`
	AvailableFrom *string   `gorm:"size:5" json:"available_from,omitempty"` // "HH:MM"
	AvailableTo   *string   `gorm:"size:5" json:"available_to,omitempty"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Branch  Branch          `gorm:"foreignKey:BranchID" json:"-"`
	Options []ProductOption `gorm:"foreignKey:ProductID" json:"options,omitempty"`
}

// MarshalJSON converts the price to a decimal for API responses.
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(p),
		Price: float64(p.Price) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// ProductOption is a menu customization (temperature, beans, milk, add-on)
// with a price delta. An option may be backed by a stock item, in which case
// the menu hides it when that item runs low.
type ProductOption struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BranchID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"branch_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Type        enum.OptionType `gorm:"size:15;not null" json:"type"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	PriceDelta  int64           `gorm:"default:0" json:"-"` // minor units
	StockItemID *uuid.UUID      `gorm:"type:uuid" json:"stock_item_id,omitempty"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	StockItem *StockItem `gorm:"foreignKey:StockItemID" json:"-"`
}

// MarshalJSON converts the price delta to a decimal for API responses.
func (o ProductOption) MarshalJSON() ([]byte, error) {
	type Alias ProductOption
	return json.Marshal(&struct {
		Alias
		PriceDelta float64 `json:"price_delta"`
	}{
		Alias:      Alias(o),
		PriceDelta: float64(o.PriceDelta) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new product option
func (o *ProductOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProductOption model
func (ProductOption) TableName() string {
	return "product_options"
}
