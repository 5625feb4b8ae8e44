package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kapehan/pos-api/internal/domain/enum"
)

// PurchaseOrder is an incoming stock document. Receiving it appends RECEIVE
// movements for every line and closes the document.
type PurchaseOrder struct {
	ID         uuid.UUID                `gorm:"type:uuid;primary_key" json:"id"`
	BranchID   uuid.UUID                `gorm:"type:uuid;not null;index" json:"branch_id"`
	Supplier   *string                  `gorm:"size:255" json:"supplier,omitempty"`
	Status     enum.PurchaseOrderStatus `gorm:"size:10;not null" json:"status"`
	ReceivedAt *time.Time               `json:"received_at,omitempty"`
	CreatedAt  time.Time                `json:"created_at"`
	UpdatedAt  time.Time                `json:"updated_at"`

	Branch Branch              `gorm:"foreignKey:BranchID" json:"-"`
	Items  []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase order
func (p *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseOrder model
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderItem is one stock item and quantity on a purchase order.
type PurchaseOrderItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseOrderID uuid.UUID `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	StockItemID     uuid.UUID `gorm:"type:uuid;not null" json:"stock_item_id"`
	Quantity        float64   `gorm:"type:numeric(14,3);not null" json:"quantity"`
	UnitCost        int64     `gorm:"not null" json:"-"` // minor units

	StockItem StockItem `gorm:"foreignKey:StockItemID" json:"stock_item,omitempty"`
}

// MarshalJSON converts the unit cost to a decimal for API responses.
func (i PurchaseOrderItem) MarshalJSON() ([]byte, error) {
	type Alias PurchaseOrderItem
	return json.Marshal(&struct {
		Alias
		UnitCost float64 `json:"unit_cost"`
	}{
		Alias:    Alias(i),
		UnitCost: float64(i.UnitCost) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new purchase order item
func (i *PurchaseOrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseOrderItem model
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}
