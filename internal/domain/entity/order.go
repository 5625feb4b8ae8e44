package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kapehan/pos-api/internal/domain/enum"
)

// Order is a durably numbered sale. (branch_id, order_date, order_no) is
// unique and contiguous from 1 per branch per day. Monetary fields are only
// authoritative from PAID onward; they are stamped by the recompute at pay
// time, never taken from the client.
type Order struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	BranchID        uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_orders_branch_date_no,priority:1" json:"branch_id"`
	OrderDate       string           `gorm:"size:10;not null;uniqueIndex:idx_orders_branch_date_no,priority:2" json:"order_date"`
	OrderNo         int              `gorm:"not null;uniqueIndex:idx_orders_branch_date_no,priority:3" json:"order_no"`
	Source          enum.OrderSource `gorm:"size:20;not null" json:"source"`
	OrderType       enum.OrderType   `gorm:"size:20;not null" json:"order_type"`
	Status          enum.OrderStatus `gorm:"size:20;not null;index" json:"status"`
	CustomerID      *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Phone           *string          `gorm:"size:30" json:"phone,omitempty"`
	ClientUUID      *string          `gorm:"size:36;uniqueIndex" json:"client_uuid,omitempty"`
	Notes           *string          `gorm:"type:text" json:"notes,omitempty"`
	Subtotal        int64            `gorm:"default:0" json:"-"` // minor units
	DiscountTotal   int64            `gorm:"default:0" json:"-"` // minor units
	TotalAmount     int64            `gorm:"default:0" json:"-"` // minor units
	VATAmount       int64            `gorm:"default:0" json:"-"` // minor units
	NetAmount       int64            `gorm:"default:0" json:"-"` // minor units
	PricingMismatch bool             `gorm:"default:false" json:"pricing_mismatch"`
	PlacedAt        time.Time        `json:"placed_at"`
	PaidAt          *time.Time       `json:"paid_at,omitempty"`
	CompletedAt     *time.Time       `json:"completed_at,omitempty"`
	RefundedAt      *time.Time       `json:"refunded_at,omitempty"`
	UpdatedByUserID *uuid.UUID       `gorm:"type:uuid" json:"-"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`

	Branch   Branch      `gorm:"foreignKey:BranchID" json:"-"`
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// MarshalJSON converts the minor-unit money fields to decimals for API
// responses.
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		Subtotal      float64 `json:"subtotal"`
		DiscountTotal float64 `json:"discount_total"`
		TotalAmount   float64 `json:"total_amount"`
		VATAmount     float64 `json:"vat_amount"`
		NetAmount     float64 `json:"net_amount"`
	}{
		Alias:         Alias(o),
		Subtotal:      float64(o.Subtotal) / 100,
		DiscountTotal: float64(o.DiscountTotal) / 100,
		TotalAmount:   float64(o.TotalAmount) / 100,
		VATAmount:     float64(o.VATAmount) / 100,
		NetAmount:     float64(o.NetAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line item. Items are written once with the order and never
// mutated afterwards.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice int64     `gorm:"not null" json:"-"` // minor units

	Product Product           `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Options []OrderItemOption `gorm:"foreignKey:OrderItemID" json:"options,omitempty"`
}

// MarshalJSON converts the unit price to a decimal for API responses.
func (i OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
	}{
		Alias:     Alias(i),
		UnitPrice: float64(i.UnitPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// OrderItemOption is a selected option on a line item, carrying its price
// delta as captured at order time.
type OrderItemOption struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderItemID uuid.UUID `gorm:"type:uuid;not null;index" json:"order_item_id"`
	OptionID    uuid.UUID `gorm:"type:uuid;not null" json:"option_id"`
	PriceDelta  int64     `gorm:"default:0" json:"-"` // minor units
}

// MarshalJSON converts the price delta to a decimal for API responses.
func (o OrderItemOption) MarshalJSON() ([]byte, error) {
	type Alias OrderItemOption
	return json.Marshal(&struct {
		Alias
		PriceDelta float64 `json:"price_delta"`
	}{
		Alias:      Alias(o),
		PriceDelta: float64(o.PriceDelta) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item option
func (o *OrderItemOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItemOption model
func (OrderItemOption) TableName() string {
	return "order_item_options"
}

// OrderToken stores the one-way hash of a tracking token minted at pay time.
// The raw token is returned to the payer once and never persisted.
type OrderToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	TokenHash string    `gorm:"size:64;not null;uniqueIndex" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new order token
func (t *OrderToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderToken model
func (OrderToken) TableName() string {
	return "order_tokens"
}
