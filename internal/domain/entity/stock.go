package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kapehan/pos-api/internal/domain/enum"
)

// StockItem is a trackable ingredient or material. OnHand is a derived cache:
// it must always equal the signed sum of the item's stock movements, so every
// write to it is transactionally coupled to a movement insert.
type StockItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BranchID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"branch_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Unit      enum.StockUnit `gorm:"size:5;not null" json:"unit"`
	OnHand    float64        `gorm:"type:numeric(14,3);not null;default:0" json:"on_hand"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	Branch Branch `gorm:"foreignKey:BranchID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stock item
func (s *StockItem) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockItem model
func (StockItem) TableName() string {
	return "stock_items"
}

// StockMovement is an append-only ledger row: a signed quantity change
// against a stock item. Rows are never updated or deleted; corrections are
// new offsetting rows.
type StockMovement struct {
	ID            uuid.UUID               `gorm:"type:uuid;primary_key" json:"id"`
	BranchID      uuid.UUID               `gorm:"type:uuid;not null;index" json:"branch_id"`
	StockItemID   uuid.UUID               `gorm:"type:uuid;not null;index" json:"stock_item_id"`
	MovementType  enum.MovementType       `gorm:"size:10;not null" json:"movement_type"`
	Quantity      float64                 `gorm:"type:numeric(14,3);not null" json:"quantity"`
	Unit          enum.StockUnit          `gorm:"size:5;not null" json:"unit"`
	ReferenceType *enum.MovementReference `gorm:"size:10" json:"reference_type,omitempty"`
	ReferenceID   *uuid.UUID              `gorm:"type:uuid;index" json:"reference_id,omitempty"`
	Reason        *string                 `gorm:"size:255" json:"reason,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new stock movement
func (m *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockMovement model
func (StockMovement) TableName() string {
	return "stock_movements"
}
