package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kapehan/pos-api/internal/domain/enum"
)

// InventoryCount is a manual stock count. Posting it writes a COUNT movement
// for every line whose counted quantity differs from the cached on-hand.
type InventoryCount struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	BranchID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"branch_id"`
	Status    enum.CountStatus `gorm:"size:10;not null" json:"status"`
	PostedAt  *time.Time       `json:"posted_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	Branch Branch               `gorm:"foreignKey:BranchID" json:"-"`
	Lines  []InventoryCountLine `gorm:"foreignKey:InventoryCountID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new inventory count
func (c *InventoryCount) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InventoryCount model
func (InventoryCount) TableName() string {
	return "inventory_counts"
}

// InventoryCountLine is one counted stock item on an inventory count.
type InventoryCountLine struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	InventoryCountID uuid.UUID      `gorm:"type:uuid;not null;index" json:"inventory_count_id"`
	StockItemID      uuid.UUID      `gorm:"type:uuid;not null" json:"stock_item_id"`
	CountedQty       float64        `gorm:"type:numeric(14,3);not null" json:"counted_qty"`
	Unit             enum.StockUnit `gorm:"size:5;not null" json:"unit"`

	StockItem StockItem `gorm:"foreignKey:StockItemID" json:"stock_item,omitempty"`
}

// BeforeCreate generates a UUID before creating a new count line
func (l *InventoryCountLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InventoryCountLine model
func (InventoryCountLine) TableName() string {
	return "inventory_count_lines"
}
