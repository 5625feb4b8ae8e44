package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderCounter holds the last-issued order number for one branch and day.
// It is the sole coordination point for order numbering: concurrent creates
// for the same branch and date serialize on this row.
type OrderCounter struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BranchID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_counters_branch_date,priority:1" json:"branch_id"`
	OrderDate string    `gorm:"size:10;not null;uniqueIndex:idx_counters_branch_date,priority:2" json:"order_date"`
	CurrentNo int       `gorm:"not null;default:0" json:"current_no"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new counter
func (c *OrderCounter) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderCounter model
func (OrderCounter) TableName() string {
	return "order_counters"
}
