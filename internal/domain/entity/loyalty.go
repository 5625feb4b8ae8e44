package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoyaltyAccount caches the stamp balance for one customer at one branch.
// The balance must equal the signed sum of the account's ledger entries.
type LoyaltyAccount struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_loyalty_customer_branch,priority:1" json:"customer_id"`
	BranchID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_loyalty_customer_branch,priority:2" json:"branch_id"`
	Balance    int       `gorm:"not null;default:0" json:"balance"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new loyalty account
func (a *LoyaltyAccount) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LoyaltyAccount model
func (LoyaltyAccount) TableName() string {
	return "loyalty_accounts"
}

// LoyaltyLedgerEntry is an append-only stamp accrual row. Positive entries
// accrue stamps for an order; negative entries reverse a prior entry and
// carry a back-reference to it.
type LoyaltyLedgerEntry struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"customer_id"`
	BranchID           uuid.UUID  `gorm:"type:uuid;not null" json:"branch_id"`
	OrderID            uuid.UUID  `gorm:"type:uuid;not null;index" json:"order_id"`
	Stamps             int        `gorm:"not null" json:"stamps"`
	ReversalOfEntryID  *uuid.UUID `gorm:"type:uuid;index" json:"reversal_of_entry_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new ledger entry
func (e *LoyaltyLedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LoyaltyLedgerEntry model
func (LoyaltyLedgerEntry) TableName() string {
	return "loyalty_ledger"
}
