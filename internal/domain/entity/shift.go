package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kapehan/pos-api/internal/domain/enum"
)

// Shift is one cashier session with opening and closing cash declarations.
type Shift struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	BranchID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"branch_id"`
	UserID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Status      enum.ShiftStatus `gorm:"size:10;not null" json:"status"`
	OpenedAt    time.Time        `json:"opened_at"`
	ClosedAt    *time.Time       `json:"closed_at,omitempty"`
	OpeningCash int64            `gorm:"default:0" json:"-"` // minor units
	ClosingCash *int64           `json:"-"`                  // minor units
	Notes       *string          `gorm:"type:text" json:"notes,omitempty"`

	Branch Branch `gorm:"foreignKey:BranchID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
}

// MarshalJSON converts the cash fields to decimals for API responses.
func (s Shift) MarshalJSON() ([]byte, error) {
	type Alias Shift
	out := &struct {
		Alias
		OpeningCash float64  `json:"opening_cash"`
		ClosingCash *float64 `json:"closing_cash,omitempty"`
	}{
		Alias:       Alias(s),
		OpeningCash: float64(s.OpeningCash) / 100,
	}
	if s.ClosingCash != nil {
		v := float64(*s.ClosingCash) / 100
		out.ClosingCash = &v
	}
	return json.Marshal(out)
}

// BeforeCreate generates a UUID before creating a new shift
func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Shift model
func (Shift) TableName() string {
	return "shifts"
}
