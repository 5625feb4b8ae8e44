package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kapehan/pos-api/internal/domain/enum"
)

// Payment is one successful pay operation. An order may have at most one
// active (non-refunded) payment.
type Payment struct {
	ID      uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrderID uuid.UUID          `gorm:"type:uuid;not null;index" json:"order_id"`
	Method  enum.PaymentMethod `gorm:"size:10;not null" json:"method"`
	Amount  int64              `gorm:"not null" json:"-"` // minor units
	Status  enum.PaymentStatus `gorm:"size:10;not null" json:"status"`
	PaidAt  time.Time          `json:"paid_at"`
}

// MarshalJSON converts the amount to a decimal for API responses.
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
