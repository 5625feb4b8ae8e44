package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kapehan/pos-api/internal/domain/enum"
)

// User is a staff account. Admin users have no branch binding; cashiers and
// kitchen staff belong to one branch.
type User struct {
	ID           uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	BranchID     *uuid.UUID    `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	Username     string        `gorm:"size:100;unique;not null" json:"username"`
	PasswordHash string        `gorm:"size:255;not null" json:"-"`
	Role         enum.UserRole `gorm:"size:10;not null" json:"role"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	Branch *Branch `gorm:"foreignKey:BranchID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
