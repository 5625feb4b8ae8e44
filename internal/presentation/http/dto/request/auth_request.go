package request

import "github.com/google/uuid"

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a staff registration request
type RegisterRequest struct {
	Username string     `json:"username" binding:"required,min=3,max=100"`
	Password string     `json:"password" binding:"required,min=8"`
	Role     string     `json:"role" binding:"required"`
	BranchID *uuid.UUID `json:"branch_id"`
}

// IdentifyCustomerRequest represents a customer identification request
type IdentifyCustomerRequest struct {
	Phone string  `json:"phone" binding:"required,min=7,max=30"`
	Name  *string `json:"name" binding:"omitempty,max=255"`
}

// OpenShiftRequest represents a shift opening request
type OpenShiftRequest struct {
	BranchID    uuid.UUID `json:"branch_id" binding:"required"`
	OpeningCash float64   `json:"opening_cash" binding:"min=0"`
}

// CloseShiftRequest represents a shift closing request
type CloseShiftRequest struct {
	ClosingCash float64 `json:"closing_cash" binding:"min=0"`
	Notes       *string `json:"notes"`
}
