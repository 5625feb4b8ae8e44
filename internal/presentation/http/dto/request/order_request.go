package request

import "github.com/google/uuid"

// OrderItemRequest represents one line of an order
type OrderItemRequest struct {
	ProductID uuid.UUID   `json:"product_id" binding:"required"`
	Quantity  int         `json:"quantity" binding:"required,min=1"`
	OptionIDs []uuid.UUID `json:"option_ids"`
}

// CreateOrderRequest represents an order placement request
type CreateOrderRequest struct {
	BranchID   uuid.UUID          `json:"branch_id" binding:"required"`
	Source     string             `json:"source" binding:"required"`
	OrderType  string             `json:"order_type" binding:"required"`
	ClientUUID *string            `json:"client_uuid" binding:"omitempty,uuid"`
	CustomerID *uuid.UUID         `json:"customer_id"`
	Phone      *string            `json:"phone" binding:"omitempty,max=30"`
	Notes      *string            `json:"notes"`
	Items      []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PayOrderRequest represents a payment request. Total is the client's own
// computation in major units; the server recomputes and only flags a
// disagreement.
type PayOrderRequest struct {
	Method string   `json:"method" binding:"required"`
	Total  *float64 `json:"total" binding:"omitempty,min=0"`
}

// UpdateOrderStatusRequest represents a kitchen status update request
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminActionRequest carries the admin PIN required for void and refund
type AdminActionRequest struct {
	AdminPin string `json:"admin_pin" binding:"required"`
}

// SyncPaymentRequest represents a payment taken while offline
type SyncPaymentRequest struct {
	Method string   `json:"method" binding:"required"`
	Total  *float64 `json:"total" binding:"omitempty,min=0"`
}

// SyncOrderRequest represents one offline order in a sync batch
type SyncOrderRequest struct {
	ClientUUID string              `json:"client_uuid" binding:"required,uuid"`
	BranchID   uuid.UUID           `json:"branch_id" binding:"required"`
	Source     string              `json:"source" binding:"required"`
	OrderType  string              `json:"order_type" binding:"required"`
	CustomerID *uuid.UUID          `json:"customer_id"`
	Phone      *string             `json:"phone" binding:"omitempty,max=30"`
	Notes      *string             `json:"notes"`
	Items      []OrderItemRequest  `json:"items" binding:"required,min=1,dive"`
	Payment    *SyncPaymentRequest `json:"payment"`
}

// SyncBatchRequest represents an offline sync batch
type SyncBatchRequest struct {
	Orders []SyncOrderRequest `json:"orders" binding:"required,min=1,dive"`
}
