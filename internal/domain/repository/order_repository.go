package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kapehan/pos-api/internal/domain/entity"
	"github.com/kapehan/pos-api/internal/domain/enum"
	"github.com/kapehan/pos-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetForUpdate loads the order under an exclusive row lock held until the
	// enclosing transaction ends. Callers must be inside a TxManager unit.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByClientUUID(ctx context.Context, clientUUID string) (*entity.Order, error)
	GetItems(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error)
	Update(ctx context.Context, order *entity.Order) error
	CreateItems(ctx context.Context, items []entity.OrderItem) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	CreateToken(ctx context.Context, token *entity.OrderToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*entity.Order, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	BranchID   *uuid.UUID
	Status     *enum.OrderStatus
	CustomerID *uuid.UUID
	OrderDate  string
	StartDate  *time.Time
	EndDate    *time.Time
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetActiveByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Payment, error)
	MarkRefundedByOrderID(ctx context.Context, orderID uuid.UUID) error
}

// OrderCounterRepository allocates per-branch, per-day order numbers.
type OrderCounterRepository interface {
	// Allocate increments the counter row for (branch, date) — creating it at
	// 1 when absent — and returns the new value. The statement locks the row
	// for the remainder of the caller's transaction, so concurrent creates
	// for the same branch and date serialize and numbers come out gap-free.
	Allocate(ctx context.Context, branchID uuid.UUID, orderDate string) (int, error)
}
