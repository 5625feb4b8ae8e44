package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kapehan/pos-api/internal/domain/entity"
)

// ProductRepository defines the interface for catalog products and options.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	ListByBranch(ctx context.Context, branchID uuid.UUID, activeOnly bool) ([]entity.Product, error)
	Deactivate(ctx context.Context, id uuid.UUID) error

	CreateOption(ctx context.Context, option *entity.ProductOption) error
	GetOption(ctx context.Context, id uuid.UUID) (*entity.ProductOption, error)
	UpdateOption(ctx context.Context, option *entity.ProductOption) error
	// ListOptionsByBranch preloads the backing stock item so the menu can
	// apply its availability threshold.
	ListOptionsByBranch(ctx context.Context, branchID uuid.UUID, activeOnly bool) ([]entity.ProductOption, error)
	DeactivateOption(ctx context.Context, id uuid.UUID) error
}
