package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kapehan/pos-api/internal/domain/entity"
	domainRepo "github.com/kapehan/pos-api/internal/domain/repository"
	"github.com/kapehan/pos-api/pkg/apperror"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return conn(ctx, r.db).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := conn(ctx, r.db).Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFoundError("Product")
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var products []entity.Product
	err := conn(ctx, r.db).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return conn(ctx, r.db).Save(product).Error
}

func (r *productRepository) ListByBranch(ctx context.Context, branchID uuid.UUID, activeOnly bool) ([]entity.Product, error) {
	query := conn(ctx, r.db).Where("branch_id = ?", branchID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var products []entity.Product
	err := query.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Model(&entity.Product{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewNotFoundError("Product")
	}
	return nil
}

func (r *productRepository) CreateOption(ctx context.Context, option *entity.ProductOption) error {
	return conn(ctx, r.db).Create(option).Error
}

func (r *productRepository) GetOption(ctx context.Context, id uuid.UUID) (*entity.ProductOption, error) {
	var option entity.ProductOption
	err := conn(ctx, r.db).Where("id = ?", id).First(&option).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFoundError("Product option")
		}
		return nil, err
	}
	return &option, nil
}

func (r *productRepository) UpdateOption(ctx context.Context, option *entity.ProductOption) error {
	return conn(ctx, r.db).Save(option).Error
}

func (r *productRepository) ListOptionsByBranch(ctx context.Context, branchID uuid.UUID, activeOnly bool) ([]entity.ProductOption, error) {
	query := conn(ctx, r.db).Preload("StockItem").Where("branch_id = ?", branchID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var options []entity.ProductOption
	err := query.Order("type ASC, name ASC").Find(&options).Error
	return options, err
}

func (r *productRepository) DeactivateOption(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Model(&entity.ProductOption{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewNotFoundError("Product option")
	}
	return nil
}
