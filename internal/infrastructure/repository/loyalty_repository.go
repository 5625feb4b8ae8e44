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

type loyaltyRepository struct {
	db *gorm.DB
}

// NewLoyaltyRepository creates a new loyalty repository
func NewLoyaltyRepository(db *gorm.DB) domainRepo.LoyaltyRepository {
	return &loyaltyRepository{db: db}
}

func (r *loyaltyRepository) EnsureAccount(ctx context.Context, customerID, branchID uuid.UUID) (*entity.LoyaltyAccount, error) {
	account := entity.LoyaltyAccount{
		CustomerID: customerID,
		BranchID:   branchID,
	}
	err := conn(ctx, r.db).
		Where("customer_id = ? AND branch_id = ?", customerID, branchID).
		FirstOrCreate(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *loyaltyRepository) GetAccount(ctx context.Context, customerID, branchID uuid.UUID) (*entity.LoyaltyAccount, error) {
	var account entity.LoyaltyAccount
	err := conn(ctx, r.db).
		Where("customer_id = ? AND branch_id = ?", customerID, branchID).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFoundError("Loyalty account")
		}
		return nil, err
	}
	return &account, nil
}

func (r *loyaltyRepository) AdjustBalance(ctx context.Context, customerID, branchID uuid.UUID, delta int) error {
	result := conn(ctx, r.db).Model(&entity.LoyaltyAccount{}).
		Where("customer_id = ? AND branch_id = ?", customerID, branchID).
		Update("balance", gorm.Expr("balance + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewNotFoundError("Loyalty account")
	}
	return nil
}

func (r *loyaltyRepository) CreateEntry(ctx context.Context, entry *entity.LoyaltyLedgerEntry) error {
	return conn(ctx, r.db).Create(entry).Error
}

func (r *loyaltyRepository) ListEntriesByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.LoyaltyLedgerEntry, error) {
	var entries []entity.LoyaltyLedgerEntry
	err := conn(ctx, r.db).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *loyaltyRepository) HasReversal(ctx context.Context, entryID uuid.UUID) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.LoyaltyLedgerEntry{}).
		Where("reversal_of_entry_id = ?", entryID).
		Count(&count).Error
	return count > 0, err
}

func (r *loyaltyRepository) SumEntries(ctx context.Context, customerID, branchID uuid.UUID) (int, error) {
	var total int
	err := conn(ctx, r.db).Model(&entity.LoyaltyLedgerEntry{}).
		Where("customer_id = ? AND branch_id = ?", customerID, branchID).
		Select("COALESCE(SUM(stamps), 0)").
		Scan(&total).Error
	return total, err
}
