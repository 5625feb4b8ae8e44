package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainRepo "github.com/kapehan/pos-api/internal/domain/repository"
)

type orderCounterRepository struct {
	db *gorm.DB
}

// NewOrderCounterRepository creates a new order counter repository
func NewOrderCounterRepository(db *gorm.DB) domainRepo.OrderCounterRepository {
	return &orderCounterRepository{db: db}
}

// Allocate bumps the (branch, date) counter in a single upsert statement and
// returns the new number. The statement takes the row lock that serializes
// concurrent creates for the same branch and date; it is held until the
// caller's transaction ends, so issued numbers are contiguous from 1 with no
// gaps. Different branches or dates hit different rows and do not contend.
func (r *orderCounterRepository) Allocate(ctx context.Context, branchID uuid.UUID, orderDate string) (int, error) {
	now := time.Now()
	var current int
	err := conn(ctx, r.db).Raw(`
		INSERT INTO order_counters (id, branch_id, order_date, current_no, created_at, updated_at)
		VALUES (?, ?, ?, 1, ?, ?)
		ON CONFLICT (branch_id, order_date)
		DO UPDATE SET current_no = order_counters.current_no + 1, updated_at = ?
		RETURNING current_no`,
		uuid.New(), branchID, orderDate, now, now, now,
	).Scan(&current).Error
	if err != nil {
		return 0, err
	}
	return current, nil
}
