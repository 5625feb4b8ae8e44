package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kapehan/pos-api/internal/domain/entity"
	"github.com/kapehan/pos-api/internal/domain/repository"
	"github.com/kapehan/pos-api/pkg/apperror"
)

// LoyaltyService maintains the append-only stamp ledger and the cached
// per-customer balances. One drink purchased earns one stamp.
type LoyaltyService struct {
	loyaltyRepo repository.LoyaltyRepository
	logger      *zap.Logger
}

// NewLoyaltyService creates a new loyalty service
func NewLoyaltyService(loyaltyRepo repository.LoyaltyRepository, logger *zap.Logger) *LoyaltyService {
	return &LoyaltyService{loyaltyRepo: loyaltyRepo, logger: logger}
}

// AccrueOrder awards stamps for a completed order: one per drink unit, summed
// over the order's line items. Orders with no customer or no drinks accrue
// nothing. Must be called inside the completing transaction; the ledger entry
// and the balance bump commit or roll back together.
func (s *LoyaltyService) AccrueOrder(ctx context.Context, order *entity.Order, items []entity.OrderItem) error {
	if order.CustomerID == nil {
		return nil
	}

	stamps := 0
	for _, item := range items {
		if item.Product.IsDrink {
			stamps += item.Quantity
		}
	}
	if stamps == 0 {
		return nil
	}

	if _, err := s.loyaltyRepo.EnsureAccount(ctx, *order.CustomerID, order.BranchID); err != nil {
		return err
	}

	entry := &entity.LoyaltyLedgerEntry{
		CustomerID: *order.CustomerID,
		BranchID:   order.BranchID,
		OrderID:    order.ID,
		Stamps:     stamps,
	}
	if err := s.loyaltyRepo.CreateEntry(ctx, entry); err != nil {
		return err
	}
	return s.loyaltyRepo.AdjustBalance(ctx, *order.CustomerID, order.BranchID, stamps)
}

// ReverseOrder negates the accruals of a refunded order. Each positive entry
// gets at most one negative counterpart carrying a back-reference to it, so
// reversing twice is a no-op rather than a double debit.
func (s *LoyaltyService) ReverseOrder(ctx context.Context, order *entity.Order) error {
	if order.CustomerID == nil {
		return nil
	}

	entries, err := s.loyaltyRepo.ListEntriesByOrder(ctx, order.ID)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.Stamps <= 0 || entry.ReversalOfEntryID != nil {
			continue
		}
		reversed, err := s.loyaltyRepo.HasReversal(ctx, entry.ID)
		if err != nil {
			return err
		}
		if reversed {
			s.logger.Debug("loyalty entry already reversed",
				zap.String("entry_id", entry.ID.String()),
				zap.String("order_id", order.ID.String()))
			continue
		}

		entryID := entry.ID
		reversal := &entity.LoyaltyLedgerEntry{
			CustomerID:        entry.CustomerID,
			BranchID:          entry.BranchID,
			OrderID:           entry.OrderID,
			Stamps:            -entry.Stamps,
			ReversalOfEntryID: &entryID,
		}
		if err := s.loyaltyRepo.CreateEntry(ctx, reversal); err != nil {
			return err
		}
		if err := s.loyaltyRepo.AdjustBalance(ctx, entry.CustomerID, entry.BranchID, -entry.Stamps); err != nil {
			return err
		}
	}
	return nil
}

// Balance returns the cached stamp balance for a customer at a branch. A
// customer with no account yet has a balance of zero.
func (s *LoyaltyService) Balance(ctx context.Context, customerID, branchID uuid.UUID) (*entity.LoyaltyAccount, error) {
	account, err := s.loyaltyRepo.GetAccount(ctx, customerID, branchID)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return &entity.LoyaltyAccount{
				CustomerID: customerID,
				BranchID:   branchID,
				Balance:    0,
			}, nil
		}
		return nil, err
	}
	return account, nil
}

// BalanceReport compares the cached balance against the ledger sum.
type BalanceReport struct {
	CustomerID uuid.UUID `json:"customer_id"`
	BranchID   uuid.UUID `json:"branch_id"`
	Cached     int       `json:"cached"`
	LedgerSum  int       `json:"ledger_sum"`
	Drift      int       `json:"drift"`
}

// CheckDrift recomputes a customer's balance from the ledger.
func (s *LoyaltyService) CheckDrift(ctx context.Context, customerID, branchID uuid.UUID) (*BalanceReport, error) {
	account, err := s.loyaltyRepo.GetAccount(ctx, customerID, branchID)
	if err != nil {
		return nil, err
	}
	sum, err := s.loyaltyRepo.SumEntries(ctx, customerID, branchID)
	if err != nil {
		return nil, err
	}

	drift := account.Balance - sum
	if drift != 0 {
		s.logger.Warn("loyalty balance drift detected",
			zap.String("customer_id", customerID.String()),
			zap.Int("cached", account.Balance),
			zap.Int("ledger_sum", sum))
	}
	return &BalanceReport{
		CustomerID: customerID,
		BranchID:   branchID,
		Cached:     account.Balance,
		LedgerSum:  sum,
		Drift:      drift,
	}, nil
}
