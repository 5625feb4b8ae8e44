package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kapehan/pos-api/internal/domain/entity"
)

// LoyaltyRepository defines the interface for loyalty accounts and the stamp
// ledger. Entries are append-only; the cached balance is only ever written in
// the same transaction as a ledger entry.
type LoyaltyRepository interface {
	// EnsureAccount creates the (customer, branch) account with balance 0 if
	// it does not exist yet, and returns it either way.
	EnsureAccount(ctx context.Context, customerID, branchID uuid.UUID) (*entity.LoyaltyAccount, error)
	GetAccount(ctx context.Context, customerID, branchID uuid.UUID) (*entity.LoyaltyAccount, error)
	// AdjustBalance applies a signed stamp delta as a single atomic
	// expression (balance = balance + delta).
	AdjustBalance(ctx context.Context, customerID, branchID uuid.UUID, delta int) error
	CreateEntry(ctx context.Context, entry *entity.LoyaltyLedgerEntry) error
	ListEntriesByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.LoyaltyLedgerEntry, error)
	// HasReversal reports whether a reversing entry referencing entryID
	// already exists.
	HasReversal(ctx context.Context, entryID uuid.UUID) (bool, error)
	// SumEntries recomputes an account balance from the ledger.
	SumEntries(ctx context.Context, customerID, branchID uuid.UUID) (int, error)
}
