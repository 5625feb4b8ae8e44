package repository

import (
	"context"

	"gorm.io/gorm"

	domainRepo "github.com/kapehan/pos-api/internal/domain/repository"
)

type txKey struct{}

// txManager implements repository.TxManager on a gorm database. The open
// transaction handle is stashed in the context so that every repository in
// this package joins it transparently.
type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a new transaction manager
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &txManager{db: db}
}

func (m *txManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn resolves the database handle for ctx: the enclosing transaction when
// one is open, the shared pool otherwise.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
