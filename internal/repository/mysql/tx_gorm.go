package mysql

import (
	"context"

	"edu-cart/internal/repository"

	"gorm.io/gorm"
)

type txManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) repository.TxManager {
	return &txManager{db: db}
}

// WithinTransaction runs fn against repositories bound to one database
// transaction. gorm commits when fn returns nil and rolls back on error
// or panic, which also releases any row locks fn acquired.
func (m *txManager) WithinTransaction(ctx context.Context, fn func(repos repository.Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repository.Repositories{
			Products: NewProductRepository(tx),
			Carts:    NewCartRepository(tx),
			Orders:   NewOrderRepository(tx),
		})
	})
}
