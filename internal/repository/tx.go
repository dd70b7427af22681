package repository

import "context"

// Repositories bundles the stores bound to one transaction handle. Row
// locks taken through any of them live until that transaction ends.
type Repositories struct {
	Products ProductRepository
	Carts    CartRepository
	Orders   OrderRepository
}

// TxManager scopes a function to a single transaction: fn returning nil
// commits every write it made, any error (or panic) rolls all of them
// back. There is no ambient session; fn only sees the handle it is given.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(repos Repositories) error) error
}
