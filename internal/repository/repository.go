package repository

import (
	"context"

	"edu-cart/internal/domain"

	"github.com/shopspring/decimal"
)

// ProductFilter narrows and orders catalog listings. Zero values mean
// "no constraint".
type ProductFilter struct {
	Category string
	PriceMin *decimal.Decimal
	PriceMax *decimal.Decimal
	Search   string
	SortBy   string // "price", "name" or "created_at"
	Desc     bool
}

type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (*domain.Product, error)
	// FindByIDForUpdate takes an exclusive row lock held until the
	// enclosing transaction commits or rolls back. Only meaningful on a
	// repository bound to an open transaction.
	FindByIDForUpdate(ctx context.Context, id uint64) (*domain.Product, error)
	// DecrementStock debits stock for a row previously locked with
	// FindByIDForUpdate. Callers must have validated amount against the
	// locked quantity.
	DecrementStock(ctx context.Context, product *domain.Product, amount int64) error
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, id uint64, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id uint64) (bool, error)
}

type CartRepository interface {
	FindByUserID(ctx context.Context, userID uint64) (*domain.Cart, error)
	GetOrCreate(ctx context.Context, userID uint64) (*domain.Cart, error)
	GetItem(ctx context.Context, cartID, productID uint64) (*domain.CartItem, error)
	UpsertItem(ctx context.Context, cartID, productID uint64, quantity int64) error
	RemoveItem(ctx context.Context, cartID, productID uint64) (bool, error)
	Clear(ctx context.Context, cartID uint64) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	FindByUserID(ctx context.Context, userID uint64) ([]domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, category *domain.Category) error
}
