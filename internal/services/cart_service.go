package services

import (
	"context"

	"edu-cart/internal/domain"
	"edu-cart/internal/repository"
)

type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

func (s *CartService) GetCartForUser(ctx context.Context, userID uint64) (*domain.Cart, error) {
	return s.carts.GetOrCreate(ctx, userID)
}

// AddItem adds quantity units on top of whatever is already in the cart,
// soft-checking the combined amount against current stock. Checkout
// re-validates under a row lock, so this check only keeps carts honest.
func (s *CartService) AddItem(ctx context.Context, userID, productID uint64, quantity int64) (*domain.Cart, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &ProductNotFoundError{ProductID: productID}
	}

	var inCart int64
	if existing, err := s.carts.GetItem(ctx, cart.ID, productID); err != nil {
		return nil, err
	} else if existing != nil {
		inCart = existing.Quantity
	}

	final := inCart + quantity
	if final > product.StockCurrent {
		return nil, &InsufficientStockError{
			ProductID: product.ID,
			Name:      product.Name,
			Available: product.StockCurrent,
			Requested: final,
		}
	}

	if err := s.carts.UpsertItem(ctx, cart.ID, productID, final); err != nil {
		return nil, err
	}
	return s.carts.FindByUserID(ctx, userID)
}

// SetItemQuantity pins an exact quantity; zero or less removes the line.
func (s *CartService) SetItemQuantity(ctx context.Context, userID, productID uint64, quantity int64) (*domain.Cart, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.carts.GetItem(ctx, cart.ID, productID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCartItemNotFound
	}

	if quantity <= 0 {
		if _, err := s.carts.RemoveItem(ctx, cart.ID, productID); err != nil {
			return nil, err
		}
		return s.carts.FindByUserID(ctx, userID)
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &ProductNotFoundError{ProductID: productID}
	}
	if quantity > product.StockCurrent {
		return nil, &InsufficientStockError{
			ProductID: product.ID,
			Name:      product.Name,
			Available: product.StockCurrent,
			Requested: quantity,
		}
	}

	if err := s.carts.UpsertItem(ctx, cart.ID, productID, quantity); err != nil {
		return nil, err
	}
	return s.carts.FindByUserID(ctx, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID uint64) error {
	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return ErrCartNotFound
	}
	removed, err := s.carts.RemoveItem(ctx, cart.ID, productID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrCartItemNotFound
	}
	return nil
}

func (s *CartService) EmptyCart(ctx context.Context, userID uint64) error {
	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return ErrCartNotFound
	}
	return s.carts.Clear(ctx, cart.ID)
}
