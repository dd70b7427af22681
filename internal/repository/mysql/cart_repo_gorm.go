package mysql

import (
	"context"
	"errors"
	"log"

	"edu-cart/internal/domain"
	"edu-cart/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) FindByUserID(ctx context.Context, userID uint64) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("cart FindByUserID error: %v", err)
		return nil, err
	}
	return &cart, nil
}

// GetOrCreate returns the user's cart, creating an empty one on first
// access.
func (r *cartRepo) GetOrCreate(ctx context.Context, userID uint64) (*domain.Cart, error) {
	cart, err := r.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	cart = &domain.Cart{UserID: userID}
	if err := r.db.WithContext(ctx).Create(cart).Error; err != nil {
		log.Printf("cart create error: %v", err)
		return nil, err
	}
	return cart, nil
}

func (r *cartRepo) GetItem(ctx context.Context, cartID, productID uint64) (*domain.CartItem, error) {
	var item domain.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("cart GetItem error: %v", err)
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) UpsertItem(ctx context.Context, cartID, productID uint64, quantity int64) error {
	item := domain.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
		}).
		Create(&item).Error
	if err != nil {
		log.Printf("cart UpsertItem error: %v", err)
	}
	return err
}

func (r *cartRepo) RemoveItem(ctx context.Context, cartID, productID uint64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&domain.CartItem{})
	if result.Error != nil {
		log.Printf("cart RemoveItem error: %v", result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *cartRepo) Clear(ctx context.Context, cartID uint64) error {
	err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&domain.CartItem{}).Error
	if err != nil {
		log.Printf("cart Clear error: %v", err)
	}
	return err
}
