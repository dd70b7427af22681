package mysql

import (
	"context"
	"errors"
	"fmt"
	"log"

	"edu-cart/internal/domain"
	"edu-cart/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("product FindByID error: %v", err)
		return nil, err
	}
	return &p, nil
}

// FindByIDForUpdate issues SELECT ... FOR UPDATE; the row stays locked
// until the surrounding transaction finishes.
func (r *productRepo) FindByIDForUpdate(ctx context.Context, id uint64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("product FindByIDForUpdate error: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) DecrementStock(ctx context.Context, product *domain.Product, amount int64) error {
	if amount < 0 || amount > product.StockCurrent {
		return fmt.Errorf("decrement %d exceeds stock %d for product %d", amount, product.StockCurrent, product.ID)
	}
	product.StockCurrent -= amount
	result := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", product.ID).
		Update("stock_current", product.StockCurrent)
	if result.Error != nil {
		log.Printf("product DecrementStock error: %v", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product %d vanished during stock update", product.ID)
	}
	return nil
}

func (r *productRepo) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	query := r.db.WithContext(ctx).Model(&domain.Product{})

	if filter.Category != "" {
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.name = ?", filter.Category)
	}
	if filter.PriceMin != nil {
		query = query.Where("price >= ?", filter.PriceMin)
	}
	if filter.PriceMax != nil {
		query = query.Where("price <= ?", filter.PriceMax)
	}
	if filter.Search != "" {
		query = query.Where("products.name LIKE ?", "%"+filter.Search+"%")
	}

	switch filter.SortBy {
	case "price", "name", "created_at":
		dir := "ASC"
		if filter.Desc {
			dir = "DESC"
		}
		query = query.Order(fmt.Sprintf("products.%s %s", filter.SortBy, dir))
	}

	var out []domain.Product
	if err := query.Find(&out).Error; err != nil {
		log.Printf("product List error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *productRepo) Create(ctx context.Context, product *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		log.Printf("product Create error: %v", err)
		return err
	}
	return nil
}

func (r *productRepo) Update(ctx context.Context, id uint64, patch domain.ProductPatch) (*domain.Product, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	patch.Apply(p)
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		log.Printf("product Update error: %v", err)
		return nil, err
	}
	return p, nil
}

func (r *productRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if result.Error != nil {
		log.Printf("product Delete error: %v", result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
