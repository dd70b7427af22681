package mysql

import (
	"context"
	"log"

	"edu-cart/internal/domain"
	"edu-cart/internal/repository"

	"gorm.io/gorm"
)

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		log.Printf("category List error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *categoryRepo) Create(ctx context.Context, category *domain.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		log.Printf("category Create error: %v", err)
		return err
	}
	return nil
}
