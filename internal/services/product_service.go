package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"edu-cart/internal/domain"
	"edu-cart/internal/repository"

	"github.com/go-redis/redis/v8"
)

const productCacheTTL = time.Minute

func productCacheKey(id uint64) string {
	return fmt.Sprintf("product:%d", id)
}

type ProductService struct {
	repo        repository.ProductRepository
	redisClient *redis.Client
}

func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

func (s *ProductService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	return s.repo.List(ctx, filter)
}

// GetProductByID reads through the redis cache; misses fall back to the
// database and repopulate the key.
func (s *ProductService) GetProductByID(ctx context.Context, id uint64) (*domain.Product, error) {
	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, productCacheKey(id)).Result(); err == nil {
			var p domain.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &ProductNotFoundError{ProductID: id}
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(p); err == nil {
			s.redisClient.Set(ctx, productCacheKey(id), data, productCacheTTL)
		}
	}
	return p, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, product *domain.Product) error {
	return s.repo.Create(ctx, product)
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uint64, patch domain.ProductPatch) (*domain.Product, error) {
	p, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &ProductNotFoundError{ProductID: id}
	}
	s.invalidate(ctx, id)
	return p, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uint64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return &ProductNotFoundError{ProductID: id}
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, id uint64) {
	if s.redisClient != nil {
		s.redisClient.Del(ctx, productCacheKey(id))
	}
}

// WarmupProductCache preloads the cache for a known-hot set of products.
func (s *ProductService) WarmupProductCache(ctx context.Context, ids []uint64) error {
	if s.redisClient == nil {
		return nil
	}
	for _, id := range ids {
		p, err := s.repo.FindByID(ctx, id)
		if err != nil {
			log.Printf("cache warmup for product %d: %v", id, err)
			continue
		}
		if p != nil {
			if data, err := json.Marshal(p); err == nil {
				s.redisClient.Set(ctx, productCacheKey(id), data, 5*time.Minute)
			}
		}
	}
	return nil
}
