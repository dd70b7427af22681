package services

import (
	"context"

	"edu-cart/internal/domain"
	"edu-cart/internal/repository"
)

type OrderService struct {
	repo repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

func (s *OrderService) GetOrderByID(ctx context.Context, id uint64) (*domain.Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *OrderService) GetOrdersByUser(ctx context.Context, userID uint64) ([]domain.Order, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *OrderService) GetAllOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.FindAll(ctx)
}

// UpdateStatus moves an order through its lifecycle on behalf of actor.
// Admins may advance an order forward or cancel it; the owning client may
// only mark their own order completed. Terminal orders reject every
// further update.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint64, requested domain.OrderStatus, actor *domain.User) (*domain.Order, error) {
	if !requested.Valid() {
		return nil, ErrForbiddenTransition
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status.Terminal() {
		return nil, ErrOrderClosed
	}

	switch actor.Role {
	case domain.RoleAdmin:
		if !order.Status.CanAdvanceTo(requested) {
			return nil, ErrForbiddenTransition
		}
	case domain.RoleClient:
		if order.UserID != actor.ID || requested != domain.StatusCompleted {
			return nil, ErrForbiddenTransition
		}
	default:
		return nil, ErrForbiddenTransition
	}

	if err := s.repo.UpdateStatus(ctx, orderID, requested); err != nil {
		return nil, err
	}
	order.Status = requested
	return order, nil
}
