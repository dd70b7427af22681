package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"edu-cart/internal/domain"
	rabbit "edu-cart/internal/infra/rabbitmq"
	"edu-cart/internal/repository"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutRequest carries the buyer-supplied shipping details for one
// checkout.
type CheckoutRequest struct {
	ShippingAddress string
	Locality        string
}

// CheckoutService converts a user's cart into an order while debiting
// stock, all inside one transaction.
type CheckoutService struct {
	txm         repository.TxManager
	publisher   rabbit.PublisherInterface
	redisClient *redis.Client
}

func NewCheckoutService(txm repository.TxManager, pub rabbit.PublisherInterface) *CheckoutService {
	return &CheckoutService{txm: txm, publisher: pub}
}

func (s *CheckoutService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

// Checkout runs the atomic cart-to-order conversion:
//
//	load cart -> lock + revalidate each line -> debit stock ->
//	write order snapshot -> clear cart -> commit.
//
// Product rows are locked in ascending product-id order and held until
// commit, so two checkouts contending on the same products serialize
// instead of deadlocking, and stock can never be spent twice. Validation
// failures abort before any write; a store failure at commit rolls the
// whole write set back and surfaces as ErrTransactionFailed.
func (s *CheckoutService) Checkout(ctx context.Context, userID uint64, req CheckoutRequest) (*domain.Order, error) {
	var order *domain.Order
	var touched []domain.Product

	err := s.txm.WithinTransaction(ctx, func(repos repository.Repositories) error {
		cart, err := repos.Carts.FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if cart.IsEmpty() {
			return ErrEmptyCart
		}

		lines := make([]domain.CartItem, len(cart.Items))
		copy(lines, cart.Items)
		sort.Slice(lines, func(i, j int) bool {
			return lines[i].ProductID < lines[j].ProductID
		})

		total := decimal.Zero
		items := make([]domain.OrderItem, 0, len(lines))
		locked := make([]*domain.Product, 0, len(lines))

		for _, line := range lines {
			product, err := repos.Products.FindByIDForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return &ProductNotFoundError{ProductID: line.ProductID}
			}
			// The check must use the freshly locked quantity, not
			// whatever the cart was validated against earlier.
			if line.Quantity > product.StockCurrent {
				return &InsufficientStockError{
					ProductID: product.ID,
					Name:      product.Name,
					Available: product.StockCurrent,
					Requested: line.Quantity,
				}
			}
			items = append(items, domain.OrderItem{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
			})
			total = total.Add(product.Price.Mul(decimal.NewFromInt(line.Quantity)))
			locked = append(locked, product)
		}

		for i, product := range locked {
			if err := repos.Products.DecrementStock(ctx, product, lines[i].Quantity); err != nil {
				return err
			}
		}

		order = &domain.Order{
			UserID:          userID,
			OrderDate:       time.Now().UTC(),
			Status:          domain.StatusPending,
			ShippingAddress: req.ShippingAddress,
			Locality:        req.Locality,
			TotalAmount:     total,
			Items:           items,
		}
		if err := repos.Orders.Create(ctx, order); err != nil {
			return err
		}
		if err := repos.Carts.Clear(ctx, cart.ID); err != nil {
			return err
		}

		for _, p := range locked {
			touched = append(touched, *p)
		}
		return nil
	})

	if err != nil {
		if isCheckoutValidationError(err) {
			return nil, err
		}
		log.Printf("checkout transaction error for user %d: %v", userID, err)
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	go s.afterCommit(context.Background(), order, touched)

	return order, nil
}

// afterCommit fans out the post-checkout side effects: the order event,
// stock alerts for products the checkout drained, and cache
// invalidation. None of these can affect the committed order.
func (s *CheckoutService) afterCommit(ctx context.Context, order *domain.Order, touched []domain.Product) {
	evt := domain.OrderCreatedEvent{
		EventID:     uuid.NewString(),
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		CreatedAt:   order.OrderDate,
	}
	if err := s.publisher.Publish(ctx, "order.created", evt); err != nil {
		log.Printf("publish order.created for order %d: %v", order.ID, err)
	}

	for _, p := range touched {
		if status := p.StockStatus(); status != domain.StockNormal {
			alert := domain.StockAlertEvent{
				EventID:      uuid.NewString(),
				ProductID:    p.ID,
				SKU:          p.SKU,
				StockCurrent: p.StockCurrent,
				StockMin:     p.StockMin,
				Status:       status,
				OccurredAt:   time.Now().UTC(),
			}
			if err := s.publisher.Publish(ctx, "stock.alert", alert); err != nil {
				log.Printf("publish stock.alert for product %d: %v", p.ID, err)
			}
		}
		if s.redisClient != nil {
			s.redisClient.Del(ctx, productCacheKey(p.ID))
		}
	}
}
