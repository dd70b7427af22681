package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"edu-cart/internal/domain"
	"edu-cart/internal/repository"
)

// memStore is an in-memory stand-in for the mysql layer with real
// transaction semantics: WithinTransaction serializes on one mutex
// (modelling row locks held until commit) and restores a snapshot of
// the whole store when fn fails, so writes are all-or-nothing.
type memStore struct {
	mu          sync.Mutex
	products    map[uint64]*domain.Product
	carts       map[uint64]*domain.Cart // keyed by user id
	orders      map[uint64]*domain.Order
	nextOrderID uint64

	failOrderCreate bool
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[uint64]*domain.Product),
		carts:    make(map[uint64]*domain.Cart),
		orders:   make(map[uint64]*domain.Order),
	}
}

func (s *memStore) addProduct(p domain.Product) {
	s.products[p.ID] = &p
}

func (s *memStore) setCart(userID uint64, items ...domain.CartItem) {
	cart := &domain.Cart{ID: userID, UserID: userID}
	for _, item := range items {
		item.CartID = cart.ID
		cart.Items = append(cart.Items, item)
	}
	s.carts[userID] = cart
}

func (s *memStore) snapshot() (map[uint64]*domain.Product, map[uint64]*domain.Cart, map[uint64]*domain.Order) {
	products := make(map[uint64]*domain.Product, len(s.products))
	for id, p := range s.products {
		cp := *p
		products[id] = &cp
	}
	carts := make(map[uint64]*domain.Cart, len(s.carts))
	for id, c := range s.carts {
		cp := *c
		cp.Items = append([]domain.CartItem(nil), c.Items...)
		carts[id] = &cp
	}
	orders := make(map[uint64]*domain.Order, len(s.orders))
	for id, o := range s.orders {
		cp := *o
		cp.Items = append([]domain.OrderItem(nil), o.Items...)
		orders[id] = &cp
	}
	return products, carts, orders
}

func (s *memStore) WithinTransaction(_ context.Context, fn func(repos repository.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, carts, orders := s.snapshot()
	savedNextID := s.nextOrderID

	err := fn(repository.Repositories{
		Products: &memProductRepo{store: s},
		Carts:    &memCartRepo{store: s},
		Orders:   &memOrderRepo{store: s},
	})
	if err != nil {
		s.products, s.carts, s.orders = products, carts, orders
		s.nextOrderID = savedNextID
		return err
	}
	return nil
}

type memProductRepo struct {
	store *memStore
}

func (r *memProductRepo) FindByID(_ context.Context, id uint64) (*domain.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) FindByIDForUpdate(ctx context.Context, id uint64) (*domain.Product, error) {
	return r.FindByID(ctx, id)
}

func (r *memProductRepo) DecrementStock(_ context.Context, product *domain.Product, amount int64) error {
	stored, ok := r.store.products[product.ID]
	if !ok {
		return fmt.Errorf("product %d vanished during stock update", product.ID)
	}
	if amount < 0 || amount > stored.StockCurrent {
		return fmt.Errorf("decrement %d exceeds stock %d for product %d", amount, stored.StockCurrent, product.ID)
	}
	stored.StockCurrent -= amount
	product.StockCurrent = stored.StockCurrent
	return nil
}

func (r *memProductRepo) List(context.Context, repository.ProductFilter) ([]domain.Product, error) {
	return nil, errors.New("not implemented")
}

func (r *memProductRepo) Create(context.Context, *domain.Product) error {
	return errors.New("not implemented")
}

func (r *memProductRepo) Update(context.Context, uint64, domain.ProductPatch) (*domain.Product, error) {
	return nil, errors.New("not implemented")
}

func (r *memProductRepo) Delete(context.Context, uint64) (bool, error) {
	return false, errors.New("not implemented")
}

type memCartRepo struct {
	store *memStore
}

func (r *memCartRepo) FindByUserID(_ context.Context, userID uint64) (*domain.Cart, error) {
	c, ok := r.store.carts[userID]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Items = append([]domain.CartItem(nil), c.Items...)
	return &cp, nil
}

func (r *memCartRepo) GetOrCreate(ctx context.Context, userID uint64) (*domain.Cart, error) {
	if c, _ := r.FindByUserID(ctx, userID); c != nil {
		return c, nil
	}
	cart := &domain.Cart{ID: userID, UserID: userID}
	r.store.carts[userID] = cart
	return cart, nil
}

func (r *memCartRepo) GetItem(_ context.Context, cartID, productID uint64) (*domain.CartItem, error) {
	for _, c := range r.store.carts {
		if c.ID != cartID {
			continue
		}
		for _, item := range c.Items {
			if item.ProductID == productID {
				cp := item
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *memCartRepo) UpsertItem(_ context.Context, cartID, productID uint64, quantity int64) error {
	for _, c := range r.store.carts {
		if c.ID != cartID {
			continue
		}
		for i := range c.Items {
			if c.Items[i].ProductID == productID {
				c.Items[i].Quantity = quantity
				return nil
			}
		}
		c.Items = append(c.Items, domain.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity})
		return nil
	}
	return fmt.Errorf("cart %d not found", cartID)
}

func (r *memCartRepo) RemoveItem(_ context.Context, cartID, productID uint64) (bool, error) {
	for _, c := range r.store.carts {
		if c.ID != cartID {
			continue
		}
		for i := range c.Items {
			if c.Items[i].ProductID == productID {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *memCartRepo) Clear(_ context.Context, cartID uint64) error {
	for _, c := range r.store.carts {
		if c.ID == cartID {
			c.Items = nil
		}
	}
	return nil
}

type memOrderRepo struct {
	store *memStore
}

func (r *memOrderRepo) Create(_ context.Context, order *domain.Order) error {
	if r.store.failOrderCreate {
		return errors.New("simulated write failure")
	}
	r.store.nextOrderID++
	order.ID = r.store.nextOrderID
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	cp := *order
	cp.Items = append([]domain.OrderItem(nil), order.Items...)
	r.store.orders[order.ID] = &cp
	return nil
}

func (r *memOrderRepo) FindByID(_ context.Context, id uint64) (*domain.Order, error) {
	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) FindByUserID(context.Context, uint64) ([]domain.Order, error) {
	return nil, errors.New("not implemented")
}

func (r *memOrderRepo) FindAll(context.Context) ([]domain.Order, error) {
	return nil, errors.New("not implemented")
}

func (r *memOrderRepo) UpdateStatus(context.Context, uint64, domain.OrderStatus) error {
	return errors.New("not implemented")
}

// recordingPublisher captures published events for assertions; Checkout
// publishes from a goroutine, so access is synchronized.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	pattern string
	data    any
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, data any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{pattern: routingKey, data: data})
	return nil
}

func (p *recordingPublisher) published(pattern string) []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []publishedEvent
	for _, e := range p.events {
		if e.pattern == pattern {
			out = append(out, e)
		}
	}
	return out
}
