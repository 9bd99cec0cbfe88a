// Package memory implements the store and broker ports on process-local
// state. It backs local mode (no external services) and the test suites.
// Semantics mirror the Postgres adapters, including upsert-on-update.
package memory

import (
	"context"
	"sync"

	"product-catalog/internal/domain"
	"product-catalog/internal/ports"
)

// ProductStore is a mutex-guarded map of products.
type ProductStore struct {
	mu sync.RWMutex
	m  map[string]domain.Product
}

var _ ports.ProductStore = (*ProductStore)(nil)

func NewProductStore() *ProductStore {
	return &ProductStore{m: make(map[string]domain.Product)}
}

func (s *ProductStore) Get(ctx context.Context, productID string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[productID]
	if !ok {
		return nil, &domain.NotFoundError{Msg: `Could not find product with provided "productId"`}
	}
	return &p, nil
}

func (s *ProductStore) Put(ctx context.Context, p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[p.ProductID] = p
	return nil
}

// UpdateName writes the name field; a missing id creates a record with only
// the name set, matching the durable store's upsert-on-update behavior.
func (s *ProductStore) UpdateName(ctx context.Context, productID, name string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.m[productID]
	p.ProductID = productID
	p.Name = name
	s.m[productID] = p
	return &p, nil
}

func (s *ProductStore) Delete(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, productID)
	return nil
}

// OrderStore is a mutex-guarded map of orders with a linear scan standing in
// for the user_id secondary index.
type OrderStore struct {
	mu  sync.RWMutex
	m   map[string]domain.Order
	seq []string // insertion order, so listings are stable
}

var _ ports.OrderStore = (*OrderStore)(nil)

func NewOrderStore() *OrderStore {
	return &OrderStore{m: make(map[string]domain.Order)}
}

func (s *OrderStore) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.m[orderID]
	if !ok {
		return nil, &domain.NotFoundError{Msg: "Order not found"}
	}
	return &o, nil
}

func (s *OrderStore) Put(ctx context.Context, o domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[o.OrderID]; !ok {
		s.seq = append(s.seq, o.OrderID)
	}
	s.m[o.OrderID] = o
	return nil
}

// UpdateStatus writes the status field and returns the full record; a missing
// id creates a partial record with only the status set.
func (s *OrderStore) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.m[orderID]
	if !ok {
		s.seq = append(s.seq, orderID)
	}
	o.OrderID = orderID
	o.Status = status
	s.m[orderID] = o
	return &o, nil
}

func (s *OrderStore) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Order
	for _, id := range s.seq {
		if o := s.m[id]; o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}
