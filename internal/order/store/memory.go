package store

import (
	"context"
	"sync"

	"orderflow/internal/domain"
)

// MemoryStore keeps orders in a map guarded by a mutex. Snapshots are copied
// on the way in and out so callers never alias stored state.
type MemoryStore struct {
	mu     sync.Mutex
	orders map[string]domain.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders: make(map[string]domain.Order),
	}
}

func (s *MemoryStore) Put(_ context.Context, order domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[order.ID]; ok {
		return ErrConflict
	}

	s.orders[order.ID] = cloneOrder(order)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return domain.Order{}, ErrNotFound
	}

	return cloneOrder(order), nil
}

func (s *MemoryStore) CompareAndSwap(_ context.Context, id string, expected domain.Status, mutate func(domain.Order) domain.Order) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.orders[id]
	if !ok {
		return domain.Order{}, ErrNotFound
	}

	if current.Status != expected {
		return domain.Order{}, &StatusMismatchError{Current: current.Status}
	}

	next := mutate(cloneOrder(current))
	s.orders[id] = cloneOrder(next)
	return next, nil
}

func cloneOrder(order domain.Order) domain.Order {
	items := make([]domain.OrderItem, len(order.Items))
	copy(items, order.Items)
	order.Items = items
	return order
}
