package store

import (
	"context"
	"errors"
	"fmt"

	"orderflow/internal/domain"
)

var (
	// ErrNotFound is returned when no order exists under the given id.
	ErrNotFound = errors.New("order not found")

	// ErrConflict is returned by Put when the id is already taken.
	ErrConflict = errors.New("order already exists")
)

// StatusMismatchError is returned by CompareAndSwap when the stored order is
// no longer in the expected status. Current carries the status observed at
// the time of the swap attempt.
type StatusMismatchError struct {
	Current domain.Status
}

func (e *StatusMismatchError) Error() string {
	return fmt.Sprintf("order status is %s", e.Current)
}

// Store is keyed storage for order aggregates with atomic per-id operations.
// Items never change after Put; only status and UpdatedAt move, and only
// through CompareAndSwap.
type Store interface {
	// Put inserts a new order under its id. Returns ErrConflict if the id
	// is already present.
	Put(ctx context.Context, order domain.Order) error

	// Get returns a snapshot of the order, or ErrNotFound.
	Get(ctx context.Context, id string) (domain.Order, error)

	// CompareAndSwap atomically reads the order, verifies its status equals
	// expected, applies mutate, and writes the result back. Concurrent calls
	// on the same id are serialized: at most one caller can move an order
	// out of a given status. Returns ErrNotFound if the id is absent, or a
	// *StatusMismatchError if the status check fails.
	CompareAndSwap(ctx context.Context, id string, expected domain.Status, mutate func(domain.Order) domain.Order) (domain.Order, error)
}
