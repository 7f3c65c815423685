package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"orderflow/internal/domain"
	"orderflow/internal/dto"
	apperrors "orderflow/internal/errors"
	"orderflow/internal/order/store"
)

// OrderService owns the order lifecycle rules: validation, total
// computation and status transitions. It keeps no state of its own; the
// injected store serializes access per order id.
type OrderService struct {
	store  store.Store
	logger *zap.Logger
}

func NewOrderService(st store.Store, logger *zap.Logger) *OrderService {
	return &OrderService{
		store:  st,
		logger: logger,
	}
}

// CreateOrder validates the requested items, computes subtotals and the
// order total, and persists a new PENDING order. Validation is exhaustive:
// every item is checked and all violations are reported together, keyed by
// field path. Nothing is persisted on a validation failure.
func (s *OrderService) CreateOrder(ctx context.Context, items []dto.CreateOrderItem) (domain.Order, error) {
	if details := validateCreateOrder(items); len(details) > 0 {
		return domain.Order{}, apperrors.NewValidationError("Request validation failed", details)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)

	orderItems := make([]domain.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = domain.NewOrderItem(item.ProductID, item.Quantity, decimal.NewFromFloat(item.UnitPrice))
	}

	order := domain.NewOrder(uuid.NewString(), orderItems, now)

	if err := s.store.Put(ctx, order); err != nil {
		return domain.Order{}, apperrors.NewInternalError("persisting order", err)
	}

	s.logger.Info("order created",
		zap.String("orderId", order.ID),
		zap.String("totalAmount", order.TotalAmount.String()),
		zap.Int("itemCount", len(order.Items)),
	)

	return order, nil
}

// GetOrder returns a snapshot of the order. Ids that are not RFC 4122 UUIDs
// cannot have been assigned by the system and are reported as not found
// without a store lookup.
func (s *OrderService) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	if uuid.Validate(id) != nil {
		return domain.Order{}, apperrors.NewNotFoundError(id)
	}

	order, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Order{}, apperrors.NewNotFoundError(id)
		}
		return domain.Order{}, apperrors.NewInternalError("loading order", err)
	}

	return order, nil
}

// ConfirmOrder moves a PENDING order to CONFIRMED. Confirming an order in
// any other status fails; repeating a confirm is an error, not a no-op.
func (s *OrderService) ConfirmOrder(ctx context.Context, id string) (domain.Order, error) {
	return s.transition(ctx, id, domain.StatusConfirmed, "confirm")
}

// CancelOrder moves a PENDING order to CANCELLED, with the same guarantees
// as ConfirmOrder.
func (s *OrderService) CancelOrder(ctx context.Context, id string) (domain.Order, error) {
	return s.transition(ctx, id, domain.StatusCancelled, "cancel")
}

func (s *OrderService) transition(ctx context.Context, id string, target domain.Status, action string) (domain.Order, error) {
	if uuid.Validate(id) != nil {
		return domain.Order{}, apperrors.NewNotFoundError(id)
	}

	updated, err := s.store.CompareAndSwap(ctx, id, domain.StatusPending, func(order domain.Order) domain.Order {
		return order.WithStatus(target, time.Now().UTC().Truncate(time.Millisecond))
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Order{}, apperrors.NewNotFoundError(id)
		}
		// A status mismatch means the order left PENDING before this
		// request's swap applied: already confirmed, already cancelled,
		// or lost a race against a concurrent transition.
		var mismatch *store.StatusMismatchError
		if errors.As(err, &mismatch) {
			return domain.Order{}, apperrors.NewInvalidStateTransitionError(id, mismatch.Current.String(), action)
		}
		return domain.Order{}, apperrors.NewInternalError("updating order", err)
	}

	s.logger.Info("order transitioned",
		zap.String("orderId", updated.ID),
		zap.String("status", updated.Status.String()),
	)

	return updated, nil
}

func validateCreateOrder(items []dto.CreateOrderItem) map[string]string {
	details := make(map[string]string)

	if len(items) == 0 {
		details["items"] = "At least one item is required"
		return details
	}

	for i, item := range items {
		prefix := fmt.Sprintf("items[%d]", i)

		if strings.TrimSpace(item.ProductID) == "" {
			details[prefix+".product_id"] = "Product ID must be non-empty"
		}
		if item.Quantity < 1 {
			details[prefix+".quantity"] = "Must be at least 1"
		}
		if item.UnitPrice < 0 {
			details[prefix+".unit_price"] = "Must be greater than or equal to 0"
		}
	}

	return details
}
