package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the aggregate root. Items and TotalAmount are fixed at creation;
// only Status and UpdatedAt change afterwards, and only through a transition.
type Order struct {
	ID          string
	Status      Status
	Items       []OrderItem
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type OrderItem struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// NewOrderItem computes the subtotal as quantity * unitPrice rounded
// half-up to 2 decimal places.
func NewOrderItem(productID string, quantity int, unitPrice decimal.Decimal) OrderItem {
	return OrderItem{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice.Round(2),
		Subtotal:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2),
	}
}

// NewOrder builds a PENDING order with its total computed from the item
// subtotals. Both timestamps start equal.
func NewOrder(id string, items []OrderItem, now time.Time) Order {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal)
	}

	return Order{
		ID:          id,
		Status:      StatusPending,
		Items:       items,
		TotalAmount: total.Round(2),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// WithStatus returns a copy of the order moved to the given status,
// refreshing UpdatedAt. Transition legality is the caller's responsibility.
func (o Order) WithStatus(status Status, at time.Time) Order {
	o.Status = status
	o.UpdatedAt = at
	return o
}
