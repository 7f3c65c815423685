package domain

// Status is the lifecycle state of an order.
//
// Transitions: PENDING -> CONFIRMED, PENDING -> CANCELLED. Both targets are
// terminal; repeating a transition is an error, never a no-op.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

// Terminal reports whether no further transition is defined from s.
func (s Status) Terminal() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// CanTransition reports whether the order may leave its current status.
// Only PENDING orders can move.
func (s Status) CanTransition() bool {
	return s == StatusPending
}
