package errors

import "fmt"

type ValidationError struct {
	Message string
	Details map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details map[string]string) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	OrderID string
}

func (e *NotFoundError) Error() string {
	return "Order not found"
}

func NewNotFoundError(orderID string) *NotFoundError {
	return &NotFoundError{OrderID: orderID}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nfe, ok := err.(*NotFoundError); ok {
		return nfe, true
	}
	return nil, false
}

type InvalidStateTransitionError struct {
	OrderID         string
	CurrentStatus   string
	RequestedAction string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("Cannot %s order in %s state", e.RequestedAction, e.CurrentStatus)
}

func NewInvalidStateTransitionError(orderID, currentStatus, requestedAction string) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{
		OrderID:         orderID,
		CurrentStatus:   currentStatus,
		RequestedAction: requestedAction,
	}
}

func IsInvalidStateTransitionError(err error) (*InvalidStateTransitionError, bool) {
	if iste, ok := err.(*InvalidStateTransitionError); ok {
		return iste, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
