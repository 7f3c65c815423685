package dto

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

type NotFoundDetails struct {
	OrderID string `json:"order_id"`
}

type StateTransitionDetails struct {
	OrderID         string `json:"order_id"`
	CurrentStatus   string `json:"current_status"`
	RequestedAction string `json:"requested_action"`
}
