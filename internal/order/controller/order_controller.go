package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"orderflow/internal/domain"
	"orderflow/internal/dto"
	apperrors "orderflow/internal/errors"
)

type OrderUseCase interface {
	CreateOrder(ctx context.Context, items []dto.CreateOrderItem) (domain.Order, error)
	GetOrder(ctx context.Context, id string) (domain.Order, error)
	ConfirmOrder(ctx context.Context, id string) (domain.Order, error)
	CancelOrder(ctx context.Context, id string) (domain.Order, error)
}

type OrderController struct {
	useCase OrderUseCase
	logger  *zap.Logger
}

func NewOrderController(useCase OrderUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			"Request validation failed", map[string]string{"body": "Invalid JSON body"})
		return
	}

	order, err := c.useCase.CreateOrder(r.Context(), req.Items)
	if err != nil {
		c.handleUseCaseError(w, logger, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.NewOrderResponse(order))
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()
	orderID := chi.URLParam(r, "orderID")

	order, err := c.useCase.GetOrder(r.Context(), orderID)
	if err != nil {
		c.handleUseCaseError(w, logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewOrderResponse(order))
}

func (c *OrderController) Confirm(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()
	orderID := chi.URLParam(r, "orderID")

	order, err := c.useCase.ConfirmOrder(r.Context(), orderID)
	if err != nil {
		c.handleUseCaseError(w, logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewOrderResponse(order))
}

func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()
	orderID := chi.URLParam(r, "orderID")

	order, err := c.useCase.CancelOrder(r.Context(), orderID)
	if err != nil {
		c.handleUseCaseError(w, logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewOrderResponse(order))
}

func (c *OrderController) requestLogger() *zap.Logger {
	return c.logger.With(zap.String("traceId", uuid.New().String()))
}

func (c *OrderController) handleUseCaseError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", ve.Message, ve.Details)
		return
	}

	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, http.StatusNotFound, "NOT_FOUND", nfe.Error(),
			dto.NotFoundDetails{OrderID: nfe.OrderID})
		return
	}

	if iste, ok := apperrors.IsInvalidStateTransitionError(err); ok {
		c.writeError(w, http.StatusConflict, "INVALID_STATE_TRANSITION", iste.Error(),
			dto.StateTransitionDetails{
				OrderID:         iste.OrderID,
				CurrentStatus:   iste.CurrentStatus,
				RequestedAction: iste.RequestedAction,
			})
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", nil)
}

func (c *OrderController) writeError(w http.ResponseWriter, status int, code, message string, details any) {
	c.writeJSON(w, status, dto.ErrorResponse{
		Error: dto.ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
