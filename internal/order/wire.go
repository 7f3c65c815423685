package order

import (
	"go.uber.org/zap"

	"orderflow/internal/order/controller"
	"orderflow/internal/order/service"
	"orderflow/internal/order/store"
)

func NewModule(st store.Store, logger *zap.Logger) *controller.OrderController {
	svc := service.NewOrderService(st, logger)
	return controller.NewOrderController(svc, logger)
}
