package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"orderflow/internal/order/controller"
)

func NewRouter(orderCtrl *controller.OrderController, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orderCtrl.Create)
			r.Get("/{orderID}", orderCtrl.Get)
			r.Post("/{orderID}/confirm", orderCtrl.Confirm)
			r.Post("/{orderID}/cancel", orderCtrl.Cancel)
		})
	})

	return r
}
