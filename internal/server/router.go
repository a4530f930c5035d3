package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"qrmenu/internal/auth"
	"qrmenu/internal/notify"
	ordercontroller "qrmenu/internal/order/controller"
	"qrmenu/internal/place"
)

func NewRouter(orderCtrl *ordercontroller.OrderController, placeCtrl *place.Controller, hub *notify.Hub, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(auth.Middleware)

	r.Route("/places/{placeId}", func(r chi.Router) {
		r.Get("/menu/public", placeCtrl.GetPublicMenu)
		r.Get("/stats", placeCtrl.GetStats)

		r.Route("/orders", func(r chi.Router) {
			r.Post("/public", orderCtrl.CreateOrderPublic)
			r.Post("/", orderCtrl.CreateOrder)
			r.Get("/", orderCtrl.ListOrders)
			r.Patch("/{orderId}/cancel/public", orderCtrl.CancelOrderPublic)
		})
	})

	r.Route("/orders/{orderId}", func(r chi.Router) {
		r.Get("/", orderCtrl.GetOrder)
		r.Patch("/status", orderCtrl.UpdateOrderStatus)
		r.Post("/items", orderCtrl.AppendOrderItems)
		r.Delete("/", orderCtrl.DeleteOrder)
	})

	r.Get("/ws", notify.ServeWS(hub, logger))

	return r
}
