package wire

import (
	"cinema-reservation/internal/adaptor"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOrders(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	orderHandler *adaptor.OrderHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.Customer, log))

		// POST /api/reservations - claim seats and open a pending order
		r.Post("/api/reservations", reservationHandler.Reserve)

		r.Get("/api/orders", orderHandler.ListOrders)
		r.Get("/api/orders/{id}", orderHandler.GetOrder)
		r.Post("/api/orders/{id}/snacks", orderHandler.AddSnack)
		r.Post("/api/orders/{id}/pay", orderHandler.ConfirmPayment)
		r.Put("/api/orders/{id}/cancel", orderHandler.Cancel)
	})
}
