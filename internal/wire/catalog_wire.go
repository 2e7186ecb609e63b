package wire

import (
	"cinema-reservation/internal/adaptor"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	seatMapHandler *adaptor.SeatMapHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/cinemas", catalogHandler.ListCinemas)
	r.Get("/api/cinemas/{id}/auditoriums", catalogHandler.ListAuditoriums)
	r.Get("/api/movies", catalogHandler.ListMovies)
	r.Get("/api/movies/{id}/showtimes", catalogHandler.ListShowtimes)
	r.Get("/api/snacks", catalogHandler.ListSnacks)

	// GET /api/showtimes/{id}/seats - seat availability for a showtime
	r.Get("/api/showtimes/{id}/seats", seatMapHandler.GetSeatMap)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.Customer, log))
		r.Use(middleware.Admin(log))

		r.Post("/cinemas", catalogHandler.CreateCinema)
		r.Post("/auditoriums", catalogHandler.CreateAuditorium)
		r.Post("/movies", catalogHandler.CreateMovie)
		r.Post("/showtimes", catalogHandler.CreateShowtime)
		r.Delete("/showtimes/{id}", catalogHandler.DeleteShowtime)
		r.Post("/snacks", catalogHandler.CreateSnack)
	})
}
