package repository

import (
	"cinema-reservation/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Customer   CustomerRepository
	Session    SessionRepository
	Cinema     CinemaRepository
	Auditorium AuditoriumRepository
	Seat       SeatRepository
	Movie      MovieRepository
	Showtime   ShowtimeRepository
	Snack      SnackRepository
	Ticket     TicketRepository
	Order      OrderRepository
	OrderSnack OrderSnackRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Customer:   NewCustomerRepository(db, log),
		Session:    NewSessionRepository(db, log),
		Cinema:     NewCinemaRepository(db, log),
		Auditorium: NewAuditoriumRepository(db, log),
		Seat:       NewSeatRepository(db, log),
		Movie:      NewMovieRepository(db, log),
		Showtime:   NewShowtimeRepository(db, log),
		Snack:      NewSnackRepository(db, log),
		Ticket:     NewTicketRepository(db, log),
		Order:      NewOrderRepository(db, log),
		OrderSnack: NewOrderSnackRepository(db, log),
	}
}
