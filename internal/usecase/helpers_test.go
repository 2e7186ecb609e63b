package usecase

import (
	"testing"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type testEnv struct {
	db    *fakeDB
	store *memStore
	repo  *repository.Repository
	svc   *Service

	customer *entity.Customer
	showtime *entity.Showtime
	seats    []*entity.Seat
	snack    *entity.SnackItem
}

// newTestEnv builds a service stack over the in-memory store with one
// cinema, a 2x3 auditorium, a future showtime priced 50 and one snack
// priced 15.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newMemStore()
	repo := newTestRepo(store)
	db := &fakeDB{}
	config := &utils.Config{Session: utils.SessionConfig{ExpiryHours: 24}}
	svc := NewService(db, repo, config, zap.NewNop())

	// Whole seconds so fixture times survive an RFC3339 round trip through
	// request DTOs.
	now := time.Now().Truncate(time.Second)

	cinema := &entity.Cinema{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:     "Grand Central",
		City:     "Jakarta",
		IsActive: true,
	}
	store.cinemas[cinema.ID] = cinema

	auditorium := &entity.Auditorium{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		CinemaID:  cinema.ID,
		Name:      "Hall 1",
		TotalRows: 2,
		TotalCols: 3,
	}
	store.auditoriums[auditorium.ID] = auditorium

	var seats []*entity.Seat
	for row := 1; row <= 2; row++ {
		for col := 1; col <= 3; col++ {
			seat := &entity.Seat{
				BaseSimple:   entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
				AuditoriumID: auditorium.ID,
				Row:          row,
				Col:          col,
				SeatType:     entity.SeatTypeStandard,
			}
			store.seats[seat.ID] = seat
			seats = append(seats, seat)
		}
	}

	movie := &entity.Movie{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Title:    "The Long Night",
		IsActive: true,
	}
	store.movies[movie.ID] = movie

	showtime := &entity.Showtime{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		MovieID:      movie.ID,
		AuditoriumID: auditorium.ID,
		StartTime:    now.Add(6 * time.Hour),
		Language:     "SUB",
		Format:       "2D",
		BasePrice:    50,
	}
	store.showtimes[showtime.ID] = showtime

	customer := &entity.Customer{
		Base:  entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:  "Ana",
		Email: "ana@example.com",
		Role:  "customer",
	}
	store.customers[customer.ID] = customer

	snack := &entity.SnackItem{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:        "Popcorn",
		Price:       15,
		IsAvailable: true,
	}
	store.snacks[snack.ID] = snack

	return &testEnv{
		db:       db,
		store:    store,
		repo:     repo,
		svc:      svc,
		customer: customer,
		showtime: showtime,
		seats:    seats,
		snack:    snack,
	}
}

func (e *testEnv) newCustomer(email string) *entity.Customer {
	now := time.Now()
	customer := &entity.Customer{
		Base:  entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:  "Other",
		Email: email,
		Role:  "customer",
	}
	e.store.customers[customer.ID] = customer
	return customer
}

// placeTicket inserts an existing ticket row for a seat, simulating earlier
// activity on the showtime.
func (e *testEnv) placeTicket(seat *entity.Seat, status entity.TicketStatus, customerID *uuid.UUID) *entity.Ticket {
	now := time.Now()
	ticket := &entity.Ticket{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		ShowtimeID: e.showtime.ID,
		SeatID:     seat.ID,
		CustomerID: customerID,
		Status:     status,
		Price:      e.showtime.BasePrice,
	}
	e.store.tickets[ticket.ID] = ticket
	e.store.seatTickets[[2]uuid.UUID{e.showtime.ID, seat.ID}] = ticket.ID
	return ticket
}

func seatIDStrings(seats ...*entity.Seat) []string {
	out := make([]string, len(seats))
	for i, seat := range seats {
		out[i] = seat.ID.String()
	}
	return out
}
