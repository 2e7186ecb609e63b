package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveEmptySeatListIsNoOp(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.Reservation.Reserve(context.Background(), env.customer.ID, &request.ReserveSeatsRequest{
		ShowtimeID: env.showtime.ID.String(),
		SeatIDs:    nil,
	})

	require.NoError(t, err)
	assert.Nil(t, resp)
	assert.Empty(t, env.store.orders)
	assert.Empty(t, env.store.tickets)
}

func TestReserveCreatesPendingOrder(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.Reservation.Reserve(context.Background(), env.customer.ID, &request.ReserveSeatsRequest{
		ShowtimeID: env.showtime.ID.String(),
		SeatIDs:    seatIDStrings(env.seats[0], env.seats[1]),
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, string(entity.OrderStatusPending), resp.Status)
	assert.Len(t, resp.Tickets, 2)
	assert.Equal(t, 100.0, resp.TotalAmount)

	for _, ticket := range resp.Tickets {
		assert.Equal(t, string(entity.TicketStatusReserved), ticket.Status)
		assert.Equal(t, 50.0, ticket.Price)
	}

	require.Len(t, env.store.orders, 1)
	tx := env.db.lastTx()
	require.NotNil(t, tx)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

func TestReserveUnknownShowtime(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Reservation.Reserve(context.Background(), env.customer.ID, &request.ReserveSeatsRequest{
		ShowtimeID: uuid.New().String(),
		SeatIDs:    seatIDStrings(env.seats[0]),
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReserveShowtimeAlreadyStarted(t *testing.T) {
	env := newTestEnv(t)
	env.showtime.StartTime = env.showtime.StartTime.Add(-12 * time.Hour)

	_, err := env.svc.Reservation.Reserve(context.Background(), env.customer.ID, &request.ReserveSeatsRequest{
		ShowtimeID: env.showtime.ID.String(),
		SeatIDs:    seatIDStrings(env.seats[0]),
	})

	assert.ErrorIs(t, err, ErrShowtimeStarted)
}

func TestReserveSeatFromOtherAuditorium(t *testing.T) {
	env := newTestEnv(t)

	other := &entity.Seat{
		BaseSimple:   entity.BaseSimple{ID: uuid.New()},
		AuditoriumID: uuid.New(),
		Row:          1,
		Col:          1,
		SeatType:     entity.SeatTypeStandard,
	}
	env.store.seats[other.ID] = other

	_, err := env.svc.Reservation.Reserve(context.Background(), env.customer.ID, &request.ReserveSeatsRequest{
		ShowtimeID: env.showtime.ID.String(),
		SeatIDs:    seatIDStrings(other),
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReserveDeduplicatesRequestedSeats(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.Reservation.Reserve(context.Background(), env.customer.ID, &request.ReserveSeatsRequest{
		ShowtimeID: env.showtime.ID.String(),
		SeatIDs:    []string{env.seats[0].ID.String(), env.seats[0].ID.String()},
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Len(t, resp.Tickets, 1)
	assert.Equal(t, 50.0, resp.TotalAmount)
}

func TestReserveReportsEveryBlockedSeat(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newCustomer("owner@example.com")

	env.placeTicket(env.seats[0], entity.TicketStatusPaid, &owner.ID)
	env.placeTicket(env.seats[1], entity.TicketStatusPaid, &owner.ID)

	_, err := env.svc.Reservation.Reserve(context.Background(), env.customer.ID, &request.ReserveSeatsRequest{
		ShowtimeID: env.showtime.ID.String(),
		SeatIDs:    seatIDStrings(env.seats[0], env.seats[1], env.seats[2]),
	})

	var unavailable *SeatUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, env.showtime.ID, unavailable.ShowtimeID)
	assert.ElementsMatch(t, []uuid.UUID{env.seats[0].ID, env.seats[1].ID}, unavailable.SeatIDs)

	tx := env.db.lastTx()
	require.NotNil(t, tx)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestReserveReusesCanceledTicketRow(t *testing.T) {
	env := newTestEnv(t)
	canceled := env.placeTicket(env.seats[0], entity.TicketStatusCanceled, nil)

	resp, err := env.svc.Reservation.Reserve(context.Background(), env.customer.ID, &request.ReserveSeatsRequest{
		ShowtimeID: env.showtime.ID.String(),
		SeatIDs:    seatIDStrings(env.seats[0]),
	})

	require.NoError(t, err)
	require.Len(t, resp.Tickets, 1)
	assert.Equal(t, canceled.ID.String(), resp.Tickets[0].ID)

	stored := env.store.tickets[canceled.ID]
	assert.Equal(t, entity.TicketStatusReserved, stored.Status)
	require.NotNil(t, stored.CustomerID)
	assert.Equal(t, env.customer.ID, *stored.CustomerID)
}

func TestReserveOwnSeatAlreadyInPendingOrder(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Reservation.Reserve(context.Background(), env.customer.ID, &request.ReserveSeatsRequest{
		ShowtimeID: env.showtime.ID.String(),
		SeatIDs:    seatIDStrings(env.seats[0]),
	})
	require.NoError(t, err)

	// The ticket is still linked to the customer's first pending order, so
	// a second order cannot take it.
	_, err = env.svc.Reservation.Reserve(context.Background(), env.customer.ID, &request.ReserveSeatsRequest{
		ShowtimeID: env.showtime.ID.String(),
		SeatIDs:    seatIDStrings(env.seats[0]),
	})

	assert.ErrorIs(t, err, ErrAlreadyLinked)
}

func TestReserveRefusesSeatHeldByAnotherCustomer(t *testing.T) {
	env := newTestEnv(t)
	first := env.newCustomer("first@example.com")

	firstResp, err := env.svc.Reservation.Reserve(context.Background(), first.ID, &request.ReserveSeatsRequest{
		ShowtimeID: env.showtime.ID.String(),
		SeatIDs:    seatIDStrings(env.seats[0], env.seats[1]),
	})
	require.NoError(t, err)
	require.Equal(t, 100.0, firstResp.TotalAmount)

	// Overlapping request from a second customer fails on the held seat
	// and must not touch the first customer's order.
	_, err = env.svc.Reservation.Reserve(context.Background(), env.customer.ID, &request.ReserveSeatsRequest{
		ShowtimeID: env.showtime.ID.String(),
		SeatIDs:    seatIDStrings(env.seats[1], env.seats[2]),
	})

	var unavailable *SeatUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, []uuid.UUID{env.seats[1].ID}, unavailable.SeatIDs)

	firstOrder := env.store.orders[uuid.MustParse(firstResp.ID)]
	require.NotNil(t, firstOrder)
	assert.Equal(t, entity.OrderStatusPending, firstOrder.Status)
	assert.Equal(t, 100.0, firstOrder.TotalAmount)

	for _, respTicket := range firstResp.Tickets {
		ticket := env.store.tickets[uuid.MustParse(respTicket.ID)]
		require.NotNil(t, ticket.CustomerID)
		assert.Equal(t, first.ID, *ticket.CustomerID)
		assert.Equal(t, uuid.MustParse(firstResp.ID), env.store.orderOf[ticket.ID])
	}

	tx := env.db.lastTx()
	require.NotNil(t, tx)
	assert.True(t, tx.rolledBack)
}

func TestReserveConcurrentOverlappingRequests(t *testing.T) {
	env := newTestEnv(t)
	first := env.newCustomer("first@example.com")

	type result struct {
		resp *response.OrderResponse
		err  error
	}
	results := make([]result, 2)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		resp, err := env.svc.Reservation.Reserve(context.Background(), first.ID, &request.ReserveSeatsRequest{
			ShowtimeID: env.showtime.ID.String(),
			SeatIDs:    seatIDStrings(env.seats[0], env.seats[1]),
		})
		results[0] = result{resp, err}
	}()
	go func() {
		defer wg.Done()
		resp, err := env.svc.Reservation.Reserve(context.Background(), env.customer.ID, &request.ReserveSeatsRequest{
			ShowtimeID: env.showtime.ID.String(),
			SeatIDs:    seatIDStrings(env.seats[1], env.seats[2]),
		})
		results[1] = result{resp, err}
	}()
	wg.Wait()

	// Exactly one request wins the contested seat, whichever claims first.
	var winner *response.OrderResponse
	var loserErr error
	for _, r := range results {
		if r.err == nil {
			require.Nil(t, winner, "both overlapping requests succeeded")
			winner = r.resp
		} else {
			loserErr = r.err
		}
	}
	require.NotNil(t, winner)
	require.Error(t, loserErr)

	var unavailable *SeatUnavailableError
	require.ErrorAs(t, loserErr, &unavailable)
	assert.Equal(t, []uuid.UUID{env.seats[1].ID}, unavailable.SeatIDs)

	require.Len(t, winner.Tickets, 2)
	assert.Equal(t, 100.0, winner.TotalAmount)

	contested := env.store.seatTickets[[2]uuid.UUID{env.showtime.ID, env.seats[1].ID}]
	ticket := env.store.tickets[contested]
	require.NotNil(t, ticket)
	assert.Equal(t, entity.TicketStatusReserved, ticket.Status)
	assert.Equal(t, uuid.MustParse(winner.ID), env.store.orderOf[ticket.ID])
}

func TestReserveInvalidSeatIDFormat(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Reservation.Reserve(context.Background(), env.customer.ID, &request.ReserveSeatsRequest{
		ShowtimeID: env.showtime.ID.String(),
		SeatIDs:    []string{"not-a-uuid"},
	})

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}
