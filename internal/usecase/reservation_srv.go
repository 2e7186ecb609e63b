package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	// Reserve claims every requested seat and wraps the tickets in a new
	// PENDING order. All or nothing: one blocked seat fails the whole
	// request and no order is created. An empty seat list is a no-op and
	// returns a nil response.
	Reserve(ctx context.Context, customerID uuid.UUID, req *request.ReserveSeatsRequest) (*response.OrderResponse, error)
}

type reservationService struct {
	db   database.PgxIface
	repo *repository.Repository
	log  *zap.Logger
}

func NewReservationService(db database.PgxIface, repo *repository.Repository, log *zap.Logger) ReservationService {
	return &reservationService{
		db:   db,
		repo: repo,
		log:  log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) Reserve(ctx context.Context, customerID uuid.UUID, req *request.ReserveSeatsRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Reserve validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	showtimeID, err := uuid.Parse(req.ShowtimeID)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime ID format %s: %w", req.ShowtimeID, err)
	}

	seatIDs, err := parseSeatIDs(req.SeatIDs)
	if err != nil {
		return nil, err
	}

	if len(seatIDs) == 0 {
		return nil, nil
	}

	var (
		order   *entity.Order
		tickets []*entity.Ticket
		seats   map[uuid.UUID]*entity.Seat
	)

	err = database.WithTx(ctx, s.db, func(tx database.DBTX) error {
		showtime, err := s.repo.Showtime.FindByIDTx(ctx, tx, showtimeID)
		if err != nil {
			return err
		}
		if showtime == nil {
			return fmt.Errorf("showtime %s: %w", req.ShowtimeID, ErrNotFound)
		}
		if showtime.IsPast() {
			return ErrShowtimeStarted
		}

		seatRows, err := s.repo.Seat.FindByIDsTx(ctx, tx, seatIDs)
		if err != nil {
			return err
		}

		seats = make(map[uuid.UUID]*entity.Seat, len(seatRows))
		for _, seat := range seatRows {
			seats[seat.ID] = seat
		}

		for _, seatID := range seatIDs {
			seat, ok := seats[seatID]
			if !ok {
				return fmt.Errorf("seat %s: %w", seatID.String(), ErrNotFound)
			}
			if seat.AuditoriumID != showtime.AuditoriumID {
				return fmt.Errorf("seat %s is not in the showtime's auditorium: %w",
					seatID.String(), ErrNotFound)
			}
		}

		now := time.Now()
		order = &entity.Order{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			CustomerID: customerID,
			Status:     entity.OrderStatusPending,
		}

		if err := s.repo.Order.CreateTx(ctx, tx, order); err != nil {
			return err
		}

		// Attempt every seat before failing so the error names the full
		// set of blocked seats, not just the first.
		var blocked []uuid.UUID
		tickets = tickets[:0]
		for _, seatID := range seatIDs {
			ticket := &entity.Ticket{
				Base: entity.Base{
					ID:        uuid.New(),
					CreatedAt: now,
					UpdatedAt: now,
				},
				ShowtimeID: showtimeID,
				SeatID:     seatID,
				CustomerID: &customerID,
				Status:     entity.TicketStatusReserved,
				Price:      showtime.BasePrice,
			}

			claimed, err := s.repo.Ticket.ClaimTx(ctx, tx, ticket)
			if err != nil {
				return err
			}
			if !claimed {
				blocked = append(blocked, seatID)
				continue
			}

			tickets = append(tickets, ticket)
		}

		if len(blocked) > 0 {
			return &SeatUnavailableError{ShowtimeID: showtimeID, SeatIDs: blocked}
		}

		for _, ticket := range tickets {
			if err := s.repo.Order.AttachTicketTx(ctx, tx, order.ID, ticket.ID); err != nil {
				if repository.IsUniqueViolation(err) {
					return fmt.Errorf("ticket %s: %w", ticket.ID.String(), ErrAlreadyLinked)
				}
				return err
			}
		}

		total, err := s.repo.Order.RecomputeTotalTx(ctx, tx, order.ID)
		if err != nil {
			return err
		}
		order.TotalAmount = total

		return nil
	})

	if err != nil {
		var unavailable *SeatUnavailableError
		if errors.As(err, &unavailable) {
			s.log.Warn("Seats unavailable",
				zap.String("showtime_id", showtimeID.String()),
				zap.Int("blocked", len(unavailable.SeatIDs)))
		}
		return nil, err
	}

	s.log.Info("Seats reserved",
		zap.String("order_id", order.ID.String()),
		zap.String("customer_id", customerID.String()),
		zap.String("showtime_id", showtimeID.String()),
		zap.Int("seat_count", len(tickets)),
		zap.Float64("total", order.TotalAmount))

	ticketResps := make([]response.TicketResponse, len(tickets))
	for i, ticket := range tickets {
		ticketResps[i] = response.TicketToResponse(ticket, seats[ticket.SeatID])
	}

	return response.OrderToResponse(order, ticketResps, nil), nil
}

// parseSeatIDs parses and de-duplicates the requested seats. Repeating a
// seat within one request is not an error, it is claimed once.
func parseSeatIDs(raw []string) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool, len(raw))
	seatIDs := make([]uuid.UUID, 0, len(raw))

	for _, idStr := range raw {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid seat ID format %s: %w", idStr, err)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		seatIDs = append(seatIDs, id)
	}

	return seatIDs, nil
}
