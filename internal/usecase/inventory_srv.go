package usecase

import (
	"context"
	"fmt"

	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InventoryService interface {
	// GetSeatMap returns every seat of the showtime's auditorium with its
	// availability. Canceled tickets do not block seats.
	GetSeatMap(ctx context.Context, showtimeID string) (*response.SeatMapResponse, error)

	// SeatsTakenFor returns just the blocked seat IDs for a showtime.
	SeatsTakenFor(ctx context.Context, showtimeID uuid.UUID) ([]uuid.UUID, error)
}

type inventoryService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewInventoryService(repo *repository.Repository, log *zap.Logger) InventoryService {
	return &inventoryService{
		repo: repo,
		log:  log.With(zap.String("service", "inventory")),
	}
}

func (s *inventoryService) GetSeatMap(ctx context.Context, showtimeID string) (*response.SeatMapResponse, error) {
	id, err := uuid.Parse(showtimeID)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime ID format %s: %w", showtimeID, err)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %s: %w", showtimeID, ErrNotFound)
	}

	seats, err := s.repo.Seat.FindByAuditoriumID(ctx, showtime.AuditoriumID)
	if err != nil {
		return nil, err
	}

	takenIDs, err := s.repo.Ticket.SeatsTakenByShowtime(ctx, id)
	if err != nil {
		return nil, err
	}

	taken := make(map[uuid.UUID]bool, len(takenIDs))
	for _, seatID := range takenIDs {
		taken[seatID] = true
	}

	resp := &response.SeatMapResponse{
		ShowtimeID:   id.String(),
		AuditoriumID: showtime.AuditoriumID.String(),
		HasLayout:    len(seats) > 0,
		Seats:        make([]response.SeatResponse, len(seats)),
	}

	for i, seat := range seats {
		resp.Seats[i] = response.SeatToResponse(seat, taken[seat.ID])
	}

	return resp, nil
}

func (s *inventoryService) SeatsTakenFor(ctx context.Context, showtimeID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.Ticket.SeatsTakenByShowtime(ctx, showtimeID)
}
