package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	Catalog     *CatalogHandler
	SeatMap     *SeatMapHandler
	Reservation *ReservationHandler
	Order       *OrderHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, log),
		Catalog:     NewCatalogHandler(service.Catalog, log),
		SeatMap:     NewSeatMapHandler(service.Inventory, log),
		Reservation: NewReservationHandler(service.Reservation, log),
		Order:       NewOrderHandler(service.Order, log),
	}
}

// handleServiceError maps service errors onto HTTP responses. Sentinels
// first, then the message fallbacks for validation and parse failures.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var unavailable *usecase.SeatUnavailableError
	if errors.As(err, &unavailable) {
		seatIDs := make([]string, len(unavailable.SeatIDs))
		for i, id := range unavailable.SeatIDs {
			seatIDs[i] = id.String()
		}
		log.Warn(operation+" failed - seats unavailable",
			zap.String("showtime_id", unavailable.ShowtimeID.String()),
			zap.Strings("seat_ids", seatIDs))
		utils.ResponseConflict(w, "Some seats are no longer available", map[string]any{
			"showtime_id": unavailable.ShowtimeID.String(),
			"seat_ids":    seatIDs,
		})
		return
	}

	switch {
	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials")
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrEmailTaken),
		errors.Is(err, usecase.ErrAlreadyLinked),
		errors.Is(err, usecase.ErrInvalidTransition),
		errors.Is(err, usecase.ErrShowtimeStarted),
		errors.Is(err, repository.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidQuantity):
		log.Warn(operation+" failed - invalid quantity", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"):
		log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
