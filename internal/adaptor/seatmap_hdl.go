package adaptor

import (
	"net/http"

	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SeatMapHandler struct {
	service usecase.InventoryService
	log     *zap.Logger
}

func NewSeatMapHandler(service usecase.InventoryService, log *zap.Logger) *SeatMapHandler {
	return &SeatMapHandler{
		service: service,
		log:     log.With(zap.String("handler", "seatmap")),
	}
}

// GetSeatMap handles GET /api/showtimes/{id}/seats (public)
func (h *SeatMapHandler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	showtimeID := chi.URLParam(r, "id")
	if showtimeID == "" {
		utils.ResponseBadRequest(w, "Showtime ID is required", nil)
		return
	}

	seatMap, err := h.service.GetSeatMap(r.Context(), showtimeID)
	if err != nil {
		handleServiceError(w, h.log, err, "get seat map")
		return
	}

	utils.ResponseSuccess(w, "success", seatMap)
}
