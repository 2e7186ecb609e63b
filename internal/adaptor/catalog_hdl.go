package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ListCinemas handles GET /api/cinemas (public)
func (h *CatalogHandler) ListCinemas(w http.ResponseWriter, r *http.Request) {
	cinemas, err := h.service.ListCinemas(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list cinemas")
		return
	}

	utils.ResponseSuccess(w, "success", cinemas)
}

// ListAuditoriums handles GET /api/cinemas/{id}/auditoriums (public)
func (h *CatalogHandler) ListAuditoriums(w http.ResponseWriter, r *http.Request) {
	cinemaID := chi.URLParam(r, "id")
	if cinemaID == "" {
		utils.ResponseBadRequest(w, "Cinema ID is required", nil)
		return
	}

	auditoriums, err := h.service.ListAuditoriums(r.Context(), cinemaID)
	if err != nil {
		handleServiceError(w, h.log, err, "list auditoriums")
		return
	}

	utils.ResponseSuccess(w, "success", auditoriums)
}

// ListMovies handles GET /api/movies (public)
func (h *CatalogHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.ListMovies(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// ListShowtimes handles GET /api/movies/{id}/showtimes (public)
func (h *CatalogHandler) ListShowtimes(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")
	if movieID == "" {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return
	}

	showtimes, err := h.service.ListShowtimes(r.Context(), movieID)
	if err != nil {
		handleServiceError(w, h.log, err, "list showtimes")
		return
	}

	utils.ResponseSuccess(w, "success", showtimes)
}

// ListSnacks handles GET /api/snacks (public)
func (h *CatalogHandler) ListSnacks(w http.ResponseWriter, r *http.Request) {
	snacks, err := h.service.ListSnacks(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list snacks")
		return
	}

	utils.ResponseSuccess(w, "success", snacks)
}

// ==================== ADMIN METHODS ====================

// CreateCinema handles POST /api/admin/cinemas (admin only)
func (h *CatalogHandler) CreateCinema(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCinemaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	cinema, err := h.service.CreateCinema(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create cinema")
		return
	}

	utils.ResponseCreated(w, "success", cinema)
}

// CreateAuditorium handles POST /api/admin/auditoriums (admin only)
func (h *CatalogHandler) CreateAuditorium(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAuditoriumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	auditorium, err := h.service.CreateAuditorium(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create auditorium")
		return
	}

	utils.ResponseCreated(w, "success", auditorium)
}

// CreateMovie handles POST /api/admin/movies (admin only)
func (h *CatalogHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create movie")
		return
	}

	utils.ResponseCreated(w, "success", movie)
}

// CreateShowtime handles POST /api/admin/showtimes (admin only)
func (h *CatalogHandler) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var req request.CreateShowtimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	showtime, err := h.service.CreateShowtime(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create showtime")
		return
	}

	utils.ResponseCreated(w, "success", showtime)
}

// DeleteShowtime handles DELETE /api/admin/showtimes/{id} (admin only)
func (h *CatalogHandler) DeleteShowtime(w http.ResponseWriter, r *http.Request) {
	showtimeID := chi.URLParam(r, "id")
	if showtimeID == "" {
		utils.ResponseBadRequest(w, "Showtime ID is required", nil)
		return
	}

	if err := h.service.DeleteShowtime(r.Context(), showtimeID); err != nil {
		handleServiceError(w, h.log, err, "delete showtime")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// CreateSnack handles POST /api/admin/snacks (admin only)
func (h *CatalogHandler) CreateSnack(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSnackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	snack, err := h.service.CreateSnack(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create snack")
		return
	}

	utils.ResponseCreated(w, "success", snack)
}
