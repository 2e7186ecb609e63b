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
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	CreateCinema(ctx context.Context, req *request.CreateCinemaRequest) (*response.CinemaResponse, error)
	ListCinemas(ctx context.Context) ([]response.CinemaResponse, error)

	CreateAuditorium(ctx context.Context, req *request.CreateAuditoriumRequest) (*response.AuditoriumResponse, error)
	ListAuditoriums(ctx context.Context, cinemaID string) ([]response.AuditoriumResponse, error)

	CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error)
	ListMovies(ctx context.Context) ([]response.MovieResponse, error)

	CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error)
	ListShowtimes(ctx context.Context, movieID string) ([]response.ShowtimeResponse, error)
	DeleteShowtime(ctx context.Context, showtimeID string) error

	CreateSnack(ctx context.Context, req *request.CreateSnackRequest) (*response.SnackResponse, error)
	ListSnacks(ctx context.Context) ([]response.SnackResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) CreateCinema(ctx context.Context, req *request.CreateCinemaRequest) (*response.CinemaResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	cinema := &entity.Cinema{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		Phone:    req.Phone,
		IsActive: true,
	}

	if err := s.repo.Cinema.Create(ctx, cinema); err != nil {
		return nil, err
	}

	s.log.Info("Cinema created",
		zap.String("cinema_id", cinema.ID.String()),
		zap.String("name", cinema.Name))

	resp := response.CinemaToResponse(cinema)
	return &resp, nil
}

func (s *catalogService) ListCinemas(ctx context.Context) ([]response.CinemaResponse, error) {
	cinemas, err := s.repo.Cinema.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	resps := make([]response.CinemaResponse, len(cinemas))
	for i, cinema := range cinemas {
		resps[i] = response.CinemaToResponse(cinema)
	}

	return resps, nil
}

// CreateAuditorium creates the hall and generates its full seat grid in one
// go. Rows counted from the screen; the last VIPRows rows are typed vip.
func (s *catalogService) CreateAuditorium(ctx context.Context, req *request.CreateAuditoriumRequest) (*response.AuditoriumResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.VIPRows > req.TotalRows {
		return nil, fmt.Errorf("vip rows %d exceed total rows %d", req.VIPRows, req.TotalRows)
	}

	cinemaID, err := uuid.Parse(req.CinemaID)
	if err != nil {
		return nil, fmt.Errorf("invalid cinema ID format %s: %w", req.CinemaID, err)
	}

	cinema, err := s.repo.Cinema.FindByID(ctx, cinemaID)
	if err != nil {
		return nil, err
	}
	if cinema == nil {
		return nil, fmt.Errorf("cinema %s: %w", req.CinemaID, ErrNotFound)
	}

	now := time.Now()
	auditorium := &entity.Auditorium{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CinemaID:  cinemaID,
		Name:      req.Name,
		TotalRows: req.TotalRows,
		TotalCols: req.TotalCols,
	}

	if err := s.repo.Auditorium.Create(ctx, auditorium); err != nil {
		return nil, err
	}

	seats := make([]*entity.Seat, 0, req.TotalRows*req.TotalCols)
	for row := 1; row <= req.TotalRows; row++ {
		seatType := entity.SeatTypeStandard
		if row > req.TotalRows-req.VIPRows {
			seatType = entity.SeatTypeVIP
		}

		for col := 1; col <= req.TotalCols; col++ {
			seats = append(seats, &entity.Seat{
				BaseSimple: entity.BaseSimple{
					ID:        uuid.New(),
					CreatedAt: now,
				},
				AuditoriumID: auditorium.ID,
				Row:          row,
				Col:          col,
				SeatType:     seatType,
			})
		}
	}

	if err := s.repo.Seat.CreateBatch(ctx, seats); err != nil {
		return nil, err
	}

	s.log.Info("Auditorium created",
		zap.String("auditorium_id", auditorium.ID.String()),
		zap.String("cinema_id", cinemaID.String()),
		zap.Int("seat_count", len(seats)))

	resp := response.AuditoriumToResponse(auditorium, len(seats))
	return &resp, nil
}

func (s *catalogService) ListAuditoriums(ctx context.Context, cinemaID string) ([]response.AuditoriumResponse, error) {
	id, err := uuid.Parse(cinemaID)
	if err != nil {
		return nil, fmt.Errorf("invalid cinema ID format %s: %w", cinemaID, err)
	}

	auditoriums, err := s.repo.Auditorium.FindByCinemaID(ctx, id)
	if err != nil {
		return nil, err
	}

	resps := make([]response.AuditoriumResponse, len(auditoriums))
	for i, auditorium := range auditoriums {
		resps[i] = response.AuditoriumToResponse(auditorium, auditorium.TotalRows*auditorium.TotalCols)
	}

	return resps, nil
}

func (s *catalogService) CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		return nil, fmt.Errorf("invalid release date %s: %w", req.ReleaseDate, err)
	}

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       req.Title,
		Synopsis:    req.Synopsis,
		DurationMin: req.DurationMin,
		ReleaseDate: releaseDate,
		Rating:      req.Rating,
		IsActive:    true,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, err
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *catalogService) ListMovies(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	resps := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		resps[i] = response.MovieToResponse(movie)
	}

	return resps, nil
}

func (s *catalogService) CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", req.MovieID, err)
	}

	auditoriumID, err := uuid.Parse(req.AuditoriumID)
	if err != nil {
		return nil, fmt.Errorf("invalid auditorium ID format %s: %w", req.AuditoriumID, err)
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %s: %w", req.StartTime, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", req.MovieID, ErrNotFound)
	}

	auditorium, err := s.repo.Auditorium.FindByID(ctx, auditoriumID)
	if err != nil {
		return nil, err
	}
	if auditorium == nil {
		return nil, fmt.Errorf("auditorium %s: %w", req.AuditoriumID, ErrNotFound)
	}

	now := time.Now()
	showtime := &entity.Showtime{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID:      movieID,
		AuditoriumID: auditoriumID,
		StartTime:    startTime,
		Language:     req.Language,
		Format:       req.Format,
		BasePrice:    req.BasePrice,
	}

	// The unique (auditorium, start_time) constraint rejects double booking
	// of the hall.
	if err := s.repo.Showtime.Create(ctx, showtime); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("auditorium %s already scheduled at %s: %w",
				req.AuditoriumID, startTime.Format(time.RFC3339), repository.ErrConflict)
		}
		return nil, err
	}

	s.log.Info("Showtime created",
		zap.String("showtime_id", showtime.ID.String()),
		zap.String("movie_id", movieID.String()),
		zap.Time("start_time", startTime))

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *catalogService) ListShowtimes(ctx context.Context, movieID string) ([]response.ShowtimeResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
	}

	showtimes, err := s.repo.Showtime.FindByMovieID(ctx, id)
	if err != nil {
		return nil, err
	}

	resps := make([]response.ShowtimeResponse, len(showtimes))
	for i, showtime := range showtimes {
		resps[i] = response.ShowtimeToResponse(showtime)
	}

	return resps, nil
}

// DeleteShowtime refuses to remove a showtime that has tickets, in any
// state. Sold history must survive.
func (s *catalogService) DeleteShowtime(ctx context.Context, showtimeID string) error {
	id, err := uuid.Parse(showtimeID)
	if err != nil {
		return fmt.Errorf("invalid showtime ID format %s: %w", showtimeID, err)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if showtime == nil {
		return fmt.Errorf("showtime %s: %w", showtimeID, ErrNotFound)
	}

	hasTickets, err := s.repo.Ticket.ExistsByShowtime(ctx, id)
	if err != nil {
		return err
	}
	if hasTickets {
		return fmt.Errorf("showtime %s has tickets: %w", showtimeID, repository.ErrConflict)
	}

	if err := s.repo.Showtime.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("Showtime deleted", zap.String("showtime_id", showtimeID))
	return nil
}

func (s *catalogService) CreateSnack(ctx context.Context, req *request.CreateSnackRequest) (*response.SnackResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	snack := &entity.SnackItem{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsAvailable: true,
	}

	if err := s.repo.Snack.Create(ctx, snack); err != nil {
		return nil, err
	}

	s.log.Info("Snack item created",
		zap.String("snack_id", snack.ID.String()),
		zap.String("name", snack.Name))

	resp := response.SnackToResponse(snack)
	return &resp, nil
}

func (s *catalogService) ListSnacks(ctx context.Context) ([]response.SnackResponse, error) {
	snacks, err := s.repo.Snack.FindAllAvailable(ctx)
	if err != nil {
		return nil, err
	}

	resps := make([]response.SnackResponse, len(snacks))
	for i, snack := range snacks {
		resps[i] = response.SnackToResponse(snack)
	}

	return resps, nil
}
