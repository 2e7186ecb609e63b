package response

import (
	"time"

	"cinema-reservation/internal/data/entity"
)

type CinemaResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone,omitempty"`
}

type AuditoriumResponse struct {
	ID        string `json:"id"`
	CinemaID  string `json:"cinema_id"`
	Name      string `json:"name"`
	TotalRows int    `json:"total_rows"`
	TotalCols int    `json:"total_cols"`
	SeatCount int    `json:"seat_count"`
}

type MovieResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Synopsis    string `json:"synopsis,omitempty"`
	DurationMin int    `json:"duration_min"`
	ReleaseDate string `json:"release_date"`
	Rating      string `json:"rating,omitempty"`
}

type ShowtimeResponse struct {
	ID           string    `json:"id"`
	MovieID      string    `json:"movie_id"`
	AuditoriumID string    `json:"auditorium_id"`
	StartTime    time.Time `json:"start_time"`
	Language     string    `json:"language"`
	Format       string    `json:"format"`
	BasePrice    float64   `json:"base_price"`
}

type SnackResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
}

func CinemaToResponse(cinema *entity.Cinema) CinemaResponse {
	return CinemaResponse{
		ID:      cinema.ID.String(),
		Name:    cinema.Name,
		Address: cinema.Address,
		City:    cinema.City,
		Phone:   cinema.Phone,
	}
}

func AuditoriumToResponse(auditorium *entity.Auditorium, seatCount int) AuditoriumResponse {
	return AuditoriumResponse{
		ID:        auditorium.ID.String(),
		CinemaID:  auditorium.CinemaID.String(),
		Name:      auditorium.Name,
		TotalRows: auditorium.TotalRows,
		TotalCols: auditorium.TotalCols,
		SeatCount: seatCount,
	}
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Synopsis:    movie.Synopsis,
		DurationMin: movie.DurationMin,
		ReleaseDate: movie.ReleaseDate.Format("2006-01-02"),
		Rating:      movie.Rating,
	}
}

func ShowtimeToResponse(showtime *entity.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		ID:           showtime.ID.String(),
		MovieID:      showtime.MovieID.String(),
		AuditoriumID: showtime.AuditoriumID.String(),
		StartTime:    showtime.StartTime,
		Language:     showtime.Language,
		Format:       showtime.Format,
		BasePrice:    showtime.BasePrice,
	}
}

func SnackToResponse(snack *entity.SnackItem) SnackResponse {
	return SnackResponse{
		ID:          snack.ID.String(),
		Name:        snack.Name,
		Description: snack.Description,
		Price:       snack.Price,
	}
}
