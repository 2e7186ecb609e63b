package request

type CreateCinemaRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
}

// CreateAuditoriumRequest also generates the seat grid: TotalRows x TotalCols
// seats, with the last VIPRows rows typed vip.
type CreateAuditoriumRequest struct {
	CinemaID  string `json:"cinema_id" validate:"required,uuid4"`
	Name      string `json:"name" validate:"required,min=1,max=50"`
	TotalRows int    `json:"total_rows" validate:"required,min=1,max=50"`
	TotalCols int    `json:"total_cols" validate:"required,min=1,max=50"`
	VIPRows   int    `json:"vip_rows,omitempty" validate:"omitempty,min=0"`
}

type CreateMovieRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Synopsis    string `json:"synopsis,omitempty"`
	DurationMin int    `json:"duration_min" validate:"required,min=1"`
	ReleaseDate string `json:"release_date" validate:"required"`
	Rating      string `json:"rating,omitempty" validate:"omitempty,oneof=G PG PG-13 R"`
}

type CreateShowtimeRequest struct {
	MovieID      string  `json:"movie_id" validate:"required,uuid4"`
	AuditoriumID string  `json:"auditorium_id" validate:"required,uuid4"`
	StartTime    string  `json:"start_time" validate:"required"`
	Language     string  `json:"language" validate:"required,oneof=SUB DUB"`
	Format       string  `json:"format" validate:"required,oneof=2D 3D IMAX"`
	BasePrice    float64 `json:"base_price" validate:"required,gt=0"`
}

type CreateSnackRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}
