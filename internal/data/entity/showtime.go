package entity

import (
	"time"

	"github.com/google/uuid"
)

// Showtime is a single screening of a movie in an auditorium. BasePrice is
// the price stamped onto tickets at claim time; tickets never re-read it.
type Showtime struct {
	Base
	MovieID      uuid.UUID `db:"movie_id"`
	AuditoriumID uuid.UUID `db:"auditorium_id"`
	StartTime    time.Time `db:"start_time"`
	Language     string    `db:"language"` // SUB or DUB
	Format       string    `db:"format"`   // 2D, 3D, IMAX
	BasePrice    float64   `db:"base_price"`
}

func (s *Showtime) IsPast() bool {
	return s.StartTime.Before(time.Now())
}
