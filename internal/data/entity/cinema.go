package entity

import "github.com/google/uuid"

type Cinema struct {
	Base
	Name     string `db:"name"`
	Address  string `db:"address"`
	City     string `db:"city"`
	Phone    string `db:"phone"`
	IsActive bool   `db:"is_active"`
}

// Auditorium is a physical hall inside a cinema. Its seat grid is generated
// once from TotalRows x TotalCols and is immutable afterwards.
type Auditorium struct {
	Base
	CinemaID  uuid.UUID `db:"cinema_id"`
	Name      string    `db:"name"`
	TotalRows int       `db:"total_rows"`
	TotalCols int       `db:"total_cols"`
}
