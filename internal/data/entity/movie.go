package entity

import "time"

type Movie struct {
	Base
	Title       string    `db:"title"`
	Synopsis    string    `db:"synopsis"`
	DurationMin int       `db:"duration_min"`
	ReleaseDate time.Time `db:"release_date"`
	Rating      string    `db:"rating"` // classification, e.g. PG-13
	IsActive    bool      `db:"is_active"`
}
