package entity

import "github.com/google/uuid"

type SeatType string

const (
	SeatTypeStandard SeatType = "standard"
	SeatTypeVIP      SeatType = "vip"
)

// Seat is a fixed seat in an auditorium, identified by (auditorium, row, col).
// Seats are created together with their auditorium and never change.
type Seat struct {
	BaseSimple
	AuditoriumID uuid.UUID `db:"auditorium_id"`
	Row          int       `db:"seat_row"`
	Col          int       `db:"seat_col"`
	SeatType     SeatType  `db:"seat_type"`
}
