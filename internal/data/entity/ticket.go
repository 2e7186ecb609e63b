package entity

import (
	"github.com/google/uuid"
)

// TicketStatus is the reservation state of a single seat for a showtime.
type TicketStatus string

const (
	TicketStatusReserved TicketStatus = "RESERVED"
	TicketStatusPaid     TicketStatus = "PAID"
	TicketStatusCanceled TicketStatus = "CANCELED"
)

// Taken reports whether the ticket blocks its seat. A canceled ticket
// releases the seat for re-claiming.
func (s TicketStatus) Taken() bool {
	return s == TicketStatusReserved || s == TicketStatusPaid
}

// Ticket binds one seat to one showtime. At most one row exists per
// (showtime, seat); a canceled row is reused by the next claim instead of
// being duplicated. Price is a snapshot of the showtime's base price taken
// at claim time. CustomerID is nil once the ticket is canceled.
type Ticket struct {
	Base
	ShowtimeID uuid.UUID    `db:"showtime_id"`
	SeatID     uuid.UUID    `db:"seat_id"`
	CustomerID *uuid.UUID   `db:"customer_id"`
	Status     TicketStatus `db:"status"`
	Price      float64      `db:"price"`
}
