package request

// ReserveSeatsRequest claims a set of seats for one showtime. An empty seat
// list is accepted and reserves nothing.
type ReserveSeatsRequest struct {
	ShowtimeID string   `json:"showtime_id" validate:"required,uuid4"`
	SeatIDs    []string `json:"seat_ids" validate:"omitempty,dive,uuid4"`
}
