package response

import (
	"fmt"

	"cinema-reservation/internal/data/entity"
)

type SeatResponse struct {
	ID       string `json:"id"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Label    string `json:"label"`
	SeatType string `json:"seat_type"`
	Taken    bool   `json:"taken"`
}

// SeatMapResponse is the availability view of one showtime. HasLayout is
// false when the auditorium has no seats configured, which is distinct from
// a fully booked hall.
type SeatMapResponse struct {
	ShowtimeID   string         `json:"showtime_id"`
	AuditoriumID string         `json:"auditorium_id"`
	HasLayout    bool           `json:"has_layout"`
	Seats        []SeatResponse `json:"seats"`
}

// SeatLabel renders a grid position as a human label, row A-Z then column
// number, e.g. row 1 col 3 -> A3. Rows past Z fall back to the numeric form.
func SeatLabel(row, col int) string {
	if row >= 1 && row <= 26 {
		return fmt.Sprintf("%c%d", 'A'+row-1, col)
	}
	return fmt.Sprintf("R%dC%d", row, col)
}

func SeatToResponse(seat *entity.Seat, taken bool) SeatResponse {
	return SeatResponse{
		ID:       seat.ID.String(),
		Row:      seat.Row,
		Col:      seat.Col,
		Label:    SeatLabel(seat.Row, seat.Col),
		SeatType: string(seat.SeatType),
		Taken:    taken,
	}
}
