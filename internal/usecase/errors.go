package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Sentinel errors for the handler layer to map onto HTTP status codes.
// Services wrap them with fmt.Errorf("...: %w", ...) where extra context
// helps, so callers match with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrAlreadyLinked      = errors.New("ticket already belongs to another order")
	ErrInvalidTransition  = errors.New("order state does not allow this transition")
	ErrShowtimeStarted    = errors.New("showtime already started")
)

// SeatUnavailableError reports every requested seat blocked by a paid
// ticket or held under another customer's reservation, so the client can
// show the full conflict set in one round trip.
type SeatUnavailableError struct {
	ShowtimeID uuid.UUID
	SeatIDs    []uuid.UUID
}

func (e *SeatUnavailableError) Error() string {
	ids := make([]string, len(e.SeatIDs))
	for i, id := range e.SeatIDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("seats unavailable for showtime %s: %s",
		e.ShowtimeID.String(), strings.Join(ids, ", "))
}
