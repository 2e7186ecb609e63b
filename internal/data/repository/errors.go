// Package repository implements persistence over PostgreSQL. Sentinel errors
// defined here let the usecase layer distinguish failure modes without
// inspecting driver internals.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrConflict is returned when a write collides with existing state: a
// duplicate email, a double-booked showtime slot, or deleting a showtime
// that already has tickets.
var ErrConflict = errors.New("conflict")

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
