package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SeatRepository interface {
	CreateBatch(ctx context.Context, seats []*entity.Seat) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error)
	FindByAuditoriumID(ctx context.Context, auditoriumID uuid.UUID) ([]*entity.Seat, error)
	FindByIDsTx(ctx context.Context, tx database.DBTX, ids []uuid.UUID) ([]*entity.Seat, error)
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	query := `INSERT INTO seats (id, auditorium_id, seat_row, seat_col, seat_type, created_at) VALUES `
	args := []interface{}{}

	for i, seat := range seats {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			i*6+1, i*6+2, i*6+3, i*6+4, i*6+5, i*6+6)

		args = append(args,
			seat.ID,
			seat.AuditoriumID,
			seat.Row,
			seat.Col,
			seat.SeatType,
			seat.CreatedAt,
		)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		r.log.Error("Failed to create batch seats",
			zap.Error(err),
			zap.Int("count", len(seats)),
		)
		return fmt.Errorf("create batch seats: %w", err)
	}

	return nil
}

func (r *seatRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
	query := `
		SELECT id, auditorium_id, seat_row, seat_col, seat_type, created_at
		FROM seats
		WHERE id = $1
	`

	var seat entity.Seat
	err := r.db.QueryRow(ctx, query, id).Scan(
		&seat.ID,
		&seat.AuditoriumID,
		&seat.Row,
		&seat.Col,
		&seat.SeatType,
		&seat.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find seat by ID",
			zap.Error(err),
			zap.String("seat_id", id.String()),
		)
		return nil, fmt.Errorf("find seat by ID %s: %w", id.String(), err)
	}

	return &seat, nil
}

// FindByAuditoriumID returns the seat layout ordered by row, then column.
// An empty result means the auditorium has no seats configured.
func (r *seatRepository) FindByAuditoriumID(ctx context.Context, auditoriumID uuid.UUID) ([]*entity.Seat, error) {
	query := `
		SELECT id, auditorium_id, seat_row, seat_col, seat_type, created_at
		FROM seats
		WHERE auditorium_id = $1
		ORDER BY seat_row, seat_col
	`

	rows, err := r.db.Query(ctx, query, auditoriumID)
	if err != nil {
		r.log.Error("Failed to find seats by auditorium",
			zap.Error(err),
			zap.String("auditorium_id", auditoriumID.String()),
		)
		return nil, fmt.Errorf("find seats by auditorium %s: %w", auditoriumID.String(), err)
	}
	defer rows.Close()

	return scanSeats(rows)
}

func (r *seatRepository) FindByIDsTx(ctx context.Context, tx database.DBTX, ids []uuid.UUID) ([]*entity.Seat, error) {
	if len(ids) == 0 {
		return []*entity.Seat{}, nil
	}

	query := `
		SELECT id, auditorium_id, seat_row, seat_col, seat_type, created_at
		FROM seats
		WHERE id = ANY($1)
		ORDER BY seat_row, seat_col
	`

	rows, err := tx.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find seats by IDs", zap.Error(err), zap.Int("count", len(ids)))
		return nil, fmt.Errorf("find seats by IDs: %w", err)
	}
	defer rows.Close()

	return scanSeats(rows)
}

func scanSeats(rows pgx.Rows) ([]*entity.Seat, error) {
	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.AuditoriumID,
			&seat.Row,
			&seat.Col,
			&seat.SeatType,
			&seat.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, rows.Err()
}
