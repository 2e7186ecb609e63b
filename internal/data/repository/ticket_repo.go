package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TicketRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
	FindByShowtimeAndSeat(ctx context.Context, showtimeID, seatID uuid.UUID) (*entity.Ticket, error)
	SeatsTakenByShowtime(ctx context.Context, showtimeID uuid.UUID) ([]uuid.UUID, error)
	ExistsByShowtime(ctx context.Context, showtimeID uuid.UUID) (bool, error)

	// Transactional operations
	ClaimTx(ctx context.Context, tx database.DBTX, ticket *entity.Ticket) (bool, error)
	FindByOrderTx(ctx context.Context, tx database.DBTX, orderID uuid.UUID) ([]*entity.Ticket, error)
	MarkPaidByOrderTx(ctx context.Context, tx database.DBTX, orderID uuid.UUID) error
	CancelByOrderTx(ctx context.Context, tx database.DBTX, orderID uuid.UUID) error
}

type ticketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketRepository(db database.PgxIface, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

func (r *ticketRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	query := `
		SELECT id, showtime_id, seat_id, customer_id, status, price, created_at, updated_at
		FROM tickets
		WHERE id = $1
	`

	return r.scanOne(r.db.QueryRow(ctx, query, id), fmt.Sprintf("find ticket by ID %s", id.String()))
}

func (r *ticketRepository) FindByShowtimeAndSeat(ctx context.Context, showtimeID, seatID uuid.UUID) (*entity.Ticket, error) {
	query := `
		SELECT id, showtime_id, seat_id, customer_id, status, price, created_at, updated_at
		FROM tickets
		WHERE showtime_id = $1 AND seat_id = $2
	`

	return r.scanOne(r.db.QueryRow(ctx, query, showtimeID, seatID),
		fmt.Sprintf("find ticket for showtime %s seat %s", showtimeID.String(), seatID.String()))
}

func (r *ticketRepository) scanOne(row pgx.Row, op string) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.ShowtimeID,
		&ticket.SeatID,
		&ticket.CustomerID,
		&ticket.Status,
		&ticket.Price,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to scan ticket", zap.Error(err), zap.String("op", op))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &ticket, nil
}

// SeatsTakenByShowtime returns the seats blocked for the showtime: any seat
// whose ticket is RESERVED or PAID. Canceled tickets do not count.
func (r *ticketRepository) SeatsTakenByShowtime(ctx context.Context, showtimeID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT seat_id
		FROM tickets
		WHERE showtime_id = $1 AND status IN ('RESERVED', 'PAID')
	`

	rows, err := r.db.Query(ctx, query, showtimeID)
	if err != nil {
		r.log.Error("Failed to find taken seats",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return nil, fmt.Errorf("find taken seats for showtime %s: %w", showtimeID.String(), err)
	}
	defer rows.Close()

	var seatIDs []uuid.UUID
	for rows.Next() {
		var seatID uuid.UUID
		if err := rows.Scan(&seatID); err != nil {
			return nil, fmt.Errorf("scan taken seat row: %w", err)
		}
		seatIDs = append(seatIDs, seatID)
	}

	return seatIDs, rows.Err()
}

func (r *ticketRepository) ExistsByShowtime(ctx context.Context, showtimeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM tickets WHERE showtime_id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, showtimeID).Scan(&exists); err != nil {
		r.log.Error("Failed to check tickets for showtime",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return false, fmt.Errorf("check tickets for showtime %s: %w", showtimeID.String(), err)
	}

	return exists, nil
}

// ClaimTx atomically claims the seat for the showtime. A single row exists
// per (showtime, seat): the first claim inserts it, a claim over a CANCELED
// row or the claimant's own RESERVED row updates it in place, re-stamping
// customer, price and status. The conditional update refuses rows that are
// PAID or RESERVED by a different customer, so two concurrent claims for
// the same seat serialize on the unique constraint and at most one sees the
// seat as free. Returns false when the seat is blocked.
func (r *ticketRepository) ClaimTx(ctx context.Context, tx database.DBTX, ticket *entity.Ticket) (bool, error) {
	query := `
		INSERT INTO tickets (id, showtime_id, seat_id, customer_id, status, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (showtime_id, seat_id) DO UPDATE
		SET customer_id = EXCLUDED.customer_id,
		    status      = EXCLUDED.status,
		    price       = EXCLUDED.price,
		    updated_at  = EXCLUDED.updated_at
		WHERE tickets.status = 'CANCELED'
		   OR (tickets.status = 'RESERVED' AND tickets.customer_id = EXCLUDED.customer_id)
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query,
		ticket.ID,
		ticket.ShowtimeID,
		ticket.SeatID,
		ticket.CustomerID,
		ticket.Status,
		ticket.Price,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	).Scan(&ticket.ID, &ticket.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		// Existing row is PAID or held by another customer; the conditional
		// update matched nothing.
		return false, nil
	}
	if err != nil {
		r.log.Error("Failed to claim seat",
			zap.Error(err),
			zap.String("showtime_id", ticket.ShowtimeID.String()),
			zap.String("seat_id", ticket.SeatID.String()),
		)
		return false, fmt.Errorf("claim seat %s for showtime %s: %w",
			ticket.SeatID.String(), ticket.ShowtimeID.String(), err)
	}

	return true, nil
}

func (r *ticketRepository) FindByOrderTx(ctx context.Context, tx database.DBTX, orderID uuid.UUID) ([]*entity.Ticket, error) {
	query := `
		SELECT t.id, t.showtime_id, t.seat_id, t.customer_id, t.status, t.price, t.created_at, t.updated_at
		FROM tickets t
		INNER JOIN order_tickets ot ON ot.ticket_id = t.id
		WHERE ot.order_id = $1
		ORDER BY t.created_at
	`

	rows, err := tx.Query(ctx, query, orderID)
	if err != nil {
		r.log.Error("Failed to find tickets by order",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
		)
		return nil, fmt.Errorf("find tickets by order %s: %w", orderID.String(), err)
	}
	defer rows.Close()

	var tickets []*entity.Ticket
	for rows.Next() {
		var ticket entity.Ticket
		err := rows.Scan(
			&ticket.ID,
			&ticket.ShowtimeID,
			&ticket.SeatID,
			&ticket.CustomerID,
			&ticket.Status,
			&ticket.Price,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		tickets = append(tickets, &ticket)
	}

	return tickets, rows.Err()
}

// MarkPaidByOrderTx promotes every RESERVED ticket attached to the order to
// PAID. Runs in the same transaction as the order's own PENDING -> PAID
// update so both move together or not at all.
func (r *ticketRepository) MarkPaidByOrderTx(ctx context.Context, tx database.DBTX, orderID uuid.UUID) error {
	query := `
		UPDATE tickets
		SET status = 'PAID', updated_at = $2
		WHERE status = 'RESERVED'
		  AND id IN (SELECT ticket_id FROM order_tickets WHERE order_id = $1)
	`

	if _, err := tx.Exec(ctx, query, orderID, time.Now()); err != nil {
		r.log.Error("Failed to mark order tickets paid",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
		)
		return fmt.Errorf("mark tickets paid for order %s: %w", orderID.String(), err)
	}

	return nil
}

// CancelByOrderTx cancels every ticket attached to the order and clears its
// customer, releasing the seats. The order links themselves are removed by
// the caller in the same transaction.
func (r *ticketRepository) CancelByOrderTx(ctx context.Context, tx database.DBTX, orderID uuid.UUID) error {
	query := `
		UPDATE tickets
		SET status = 'CANCELED', customer_id = NULL, updated_at = $2
		WHERE id IN (SELECT ticket_id FROM order_tickets WHERE order_id = $1)
	`

	if _, err := tx.Exec(ctx, query, orderID, time.Now()); err != nil {
		r.log.Error("Failed to cancel order tickets",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
		)
		return fmt.Errorf("cancel tickets for order %s: %w", orderID.String(), err)
	}

	return nil
}
