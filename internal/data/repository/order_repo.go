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

type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Order, error)
	CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error)

	// Transactional operations
	CreateTx(ctx context.Context, tx database.DBTX, order *entity.Order) error
	FindByIDForUpdateTx(ctx context.Context, tx database.DBTX, id uuid.UUID) (*entity.Order, error)
	MarkPaidTx(ctx context.Context, tx database.DBTX, id uuid.UUID, method entity.PaymentMethod, paidAt time.Time) (bool, error)
	MarkCanceledTx(ctx context.Context, tx database.DBTX, id uuid.UUID) (bool, error)
	AttachTicketTx(ctx context.Context, tx database.DBTX, orderID, ticketID uuid.UUID) error
	DetachTicketsTx(ctx context.Context, tx database.DBTX, orderID uuid.UUID) error
	RecomputeTotalTx(ctx context.Context, tx database.DBTX, orderID uuid.UUID) (float64, error)
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

const orderColumns = `id, customer_id, status, payment_method, total_amount, paid_at, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var order entity.Order
	err := row.Scan(
		&order.ID,
		&order.CustomerID,
		&order.Status,
		&order.PaymentMethod,
		&order.TotalAmount,
		&order.PaidAt,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("find order by ID %s: %w", id.String(), err)
	}

	return order, nil
}

func (r *orderRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find orders by customer",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return nil, fmt.Errorf("find orders by customer %s: %w", customerID.String(), err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func (r *orderRepository) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM orders WHERE customer_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, customerID).Scan(&count); err != nil {
		r.log.Error("Failed to count orders by customer",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return 0, fmt.Errorf("count orders by customer %s: %w", customerID.String(), err)
	}

	return count, nil
}

func (r *orderRepository) CreateTx(ctx context.Context, tx database.DBTX, order *entity.Order) error {
	query := `
		INSERT INTO orders (id, customer_id, status, payment_method, total_amount, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := tx.Exec(ctx, query,
		order.ID,
		order.CustomerID,
		order.Status,
		order.PaymentMethod,
		order.TotalAmount,
		order.PaidAt,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("customer_id", order.CustomerID.String()),
		)
		return fmt.Errorf("create order for customer %s: %w", order.CustomerID.String(), err)
	}

	return nil
}

// FindByIDForUpdateTx loads the order row locked for the rest of the
// transaction, serializing concurrent mutations of the same order.
func (r *orderRepository) FindByIDForUpdateTx(ctx context.Context, tx database.DBTX, id uuid.UUID) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`

	order, err := scanOrder(tx.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock order",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("lock order %s: %w", id.String(), err)
	}

	return order, nil
}

// MarkPaidTx performs the PENDING -> PAID transition as a conditional
// update. Returns false when the order was not PENDING, so payment cannot
// be confirmed twice regardless of interleaving.
func (r *orderRepository) MarkPaidTx(ctx context.Context, tx database.DBTX, id uuid.UUID, method entity.PaymentMethod, paidAt time.Time) (bool, error) {
	query := `
		UPDATE orders
		SET status = 'PAID', payment_method = $2, paid_at = $3, updated_at = $3
		WHERE id = $1 AND status = 'PENDING'
	`

	tag, err := tx.Exec(ctx, query, id, method, paidAt)
	if err != nil {
		r.log.Error("Failed to mark order paid",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return false, fmt.Errorf("mark order %s paid: %w", id.String(), err)
	}

	return tag.RowsAffected() > 0, nil
}

// MarkCanceledTx performs PENDING -> CANCELED. Returns false when the order
// was not PENDING: a PAID order cannot be canceled through this path.
func (r *orderRepository) MarkCanceledTx(ctx context.Context, tx database.DBTX, id uuid.UUID) (bool, error) {
	query := `
		UPDATE orders
		SET status = 'CANCELED', updated_at = $2
		WHERE id = $1 AND status = 'PENDING'
	`

	tag, err := tx.Exec(ctx, query, id, time.Now())
	if err != nil {
		r.log.Error("Failed to mark order canceled",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return false, fmt.Errorf("mark order %s canceled: %w", id.String(), err)
	}

	return tag.RowsAffected() > 0, nil
}

// AttachTicketTx links a ticket to the order. The unique constraint on
// ticket_id makes the link one-to-one; a violation surfaces to the caller,
// who translates it into the aggregate's already-linked error.
func (r *orderRepository) AttachTicketTx(ctx context.Context, tx database.DBTX, orderID, ticketID uuid.UUID) error {
	query := `
		INSERT INTO order_tickets (id, order_id, ticket_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := tx.Exec(ctx, query, uuid.New(), orderID, ticketID, time.Now())
	if err != nil {
		if !IsUniqueViolation(err) {
			r.log.Error("Failed to attach ticket",
				zap.Error(err),
				zap.String("order_id", orderID.String()),
				zap.String("ticket_id", ticketID.String()),
			)
		}
		return fmt.Errorf("attach ticket %s to order %s: %w", ticketID.String(), orderID.String(), err)
	}

	return nil
}

func (r *orderRepository) DetachTicketsTx(ctx context.Context, tx database.DBTX, orderID uuid.UUID) error {
	query := `DELETE FROM order_tickets WHERE order_id = $1`

	if _, err := tx.Exec(ctx, query, orderID); err != nil {
		r.log.Error("Failed to detach order tickets",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
		)
		return fmt.Errorf("detach tickets from order %s: %w", orderID.String(), err)
	}

	return nil
}

// RecomputeTotalTx is the single authoritative total computation:
// attached non-canceled ticket prices plus snack line totals. Every
// mutating transaction calls it so the stored total never drifts.
func (r *orderRepository) RecomputeTotalTx(ctx context.Context, tx database.DBTX, orderID uuid.UUID) (float64, error) {
	query := `
		UPDATE orders
		SET total_amount = COALESCE((
			SELECT SUM(t.price)
			FROM tickets t
			INNER JOIN order_tickets ot ON ot.ticket_id = t.id
			WHERE ot.order_id = orders.id AND t.status <> 'CANCELED'
		), 0) + COALESCE((
			SELECT SUM(os.qty * os.price)
			FROM order_snacks os
			WHERE os.order_id = orders.id
		), 0),
		updated_at = $2
		WHERE id = $1
		RETURNING total_amount
	`

	var total float64
	if err := tx.QueryRow(ctx, query, orderID, time.Now()).Scan(&total); err != nil {
		r.log.Error("Failed to recompute order total",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
		)
		return 0, fmt.Errorf("recompute total for order %s: %w", orderID.String(), err)
	}

	return total, nil
}
