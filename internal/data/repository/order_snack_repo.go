package repository

import (
	"context"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderSnackRepository interface {
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderSnack, error)

	// UpsertLineTx adds a snack line or increments an existing one.
	UpsertLineTx(ctx context.Context, tx database.DBTX, line *entity.OrderSnack) error
}

type orderSnackRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderSnackRepository(db database.PgxIface, log *zap.Logger) OrderSnackRepository {
	return &orderSnackRepository{
		db:  db,
		log: log.With(zap.String("repository", "order_snack")),
	}
}

func (r *orderSnackRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderSnack, error) {
	query := `
		SELECT id, order_id, snack_id, qty, price, created_at
		FROM order_snacks
		WHERE order_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		r.log.Error("Failed to find snack lines by order",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
		)
		return nil, fmt.Errorf("find snack lines by order %s: %w", orderID.String(), err)
	}
	defer rows.Close()

	var lines []*entity.OrderSnack
	for rows.Next() {
		var line entity.OrderSnack
		err := rows.Scan(
			&line.ID,
			&line.OrderID,
			&line.SnackID,
			&line.Qty,
			&line.Price,
			&line.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan snack line row: %w", err)
		}
		lines = append(lines, &line)
	}

	return lines, rows.Err()
}

// UpsertLineTx inserts a new (order, snack) line at the item's current
// price, or increments the quantity of the existing line. The existing
// line's price snapshot is deliberately left untouched: repeated additions
// never re-price a line. The updated qty and effective price are written
// back into line.
func (r *orderSnackRepository) UpsertLineTx(ctx context.Context, tx database.DBTX, line *entity.OrderSnack) error {
	query := `
		INSERT INTO order_snacks (id, order_id, snack_id, qty, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (order_id, snack_id) DO UPDATE
		SET qty = order_snacks.qty + EXCLUDED.qty
		RETURNING id, qty, price
	`

	err := tx.QueryRow(ctx, query,
		line.ID,
		line.OrderID,
		line.SnackID,
		line.Qty,
		line.Price,
		line.CreatedAt,
	).Scan(&line.ID, &line.Qty, &line.Price)

	if err != nil {
		r.log.Error("Failed to upsert snack line",
			zap.Error(err),
			zap.String("order_id", line.OrderID.String()),
			zap.String("snack_id", line.SnackID.String()),
		)
		return fmt.Errorf("upsert snack line for order %s: %w", line.OrderID.String(), err)
	}

	return nil
}
