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

type SnackRepository interface {
	Create(ctx context.Context, snack *entity.SnackItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SnackItem, error)
	FindByIDTx(ctx context.Context, tx database.DBTX, id uuid.UUID) (*entity.SnackItem, error)
	FindAllAvailable(ctx context.Context) ([]*entity.SnackItem, error)
}

type snackRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSnackRepository(db database.PgxIface, log *zap.Logger) SnackRepository {
	return &snackRepository{
		db:  db,
		log: log.With(zap.String("repository", "snack")),
	}
}

func (r *snackRepository) Create(ctx context.Context, snack *entity.SnackItem) error {
	query := `
		INSERT INTO snack_items (id, name, description, price, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		snack.ID,
		snack.Name,
		snack.Description,
		snack.Price,
		snack.IsAvailable,
		snack.CreatedAt,
		snack.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create snack item",
			zap.Error(err),
			zap.String("name", snack.Name),
		)
		return fmt.Errorf("create snack item %s: %w", snack.Name, err)
	}

	return nil
}

func (r *snackRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SnackItem, error) {
	return r.findByID(ctx, r.db, id)
}

func (r *snackRepository) FindByIDTx(ctx context.Context, tx database.DBTX, id uuid.UUID) (*entity.SnackItem, error) {
	return r.findByID(ctx, tx, id)
}

func (r *snackRepository) findByID(ctx context.Context, db database.DBTX, id uuid.UUID) (*entity.SnackItem, error) {
	query := `
		SELECT id, name, description, price, is_available, created_at, updated_at
		FROM snack_items
		WHERE id = $1
	`

	var snack entity.SnackItem
	err := db.QueryRow(ctx, query, id).Scan(
		&snack.ID,
		&snack.Name,
		&snack.Description,
		&snack.Price,
		&snack.IsAvailable,
		&snack.CreatedAt,
		&snack.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find snack item by ID",
			zap.Error(err),
			zap.String("snack_id", id.String()),
		)
		return nil, fmt.Errorf("find snack item by ID %s: %w", id.String(), err)
	}

	return &snack, nil
}

func (r *snackRepository) FindAllAvailable(ctx context.Context) ([]*entity.SnackItem, error) {
	query := `
		SELECT id, name, description, price, is_available, created_at, updated_at
		FROM snack_items
		WHERE is_available = true
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find available snack items", zap.Error(err))
		return nil, fmt.Errorf("find available snack items: %w", err)
	}
	defer rows.Close()

	var snacks []*entity.SnackItem
	for rows.Next() {
		var snack entity.SnackItem
		err := rows.Scan(
			&snack.ID,
			&snack.Name,
			&snack.Description,
			&snack.Price,
			&snack.IsAvailable,
			&snack.CreatedAt,
			&snack.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan snack item row: %w", err)
		}
		snacks = append(snacks, &snack)
	}

	return snacks, rows.Err()
}
