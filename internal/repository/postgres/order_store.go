package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nastyazhadan/order-intake/internal/domain/models"
	repositoryErrors "github.com/nastyazhadan/order-intake/internal/errors/repository"
	"github.com/nastyazhadan/order-intake/internal/repository"
	"github.com/nastyazhadan/order-intake/internal/repository/postgres/dto"
)

const selectColumns = `id, user_id, pair, type, price::text AS price, quantity::text AS quantity,
	status, created_at, updated_at, cancelled_at`

var _ repository.OrderRepository = (*OrderStore)(nil)

type OrderStore struct {
	pool *pgxpool.Pool
}

func NewOrderStore(pool *pgxpool.Pool) *OrderStore {
	return &OrderStore{
		pool: pool,
	}
}

func (o *OrderStore) Put(ctx context.Context, order models.Order) (models.Order, error) {
	const op = "repository.postgres.OrderStore.Put"

	orderDTO := dto.FromDomain(order)

	_, err := o.pool.Exec(ctx,
		`INSERT INTO orders (id, user_id, pair, type, price, quantity, status, created_at, updated_at, cancelled_at)
		 VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7, $8, $9, $10)
		 ON CONFLICT (id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			pair = EXCLUDED.pair,
			type = EXCLUDED.type,
			price = EXCLUDED.price,
			quantity = EXCLUDED.quantity,
			status = EXCLUDED.status,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at,
			cancelled_at = EXCLUDED.cancelled_at`,
		orderDTO.ID,
		orderDTO.UserID,
		orderDTO.Pair,
		orderDTO.Type,
		orderDTO.Price,
		orderDTO.Quantity,
		orderDTO.Status,
		orderDTO.CreatedAt,
		orderDTO.UpdatedAt,
		orderDTO.CancelledAt,
	)
	if err != nil {
		return models.Order{}, fmt.Errorf("%s: exec: %w", op, err)
	}

	return order.Clone(), nil
}

func (o *OrderStore) Remove(ctx context.Context, id uuid.UUID) error {
	const op = "repository.postgres.OrderStore.Remove"

	if _, err := o.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("%s: exec: %w", op, err)
	}

	return nil
}

func (o *OrderStore) Get(ctx context.Context, id uuid.UUID) (models.Order, error) {
	const op = "repository.postgres.OrderStore.Get"

	order, err := getOrder(ctx, o.pool, id, false)
	if err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	return order, nil
}

func (o *OrderStore) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	const op = "repository.postgres.OrderStore.ListByUser"

	rows, err := o.pool.Query(ctx,
		`SELECT `+selectColumns+`
		 FROM orders
		 WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}

	orderDTOs, err := pgx.CollectRows(rows, pgx.RowToStructByName[dto.Order])
	if err != nil {
		return nil, fmt.Errorf("%s: collect: %w", op, err)
	}

	out := make([]models.Order, 0, len(orderDTOs))
	for _, orderDTO := range orderDTOs {
		order, err := orderDTO.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, order)
	}

	return out, nil
}

func (o *OrderStore) Update(
	ctx context.Context,
	id uuid.UUID,
	mutate func(*models.Order) error,
) (models.Order, error) {
	const op = "repository.postgres.OrderStore.Update"

	var updated models.Order

	err := pgx.BeginFunc(ctx, o.pool, func(tx pgx.Tx) error {
		current, err := getOrder(ctx, tx, id, true)
		if err != nil {
			return err
		}

		updated = current.Clone()
		if err := mutate(&updated); err != nil {
			return err
		}
		updated.ID = current.ID
		updated.CreatedAt = current.CreatedAt

		orderDTO := dto.FromDomain(updated)
		_, err = tx.Exec(ctx,
			`UPDATE orders
			 SET pair = $2, type = $3, price = $4::numeric, quantity = $5::numeric,
				 status = $6, updated_at = $7, cancelled_at = $8
			 WHERE id = $1`,
			orderDTO.ID,
			orderDTO.Pair,
			orderDTO.Type,
			orderDTO.Price,
			orderDTO.Quantity,
			orderDTO.Status,
			orderDTO.UpdatedAt,
			orderDTO.CancelledAt,
		)
		if err != nil {
			return fmt.Errorf("exec: %w", err)
		}

		return nil
	})
	if err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func getOrder(ctx context.Context, db querier, id uuid.UUID, forUpdate bool) (models.Order, error) {
	query := `SELECT ` + selectColumns + `
		 FROM orders
		 WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	rows, err := db.Query(ctx, query, id)
	if err != nil {
		return models.Order{}, fmt.Errorf("query: %w", err)
	}

	orderDTO, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[dto.Order])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Order{}, repositoryErrors.ErrOrderNotFound
		}

		return models.Order{}, fmt.Errorf("collect: %w", err)
	}

	return orderDTO.ToDomain()
}
