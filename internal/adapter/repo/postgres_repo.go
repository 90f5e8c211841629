package repo

import (
	"context"
	"fmt"

	"github.com/example/checkout-service/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresOrderRepo struct {
	Pool *pgxpool.Pool
}

func NewPostgresOrderRepo(pool *pgxpool.Pool) *PostgresOrderRepo {
	return &PostgresOrderRepo{Pool: pool}
}

// Insert — журнальная запись: без ON CONFLICT, повторный идентификатор
// приводит к ошибке сохранения, а не к перезаписи.
func (r *PostgresOrderRepo) Insert(ctx context.Context, id string, raw []byte) error {
	_, err := r.Pool.Exec(ctx, `INSERT INTO orders(order_id, payload) VALUES($1, $2)`, id, raw)
	if err != nil {
		return fmt.Errorf("insert order %s: %w", id, err)
	}
	return nil
}

var _ domain.OrderRepository = (*PostgresOrderRepo)(nil)

// EnsureSchema — создать необходимые таблицы, если отсутствуют.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS orders (
  order_id text PRIMARY KEY,
  payload jsonb NOT NULL,
  created_at timestamptz NOT NULL DEFAULT now()
);`)
	return err
}
