package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100

	// How many times an auto-assigned id insert is retried when two
	// concurrent creates race to the same max+1 value. The conflict is
	// resolved here, inside the store, never by the caller.
	idAssignAttempts = 5
)

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// EnsureSchema creates the tables on first start. seq columns record
// insertion order, which id order alone does not give once explicit ids
// are allowed.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS cafes (
			id          BIGINT PRIMARY KEY,
			seq         BIGSERIAL,
			name        TEXT NOT NULL,
			description TEXT NOT NULL,
			price       DOUBLE PRECISION NOT NULL
		);
		CREATE TABLE IF NOT EXISTS customers (
			id    BIGINT PRIMARY KEY,
			seq   BIGSERIAL,
			name  TEXT NOT NULL,
			email TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS orders (
			id          BIGINT PRIMARY KEY,
			seq         BIGSERIAL,
			customer_id BIGINT NOT NULL,
			total       DOUBLE PRECISION NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS order_items (
			order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			pos      INT NOT NULL,
			cafe_id  BIGINT NOT NULL,
			price    DOUBLE PRECISION NOT NULL,
			quantity INT NOT NULL,
			PRIMARY KEY (order_id, pos)
		);
		CREATE INDEX IF NOT EXISTS orders_customer_idx ON orders (customer_id);
	`)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func clampPage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}
