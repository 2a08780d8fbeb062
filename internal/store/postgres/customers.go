package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvargas/cafe-orders/internal/domain"
)

type CustomerStore struct {
	pool *pgxpool.Pool
}

func NewCustomerStore(pool *pgxpool.Pool) *CustomerStore {
	return &CustomerStore{pool: pool}
}

func (s *CustomerStore) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	out := *customer

	if customer.ID != 0 {
		_, err := s.pool.Exec(ctx,
			`INSERT INTO customers (id, name, email) VALUES ($1, $2, $3)`,
			customer.ID, customer.Name, customer.Email,
		)
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		if err != nil {
			return nil, err
		}
		return &out, nil
	}

	for attempt := 0; attempt < idAssignAttempts; attempt++ {
		err := s.pool.QueryRow(ctx, `
			INSERT INTO customers (id, name, email)
			VALUES ((SELECT COALESCE(MAX(id), 0) + 1 FROM customers), $1, $2)
			RETURNING id`,
			customer.Name, customer.Email,
		).Scan(&out.ID)
		if isUniqueViolation(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, fmt.Errorf("%w: could not assign customer id", domain.ErrInternal)
}

func (s *CustomerStore) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var c domain.Customer
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email FROM customers WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CustomerStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

func (s *CustomerStore) List(ctx context.Context, page, size int) ([]domain.Customer, int, error) {
	page, size = clampPage(page, size)

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email FROM customers ORDER BY seq OFFSET $1 LIMIT $2`,
		page*size, size,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email); err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	return customers, total, rows.Err()
}

func (s *CustomerStore) Update(ctx context.Context, id int64, customer *domain.Customer) (*domain.Customer, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE customers SET name = $2, email = $3 WHERE id = $1`,
		id, customer.Name, customer.Email,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	out := *customer
	out.ID = id
	return &out, nil
}

func (s *CustomerStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
