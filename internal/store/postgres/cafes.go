package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvargas/cafe-orders/internal/domain"
)

// CafeStore is the durable catalog store. Same contract as the
// in-memory one; id assignment leans on the primary key to stay unique
// under concurrent creates.
type CafeStore struct {
	pool *pgxpool.Pool
}

func NewCafeStore(pool *pgxpool.Pool) *CafeStore {
	return &CafeStore{pool: pool}
}

func (s *CafeStore) Create(ctx context.Context, cafe *domain.Cafe) (*domain.Cafe, error) {
	if err := cafe.Validate(); err != nil {
		return nil, err
	}
	out := *cafe

	if cafe.ID != 0 {
		_, err := s.pool.Exec(ctx,
			`INSERT INTO cafes (id, name, description, price) VALUES ($1, $2, $3, $4)`,
			cafe.ID, cafe.Name, cafe.Description, cafe.Price,
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
			INSERT INTO cafes (id, name, description, price)
			VALUES ((SELECT COALESCE(MAX(id), 0) + 1 FROM cafes), $1, $2, $3)
			RETURNING id`,
			cafe.Name, cafe.Description, cafe.Price,
		).Scan(&out.ID)
		if isUniqueViolation(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, fmt.Errorf("%w: could not assign cafe id", domain.ErrInternal)
}

func (s *CafeStore) GetByID(ctx context.Context, id int64) (*domain.Cafe, error) {
	var c domain.Cafe
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, description, price FROM cafes WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CafeStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM cafes WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

func (s *CafeStore) List(ctx context.Context, page, size int) ([]domain.Cafe, int, error) {
	page, size = clampPage(page, size)

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM cafes`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, name, description, price FROM cafes ORDER BY seq OFFSET $1 LIMIT $2`,
		page*size, size,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	cafes := []domain.Cafe{}
	for rows.Next() {
		var c domain.Cafe
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Price); err != nil {
			return nil, 0, err
		}
		cafes = append(cafes, c)
	}
	return cafes, total, rows.Err()
}

func (s *CafeStore) Update(ctx context.Context, id int64, cafe *domain.Cafe) (*domain.Cafe, error) {
	if err := cafe.Validate(); err != nil {
		return nil, err
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE cafes SET name = $2, description = $3, price = $4 WHERE id = $1`,
		id, cafe.Name, cafe.Description, cafe.Price,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	out := *cafe
	out.ID = id
	return &out, nil
}

func (s *CafeStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM cafes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
