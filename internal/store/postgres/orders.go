package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvargas/cafe-orders/internal/domain"
)

// OrderStore persists resolved orders. The order row and its items are
// written in one transaction; the id race on concurrent creates is
// retried the same way the catalog stores do it.
type OrderStore struct {
	pool *pgxpool.Pool
}

func NewOrderStore(pool *pgxpool.Pool) *OrderStore {
	return &OrderStore{pool: pool}
}

func (s *OrderStore) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, domain.ErrNilEntity
	}
	out := *order
	out.Items = make([]domain.OrderItem, len(order.Items))
	copy(out.Items, order.Items)
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now()
	}

	for attempt := 0; attempt < idAssignAttempts; attempt++ {
		err := s.createOnce(ctx, &out)
		if isUniqueViolation(err) {
			if order.ID != 0 {
				return nil, domain.ErrConflict
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, fmt.Errorf("%w: could not assign order id", domain.ErrInternal)
}

func (s *OrderStore) createOnce(ctx context.Context, order *domain.Order) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if order.ID != 0 {
		_, err = tx.Exec(ctx,
			`INSERT INTO orders (id, customer_id, total, created_at) VALUES ($1, $2, $3, $4)`,
			order.ID, order.CustomerID, order.Total, order.CreatedAt,
		)
	} else {
		err = tx.QueryRow(ctx, `
			INSERT INTO orders (id, customer_id, total, created_at)
			VALUES ((SELECT COALESCE(MAX(id), 0) + 1 FROM orders), $1, $2, $3)
			RETURNING id`,
			order.CustomerID, order.Total, order.CreatedAt,
		).Scan(&order.ID)
	}
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for pos, it := range order.Items {
		batch.Queue(
			`INSERT INTO order_items (order_id, pos, cafe_id, price, quantity) VALUES ($1, $2, $3, $4, $5)`,
			order.ID, pos, it.CafeID, it.Price, it.Quantity,
		)
	}
	if br := tx.SendBatch(ctx, batch); br != nil {
		if err := br.Close(); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *OrderStore) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := s.pool.QueryRow(ctx,
		`SELECT id, customer_id, total, created_at FROM orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.CustomerID, &o.Total, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := s.loadItems(ctx, []int64{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

func (s *OrderStore) List(ctx context.Context, page, size int) ([]domain.Order, int, error) {
	page, size = clampPage(page, size)

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, customer_id, total, created_at FROM orders ORDER BY seq OFFSET $1 LIMIT $2`,
		page*size, size,
	)
	if err != nil {
		return nil, 0, err
	}
	orders, err := scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := s.attachItems(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (s *OrderStore) FindByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, customer_id, total, created_at FROM orders WHERE customer_id = $1 ORDER BY seq`,
		customerID,
	)
	if err != nil {
		return nil, err
	}
	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if err := s.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderStore) Delete(ctx context.Context, id int64) error {
	// order_items go with the order via ON DELETE CASCADE
	tag, err := s.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanOrders(rows pgx.Rows) ([]domain.Order, error) {
	defer rows.Close()
	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Total, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *OrderStore) attachItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	items, err := s.loadItems(ctx, ids)
	if err != nil {
		return err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return nil
}

func (s *OrderStore) loadItems(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderItem, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT order_id, cafe_id, price, quantity FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, pos`,
		orderIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var orderID int64
		var it domain.OrderItem
		if err := rows.Scan(&orderID, &it.CafeID, &it.Price, &it.Quantity); err != nil {
			return nil, err
		}
		out[orderID] = append(out[orderID], it)
	}
	return out, rows.Err()
}
