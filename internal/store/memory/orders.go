package memory

import (
	"context"
	"time"

	"github.com/mvargas/cafe-orders/internal/domain"
)

// OrderStore keeps orders in memory. Orders arrive here fully resolved
// (snapshot prices, computed total); the store only assigns the id and
// the creation timestamp.
type OrderStore struct {
	items *collection[domain.Order]
}

func NewOrderStore() *OrderStore {
	return &OrderStore{items: newCollection[domain.Order]()}
}

func (s *OrderStore) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, domain.ErrNilEntity
	}
	stored, err := s.items.create(order.ID, func(id int64) domain.Order {
		o := cloneOrder(*order)
		o.ID = id
		if o.CreatedAt.IsZero() {
			o.CreatedAt = time.Now()
		}
		return o
	})
	if err != nil {
		return nil, err
	}
	out := cloneOrder(stored)
	return &out, nil
}

func (s *OrderStore) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	order, ok := s.items.get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneOrder(order)
	return &out, nil
}

func (s *OrderStore) List(_ context.Context, page, size int) ([]domain.Order, int, error) {
	orders, total := s.items.list(page, size)
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, cloneOrder(o))
	}
	return out, total, nil
}

// FindByCustomer returns the customer's orders in insertion order. An
// empty result is not an error; existence of the customer is checked
// one level up.
func (s *OrderStore) FindByCustomer(_ context.Context, customerID int64) ([]domain.Order, error) {
	found := s.items.scan(func(o domain.Order) bool {
		return o.CustomerID == customerID
	})
	out := make([]domain.Order, 0, len(found))
	for _, o := range found {
		out = append(out, cloneOrder(o))
	}
	return out, nil
}

func (s *OrderStore) Delete(_ context.Context, id int64) error {
	return s.items.delete(id)
}

// cloneOrder copies the order including its items slice, so a stored
// order can never be mutated through a value handed to a caller.
func cloneOrder(o domain.Order) domain.Order {
	out := o
	out.Items = make([]domain.OrderItem, len(o.Items))
	copy(out.Items, o.Items)
	return out
}
