package memory

import (
	"context"

	"github.com/mvargas/cafe-orders/internal/domain"
)

// CustomerStore keeps customers in memory.
type CustomerStore struct {
	items *collection[domain.Customer]
}

func NewCustomerStore() *CustomerStore {
	return &CustomerStore{items: newCollection[domain.Customer]()}
}

func (s *CustomerStore) Create(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	stored, err := s.items.create(customer.ID, func(id int64) domain.Customer {
		c := *customer
		c.ID = id
		return c
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *CustomerStore) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	customer, ok := s.items.get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &customer, nil
}

func (s *CustomerStore) ExistsByID(_ context.Context, id int64) (bool, error) {
	return s.items.exists(id), nil
}

func (s *CustomerStore) List(_ context.Context, page, size int) ([]domain.Customer, int, error) {
	customers, total := s.items.list(page, size)
	return customers, total, nil
}

func (s *CustomerStore) Update(_ context.Context, id int64, customer *domain.Customer) (*domain.Customer, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	c := *customer
	c.ID = id
	if err := s.items.update(id, c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CustomerStore) Delete(_ context.Context, id int64) error {
	return s.items.delete(id)
}
