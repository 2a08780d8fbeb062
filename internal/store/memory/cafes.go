package memory

import (
	"context"

	"github.com/mvargas/cafe-orders/internal/domain"
)

// CafeStore keeps the catalog in memory.
type CafeStore struct {
	items *collection[domain.Cafe]
}

func NewCafeStore() *CafeStore {
	return &CafeStore{items: newCollection[domain.Cafe]()}
}

func (s *CafeStore) Create(_ context.Context, cafe *domain.Cafe) (*domain.Cafe, error) {
	if err := cafe.Validate(); err != nil {
		return nil, err
	}
	stored, err := s.items.create(cafe.ID, func(id int64) domain.Cafe {
		c := *cafe
		c.ID = id
		return c
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *CafeStore) GetByID(_ context.Context, id int64) (*domain.Cafe, error) {
	cafe, ok := s.items.get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &cafe, nil
}

func (s *CafeStore) ExistsByID(_ context.Context, id int64) (bool, error) {
	return s.items.exists(id), nil
}

func (s *CafeStore) List(_ context.Context, page, size int) ([]domain.Cafe, int, error) {
	cafes, total := s.items.list(page, size)
	return cafes, total, nil
}

func (s *CafeStore) Update(_ context.Context, id int64, cafe *domain.Cafe) (*domain.Cafe, error) {
	if err := cafe.Validate(); err != nil {
		return nil, err
	}
	c := *cafe
	c.ID = id
	if err := s.items.update(id, c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes the cafe from the catalog. Orders that reference it
// keep their snapshot prices and stay valid.
func (s *CafeStore) Delete(_ context.Context, id int64) error {
	return s.items.delete(id)
}
