package cache

import (
	"context"

	"github.com/mvargas/cafe-orders/internal/domain"
	"github.com/mvargas/cafe-orders/internal/observability"

	lru "github.com/hashicorp/golang-lru/v2"
)

// OrderCache is a read-through LRU in front of an order repository.
// Point lookups are served from the cache when possible; list queries
// always go to the underlying store so pagination and totals stay
// authoritative. It satisfies domain.OrderRepository itself, so wiring
// it in is a drop-in swap.
type OrderCache struct {
	repo    domain.OrderRepository
	lru     *lru.Cache[int64, domain.Order]
	size    int
	metrics observability.Metrics
}

func New(repo domain.OrderRepository, size int, metrics observability.Metrics) (*OrderCache, error) {
	c, err := lru.New[int64, domain.Order](size)
	if err != nil {
		return nil, err
	}
	return &OrderCache{
		repo:    repo,
		lru:     c,
		size:    size,
		metrics: metrics,
	}, nil
}

// Warm preloads up to the cache capacity with the oldest stored orders.
// Failures are ignored: a cold cache is not an error.
func (c *OrderCache) Warm(ctx context.Context) {
	orders, _, err := c.repo.List(ctx, 0, c.size)
	if err != nil {
		return
	}
	for _, o := range orders {
		c.lru.Add(o.ID, o)
	}
}

func (c *OrderCache) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	stored, err := c.repo.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	c.lru.Add(stored.ID, *stored)
	return stored, nil
}

func (c *OrderCache) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if order, ok := c.lru.Get(id); ok {
		c.metrics.IncCacheHit()
		return &order, nil
	}
	c.metrics.IncCacheMiss()

	order, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.lru.Add(order.ID, *order)
	return order, nil
}

func (c *OrderCache) List(ctx context.Context, page, size int) ([]domain.Order, int, error) {
	return c.repo.List(ctx, page, size)
}

func (c *OrderCache) FindByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return c.repo.FindByCustomer(ctx, customerID)
}

func (c *OrderCache) Delete(ctx context.Context, id int64) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return err
	}
	c.lru.Remove(id)
	return nil
}
