package memory

import (
	"sync"

	"github.com/mvargas/cafe-orders/internal/domain"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// collection is the shared core of all in-memory stores: a map keyed by
// id plus the insertion order of the keys. All mutations run under one
// mutex so that "pick the next id" and "insert" are a single atomic
// step and concurrent creates can never be handed the same id.
type collection[T any] struct {
	mu    sync.RWMutex
	byID  map[int64]T
	order []int64
	// maxID is a high-water mark: it only ever grows, so ids are never
	// reused after a delete.
	maxID int64
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{byID: make(map[int64]T)}
}

// create stores the value built by build under a freshly assigned id,
// or under requested when it is non-zero. build runs inside the
// critical section and receives the final id.
func (c *collection[T]) create(requested int64, build func(id int64) T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	id := requested
	if id == 0 {
		id = c.maxID + 1
	} else if _, taken := c.byID[id]; taken {
		return zero, domain.ErrConflict
	}
	if id > c.maxID {
		c.maxID = id
	}

	v := build(id)
	c.byID[id] = v
	c.order = append(c.order, id)
	return v, nil
}

func (c *collection[T]) get(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.byID[id]
	return v, ok
}

func (c *collection[T]) exists(id int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.byID[id]
	return ok
}

// list returns one page in insertion order plus the total count.
func (c *collection[T]) list(page, size int) ([]T, int) {
	page, size = clampPage(page, size)

	c.mu.RLock()
	defer c.mu.RUnlock()

	total := len(c.order)
	start := page * size
	if start >= total {
		return []T{}, total
	}
	end := start + size
	if end > total {
		end = total
	}

	out := make([]T, 0, end-start)
	for _, id := range c.order[start:end] {
		out = append(out, c.byID[id])
	}
	return out, total
}

func (c *collection[T]) update(id int64, v T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byID[id]; !ok {
		return domain.ErrNotFound
	}
	c.byID[id] = v
	return nil
}

func (c *collection[T]) delete(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(c.byID, id)
	for i, other := range c.order {
		if other == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// scan visits every value in insertion order while holding the read
// lock. keep decides whether the value goes into the result.
func (c *collection[T]) scan(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []T
	for _, id := range c.order {
		if v := c.byID[id]; keep(v) {
			out = append(out, v)
		}
	}
	return out
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
