package domain

import "context"

// CafeRepository is the catalog store contract. Create assigns a new id
// when the entity carries none and returns ErrConflict when a supplied
// id is already taken. List pages in insertion order and reports the
// total count alongside the page.
type CafeRepository interface {
	Create(ctx context.Context, cafe *Cafe) (*Cafe, error)
	GetByID(ctx context.Context, id int64) (*Cafe, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, page, size int) ([]Cafe, int, error)
	Update(ctx context.Context, id int64, cafe *Cafe) (*Cafe, error)
	Delete(ctx context.Context, id int64) error
}

// CustomerRepository mirrors CafeRepository for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *Customer) (*Customer, error)
	GetByID(ctx context.Context, id int64) (*Customer, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, page, size int) ([]Customer, int, error)
	Update(ctx context.Context, id int64, customer *Customer) (*Customer, error)
	Delete(ctx context.Context, id int64) error
}

// OrderRepository stores fully resolved orders. There is no update:
// orders are immutable once created.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) (*Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context, page, size int) ([]Order, int, error)
	FindByCustomer(ctx context.Context, customerID int64) ([]Order, error)
	Delete(ctx context.Context, id int64) error
}
