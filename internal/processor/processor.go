package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mvargas/cafe-orders/internal/domain"
	"github.com/mvargas/cafe-orders/internal/observability"
	"go.uber.org/zap"
)

// EventPublisher receives order lifecycle notifications. Publishing is
// best-effort: a failed publish is logged, never surfaced to the caller.
type EventPublisher interface {
	OrderCreated(ctx context.Context, order *domain.Order) error
	OrderDeleted(ctx context.Context, id int64) error
}

// Processor owns order creation: it validates the request against the
// catalog and customer stores, snapshots prices, computes the total and
// persists the resolved order. It never mutates the catalog or the
// customer store.
type Processor struct {
	cafes     domain.CafeRepository
	customers domain.CustomerRepository
	orders    domain.OrderRepository
	events    EventPublisher
	logger    *zap.Logger
	metrics   observability.Metrics
}

// New builds a Processor. events may be nil when no publisher is wired.
func New(
	cafes domain.CafeRepository,
	customers domain.CustomerRepository,
	orders domain.OrderRepository,
	events EventPublisher,
	logger *zap.Logger,
	metrics observability.Metrics,
) *Processor {
	return &Processor{
		cafes:     cafes,
		customers: customers,
		orders:    orders,
		events:    events,
		logger:    logger,
		metrics:   metrics,
	}
}

// CreateOrder runs the whole pipeline. Validation happens before any
// write: the first failing check aborts with nothing persisted, and the
// error names the reference that broke.
func (p *Processor) CreateOrder(ctx context.Context, req *domain.Order) (*domain.Order, error) {
	start := time.Now()
	order, err := p.resolve(ctx, req)
	p.metrics.ObserveOrderCreate(msSince(start), err == nil)
	if err != nil {
		return nil, err
	}

	p.logger.Info("order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("customer_id", order.CustomerID),
		zap.Int("items", len(order.Items)),
		zap.Float64("total", order.Total),
	)

	if p.events != nil {
		if err := p.events.OrderCreated(ctx, order); err != nil {
			p.logger.Warn("order created event not published",
				zap.Int64("order_id", order.ID),
				zap.Error(err),
			)
		}
	}
	return order, nil
}

func (p *Processor) resolve(ctx context.Context, req *domain.Order) (*domain.Order, error) {
	if req == nil {
		return nil, domain.ErrNilEntity
	}

	if req.CustomerID == 0 {
		return nil, fmt.Errorf("%w: customer reference is required", domain.ErrInvalidCustomer)
	}
	exists, err := p.customers.ExistsByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidCustomer, req.CustomerID)
	}

	if len(req.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	// Items are checked one by one in request order, so the first bad
	// item is the one reported.
	resolved := &domain.Order{
		CustomerID: req.CustomerID,
		Items:      make([]domain.OrderItem, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		if item.CafeID == 0 {
			return nil, fmt.Errorf("%w: item carries no cafe reference", domain.ErrInvalidItem)
		}
		cafe, err := p.cafes.GetByID(ctx, item.CafeID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", domain.ErrInvalidItem, item.CafeID)
		}
		if err != nil {
			return nil, err
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cafe %d", domain.ErrInvalidQuantity, item.CafeID)
		}
		// Snapshot the current catalog price. This is the only point
		// where catalog data enters the order.
		resolved.Items = append(resolved.Items, domain.OrderItem{
			CafeID:   cafe.ID,
			Price:    cafe.Price,
			Quantity: item.Quantity,
		})
	}

	resolved.CalculateTotal()
	resolved.CreatedAt = time.Now()

	stored, err := p.orders.Create(ctx, resolved)
	if err != nil {
		return nil, err
	}
	if stored.ID == 0 {
		return nil, fmt.Errorf("%w: order persisted without an id", domain.ErrInternal)
	}
	return stored, nil
}

// OrdersByCustomer lists a customer's orders. A customer with no orders
// gets an empty list, not an error; an unknown customer is an error.
func (p *Processor) OrdersByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	exists, err := p.customers.ExistsByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidCustomer, customerID)
	}
	return p.orders.FindByCustomer(ctx, customerID)
}

// DeleteOrder removes an order by id and notifies the publisher.
func (p *Processor) DeleteOrder(ctx context.Context, id int64) error {
	if err := p.orders.Delete(ctx, id); err != nil {
		return err
	}
	p.logger.Info("order deleted", zap.Int64("order_id", id))
	if p.events != nil {
		if err := p.events.OrderDeleted(ctx, id); err != nil {
			p.logger.Warn("order deleted event not published",
				zap.Int64("order_id", id),
				zap.Error(err),
			)
		}
	}
	return nil
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}
