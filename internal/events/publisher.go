package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/mvargas/cafe-orders/internal/config"
	"github.com/mvargas/cafe-orders/internal/domain"
	"github.com/mvargas/cafe-orders/internal/pkg/retry"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	TypeOrderCreated = "order.created"
	TypeOrderDeleted = "order.deleted"
)

type envelope struct {
	Type       string    `json:"type"`
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id,omitempty"`
	Total      float64   `json:"total,omitempty"`
	At         time.Time `json:"at"`
}

// Publisher emits order lifecycle events to Kafka. Writes are retried
// with backoff; messages are keyed by order id so events for one order
// land on one partition in order.
type Publisher struct {
	writer *kafkago.Writer
	policy config.Retry
	logger *zap.Logger
}

func NewPublisher(brokers []string, topic string, policy config.Retry, logger *zap.Logger) *Publisher {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Publisher{
		writer: writer,
		policy: policy,
		logger: logger,
	}
}

func (p *Publisher) OrderCreated(ctx context.Context, order *domain.Order) error {
	return p.publish(ctx, envelope{
		Type:       TypeOrderCreated,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Total:      order.Total,
		At:         time.Now(),
	})
}

func (p *Publisher) OrderDeleted(ctx context.Context, id int64) error {
	return p.publish(ctx, envelope{
		Type:    TypeOrderDeleted,
		OrderID: id,
		At:      time.Now(),
	})
}

func (p *Publisher) publish(ctx context.Context, ev envelope) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	err = retry.Do(ctx, p.policy, func() error {
		return p.writer.WriteMessages(ctx, kafkago.Message{
			Key:   []byte(strconv.FormatInt(ev.OrderID, 10)),
			Value: value,
			Time:  time.Now(),
		})
	})
	if err != nil {
		p.logger.Error("event publish failed after retries",
			zap.String("type", ev.Type),
			zap.Int64("order_id", ev.OrderID),
			zap.Error(err),
		)
		return err
	}

	p.logger.Debug("event published",
		zap.String("type", ev.Type),
		zap.Int64("order_id", ev.OrderID),
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
