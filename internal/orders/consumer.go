package orders

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/Ackkerman111/sixseven-store/internal/domain"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// StatusEvent is the payload external fulfillment tooling publishes when it
// moves an order out of pending.
type StatusEvent struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// StatusConsumer applies externally-driven order status transitions. Order
// creation never goes through here; only pending -> fulfilled | cancelled.
type StatusConsumer struct {
	repo   OrderRepository
	reader *kafka.Reader
}

func NewStatusConsumer(repo OrderRepository, brokers ...string) *StatusConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    "order-status",
		GroupID:  "storefront-orders",
		MaxBytes: 10e6, // 10MB
	})
	return &StatusConsumer{repo, reader}
}

func (c *StatusConsumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.processMessage(ctx)
	}
}

func (c *StatusConsumer) Close() {
	if err := c.reader.Close(); err != nil {
		log.Printf("error closing kafka reader: %v", err)
	}
}

func (c *StatusConsumer) processMessage(ctx context.Context) {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		log.Printf("error reading message: %v", err)
		return
	}

	var event StatusEvent
	if errUnmarshal := json.Unmarshal(m.Value, &event); errUnmarshal != nil {
		log.Printf("error parsing message: %v", errUnmarshal)
		return
	}

	if err := c.apply(ctx, event); err != nil {
		log.Printf("failed to apply status event for order %s: %v", event.OrderID, err)
	}
}

func (c *StatusConsumer) apply(ctx context.Context, event StatusEvent) error {
	id, err := uuid.Parse(event.OrderID)
	if err != nil {
		return errors.New("missing or invalid order_id")
	}

	status := domain.OrderStatus(event.Status)
	if !status.Valid() || status == domain.OrderStatusPending {
		return errors.New("invalid target status")
	}

	return c.repo.UpdateStatus(ctx, id, status)
}
