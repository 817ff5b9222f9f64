package producer

import (
	"context"
	"encoding/json"
	"time"

	"luma-service/internal/service"

	"github.com/segmentio/kafka-go"
)

// OrderProducer publishes order lifecycle events to a single topic, keyed by
// order id so per-order ordering is preserved across partitions.
type OrderProducer struct {
	writer *kafka.Writer
}

func NewOrderProducer(brokers []string, topic string) *OrderProducer {
	return &OrderProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

type envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func (p *OrderProducer) publish(ctx context.Context, key string, ev envelope) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

func (p *OrderProducer) PublishOrderCreated(ctx context.Context, e service.OrderCreatedEvent) error {
	return p.publish(ctx, e.OrderID.String(), envelope{Type: "order.created", Payload: e})
}

func (p *OrderProducer) PublishOrderStatusChanged(ctx context.Context, e service.OrderStatusChangedEvent) error {
	return p.publish(ctx, e.OrderID.String(), envelope{Type: "order.status_changed", Payload: e})
}

func (p *OrderProducer) Close() error {
	return p.writer.Close()
}
