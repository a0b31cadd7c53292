// Package events publishes order lifecycle events to Kafka. Publishing is
// best effort: a broker outage must never fail an order.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/sakurakitchen/ordering-system/internal/core/domain"
)

const (
	eventOrderCreated       = "order_created"
	eventOrderStatusChanged = "order_status_changed"
)

type orderEvent struct {
	Event          string    `json:"event"`
	OrderID        uint      `json:"order_id"`
	UserID         uint      `json:"user_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Total          float64   `json:"total"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// KafkaPublisher writes order events to a single topic, keyed by order ID so
// events for one order stay in partition order.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger zerolog.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger zerolog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &KafkaPublisher{writer: writer, logger: logger}
}

func (p *KafkaPublisher) OrderCreated(ctx context.Context, order *domain.Order) error {
	return p.emit(ctx, orderEvent{
		Event:      eventOrderCreated,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     string(order.Status),
		Total:      order.Total,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *KafkaPublisher) OrderStatusChanged(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error {
	return p.emit(ctx, orderEvent{
		Event:          eventOrderStatusChanged,
		OrderID:        order.ID,
		UserID:         order.UserID,
		Status:         string(order.Status),
		PreviousStatus: string(previous),
		Total:          order.Total,
		OccurredAt:     time.Now().UTC(),
	})
}

func (p *KafkaPublisher) emit(ctx context.Context, event orderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", event.Event, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.OrderID), 10)),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Event, err)
	}

	p.logger.Debug().
		Str("event", event.Event).
		Uint("order_id", event.OrderID).
		Msg("order event published")
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
