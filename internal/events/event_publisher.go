package events

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// EventPublisher defines the interface for publishing domain events.
// Publishing is advisory: the stores have no partial-failure modes, so a
// failed publish is logged by the caller and never fails the request.
type EventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
}

// Catalog domain events

type ItemCreatedEvent struct {
	ItemID     int64     `json:"item_id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ItemUpdatedEvent struct {
	ItemID     int64     `json:"item_id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ItemDeletedEvent struct {
	ItemID     int64     `json:"item_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Cart domain events

type CartCreatedEvent struct {
	CartID     int64     `json:"cart_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type CartUpdatedEvent struct {
	CartID     int64     `json:"cart_id"`
	Price      float64   `json:"price"`
	Quantity   int       `json:"quantity"`
	OccurredAt time.Time `json:"occurred_at"`
}

type CartItemAddedEvent struct {
	CartID     int64     `json:"cart_id"`
	ItemID     int64     `json:"item_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// InMemoryEventPublisher collects events in memory. Used as the fallback when
// Kafka is disabled or unreachable, and by tests.
type InMemoryEventPublisher struct {
	mu     sync.Mutex
	logger *zap.Logger
	events []interface{}
}

func NewInMemoryEventPublisher(logger *zap.Logger) *InMemoryEventPublisher {
	return &InMemoryEventPublisher{
		logger: logger,
		events: make([]interface{}, 0),
	}
}

func (p *InMemoryEventPublisher) Publish(ctx context.Context, event interface{}) error {
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()

	p.logger.Debug("Event published (in-memory)", zap.Any("event", event))
	return nil
}

// Events returns a snapshot of everything published so far.
func (p *InMemoryEventPublisher) Events() []interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]interface{}, len(p.events))
	copy(out, p.events)
	return out
}
