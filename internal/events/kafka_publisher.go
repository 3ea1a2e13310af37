package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"shop-service/internal/config"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// KafkaEventPublisher implements EventPublisher using Kafka
type KafkaEventPublisher struct {
	producer sarama.SyncProducer
	logger   *zap.Logger
	config   *config.Config
}

// NewKafkaEventPublisher creates a new Kafka event publisher
func NewKafkaEventPublisher(cfg *config.Config, logger *zap.Logger) (*KafkaEventPublisher, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.ClientID = cfg.KafkaClientID
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.Retry.Max = cfg.KafkaRetries

	switch cfg.KafkaAcks {
	case "0":
		saramaCfg.Producer.RequiredAcks = sarama.NoResponse
	case "1":
		saramaCfg.Producer.RequiredAcks = sarama.WaitForLocal
	default:
		saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
	}

	producer, err := sarama.NewSyncProducer(cfg.KafkaBrokers, saramaCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &KafkaEventPublisher{
		producer: producer,
		logger:   logger,
		config:   cfg,
	}, nil
}

// Publish publishes an event to the topic matching its type. The partition
// key is the entity id, so events for one item or cart stay ordered.
func (p *KafkaEventPublisher) Publish(ctx context.Context, event interface{}) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	topic, key, eventType := p.routeEvent(event)
	if topic == "" {
		return fmt.Errorf("unknown event type %T", event)
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(eventJSON),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(eventType)},
			{Key: []byte("event-id"), Value: []byte(uuid.New().String())},
			{Key: []byte("timestamp"), Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		},
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("Event published to Kafka",
		zap.String("topic", topic),
		zap.String("event_type", eventType),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

// Close closes the underlying producer.
func (p *KafkaEventPublisher) Close() error {
	return p.producer.Close()
}

func (p *KafkaEventPublisher) routeEvent(event interface{}) (topic, key, eventType string) {
	switch e := event.(type) {
	case ItemCreatedEvent:
		return p.config.KafkaTopicItems, strconv.FormatInt(e.ItemID, 10), "ItemCreated"
	case ItemUpdatedEvent:
		return p.config.KafkaTopicItems, strconv.FormatInt(e.ItemID, 10), "ItemUpdated"
	case ItemDeletedEvent:
		return p.config.KafkaTopicItems, strconv.FormatInt(e.ItemID, 10), "ItemDeleted"
	case CartCreatedEvent:
		return p.config.KafkaTopicCarts, strconv.FormatInt(e.CartID, 10), "CartCreated"
	case CartUpdatedEvent:
		return p.config.KafkaTopicCarts, strconv.FormatInt(e.CartID, 10), "CartUpdated"
	case CartItemAddedEvent:
		return p.config.KafkaTopicCarts, strconv.FormatInt(e.CartID, 10), "CartItemAdded"
	default:
		return "", "", ""
	}
}
