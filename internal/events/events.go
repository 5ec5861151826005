// Package events publishes and consumes product change events on Kafka.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	ProductCreated = "product_created"
	ProductUpdated = "product_updated"
	ProductDeleted = "product_deleted"
)

type ProductEvent struct {
	Type       string    `json:"type"`
	ProductID  string    `json:"productID"`
	Title      string    `json:"title,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}}
}

// PublishProduct writes ev keyed by product id so every event for one product lands on one partition.
func (p *Producer) PublishProduct(ctx context.Context, ev ProductEvent) error {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(ev.ProductID), Value: data}); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// Noop drops every event; used when no brokers are configured.
type Noop struct{}

func (Noop) PublishProduct(context.Context, ProductEvent) error { return nil }

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, topic, group string) *Consumer {
	return &Consumer{reader: kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  group,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})}
}

// Run hands every event to handle and commits it once handle succeeds. Undecodable
// messages are committed and skipped. Run returns nil when ctx is cancelled.
func (c *Consumer) Run(ctx context.Context, handle func(context.Context, ProductEvent) error, onSkip func(kafka.Message, error)) error {
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		var ev ProductEvent
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			if onSkip != nil {
				onSkip(m, err)
			}
		} else if err := handle(ctx, ev); err != nil {
			return fmt.Errorf("handle %s %s: %w", ev.Type, ev.ProductID, err)
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			return fmt.Errorf("commit offset %d: %w", m.Offset, err)
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
