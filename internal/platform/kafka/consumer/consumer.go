package consumer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"trackwatch/internal/platform/config"
)

// Message is the transport-agnostic view of a consumed record. Handlers get
// this instead of *kgo.Record so they can be tested without a broker.
type Message struct {
	Topic     string
	Key       []byte
	Value     []byte
	Timestamp time.Time
}

// Handler processes messages from the feed. A handler error is logged and the
// message is still committed; the feed contract is at-most-once handling with
// no redelivery, so handlers own their own failure isolation.
type Handler interface {
	Handle(ctx context.Context, msg *Message) error
}

// Consumer wraps a franz-go consumer group client around a single handler.
type Consumer struct {
	client  *kgo.Client
	handler Handler
	logger  *slog.Logger
}

// New connects a consumer group client to the configured brokers.
func New(cfg config.KafkaConfig, handler Handler, logger *slog.Logger) (*Consumer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ConsumerGroup(cfg.Group),
		kgo.ConsumeTopics(cfg.Topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Consumer{client: client, handler: handler, logger: logger}, nil
}

// EnsureTopic creates the feed topic if it does not exist yet. Safe to call on
// every startup.
func (c *Consumer) EnsureTopic(ctx context.Context, topic string) error {
	adm := kadm.NewClient(c.client)
	resp, err := adm.CreateTopics(ctx, 1, 1, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %q: %w", topic, err)
	}
	for _, res := range resp {
		if res.Err != nil && !errors.Is(res.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %q: %w", topic, res.Err)
		}
	}
	return nil
}

// Run polls the feed until the context is cancelled. Per-message handler
// failures never stop the loop.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			c.logger.Error("fetch error",
				"topic", topic,
				"partition", partition,
				"error", err,
			)
		})
		fetches.EachRecord(func(record *kgo.Record) {
			msg := &Message{
				Topic:     record.Topic,
				Key:       record.Key,
				Value:     record.Value,
				Timestamp: record.Timestamp,
			}
			if err := c.handler.Handle(ctx, msg); err != nil {
				c.logger.Error("message handler failed, skipping record",
					"topic", record.Topic,
					"key", string(record.Key),
					"error", err,
				)
			}
		})
	}
}

// Close tears down the underlying client, committing outstanding offsets.
func (c *Consumer) Close() {
	c.client.Close()
}
