package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/huynhanx03/batchcollector/pkg/mq/batcher"
	"github.com/huynhanx03/batchcollector/pkg/settings"
	"github.com/huynhanx03/batchcollector/pkg/utils"
)

// NewConfig builds the sarama configuration of a synchronous producer.
func NewConfig(cfg settings.Kafka) *sarama.Config {
	config := sarama.NewConfig()
	config.ClientID = "batchd"
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Return.Successes = true
	config.Producer.Return.Errors = true
	config.Producer.Idempotent = false
	config.Producer.Partitioner = sarama.NewHashPartitioner

	if cfg.MaxMessageBytes > 0 {
		config.Producer.MaxMessageBytes = cfg.MaxMessageBytes
	}
	if cfg.MaxRetries > 0 {
		config.Producer.Retry.Max = cfg.MaxRetries
	}
	if cfg.RetryBackoff > 0 {
		config.Producer.Retry.Backoff = utils.ToDurationMs(cfg.RetryBackoff)
	}
	if cfg.Timeout > 0 {
		config.Producer.Timeout = utils.ToDuration(cfg.Timeout)
		config.Net.DialTimeout = utils.ToDuration(cfg.Timeout)
	}
	return config
}

// NewSyncProducer connects a synchronous producer to the brokers of cfg.
func NewSyncProducer(cfg settings.Kafka) (sarama.SyncProducer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, NewConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProducerCreateFailed, err)
	}
	return producer, nil
}

// Producer publishes every batch to a topic, one message per item.
type Producer[T any] struct {
	producer sarama.SyncProducer
	topic    string
	key      func(T) string
}

var _ batcher.Consumer[struct{}] = (*Producer[struct{}])(nil)

// ProducerOption configures a Producer.
type ProducerOption[T any] func(*Producer[T])

// WithKey sets the message key of each item, which picks its partition.
func WithKey[T any](fn func(T) string) ProducerOption[T] {
	return func(p *Producer[T]) {
		p.key = fn
	}
}

// NewProducer creates a Producer on top of producer.
func NewProducer[T any](producer sarama.SyncProducer, topic string, opts ...ProducerOption[T]) *Producer[T] {
	p := &Producer[T]{
		producer: producer,
		topic:    topic,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Consume sends the whole batch with a single SendMessages call.
func (p *Producer[T]) Consume(ctx context.Context, batch *batcher.Batch[T]) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}

	msgs := make([]*sarama.ProducerMessage, 0, batch.Len())
	for _, item := range batch.All() {
		value, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMarshalFailed, err)
		}

		msg := &sarama.ProducerMessage{
			Topic: p.topic,
			Value: sarama.ByteEncoder(value),
		}
		if p.key != nil {
			msg.Key = sarama.StringEncoder(p.key(item))
		}
		msgs = append(msgs, msg)
	}

	if err := p.producer.SendMessages(msgs); err != nil {
		return fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}
	return nil
}

// Close shuts the underlying producer down.
func (p *Producer[T]) Close() error {
	return p.producer.Close()
}
