// Package kafka publishes computed-recommendation analytics events to a
// Kafka topic.  Publishing is best-effort: the recommendation path never
// blocks on or fails because of the event stream.
package kafka

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/segmentio/kafka-go"

	"github.com/CodingBot000/miracle3day-sub008/internal/config"
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/recommendation"
	"github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/monitoring/logging"
	apperrors "github.com/CodingBot000/miracle3day-sub008/pkg/errors"
)

var (
	// ErrPublisherClosed is returned after Close.
	ErrPublisherClosed = apperrors.New(apperrors.ErrCodeProducerClosed, "publisher closed")
)

// writerInterface abstracts kafka.Writer for testing.
type writerInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements recommendation.EventPublisher on top of a Kafka
// writer.  Safe for concurrent use.
type Publisher struct {
	writer writerInterface
	logger logging.Logger
	closed atomic.Bool

	published atomic.Int64
	failed    atomic.Int64
}

// NewPublisher constructs a Publisher from the kafka configuration.
func NewPublisher(cfg config.KafkaConfig, logger logging.Logger) *Publisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
		MaxAttempts:  cfg.MaxRetries,
		RequiredAcks: kafka.RequireOne,
	}
	return &Publisher{writer: w, logger: logger}
}

// newPublisherWithWriter is the test seam.
func newPublisherWithWriter(w writerInterface, logger logging.Logger) *Publisher {
	return &Publisher{writer: w, logger: logger}
}

// PublishComputed implements recommendation.EventPublisher.  The event key
// is the event ID so repeated deliveries of one event land in one
// partition.
func (p *Publisher) PublishComputed(ctx context.Context, ev recommendation.ComputedEvent) error {
	if p.closed.Load() {
		return ErrPublisherClosed
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		p.failed.Add(1)
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to marshal event")
	}

	msg := kafka.Message{
		Key:   []byte(ev.EventID),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.failed.Add(1)
		return apperrors.Wrap(err, apperrors.ErrCodePublishFailed, "failed to publish event")
	}

	p.published.Add(1)
	p.logger.Debug("recommendation event published",
		logging.String("event_id", ev.EventID),
		logging.Int("items", ev.ItemCount))
	return nil
}

// Published returns the number of successfully published events.
func (p *Publisher) Published() int64 { return p.published.Load() }

// Failed returns the number of failed publish attempts.
func (p *Publisher) Failed() int64 { return p.failed.Load() }

// Close flushes and closes the underlying writer.  Subsequent publishes
// return ErrPublisherClosed.
func (p *Publisher) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	return p.writer.Close()
}
