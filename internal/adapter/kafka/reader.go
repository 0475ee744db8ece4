package kafka

import (
	"context"
	"errors"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/bufkit-ingest-service/internal/config"
	"github.com/couchcryptid/bufkit-ingest-service/internal/domain"
	"github.com/couchcryptid/bufkit-ingest-service/internal/observability"
)

// drainWait bounds how long a partial batch waits for more messages.
const drainWait = 100 * time.Millisecond

// Reader consumes raw Bufkit files from a Kafka topic, one file per message.
// It implements pipeline.BatchExtractor.
type Reader struct {
	reader  *kafkago.Reader
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewReader creates a Kafka consumer for the configured source topic.
func NewReader(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		GroupID:  cfg.KafkaGroupID,
		Topic:    cfg.KafkaSourceTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  500 * time.Millisecond,
	})
	return &Reader{reader: r, logger: logger, metrics: metrics}
}

// ExtractBatch fetches up to batchSize messages. The first fetch blocks
// until a message arrives or the context is cancelled; once the batch has
// at least one message, further fetches wait only drainWait so a partial
// batch flows through promptly.
func (r *Reader) ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error) {
	events := make([]domain.RawEvent, 0, batchSize)

	for len(events) < batchSize {
		fetchCtx := ctx
		var cancel context.CancelFunc
		if len(events) > 0 {
			fetchCtx, cancel = context.WithTimeout(ctx, drainWait)
		}

		msg, err := r.reader.FetchMessage(fetchCtx)
		if cancel != nil {
			cancel()
		}
		if err != nil {
			if len(events) > 0 && errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				break
			}
			if ctx.Err() == nil {
				r.metrics.SourceEvents.WithLabelValues("kafka", "error").Inc()
			}
			return nil, err
		}
		r.metrics.SourceEvents.WithLabelValues("kafka", "ok").Inc()

		raw := mapMessageToRawEvent(msg)
		raw.Commit = func(ctx context.Context) error {
			return r.reader.CommitMessages(ctx, msg)
		}
		events = append(events, raw)
	}

	return events, nil
}

func (r *Reader) Close() error {
	return r.reader.Close()
}

// mapMessageToRawEvent converts a Kafka message into a domain raw event.
func mapMessageToRawEvent(msg kafkago.Message) domain.RawEvent {
	raw := domain.RawEvent{
		Key:       msg.Key,
		Value:     msg.Value,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
	}
	if len(msg.Headers) > 0 {
		raw.Headers = make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			raw.Headers[h.Key] = string(h.Value)
		}
	}
	return raw
}
