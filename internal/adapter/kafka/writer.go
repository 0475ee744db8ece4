package kafka

import (
	"context"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/bufkit-ingest-service/internal/config"
	"github.com/couchcryptid/bufkit-ingest-service/internal/domain"
)

// Writer produces messages to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch publishes the soundings of a batch to the sink topic in a
// single WriteMessages call for efficiency.
func (w *Writer) LoadBatch(ctx context.Context, events []domain.OutputEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(events))
	for i := range events {
		msgs[i] = mapEventToMessage(events[i])
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// mapEventToMessage converts an output event into a Kafka message. Header
// order is fixed so messages are byte-stable for the same sounding.
func mapEventToMessage(event domain.OutputEvent) kafkago.Message {
	msg := kafkago.Message{
		Key:   event.Key,
		Value: event.Value,
	}
	for _, key := range [...]string{"station", "processed_at"} {
		if v, ok := event.Headers[key]; ok {
			msg.Headers = append(msg.Headers, kafkago.Header{Key: key, Value: []byte(v)})
		}
	}
	return msg
}
