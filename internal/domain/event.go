package domain

import (
	"context"
	"time"
)

// RawEvent is an unprocessed Bufkit payload from a source adapter. Kafka
// sources fill Topic/Partition/Offset; the spool source fills Path. Value
// always holds the complete text of one Bufkit file.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Path      string
	Timestamp time.Time

	// Commit acknowledges the event at its source: a Kafka offset commit,
	// or moving a spool file out of the watch directory.
	Commit func(ctx context.Context) error
}

// OutputEvent is a serialized sounding destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
