package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/couchcryptid/bufkit-ingest-service/internal/bufkit"
	"github.com/couchcryptid/bufkit-ingest-service/internal/domain"
)

// ErrNoSoundings reports a file that parsed but produced no merged
// soundings, e.g. when the two sections share no forecast hour.
var ErrNoSoundings = errors.New("no soundings in file")

// SoundingTransformer implements Transformer by parsing a raw event's
// payload as a Bufkit file and serializing every merged sounding.
type SoundingTransformer struct {
	logger *slog.Logger
}

// NewTransformer creates a SoundingTransformer.
func NewTransformer(logger *slog.Logger) *SoundingTransformer {
	return &SoundingTransformer{logger: logger}
}

func (t *SoundingTransformer) Transform(_ context.Context, raw domain.RawEvent) ([]domain.OutputEvent, error) {
	name := sourceName(raw)

	data, err := bufkit.NewFile(string(raw.Value), name).Data()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	var outs []domain.OutputEvent
	sc := data.Soundings()
	for sc.Next() {
		out, err := serializeSounding(sc.Sounding())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		outs = append(outs, out)
	}

	if len(outs) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoSoundings)
	}

	t.logger.Debug("file parsed", "file", name, "soundings", len(outs))
	return outs, nil
}

// sourceName picks a display name for the raw event: the spool file's base
// name, the Kafka message key, or the topic as a last resort.
func sourceName(raw domain.RawEvent) string {
	if raw.Path != "" {
		return filepath.Base(raw.Path)
	}
	if len(raw.Key) > 0 {
		return string(raw.Key)
	}
	return raw.Topic
}

// serializeSounding marshals a sounding into an output event keyed by the
// sounding ID, with the station and processing time as headers.
func serializeSounding(snd domain.Sounding) (domain.OutputEvent, error) {
	data, err := json.Marshal(snd)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	return domain.OutputEvent{
		Key:   []byte(snd.ID),
		Value: data,
		Headers: map[string]string{
			"station":      snd.Station.ID,
			"processed_at": snd.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}
