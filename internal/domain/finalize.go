package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Finalize stamps a parsed sounding with its deterministic ID, the source
// name, and the processing time.
func Finalize(s Sounding, source string) Sounding {
	s.Source = source
	s.ID = generateID(s.Station, s.ValidTime, s.LeadTime)
	s.ProcessedAt = clock.Now()
	return s
}

// generateID produces a deterministic ID from the sounding's key fields.
// Reprocessing the same file yields the same IDs, so downstream upserts
// stay idempotent across replays.
func generateID(station Station, validTime time.Time, leadTime int) string {
	input := fmt.Sprintf("%d|%s|%d", station.Number, validTime.UTC().Format(time.RFC3339), leadTime)
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if station.ID == "" {
		return fmt.Sprintf("%d-%s", station.Number, short)
	}
	return strings.ToLower(station.ID) + "-" + short
}
