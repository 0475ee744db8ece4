package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Source selects where the pipeline reads Bufkit files from.
const (
	SourceKafka = "kafka"
	SourceSpool = "spool"
)

const maxBatchSize = 1000

// Config holds all service settings, populated from environment variables.
type Config struct {
	Source string

	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string

	SpoolDir   string
	ArchiveDir string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	BatchSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	batchSize, err := parseBatchSize()
	if err != nil {
		return nil, err
	}

	spoolDir := envOrDefault("SPOOL_DIR", "/var/spool/bufkit")

	cfg := &Config{
		Source:           envOrDefault("SOURCE", SourceKafka),
		KafkaBrokers:     parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic: envOrDefault("KAFKA_SOURCE_TOPIC", "raw-bufkit-files"),
		KafkaSinkTopic:   envOrDefault("KAFKA_SINK_TOPIC", "soundings"),
		KafkaGroupID:     envOrDefault("KAFKA_GROUP_ID", "bufkit-ingest"),
		SpoolDir:         spoolDir,
		ArchiveDir:       envOrDefault("ARCHIVE_DIR", filepath.Join(spoolDir, "processed")),
		HTTPAddr:         envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
		LogFormat:        envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:  shutdownTimeout,
		BatchSize:        batchSize,
	}

	switch cfg.Source {
	case SourceKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required")
		}
		if cfg.KafkaSourceTopic == "" {
			return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
		}
	case SourceSpool:
		if cfg.SpoolDir == "" {
			return nil, errors.New("SPOOL_DIR is required")
		}
	default:
		return nil, fmt.Errorf("SOURCE must be %q or %q, got %q", SourceKafka, SourceSpool, cfg.Source)
	}

	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseBrokers splits a comma separated broker list, dropping empty entries.
func parseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseBatchSize() (int, error) {
	s := os.Getenv("BATCH_SIZE")
	if s == "" {
		return 10, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > maxBatchSize {
		return 0, errors.New("invalid BATCH_SIZE")
	}
	return n, nil
}
