package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceKafka, cfg.Source)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "raw-bufkit-files", cfg.KafkaSourceTopic)
	assert.Equal(t, "soundings", cfg.KafkaSinkTopic)
	assert.Equal(t, "bufkit-ingest", cfg.KafkaGroupID)
	assert.Equal(t, "/var/spool/bufkit", cfg.SpoolDir)
	assert.Equal(t, "/var/spool/bufkit/processed", cfg.ArchiveDir)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10, cfg.BatchSize)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("SOURCE", "spool")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("KAFKA_GROUP_ID", "custom-group")
	t.Setenv("SPOOL_DIR", "/data/incoming")
	t.Setenv("ARCHIVE_DIR", "/data/done")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("BATCH_SIZE", "100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceSpool, cfg.Source)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.Equal(t, "custom-group", cfg.KafkaGroupID)
	assert.Equal(t, "/data/incoming", cfg.SpoolDir)
	assert.Equal(t, "/data/done", cfg.ArchiveDir)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 100, cfg.BatchSize)
}

func TestLoad_ArchiveDirDefaultsUnderSpool(t *testing.T) {
	t.Setenv("SOURCE", "spool")
	t.Setenv("SPOOL_DIR", "/data/incoming")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/data/incoming/processed", cfg.ArchiveDir)
}

func TestLoad_UnknownSource(t *testing.T) {
	t.Setenv("SOURCE", "ftp")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SOURCE")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidBatchSize(t *testing.T) {
	t.Setenv("BATCH_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_SIZE")
}

func TestLoad_BatchSizeTooLarge(t *testing.T) {
	t.Setenv("BATCH_SIZE", "9999")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_SIZE")
}
