package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/bufkit-ingest-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/bufkit-ingest-service/internal/adapter/kafka"
	"github.com/couchcryptid/bufkit-ingest-service/internal/adapter/spool"
	"github.com/couchcryptid/bufkit-ingest-service/internal/config"
	"github.com/couchcryptid/bufkit-ingest-service/internal/observability"
	"github.com/couchcryptid/bufkit-ingest-service/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Pick the file source (SOURCE=kafka or SOURCE=spool).
	var (
		extractor pipeline.BatchExtractor
		closeFn   func() error
	)
	switch cfg.Source {
	case config.SourceSpool:
		ext, err := spool.NewExtractor(cfg, logger, metrics)
		if err != nil {
			logger.Error("failed to start spool source", "error", err, "dir", cfg.SpoolDir)
			os.Exit(1)
		}
		logger.Info("spool source enabled", "dir", cfg.SpoolDir, "archive_dir", cfg.ArchiveDir)
		extractor, closeFn = ext, ext.Close
	default:
		reader := kafkaadapter.NewReader(cfg, logger, metrics)
		logger.Info("kafka source enabled", "topic", cfg.KafkaSourceTopic, "group", cfg.KafkaGroupID)
		extractor, closeFn = reader, reader.Close
	}

	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(logger)

	p := pipeline.New(extractor, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start ingest pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := closeFn(); err != nil {
		logger.Error("source close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
