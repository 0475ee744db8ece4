// Package spool reads Bufkit files dropped into a watched directory.
// Producers are expected to write elsewhere and rename into the spool so a
// file is complete by the time its create event fires.
package spool

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/couchcryptid/bufkit-ingest-service/internal/config"
	"github.com/couchcryptid/bufkit-ingest-service/internal/domain"
	"github.com/couchcryptid/bufkit-ingest-service/internal/observability"
)

// pendingBuffer bounds how many discovered paths can queue up before the
// watcher goroutine starts dropping events.
const pendingBuffer = 1024

// Extractor watches a spool directory for Bufkit files.
// It implements pipeline.BatchExtractor.
type Extractor struct {
	dir        string
	archiveDir string
	watcher    *fsnotify.Watcher
	logger     *slog.Logger
	metrics    *observability.Metrics

	// backlog holds the files found at startup. It is unbounded so the
	// constructor never blocks on a full spool, and it is drained only by
	// ExtractBatch, which runs on a single goroutine.
	backlog []string
	pending chan string
	done    chan struct{}
}

// NewExtractor watches the configured spool directory and queues the .buf
// files already present there.
func NewExtractor(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (*Extractor, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("spool watcher: %w", err)
	}
	if err := watcher.Add(cfg.SpoolDir); err != nil {
		watcher.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("watch %s: %w", cfg.SpoolDir, err)
	}

	e := &Extractor{
		dir:        cfg.SpoolDir,
		archiveDir: cfg.ArchiveDir,
		watcher:    watcher,
		logger:     logger,
		metrics:    metrics,
		pending:    make(chan string, pendingBuffer),
		done:       make(chan struct{}),
	}

	if err := e.scanExisting(); err != nil {
		watcher.Close() //nolint:errcheck // already failing
		return nil, err
	}
	go e.watchLoop()

	return e, nil
}

// scanExisting collects files that were already in the spool at startup, so
// a restart does not lose work dropped while the service was down.
func (e *Extractor) scanExisting() error {
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		return fmt.Errorf("scan %s: %w", e.dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isBufkitName(entry.Name()) {
			continue
		}
		e.backlog = append(e.backlog, filepath.Join(e.dir, entry.Name()))
	}
	return nil
}

// watchLoop forwards create and rename-in events to the pending queue until
// the watcher is closed.
func (e *Extractor) watchLoop() {
	defer close(e.done)
	for {
		select {
		case ev, ok := <-e.watcher.Events:
			if !ok {
				return
			}
			if !ev.Op.Has(fsnotify.Create) || !isBufkitName(filepath.Base(ev.Name)) {
				continue
			}
			select {
			case e.pending <- ev.Name:
			default:
				e.logger.Warn("spool queue full, dropping event", "path", ev.Name)
			}
		case err, ok := <-e.watcher.Errors:
			if !ok {
				return
			}
			e.logger.Error("spool watch error", "error", err)
		}
	}
}

// ExtractBatch returns up to batchSize file events. It drains the startup
// backlog first, then whatever the watcher has queued. It blocks until at
// least one file is available or the context is cancelled.
func (e *Extractor) ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error) {
	events := make([]domain.RawEvent, 0, batchSize)

	for {
		path, ok := e.nextQueued()
		if !ok {
			if len(events) > 0 {
				return events, nil
			}
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case path = <-e.pending:
			}
		}
		if raw, ok := e.readFile(path); ok {
			events = append(events, raw)
		}
		if len(events) >= batchSize {
			return events, nil
		}
	}
}

// nextQueued pops the next backlog path, falling back to anything already
// sitting in the watch queue. ok is false when both are empty.
func (e *Extractor) nextQueued() (string, bool) {
	if len(e.backlog) > 0 {
		path := e.backlog[0]
		e.backlog = e.backlog[1:]
		return path, true
	}
	select {
	case path := <-e.pending:
		return path, true
	default:
		return "", false
	}
}

// readFile loads one spool file into a raw event. A missing file is normal:
// it was queued twice (initial scan plus create event) and already archived.
func (e *Extractor) readFile(path string) (domain.RawEvent, bool) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			e.metrics.SourceEvents.WithLabelValues("spool", "error").Inc()
			e.logger.Warn("spool read failed", "path", path, "error", err)
		}
		return domain.RawEvent{}, false
	}

	info, err := os.Stat(path)
	if err != nil {
		e.metrics.SourceEvents.WithLabelValues("spool", "error").Inc()
		return domain.RawEvent{}, false
	}

	e.metrics.SourceEvents.WithLabelValues("spool", "ok").Inc()
	return domain.RawEvent{
		Value:     contents,
		Path:      path,
		Timestamp: info.ModTime(),
		Commit: func(_ context.Context) error {
			return e.archive(path)
		},
	}, true
}

// archive moves a processed file out of the watch directory.
func (e *Extractor) archive(path string) error {
	if err := os.MkdirAll(e.archiveDir, 0o755); err != nil {
		return fmt.Errorf("archive dir: %w", err)
	}
	return os.Rename(path, filepath.Join(e.archiveDir, filepath.Base(path)))
}

// Close stops the watcher and waits for the watch loop to exit.
func (e *Extractor) Close() error {
	err := e.watcher.Close()
	<-e.done
	return err
}

func isBufkitName(name string) bool {
	return strings.HasSuffix(name, ".buf") && !strings.HasPrefix(name, ".")
}
