package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the ingest pipeline.
type Metrics struct {
	FilesConsumed     prometheus.Counter
	SoundingsProduced prometheus.Counter
	ParseErrors       prometheus.Counter
	PipelineRunning   prometheus.Gauge

	// Per-file processing metrics.
	SoundingsPerFile       prometheus.Histogram
	FileProcessingDuration prometheus.Histogram

	// Source metrics.
	SourceEvents *prometheus.CounterVec // labels: source={kafka,spool}, outcome={ok,error}
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FilesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bufkit_ingest",
			Name:      "files_consumed_total",
			Help:      "Total Bufkit files read from the source.",
		}),
		SoundingsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bufkit_ingest",
			Name:      "soundings_produced_total",
			Help:      "Total soundings written to the sink topic.",
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bufkit_ingest",
			Name:      "parse_errors_total",
			Help:      "Total files that failed to parse.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bufkit_ingest",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		SoundingsPerFile: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bufkit_ingest",
			Name:      "soundings_per_file",
			Help:      "Number of soundings produced from one Bufkit file.",
			Buckets:   []float64{1, 5, 10, 20, 40, 60, 80, 100, 150},
		}),
		FileProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bufkit_ingest",
			Name:      "file_processing_duration_seconds",
			Help:      "Duration of a complete file extract-parse-publish cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		SourceEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bufkit_ingest",
			Name:      "source_events_total",
			Help:      "Source fetch attempts by source type and outcome.",
		}, []string{"source", "outcome"}),
	}

	prometheus.MustRegister(
		m.FilesConsumed,
		m.SoundingsProduced,
		m.ParseErrors,
		m.PipelineRunning,
		m.SoundingsPerFile,
		m.FileProcessingDuration,
		m.SourceEvents,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FilesConsumed:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bufkit_ingest", Name: "files_consumed_total"}),
		SoundingsProduced:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bufkit_ingest", Name: "soundings_produced_total"}),
		ParseErrors:            prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bufkit_ingest", Name: "parse_errors_total"}),
		PipelineRunning:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "bufkit_ingest", Name: "pipeline_running"}),
		SoundingsPerFile:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "bufkit_ingest", Name: "soundings_per_file"}),
		FileProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "bufkit_ingest", Name: "file_processing_duration_seconds"}),
		SourceEvents:           prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "bufkit_ingest", Name: "source_events_total"}, []string{"source", "outcome"}),
	}
}
