package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the Prometheus metrics for one run of the tool.
type Metrics struct {
	registry *prometheus.Registry

	// Alignment metrics
	WordsProcessed  prometheus.Counter
	WordsAssigned   prometheus.Counter
	WordsDropped    prometheus.Counter
	SegmentsPruned  prometheus.Counter
	SegmentsEmptied prometheus.Counter

	// Conversion metrics
	Conversions        *prometheus.CounterVec
	ConversionErrors   *prometheus.CounterVec
	ConversionDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all metrics on a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		WordsProcessed: f.NewCounter(prometheus.CounterOpts{
			Name: "speechalign_words_total",
			Help: "Total number of recognized words offered to the merge",
		}),
		WordsAssigned: f.NewCounter(prometheus.CounterOpts{
			Name: "speechalign_words_assigned_total",
			Help: "Total number of words assigned to a segment",
		}),
		WordsDropped: f.NewCounter(prometheus.CounterOpts{
			Name: "speechalign_words_dropped_total",
			Help: "Total number of words that fell between segments",
		}),
		SegmentsPruned: f.NewCounter(prometheus.CounterOpts{
			Name: "speechalign_segments_pruned_total",
			Help: "Total number of segments retired during sweeps",
		}),
		SegmentsEmptied: f.NewCounter(prometheus.CounterOpts{
			Name: "speechalign_segments_empty_total",
			Help: "Total number of segments dropped for having no text",
		}),

		Conversions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "speechalign_conversions_total",
			Help: "Total number of completed conversions by kind",
		}, []string{"kind"}),
		ConversionErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "speechalign_conversion_errors_total",
			Help: "Total number of failed conversions by kind",
		}, []string{"kind"}),
		ConversionDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "speechalign_conversion_duration_seconds",
			Help:    "Time spent per conversion",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"kind"}),
	}
}

// RecordMerge adds the outcome of one sweep.
func (m *Metrics) RecordMerge(words, assigned, dropped, pruned, empty int) {
	m.WordsProcessed.Add(float64(words))
	m.WordsAssigned.Add(float64(assigned))
	m.WordsDropped.Add(float64(dropped))
	m.SegmentsPruned.Add(float64(pruned))
	m.SegmentsEmptied.Add(float64(empty))
}

// RecordConversion records one conversion of the given kind.
func (m *Metrics) RecordConversion(kind string, d time.Duration, err error) {
	if err != nil {
		m.ConversionErrors.WithLabelValues(kind).Inc()
		return
	}
	m.Conversions.WithLabelValues(kind).Inc()
	m.ConversionDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// Gatherer exposes the registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteFile writes all metrics in the text exposition format, for the
// node_exporter textfile collector.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
