// Package prometheus implements pkg/metrics interfaces with
// prometheus/client_golang collectors on the pkg/metrics registry.
package prometheus

import (
	"time"

	"github.com/marmos91/stellar-xdr/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func init() {
	metrics.RegisterCodecMetricsConstructor(NewCodecMetrics)
}

// codecMetrics is the Prometheus implementation of metrics.CodecMetrics.
type codecMetrics struct {
	decodedValues  *prometheus.CounterVec
	decodedBytes   *prometheus.CounterVec
	encodedValues  *prometheus.CounterVec
	encodedBytes   *prometheus.CounterVec
	valueSize      *prometheus.HistogramVec
	duration       *prometheus.HistogramVec
	errors         *prometheus.CounterVec
	guessMatches   prometheus.Histogram
	lastRunSeconds prometheus.Gauge
}

// NewCodecMetrics creates a new Prometheus-backed CodecMetrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewCodecMetrics() metrics.CodecMetrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	m := &codecMetrics{
		decodedValues: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "stellar_xdr_decoded_values_total",
				Help: "Total number of values decoded by type and input format",
			},
			[]string{"type", "format"},
		),
		decodedBytes: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "stellar_xdr_decoded_bytes_total",
				Help: "Total XDR bytes decoded by type and input format",
			},
			[]string{"type", "format"},
		),
		encodedValues: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "stellar_xdr_encoded_values_total",
				Help: "Total number of values encoded by type and output format",
			},
			[]string{"type", "format"},
		),
		encodedBytes: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "stellar_xdr_encoded_bytes_total",
				Help: "Total XDR bytes encoded by type and output format",
			},
			[]string{"type", "format"},
		),
		valueSize: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "stellar_xdr_value_bytes",
				Help: "Distribution of XDR value sizes",
				Buckets: []float64{
					4,       // a single enum or int
					32,      // a hash
					128,     // small structs
					512,     // typical transaction
					4096,    // 4KB
					65536,   // 64KB - large ledger entries
					1048576, // 1MB
				},
			},
			[]string{"operation"}, // "decode", "encode"
		),
		duration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "stellar_xdr_value_duration_milliseconds",
				Help: "Duration of processing one value in milliseconds",
				Buckets: []float64{
					0.01, // 10us
					0.05, // 50us
					0.1,  // 100us
					0.5,  // 500us
					1,    // 1ms
					5,    // 5ms
					10,   // 10ms
					100,  // 100ms
				},
			},
			[]string{"operation"},
		),
		errors: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "stellar_xdr_errors_total",
				Help: "Total number of failed operations by type and error kind",
			},
			[]string{"operation", "type", "kind"},
		),
		guessMatches: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "stellar_xdr_guess_matches",
				Help:    "Number of types that matched one guess input",
				Buckets: []float64{0, 1, 2, 5, 10, 50},
			},
		),
		lastRunSeconds: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "stellar_xdr_last_run_timestamp_seconds",
				Help: "Unix time of the last recorded value",
			},
		),
	}
	return m
}

// RecordDecoded records one decoded value.
func (m *codecMetrics) RecordDecoded(typ string, format string, bytes int64, duration time.Duration) {
	if m == nil {
		return
	}
	m.decodedValues.WithLabelValues(typ, format).Inc()
	m.decodedBytes.WithLabelValues(typ, format).Add(float64(bytes))
	m.observe("decode", bytes, duration)
}

// RecordEncoded records one encoded value.
func (m *codecMetrics) RecordEncoded(typ string, format string, bytes int64, duration time.Duration) {
	if m == nil {
		return
	}
	m.encodedValues.WithLabelValues(typ, format).Inc()
	m.encodedBytes.WithLabelValues(typ, format).Add(float64(bytes))
	m.observe("encode", bytes, duration)
}

func (m *codecMetrics) observe(operation string, bytes int64, duration time.Duration) {
	m.valueSize.WithLabelValues(operation).Observe(float64(bytes))
	m.duration.WithLabelValues(operation).Observe(float64(duration.Microseconds()) / 1000.0)
	m.lastRunSeconds.SetToCurrentTime()
}

// RecordError records a failed operation.
func (m *codecMetrics) RecordError(operation string, typ string, kind string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(operation, typ, kind).Inc()
}

// RecordGuess records the number of matches of one guess input.
func (m *codecMetrics) RecordGuess(matches int) {
	if m == nil {
		return
	}
	m.guessMatches.Observe(float64(matches))
}
