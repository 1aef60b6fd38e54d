package metrics

import "time"

// CodecMetrics provides observability for decode, encode and guess runs.
//
// This interface is optional - pass nil to disable metrics collection with
// zero overhead.
//
// Example usage:
//
//	metrics.InitRegistry()
//	m := metrics.NewCodecMetrics()
//	defer metrics.WriteTextfile("/var/lib/node_exporter/stellar_xdr.prom")
type CodecMetrics interface {
	// RecordDecoded records one value decoded from an input.
	//
	// Parameters:
	//   - typ: Type name (e.g., "Memo", "TransactionEnvelope")
	//   - format: Input format (e.g., "single", "stream-base64")
	//   - bytes: Size of the XDR encoding of the value
	//   - duration: Time taken to decode and print the value
	RecordDecoded(typ string, format string, bytes int64, duration time.Duration)

	// RecordEncoded records one value encoded from JSON.
	//
	// Parameters:
	//   - typ: Type name
	//   - format: Output format (e.g., "single-base64")
	//   - bytes: Size of the XDR encoding of the value
	//   - duration: Time taken to encode the value
	RecordEncoded(typ string, format string, bytes int64, duration time.Duration)

	// RecordError records a failed operation.
	//
	// Parameters:
	//   - operation: "decode", "encode", "guess" or "compare"
	//   - typ: Type name, empty when unknown
	//   - kind: Error classification (see xdr.KindOf)
	RecordError(operation string, typ string, kind string)

	// RecordGuess records the number of types that matched one guess input.
	RecordGuess(matches int)
}

// NewCodecMetrics creates a new Prometheus-backed CodecMetrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called) or if no
// implementation has been registered.
func NewCodecMetrics() CodecMetrics {
	if !IsEnabled() || newPrometheusCodecMetrics == nil {
		return nil
	}
	return newPrometheusCodecMetrics()
}

// newPrometheusCodecMetrics is implemented in pkg/metrics/prometheus/codec.go
// This indirection avoids import cycles while keeping the API clean
var newPrometheusCodecMetrics func() CodecMetrics

// RegisterCodecMetricsConstructor registers the Prometheus codec metrics constructor.
// Called by pkg/metrics/prometheus during package initialization.
func RegisterCodecMetricsConstructor(constructor func() CodecMetrics) {
	newPrometheusCodecMetrics = constructor
}
