// Package metrics defines the observability hooks of the codec commands and
// owns the Prometheus registry they report to.
//
// Collection is opt-in: until InitRegistry is called every constructor
// returns nil, and callers pass nil around for zero overhead.
package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	mu       sync.RWMutex
	registry *prometheus.Registry
)

// InitRegistry creates a fresh private registry and enables metrics.
// Calling it again discards previously registered collectors.
func InitRegistry() *prometheus.Registry {
	mu.Lock()
	defer mu.Unlock()
	registry = prometheus.NewRegistry()
	return registry
}

// GetRegistry returns the active registry, or nil when metrics are disabled.
func GetRegistry() *prometheus.Registry {
	mu.RLock()
	defer mu.RUnlock()
	return registry
}

// IsEnabled reports whether InitRegistry has been called.
func IsEnabled() bool {
	return GetRegistry() != nil
}

// Disable drops the registry. Constructors return nil afterwards.
func Disable() {
	mu.Lock()
	registry = nil
	mu.Unlock()
}

// WriteTextfile writes the registry in the Prometheus text format to path,
// atomically, for the node-exporter textfile collector.
func WriteTextfile(path string) error {
	reg := GetRegistry()
	if reg == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
