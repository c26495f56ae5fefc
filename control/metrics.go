// File: control/metrics.go
// License: Apache-2.0
//
// Per-ring operation counters plus a registry for snapshot export.
// Counters are plain atomics so the ring hot path pays one Add per event.

package control

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics counts ring operations. A nil *Metrics is valid and counts
// nothing, so rings without instrumentation skip the field entirely.
type Metrics struct {
	Enqueued atomic.Int64
	Dequeued atomic.Int64
	Full     atomic.Int64
	Empty    atomic.Int64
	Retries  atomic.Int64
}

// Snapshot returns the current counter values. Safe on a nil receiver.
func (m *Metrics) Snapshot() map[string]int64 {
	if m == nil {
		return map[string]int64{}
	}
	return map[string]int64{
		"enqueued": m.Enqueued.Load(),
		"dequeued": m.Dequeued.Load(),
		"full":     m.Full.Load(),
		"empty":    m.Empty.Load(),
		"retries":  m.Retries.Load(),
	}
}

// Publish copies the counter snapshot into a registry under prefix.
func (m *Metrics) Publish(r *Registry, prefix string) {
	for k, v := range m.Snapshot() {
		r.Set(prefix+"."+k, v)
	}
}

// Registry holds mutable and read-only metrics.
type Registry struct {
	mu      sync.RWMutex
	metrics map[string]any
	updated time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		metrics: make(map[string]any),
	}
}

// Set sets or updates a metric key.
func (r *Registry) Set(key string, value any) {
	r.mu.Lock()
	r.metrics[key] = value
	r.updated = time.Now()
	r.mu.Unlock()
}

// Snapshot returns the latest metrics.
func (r *Registry) Snapshot() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]any, len(r.metrics))
	for k, v := range r.metrics {
		out[k] = v
	}
	return out
}

// Updated reports when the registry last changed.
func (r *Registry) Updated() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.updated
}
