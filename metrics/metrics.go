// Package metrics provides a small in-process collector for resolution
// run counters and timings.
package metrics

import (
	"sort"
	"sync"
	"time"
)

// Metric is one recorded measurement series.
type Metric struct {
	Type      string    `json:"type"`
	Value     float64   `json:"value"`
	Count     int64     `json:"count"`
	Timestamp int64     `json:"timestamp"`
	History   []float64 `json:"history,omitempty"`
}

// Collector accumulates counters and timers. Safe for concurrent use.
type Collector struct {
	mu      sync.RWMutex
	metrics map[string]*Metric
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{metrics: make(map[string]*Metric)}
}

// Inc increments a counter.
func (c *Collector) Inc(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.get(name, "counter")
	m.Value++
	m.Count++
	m.Timestamp = time.Now().Unix()
}

// Observe records a duration into a timer series. The last 100
// observations are kept for percentile queries.
func (c *Collector) Observe(name string, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.get(name, "timer")
	v := float64(d.Microseconds())
	m.Value = v
	m.Count++
	m.Timestamp = time.Now().Unix()
	m.History = append(m.History, v)
	if len(m.History) > 100 {
		m.History = m.History[len(m.History)-100:]
	}
}

// Counter returns the current value of a counter, or 0.
func (c *Collector) Counter(name string) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if m, ok := c.metrics[name]; ok {
		return m.Value
	}
	return 0
}

// Percentile returns the p-quantile (0..1) of a timer's retained history
// in microseconds, or 0 when nothing was observed.
func (c *Collector) Percentile(name string, p float64) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	m, ok := c.metrics[name]
	if !ok || len(m.History) == 0 {
		return 0
	}
	sorted := append([]float64(nil), m.History...)
	sort.Float64s(sorted)
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}

// Snapshot returns a copy of all metrics keyed by name.
func (c *Collector) Snapshot() map[string]Metric {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]Metric, len(c.metrics))
	for name, m := range c.metrics {
		copied := *m
		copied.History = append([]float64(nil), m.History...)
		out[name] = copied
	}
	return out
}

func (c *Collector) get(name, typ string) *Metric {
	if m, ok := c.metrics[name]; ok {
		return m
	}
	m := &Metric{Type: typ}
	c.metrics[name] = m
	return m
}
