// Package metrics provides in-memory timing statistics for batch
// operations (downloads and per-prompt analysis calls).
package metrics

import (
	"sort"
	"sync"
	"time"
)

// OperationMetrics holds aggregated timings for one operation type.
type OperationMetrics struct {
	Count     int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// OperationSnapshot provides computed stats from raw metrics.
type OperationSnapshot struct {
	Name      string
	Count     int64
	AvgTimeMs float64
	MinTimeMs int64
	MaxTimeMs int64
}

// Collector aggregates operation timings. Safe for concurrent use by
// the worker pool.
type Collector struct {
	mu    sync.Mutex
	ops   map[string]*OperationMetrics
	start time.Time
}

// NewCollector creates a collector with the uptime clock started.
func NewCollector() *Collector {
	return &Collector{
		ops:   make(map[string]*OperationMetrics),
		start: time.Now(),
	}
}

// Observe records one completed operation of the named type.
func (c *Collector) Observe(name string, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.ops[name]
	if !ok {
		m = &OperationMetrics{MinTime: d, MaxTime: d}
		c.ops[name] = m
	}

	m.Count++
	m.TotalTime += d
	if d < m.MinTime {
		m.MinTime = d
	}
	if d > m.MaxTime {
		m.MaxTime = d
	}
}

// Time runs fn and records its duration under name.
func (c *Collector) Time(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	c.Observe(name, time.Since(start))
	return err
}

// Snapshot returns per-operation stats sorted by operation name.
func (c *Collector) Snapshot() []OperationSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]OperationSnapshot, 0, len(c.ops))
	for name, m := range c.ops {
		snap := OperationSnapshot{
			Name:      name,
			Count:     m.Count,
			MinTimeMs: m.MinTime.Milliseconds(),
			MaxTimeMs: m.MaxTime.Milliseconds(),
		}
		if m.Count > 0 {
			snap.AvgTimeMs = float64(m.TotalTime.Milliseconds()) / float64(m.Count)
		}
		out = append(out, snap)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Uptime returns the time since the collector was created.
func (c *Collector) Uptime() time.Duration {
	return time.Since(c.start)
}
