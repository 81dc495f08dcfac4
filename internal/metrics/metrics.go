// Package metrics provides counters for one scrape run.
package metrics

import (
	"sync"
	"time"
)

// RunMetrics accumulates per-run counters. Safe for concurrent use: parallel
// source runs record into the same instance.
type RunMetrics struct {
	mu               sync.Mutex
	startTime        time.Time
	sourcesSucceeded int64
	sourcesFailed    int64
	recordsExtracted int64
}

// NewRunMetrics creates a metrics instance with the clock started.
func NewRunMetrics() *RunMetrics {
	return &RunMetrics{startTime: time.Now()}
}

// RecordSourceSuccess records one completed source run and its record count.
func (m *RunMetrics) RecordSourceSuccess(records int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sourcesSucceeded++
	m.recordsExtracted += int64(records)
}

// RecordSourceFailure records one source run that produced no dataset.
func (m *RunMetrics) RecordSourceFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sourcesFailed++
}

// Snapshot is a point-in-time copy of the run counters.
type Snapshot struct {
	SourcesSucceeded int64
	SourcesFailed    int64
	RecordsExtracted int64
	Elapsed          time.Duration
}

// Snapshot returns the current counter values.
func (m *RunMetrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		SourcesSucceeded: m.sourcesSucceeded,
		SourcesFailed:    m.sourcesFailed,
		RecordsExtracted: m.recordsExtracted,
		Elapsed:          time.Since(m.startTime),
	}
}
