package input

import (
	"sync/atomic"
	"time"
)

// Metrics counts dispatcher outcomes.
type Metrics struct {
	keyEvents     atomic.Uint64
	ignoredEvents atomic.Uint64
	handled       atomic.Uint64
	unhandled     atomic.Uint64
	scoped        atomic.Uint64
	shrinks       atomic.Uint64

	peakLatency atomic.Int64
	startTime   time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// recordKeyEvent records a key event with its processing time.
func (m *Metrics) recordKeyEvent(latency time.Duration) {
	m.keyEvents.Add(1)

	ns := latency.Nanoseconds()
	for {
		current := m.peakLatency.Load()
		if ns <= current {
			break
		}
		if m.peakLatency.CompareAndSwap(current, ns) {
			break
		}
	}
}

func (m *Metrics) recordIgnored() {
	m.ignoredEvents.Add(1)
}

func (m *Metrics) recordResult(r Result) {
	if r.Handled {
		m.handled.Add(1)
	} else {
		m.unhandled.Add(1)
	}
	if r.Scoped {
		m.scoped.Add(1)
	}
	m.shrinks.Add(uint64(r.Dropped))
}

// Snapshot is a point-in-time copy of the metrics.
type Snapshot struct {
	KeyEvents     uint64
	IgnoredEvents uint64
	Handled       uint64
	Unhandled     uint64
	Scoped        uint64

	// Shrinks counts tokens dropped from the front of sequences.
	Shrinks uint64

	PeakLatency time.Duration
	Uptime      time.Duration
}

// Snapshot returns the current metrics.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		KeyEvents:     m.keyEvents.Load(),
		IgnoredEvents: m.ignoredEvents.Load(),
		Handled:       m.handled.Load(),
		Unhandled:     m.unhandled.Load(),
		Scoped:        m.scoped.Load(),
		Shrinks:       m.shrinks.Load(),
		PeakLatency:   time.Duration(m.peakLatency.Load()),
		Uptime:        time.Since(m.startTime),
	}
}

// Reset zeroes the counters.
func (m *Metrics) Reset() {
	m.keyEvents.Store(0)
	m.ignoredEvents.Store(0)
	m.handled.Store(0)
	m.unhandled.Store(0)
	m.scoped.Store(0)
	m.shrinks.Store(0)
	m.peakLatency.Store(0)
	m.startTime = time.Now()
}
