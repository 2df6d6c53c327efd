package observability

import (
	"sort"
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu           sync.Mutex
	started      time.Time
	requestCount map[string]int64
	errorCount   map[string]int64
	latency      map[string]time.Duration
}

// RouteMetric is one row of the request counters.
type RouteMetric struct {
	Key          string  `json:"key"`
	Count        int64   `json:"count"`
	AvgLatencyMS float64 `json:"avg_latency_ms"`
}

// CounterMetric is one row of the error counters.
type CounterMetric struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// MetricsSnapshot is a point-in-time copy of the counters, sorted by key.
type MetricsSnapshot struct {
	UptimeSeconds int64           `json:"uptime_seconds"`
	Requests      []RouteMetric   `json:"requests"`
	Errors        []CounterMetric `json:"errors"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		started:      time.Now(),
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		latency:      make(map[string]time.Duration),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.latency[key] += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{Requests: []RouteMetric{}, Errors: []CounterMetric{}}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := MetricsSnapshot{
		UptimeSeconds: int64(time.Since(m.started).Seconds()),
		Requests:      make([]RouteMetric, 0, len(m.requestCount)),
		Errors:        make([]CounterMetric, 0, len(m.errorCount)),
	}
	for key, count := range m.requestCount {
		avg := float64(m.latency[key].Microseconds()) / float64(count) / 1000
		snap.Requests = append(snap.Requests, RouteMetric{Key: key, Count: count, AvgLatencyMS: avg})
	}
	for key, count := range m.errorCount {
		snap.Errors = append(snap.Errors, CounterMetric{Key: key, Count: count})
	}
	sort.Slice(snap.Requests, func(i, j int) bool { return snap.Requests[i].Key < snap.Requests[j].Key })
	sort.Slice(snap.Errors, func(i, j int) bool { return snap.Errors[i].Key < snap.Errors[j].Key })
	return snap
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
