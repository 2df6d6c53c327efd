package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/employees", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/api/employees", "GET", 200, 30*time.Millisecond)
	m.RecordRequest("/api/departments/:id", "DELETE", 409, time.Millisecond)
	m.RecordError("/api/departments/1", "DELETE", "REFERENTIAL_CONFLICT")

	snap := m.Snapshot()
	require.Len(t, snap.Requests, 2)
	assert.Equal(t, "/api/departments/:id|DELETE|409", snap.Requests[0].Key)
	assert.Equal(t, "/api/employees|GET|200", snap.Requests[1].Key)
	assert.Equal(t, int64(2), snap.Requests[1].Count)
	assert.InDelta(t, 20.0, snap.Requests[1].AvgLatencyMS, 0.01)

	require.Len(t, snap.Errors, 1)
	assert.Equal(t, int64(1), snap.Errors[0].Count)
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	snap := m.Snapshot()
	assert.Empty(t, snap.Requests)
	assert.NotNil(t, snap.Errors)
}
