package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/refunds", "POST", 201, 10*time.Millisecond)
	m.RecordRequest("/refunds", "POST", 201, 30*time.Millisecond)
	m.RecordError("/refunds", "POST", "VALIDATION_FAILED")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/refunds|POST|201"])
	assert.Equal(t, int64(1), snap.Errors["/refunds|POST|VALIDATION_FAILED"])
	assert.Equal(t, 20*time.Millisecond, m.AverageLatency("/refunds", "POST", 201))
	assert.Zero(t, m.AverageLatency("/uploads", "POST", 200))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	assert.Empty(t, m.Snapshot().Requests)
}
