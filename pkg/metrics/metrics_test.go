package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/x", 200, time.Millisecond)
		m.ObserveDBQuery("query", time.Millisecond, nil)
		m.SetDBPoolStats(1, 1, 0, 0)
		m.ObserveAvailableSlots(3)
		m.IncSessionsCreated()
		m.AddSessionsExpired(2)
	})
}

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.ObserveHTTPRequest("GET", "/api/v1/sessions/{sessionId}", 200, 10*time.Millisecond)
	m.ObserveHTTPRequest("GET", "/api/v1/sessions/{sessionId}", 200, 20*time.Millisecond)
	m.ObserveDBQuery("exec", time.Millisecond, errors.New("boom"))
	m.IncSessionsCreated()
	m.AddSessionsExpired(3)
	m.AddSessionsExpired(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/v1/sessions/{sessionId}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("exec")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessionsCreated))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.sessionsExpired))
}

func TestMetrics_PoolStats(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.SetDBPoolStats(10, 4, 6, 2)

	assert.Equal(t, 10.0, testutil.ToFloat64(m.dbOpenConns))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.dbInUseConns))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.dbIdleConns))
}
