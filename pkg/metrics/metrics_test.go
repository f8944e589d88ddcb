package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_CustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("exam-booking", reg)

	m.ObserveHTTPRequest("GET", "/api/v1/rates", 200, 15*time.Millisecond)
	m.ObserveDBQuery("query", time.Millisecond, nil)
	m.ObserveDBQuery("exec", time.Millisecond, errors.New("boom"))
	m.ObserveHold("started")
	m.ObserveHold("expired")
	m.ObservePayment("card", "success")
	m.ObserveUpload(true)
	m.ObserveUpload(false)
	m.ObserveStep(4)
	m.SetActiveSessions(3)
	m.SetDBPoolStats(5, 2, 3, 0)
	m.ObserveEmail("delivered")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.holdEvents.WithLabelValues("expired")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.uploadsTotal.WithLabelValues("rejected")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.wizardSessions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/v1/rates", "200")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)
	m.ObserveDBQuery("query", time.Millisecond, nil)
	m.SetDBPoolStats(1, 1, 0, 0)
	m.SetActiveSessions(1)
	m.ObserveStep(1)
	m.ObserveHold("released")
	m.ObservePayment("upi", "failed")
	m.ObserveUpload(true)
	m.ObserveEmail("sending")
}
