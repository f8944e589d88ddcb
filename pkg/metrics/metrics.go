package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
// Все методы безопасны для nil-получателя: сервис может работать с выключенными метриками
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration    *prometheus.HistogramVec
	dbOpenConnections  prometheus.Gauge
	dbInUseConnections prometheus.Gauge
	dbIdleConnections  prometheus.Gauge
	dbWaitCountTotal   prometheus.Gauge

	wizardSessions  prometheus.Gauge
	wizardSteps     *prometheus.CounterVec
	holdEvents      *prometheus.CounterVec
	paymentsTotal   *prometheus.CounterVec
	uploadsTotal    *prometheus.CounterVec
	emailDeliveries *prometheus.CounterVec
}

// New регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			ConstLabels: labels,
		}, []string{"operation", "status"}),
		dbOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}),
		dbInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}),
		dbIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}),
		dbWaitCountTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),
		wizardSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "wizard_active_sessions",
			Help:        "Number of live booking wizard sessions",
			ConstLabels: labels,
		}),
		wizardSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "wizard_step_transitions_total",
			Help:        "Wizard step reached after a selection",
			ConstLabels: labels,
		}, []string{"step"}),
		holdEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "wizard_hold_events_total",
			Help:        "Hold lifecycle events",
			ConstLabels: labels,
		}, []string{"event"}),
		paymentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "payments_total",
			Help:        "Payment attempts by outcome",
			ConstLabels: labels,
		}, []string{"method", "status"}),
		uploadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "prerequisite_uploads_total",
			Help:        "Prerequisite uploads by outcome",
			ConstLabels: labels,
		}, []string{"outcome"}),
		emailDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "confirmation_emails_total",
			Help:        "Confirmation e-mail delivery events",
			ConstLabels: labels,
		}, []string{"event"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbOpenConnections,
		m.dbInUseConnections,
		m.dbIdleConnections,
		m.dbWaitCountTotal,
		m.wizardSessions,
		m.wizardSteps,
		m.holdEvents,
		m.paymentsTotal,
		m.uploadsTotal,
		m.emailDeliveries,
	)
	return m
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет gauge-метрики пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.dbOpenConnections.Set(float64(open))
	m.dbInUseConnections.Set(float64(inUse))
	m.dbIdleConnections.Set(float64(idle))
	m.dbWaitCountTotal.Set(float64(waitCount))
}

func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.wizardSessions.Set(float64(n))
}

func (m *Metrics) ObserveStep(step int) {
	if m == nil {
		return
	}
	m.wizardSteps.WithLabelValues(strconv.Itoa(step)).Inc()
}

// ObserveHold event: started, expired, released
func (m *Metrics) ObserveHold(event string) {
	if m == nil {
		return
	}
	m.holdEvents.WithLabelValues(event).Inc()
}

func (m *Metrics) ObservePayment(method, status string) {
	if m == nil {
		return
	}
	m.paymentsTotal.WithLabelValues(method, status).Inc()
}

func (m *Metrics) ObserveUpload(accepted bool) {
	if m == nil {
		return
	}
	outcome := "rejected"
	if accepted {
		outcome = "accepted"
	}
	m.uploadsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveEmail(event string) {
	if m == nil {
		return
	}
	m.emailDeliveries.WithLabelValues(event).Inc()
}
