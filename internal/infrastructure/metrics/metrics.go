// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

type Metrics struct {
	EntriesTotal       *prometheus.CounterVec
	ExitsTotal         *prometheus.CounterVec
	ExitDuration       *prometheus.HistogramVec
	ChargedAmountTotal prometheus.Counter
	OverageHoursTotal  prometheus.Counter
	CycleResetsTotal   prometheus.Counter

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates the collectors and registers them on registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		EntriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parkline_entries_total",
				Help: "Ticket entries by result",
			},
			[]string{"result"},
		),
		ExitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parkline_exits_total",
				Help: "Ticket exits by result",
			},
			[]string{"result"},
		),
		ExitDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "parkline_exit_duration_seconds",
				Help:    "Time spent processing an exit",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		),
		ChargedAmountTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "parkline_charged_amount_total",
			Help: "Sum of all ticket totals charged",
		}),
		OverageHoursTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "parkline_subscription_overage_hours_total",
			Help: "Subscription hours billed beyond the monthly quota",
		}),
		CycleResetsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "parkline_subscription_cycle_resets_total",
			Help: "Subscriptions whose consumed hours were reset for a new month",
		}),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parkline_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "parkline_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.EntriesTotal,
		m.ExitsTotal,
		m.ExitDuration,
		m.ChargedAmountTotal,
		m.OverageHoursTotal,
		m.CycleResetsTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)

	return m
}

func (m *Metrics) RecordEntry(result string) {
	m.EntriesTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordExit(result string, duration time.Duration) {
	m.ExitsTotal.WithLabelValues(result).Inc()
	m.ExitDuration.WithLabelValues(result).Observe(duration.Seconds())
}

func (m *Metrics) RecordCharge(amount, overageHours decimal.Decimal) {
	if amount.IsPositive() {
		m.ChargedAmountTotal.Add(amount.InexactFloat64())
	}
	if overageHours.IsPositive() {
		m.OverageHoursTotal.Add(overageHours.InexactFloat64())
	}
}

func (m *Metrics) RecordCycleReset(count int64) {
	if count > 0 {
		m.CycleResetsTotal.Add(float64(count))
	}
}

func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
