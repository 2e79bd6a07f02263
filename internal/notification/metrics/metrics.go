package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the notification dispatcher's Prometheus metrics.
type Metrics struct {
	Attempts      *prometheus.CounterVec
	Notifications *prometheus.CounterVec
	Skipped       prometheus.Counter
	SendLatency   prometheus.Histogram
	BreakerState  *prometheus.GaugeVec
}

func New() *Metrics {
	return &Metrics{
		Attempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "courtpub_notification_attempts_total",
			Help: "Gateway send attempts by outcome",
		}, []string{"outcome"}),
		Notifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "courtpub_notifications_total",
			Help: "Notifications by final status",
		}, []string{"status"}),
		Skipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "courtpub_notifications_skipped_total",
			Help: "Recipients already notified about a publication",
		}),
		SendLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "courtpub_notification_send_duration_seconds",
			Help:    "Time from first attempt to final outcome",
			Buckets: prometheus.DefBuckets,
		}),
		BreakerState: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "courtpub_notification_breaker_open",
			Help: "1 while the gateway circuit breaker is open",
		}, []string{"gateway"}),
	}
}

func (m *Metrics) IncrementAttempt(outcome string) {
	if m == nil {
		return
	}
	m.Attempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveOutcome(status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(status).Inc()
	m.SendLatency.Observe(elapsed.Seconds())
}

func (m *Metrics) IncrementSkipped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Skipped.Add(float64(n))
}

func (m *Metrics) SetBreakerOpen(gateway string, open bool) {
	if m == nil {
		return
	}
	v := 0.0
	if open {
		v = 1
	}
	m.BreakerState.WithLabelValues(gateway).Set(v)
}
