package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"courtpub/internal/ingestion/models"
)

// Metrics holds the ingestion pipeline's Prometheus metrics.
type Metrics struct {
	Outcomes      *prometheus.CounterVec
	NoMatch       prometheus.Counter
	BodyBytes     prometheus.Histogram
	LogWriteFails prometheus.Counter
	PublishFails  prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		Outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "courtpub_ingestion_total",
			Help: "Ingestion attempts by outcome",
		}, []string{"status"}),
		NoMatch: promauto.NewCounter(prometheus.CounterOpts{
			Name: "courtpub_ingestion_no_match_total",
			Help: "Artefacts ingested against a location missing from reference data",
		}),
		BodyBytes: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "courtpub_ingestion_body_bytes",
			Help:    "Size of ingestion request bodies",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		}),
		LogWriteFails: promauto.NewCounter(prometheus.CounterOpts{
			Name: "courtpub_ingestion_log_write_failures_total",
			Help: "Ingestion log rows that could not be written",
		}),
		PublishFails: promauto.NewCounter(prometheus.CounterOpts{
			Name: "courtpub_ingestion_publish_failures_total",
			Help: "Artefact published events that could not be delivered to the event bus",
		}),
	}
}

func (m *Metrics) ObserveOutcome(status models.Status, noMatch bool, bodyBytes int64) {
	if m == nil {
		return
	}
	m.Outcomes.WithLabelValues(string(status)).Inc()
	if noMatch {
		m.NoMatch.Inc()
	}
	m.BodyBytes.Observe(float64(bodyBytes))
}

func (m *Metrics) IncrementLogWriteFailures() {
	if m == nil {
		return
	}
	m.LogWriteFails.Inc()
}

func (m *Metrics) IncrementPublishFailures() {
	if m == nil {
		return
	}
	m.PublishFails.Inc()
}
