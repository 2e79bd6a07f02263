package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Subscription kinds used as the "kind" label.
const (
	KindLocation = "location"
	KindListType = "list_type"
)

// Metrics holds the subscription module's Prometheus metrics.
type Metrics struct {
	Created       *prometheus.CounterVec
	Updated       prometheus.Counter
	Deleted       *prometheus.CounterVec
	CapRejections *prometheus.CounterVec
	ItemFailures  *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		Created: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "courtpub_subscriptions_created_total",
			Help: "Subscriptions created",
		}, []string{"kind"}),
		Updated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "courtpub_subscriptions_languages_updated_total",
			Help: "List type subscriptions whose language set was replaced",
		}),
		Deleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "courtpub_subscriptions_deleted_total",
			Help: "Subscriptions deleted by their owner or by user removal",
		}, []string{"kind"}),
		CapRejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "courtpub_subscriptions_cap_rejections_total",
			Help: "Requests rejected because they would exceed the per-user cap",
		}, []string{"kind"}),
		ItemFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "courtpub_subscriptions_batch_item_failures_total",
			Help: "Rejected entries in batch subscription requests",
		}, []string{"kind"}),
	}
}

func (m *Metrics) IncrementCreated(kind string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.Created.WithLabelValues(kind).Add(float64(n))
}

func (m *Metrics) IncrementUpdated(n int) {
	if m == nil || n == 0 {
		return
	}
	m.Updated.Add(float64(n))
}

func (m *Metrics) IncrementDeleted(kind string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.Deleted.WithLabelValues(kind).Add(float64(n))
}

func (m *Metrics) IncrementCapRejections(kind string) {
	if m == nil {
		return
	}
	m.CapRejections.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementItemFailures(kind string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.ItemFailures.WithLabelValues(kind).Add(float64(n))
}
