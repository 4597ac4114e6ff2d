package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts pipeline outcomes. All methods are nil-safe so the
// pipeline can run unmetered.
type Metrics struct {
	ingested      *prometheus.CounterVec
	fetchFailures *prometheus.CounterVec
	unknownKinds  prometheus.Counter
}

// NewMetrics creates and registers pipeline metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ingested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rhymebook",
			Subsystem: "ingest",
			Name:      "records_total",
			Help:      "Records persisted by the ingestion pipeline",
		}, []string{"kind", "created"}),
		fetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rhymebook",
			Subsystem: "ingest",
			Name:      "fetch_failures_total",
			Help:      "Source fetches that failed",
		}, []string{"kind"}),
		unknownKinds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rhymebook",
			Subsystem: "ingest",
			Name:      "unknown_kinds_total",
			Help:      "Ingestion requests for unrecognized entity kinds",
		}),
	}
	reg.MustRegister(m.ingested, m.fetchFailures, m.unknownKinds)
	return m
}

func (m *Metrics) recordIngested(kind string, created bool) {
	if m == nil {
		return
	}
	label := "false"
	if created {
		label = "true"
	}
	m.ingested.WithLabelValues(kind, label).Inc()
}

func (m *Metrics) recordFetchFailure(kind string) {
	if m == nil {
		return
	}
	m.fetchFailures.WithLabelValues(kind).Inc()
}

func (m *Metrics) recordUnknownKind() {
	if m == nil {
		return
	}
	m.unknownKinds.Inc()
}
