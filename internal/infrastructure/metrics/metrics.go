package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cache lookup sources.
const (
	SourceMemory   = "memory"
	SourceSnapshot = "snapshot"
	SourceUpstream = "upstream"
	SourceShared   = "shared"
)

// Metrics holds the service's prometheus collectors.
type Metrics struct {
	registry prometheus.Gatherer

	UpstreamRequests *prometheus.CounterVec
	CacheLookups     *prometheus.CounterVec
	DoctorsLoaded    prometheus.Gauge
	DeriveDuration   prometheus.Histogram
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		UpstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "doctorfinder_upstream_requests_total",
			Help: "Upstream doctor list requests by result",
		}, []string{"result"}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "doctorfinder_cache_lookups_total",
			Help: "Doctor list lookups by the source that answered them",
		}, []string{"source"}),
		DoctorsLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "doctorfinder_doctors_loaded",
			Help: "Number of doctors in the current in-memory list",
		}),
		DeriveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "doctorfinder_derive_duration_seconds",
			Help:    "Time spent filtering and sorting the doctor list",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
	}
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
