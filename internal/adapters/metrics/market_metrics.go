package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "eveblueprint"
	subsystem = "market"
)

// Request outcome labels recorded by the market client
const (
	OutcomeOK           = "ok"
	OutcomeServerError  = "server_error"
	OutcomeClientError  = "client_error"
	OutcomeNetworkError = "network_error"
	OutcomeDecodeError  = "decode_error"
)

// Region outcome labels recorded after a scan settles
const (
	RegionRanked  = "ranked"
	RegionSkipped = "skipped"
)

// MarketMetrics tracks market fetch and scan outcomes on a private
// registry. A nil collector is valid and records nothing, so callers
// never need to guard their observation sites.
type MarketMetrics struct {
	registry *prometheus.Registry

	requestsTotal  *prometheus.CounterVec
	retriesTotal   prometheus.Counter
	regionOutcomes *prometheus.CounterVec
	scanDuration   prometheus.Histogram
}

// NewMarketMetrics creates a collector with all metrics registered
func NewMarketMetrics() *MarketMetrics {
	m := &MarketMetrics{
		registry: prometheus.NewRegistry(),

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Total market service requests by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),

		retriesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "retries_total",
				Help:      "Total retry attempts after transient server faults",
			},
		),

		regionOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "region_outcomes_total",
				Help:      "Region evaluations by final outcome",
			},
			[]string{"outcome"},
		),

		scanDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "scan_duration_seconds",
				Help:      "Duration of full multi-region scans",
				Buckets:   []float64{1, 2.5, 5, 10, 20, 40, 80, 160},
			},
		),
	}

	m.registry.MustRegister(m.requestsTotal, m.retriesTotal, m.regionOutcomes, m.scanDuration)
	return m
}

// ObserveRequest records one market service request outcome
func (m *MarketMetrics) ObserveRequest(endpoint, outcome string) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(endpoint, outcome).Inc()
}

// ObserveRetry records one retry attempt
func (m *MarketMetrics) ObserveRetry() {
	if m == nil {
		return
	}
	m.retriesTotal.Inc()
}

// ObserveRegions records how a batch of region evaluations settled
func (m *MarketMetrics) ObserveRegions(ranked, skipped int) {
	if m == nil {
		return
	}
	m.regionOutcomes.WithLabelValues(RegionRanked).Add(float64(ranked))
	m.regionOutcomes.WithLabelValues(RegionSkipped).Add(float64(skipped))
}

// ObserveScanDuration records one full scan's wall time
func (m *MarketMetrics) ObserveScanDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.scanDuration.Observe(d.Seconds())
}

// Handler exposes the registry for scraping
func (m *MarketMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
