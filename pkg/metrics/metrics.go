package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the query gateway on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	queriesTotal   *prometheus.CounterVec
	queryDuration  *prometheus.HistogramVec
	pagesFetched   *prometheus.CounterVec
	connState      *prometheus.GaugeVec
	latestHeight   *prometheus.GaugeVec
	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// New creates the collectors under the given namespace.
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		queriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "smart_queries_total",
				Help:      "Smart queries sent to the chain, by query name and outcome",
			},
			[]string{"query", "outcome"},
		),
		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "smart_query_duration_seconds",
				Help:      "Round trip time of smart queries",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"query"},
		),
		pagesFetched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pages_fetched_total",
				Help:      "Pages fetched by paginated listings",
			},
			[]string{"query"},
		),
		connState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "connection_state",
				Help:      "1 for the current chain connection state, 0 otherwise",
			},
			[]string{"state"},
		),
		latestHeight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "endpoint_latest_height",
				Help:      "Latest block height reported by each LCD endpoint",
			},
			[]string{"endpoint"},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests served, by route and status code",
			},
			[]string{"route", "code"},
		),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}

	m.registry.MustRegister(
		m.queriesTotal,
		m.queryDuration,
		m.pagesFetched,
		m.connState,
		m.latestHeight,
		m.requestsTotal,
		m.requestLatency,
	)

	return m
}

// ObserveQuery records one smart query.
func (m *Metrics) ObserveQuery(query, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.queriesTotal.WithLabelValues(query, outcome).Inc()
	m.queryDuration.WithLabelValues(query).Observe(d.Seconds())
}

// IncPages counts one fetched page of a listing.
func (m *Metrics) IncPages(query string) {
	if m == nil {
		return
	}
	m.pagesFetched.WithLabelValues(query).Inc()
}

// SetConnectionState flags state as current and clears the others.
func (m *Metrics) SetConnectionState(state string, all []string) {
	if m == nil {
		return
	}
	for _, s := range all {
		v := 0.0
		if s == state {
			v = 1
		}
		m.connState.WithLabelValues(s).Set(v)
	}
}

// SetLatestHeight records the height an endpoint reported.
func (m *Metrics) SetLatestHeight(endpoint string, height uint64) {
	if m == nil {
		return
	}
	m.latestHeight.WithLabelValues(endpoint).Set(float64(height))
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(route string, code int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.requestLatency.WithLabelValues(route).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry: m.registry,
	})
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
