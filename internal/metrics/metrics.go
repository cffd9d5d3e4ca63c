// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcomes.
const (
	OutcomeOK         = "ok"
	OutcomeFetchError = "fetch_error"
	OutcomeParseError = "parse_error"
)

var (
	// Registry is private to schedview so tests can scrape it without the
	// default global collectors.
	Registry = prometheus.NewRegistry()

	fetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "schedview",
		Name:      "fetches_total",
		Help:      "Resource fetches by resource name and outcome.",
	}, []string{"resource", "outcome"})

	fetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "schedview",
		Name:      "fetch_duration_seconds",
		Help:      "Time spent fetching and decoding a resource.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"resource"})

	rendersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "schedview",
		Name:      "renders_total",
		Help:      "Page renders by active tab.",
	}, []string{"tab"})

	clockClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "schedview",
		Name:      "clock_clients",
		Help:      "Websocket clients currently receiving clock frames.",
	})
)

func init() {
	Registry.MustRegister(
		fetchesTotal,
		fetchDuration,
		rendersTotal,
		clockClients,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// ObserveFetch records one fetch of resource.
func ObserveFetch(resource, outcome string, d time.Duration) {
	fetchesTotal.WithLabelValues(resource, outcome).Inc()
	fetchDuration.WithLabelValues(resource).Observe(d.Seconds())
}

// ObserveRender counts a page render for tab.
func ObserveRender(tab string) {
	rendersTotal.WithLabelValues(tab).Inc()
}

// ClockClientConnected and ClockClientDisconnected track websocket clients.
func ClockClientConnected()    { clockClients.Inc() }
func ClockClientDisconnected() { clockClients.Dec() }

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
