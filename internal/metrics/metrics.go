// Package metrics holds the Prometheus collectors for outbound provider calls.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "weathernow_provider_requests_total",
		Help: "Total outbound provider requests",
	}, []string{"provider"})
	ProviderFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "weathernow_provider_failures_total",
		Help: "Total outbound provider requests that failed or returned a non-success status",
	}, []string{"provider"})
	ProviderDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "weathernow_provider_duration_ms",
		Help:    "Provider request duration in milliseconds",
		Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"provider"})
	ResolutionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "weathernow_resolutions_total",
		Help: "Reverse resolutions by the source of the selected candidate",
	}, []string{"source"})
	SearchCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "weathernow_search_cache_hits_total",
		Help: "Name searches served from the in-session cache",
	})
)

func init() {
	prometheus.MustRegister(ProviderRequestsTotal)
	prometheus.MustRegister(ProviderFailuresTotal)
	prometheus.MustRegister(ProviderDurationMs)
	prometheus.MustRegister(ResolutionsTotal)
	prometheus.MustRegister(SearchCacheHitsTotal)
}

// ObserveProvider records one provider call. Call it with the start time once the call settles.
func ObserveProvider(provider string, start time.Time, err error) {
	ProviderRequestsTotal.WithLabelValues(provider).Inc()
	ProviderDurationMs.WithLabelValues(provider).Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		ProviderFailuresTotal.WithLabelValues(provider).Inc()
	}
}

// Handler exposes the registered collectors for scraping
func Handler() http.Handler { return promhttp.Handler() }
