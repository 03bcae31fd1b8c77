// Package metrics holds the prometheus collectors for the trip planner.
// Collectors register on the default registry; Handler exposes it.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tripplanner"

// Upstream sources reported by UpstreamFallbacks.
const (
	SourceWeather = "weather"
	SourceSearch  = "search"
	SourcePlaces  = "places"
)

var (
	// HTTPRequests counts served requests by method and status code.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method and status.",
		},
		[]string{"method", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Time spent serving HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// UpstreamFallbacks counts upstream failures that were replaced by
	// fallback content instead of failing the request.
	UpstreamFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_fallbacks_total",
			Help:      "Upstream provider failures downgraded to fallback content.",
		},
		[]string{"source"},
	)

	StreamFragments = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_fragments_total",
			Help:      "Itinerary text fragments relayed to callers.",
		},
	)

	StreamErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_errors_total",
			Help:      "Itinerary streams terminated by an error fragment.",
		},
	)
)

// Handler serves the default registry in the prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
