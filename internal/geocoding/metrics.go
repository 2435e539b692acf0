// internal/geocoding/metrics.go
package geocoding

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeFound    = "found"
	outcomeNotFound = "not_found"
	outcomeTimeout  = "timeout"
	outcomeError    = "error"
)

var (
	lookupAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "places_bot",
		Subsystem: "geocoding",
		Name:      "provider_attempts_total",
		Help:      "Number of provider lookups issued, retries included.",
	}, []string{"mode"})

	lookupResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "places_bot",
		Subsystem: "geocoding",
		Name:      "resolutions_total",
		Help:      "Number of resolutions grouped by mode and final outcome.",
	}, []string{"mode", "outcome"})

	cacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "places_bot",
		Subsystem: "geocoding",
		Name:      "cache_lookups_total",
		Help:      "Geocode cache lookups grouped by result (hit, miss, error).",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(lookupAttempts, lookupResults, cacheHits)
}

func recordLookup(mode Mode, outcome string) {
	lookupResults.WithLabelValues(string(mode), outcome).Inc()
}
