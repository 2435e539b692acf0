// internal/maprender/metrics.go
package maprender

import "github.com/prometheus/client_golang/prometheus"

const (
	renderDelivered      = "delivered"
	renderEmpty          = "empty"
	renderDeliveryFailed = "delivery_failed"
	renderError          = "error"
)

var renders = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "places_bot",
	Subsystem: "maprender",
	Name:      "renders_total",
	Help:      "Map render requests grouped by outcome.",
}, []string{"outcome"})

func init() {
	prometheus.MustRegister(renders)
}

func recordRender(outcome string) {
	renders.WithLabelValues(outcome).Inc()
}
