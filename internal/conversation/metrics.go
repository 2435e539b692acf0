// internal/conversation/metrics.go
package conversation

import "github.com/prometheus/client_golang/prometheus"

const (
	kindCity  = "city"
	kindPlace = "place"
)

var (
	messagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "places_bot",
		Subsystem: "conversation",
		Name:      "messages_total",
		Help:      "Inbound messages grouped by kind (command name, city or place).",
	}, []string{"kind"})

	handlerPanics = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "places_bot",
		Subsystem: "conversation",
		Name:      "handler_panics_total",
		Help:      "Panics recovered at the message handler boundary.",
	})
)

func init() {
	prometheus.MustRegister(messagesTotal, handlerPanics)
}

func recordMessage(kind string) {
	switch kind {
	case cmdStart, cmdHelp, cmdPlaces, cmdMap, kindCity, kindPlace:
	default:
		kind = "unknown_command"
	}
	messagesTotal.WithLabelValues(kind).Inc()
}

func recordPanic() {
	handlerPanics.Inc()
}
