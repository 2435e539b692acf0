// internal/service/metrics.go
package service

import "github.com/prometheus/client_golang/prometheus"

const (
	intakeSaved        = "saved"
	intakeRejected     = "rejected"
	intakeNoCity       = "no_city"
	intakeUnresolved   = "unresolved"
	intakeStorageError = "storage_error"
)

var intakeCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "places_bot",
	Subsystem: "intake",
	Name:      "submissions_total",
	Help:      "Place submissions grouped by outcome.",
}, []string{"outcome"})

func init() {
	prometheus.MustRegister(intakeCounter)
}

func recordIntake(outcome string) {
	intakeCounter.WithLabelValues(outcome).Inc()
}
