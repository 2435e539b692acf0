// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"places-bot/internal/api/handler"
)

// NewRouter sets up and returns the ops HTTP router.
func NewRouter(placesHandler *handler.PlacesHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/users/{userID}", func(r chi.Router) {
		r.Get("/places", placesHandler.ListPlaces)
		r.Get("/map", placesHandler.GetMap)
	})

	logger.Debug("Ops routes registered")
	return r
}
