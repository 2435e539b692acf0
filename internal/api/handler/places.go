// internal/api/handler/places.go
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"places-bot/internal/api/types"
	"places-bot/internal/domain"
	"places-bot/internal/maprender"
	"places-bot/internal/service"
	"places-bot/internal/util" // For custom errors
)

// DefaultTimeout bounds every ops request.
const DefaultTimeout = 30 * time.Second

// MapRenderer renders a user's map and hands the artifact to deliver.
type MapRenderer interface {
	Render(ctx context.Context, userID int64, deliver maprender.DeliverFunc) ([]domain.GeocodedPlace, error)
}

// PlacesHandler serves read-only views of a user's places.
type PlacesHandler struct {
	places service.PlaceService
	maps   MapRenderer
	logger *slog.Logger
}

// NewPlacesHandler creates a new PlacesHandler.
func NewPlacesHandler(places service.PlaceService, maps MapRenderer, logger *slog.Logger) *PlacesHandler {
	return &PlacesHandler{
		places: places,
		maps:   maps,
		logger: logger,
	}
}

// Helper function to send JSON responses.
func (h *PlacesHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func (h *PlacesHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrNotFound), util.IsError(err, util.ErrNoPlaces):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	case util.IsError(err, util.ErrStorage):
		statusCode = http.StatusServiceUnavailable
		message = "Storage unavailable"
		h.logger.Error("Storage error", "error", err)
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, types.ErrorResponse{Error: message})
}

func userIDParam(r *http.Request) (int64, error) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("userID must be an integer: %w", util.ErrInvalidInput)
	}
	return userID, nil
}

// ListPlaces returns a user's places, newest first.
// GET /users/{userID}/places
func (h *PlacesHandler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	places, err := h.places.ListPlaces(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.NewListResponse(places))
}

// GetMap streams the rendered map page. The artifact is deleted once the
// response has been written.
// GET /users/{userID}/map
func (h *PlacesHandler) GetMap(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	started := false
	_, err = h.maps.Render(r.Context(), userID, func(ctx context.Context, a maprender.Artifact) error {
		f, err := os.Open(a.Path)
		if err != nil {
			return err
		}
		defer f.Close()

		started = true
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("X-Marker-Count", strconv.Itoa(len(a.Points)))
		w.WriteHeader(http.StatusOK)
		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		if started {
			h.logger.Error("Failed to stream map", "user_id", userID, "error", err)
			return
		}
		h.respondWithError(w, err)
	}
}
