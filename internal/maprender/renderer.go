// internal/maprender/renderer.go
package maprender

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"places-bot/internal/domain"
	"places-bot/internal/util"
)

// PlaceSource is the geocoded-places query the renderer consumes.
// service.PlaceService implements it.
type PlaceSource interface {
	ListGeocodedPlaces(ctx context.Context, userID int64) ([]domain.GeocodedPlace, error)
}

// Artifact is a rendered map file handed to a DeliverFunc. Path is only valid
// until the DeliverFunc returns. Points are in marker order.
type Artifact struct {
	Path   string
	Points []domain.GeocodedPlace
}

// DeliverFunc ships an artifact to its consumer.
type DeliverFunc func(ctx context.Context, artifact Artifact) error

// Config holds renderer settings.
type Config struct {
	TempDir string // empty means os.TempDir()
	Center  domain.Coordinates
	Zoom    int
}

// Renderer produces map artifacts for a user's geocoded places.
type Renderer struct {
	places PlaceSource
	cfg    Config
	logger *slog.Logger
}

// NewRenderer creates a Renderer.
func NewRenderer(places PlaceSource, cfg Config, logger *slog.Logger) *Renderer {
	return &Renderer{places: places, cfg: cfg, logger: logger}
}

// Render builds the map for userID, writes it into a fresh temporary directory
// and calls deliver with it. The directory is removed before Render returns,
// whatever deliver does. A user without geocoded places gets util.ErrNoPlaces
// and nothing is written to disk.
func (r *Renderer) Render(ctx context.Context, userID int64, deliver DeliverFunc) ([]domain.GeocodedPlace, error) {
	places, err := r.places.ListGeocodedPlaces(ctx, userID)
	if err != nil {
		recordRender(renderError)
		return nil, fmt.Errorf("render map for user %d: %w", userID, err)
	}
	if len(places) == 0 {
		recordRender(renderEmpty)
		return nil, util.ErrNoPlaces
	}

	m := BuildMap(places, r.cfg.Center, r.cfg.Zoom)

	dir, err := os.MkdirTemp(r.cfg.TempDir, fmt.Sprintf("map-%d-*", userID))
	if err != nil {
		recordRender(renderError)
		return nil, fmt.Errorf("render map for user %d: create temp dir: %w", userID, err)
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			r.logger.Error("Failed to remove map artifact", "user_id", userID, "dir", dir, "error", rmErr)
		}
	}()

	path := filepath.Join(dir, "places-"+uuid.NewString()+".html")
	if err := writeArtifact(path, m); err != nil {
		recordRender(renderError)
		return nil, fmt.Errorf("render map for user %d: %w", userID, err)
	}

	if err := deliver(ctx, Artifact{Path: path, Points: places}); err != nil {
		recordRender(renderDeliveryFailed)
		return nil, fmt.Errorf("deliver map for user %d: %w", userID, err)
	}
	recordRender(renderDelivered)
	r.logger.Info("Map delivered", "user_id", userID, "markers", len(m.Markers))
	return places, nil
}

func writeArtifact(path string, m *Map) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	if err := m.Write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close artifact: %w", err)
	}
	return nil
}
