// internal/maprender/map.go
package maprender

import (
	"fmt"
	"html"
	"html/template"
	"io"

	"github.com/golang/geo/s2"

	"places-bot/internal/domain"
)

// Bounds is the south-west / north-east box the view is fitted to.
// East may exceed 180 when the box crosses the antimeridian.
type Bounds struct {
	South float64
	West  float64
	North float64
	East  float64
}

// Marker is a single labelled pin.
type Marker struct {
	Lat   float64
	Lon   float64
	Label string
}

// Map is the in-memory representation serialized into the artifact.
type Map struct {
	Title   string
	Center  domain.Coordinates
	Zoom    int
	Markers []Marker
	Bounds  Bounds
}

// BuildMap places one marker per place, in the order given, and fits the view
// to the smallest box containing all of them.
func BuildMap(places []domain.GeocodedPlace, center domain.Coordinates, zoom int) *Map {
	m := &Map{
		Title:   "My places",
		Center:  center,
		Zoom:    zoom,
		Markers: make([]Marker, 0, len(places)),
	}
	for _, p := range places {
		m.Markers = append(m.Markers, Marker{
			Lat:   p.Latitude,
			Lon:   p.Longitude,
			Label: markerLabel(p),
		})
	}
	m.Bounds = ComputeBounds(places)
	return m
}

// ComputeBounds returns the bounding box of places. It uses the shorter
// longitude span, so places on both sides of the antimeridian stay together.
func ComputeBounds(places []domain.GeocodedPlace) Bounds {
	rect := s2.EmptyRect()
	for _, p := range places {
		rect = rect.AddPoint(s2.LatLngFromDegrees(p.Latitude, p.Longitude))
	}
	if rect.IsEmpty() {
		return Bounds{}
	}

	lo, hi := rect.Lo(), rect.Hi()
	east := hi.Lng.Degrees()
	if rect.Lng.IsInverted() {
		east += 360
	}
	return Bounds{
		South: lo.Lat.Degrees(),
		West:  lo.Lng.Degrees(),
		North: hi.Lat.Degrees(),
		East:  east,
	}
}

// markerLabel is the popup body; name and address are escaped here because the
// popup is inserted as HTML by the map library.
func markerLabel(p domain.GeocodedPlace) string {
	return "<b>" + html.EscapeString(p.Name) + "</b><br>" + html.EscapeString(p.Address)
}

var pageTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map('map').setView([{{.Center.Lat}}, {{.Center.Lon}}], {{.Zoom}});
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
  maxZoom: 19,
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);
{{range .Markers}}L.marker([{{.Lat}}, {{.Lon}}]).addTo(map).bindPopup({{.Label}});
{{end}}map.fitBounds([[{{.Bounds.South}}, {{.Bounds.West}}], [{{.Bounds.North}}, {{.Bounds.East}}]]);
</script>
</body>
</html>
`))

// Write serializes the map as a self-contained HTML page.
func (m *Map) Write(w io.Writer) error {
	if err := pageTemplate.Execute(w, m); err != nil {
		return fmt.Errorf("render map page: %w", err)
	}
	return nil
}
