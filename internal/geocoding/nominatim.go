// internal/geocoding/nominatim.go
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultNominatimURL is the public OpenStreetMap Nominatim endpoint.
const DefaultNominatimURL = "https://nominatim.openstreetmap.org"

// NominatimProvider looks addresses up via the Nominatim search API.
type NominatimProvider struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewNominatimProvider constructs a provider. Nominatim's usage policy
// requires an identifying User-Agent.
func NewNominatimProvider(baseURL, userAgent string, timeout time.Duration) *NominatimProvider {
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &NominatimProvider{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Lookup returns the best match for address, or nil when there is none.
func (p *NominatimProvider) Lookup(ctx context.Context, address string) (*Location, error) {
	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "jsonv2")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusRequestTimeout, resp.StatusCode == http.StatusGatewayTimeout:
		return nil, fmt.Errorf("%w: nominatim status %d", ErrProviderTimeout, resp.StatusCode)
	case resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("nominatim error: status %d: %s", resp.StatusCode, body)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, classify(fmt.Errorf("nominatim decode: %w", err))
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim longitude %q: %w", results[0].Lon, err)
	}
	return &Location{Lat: lat, Lon: lon, Address: results[0].DisplayName}, nil
}

func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrProviderTimeout, err)
	}
	return err
}
