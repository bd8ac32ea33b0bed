// Package geocoder resolves free-text addresses to coordinates.
package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"dominium-listings/internal/models"
)

// Backend performs a single lookup. A nil result with a nil error means the
// service answered but found nothing.
type Backend interface {
	Lookup(ctx context.Context, query, userAgent string) (*models.Coordinates, error)
}

// NominatimBackend queries an OpenStreetMap Nominatim search endpoint.
type NominatimBackend struct {
	baseURL    string
	httpClient *http.Client
}

type nominatimPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func NewNominatimBackend(baseURL string, timeout time.Duration) *NominatimBackend {
	return &NominatimBackend{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (b *NominatimBackend) Lookup(ctx context.Context, query, userAgent string) (*models.Coordinates, error) {
	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("limit", "1")
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("geocoder returned status %s", resp.Status)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("failed to decode geocoder response: %v", err)
	}
	if len(places) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %v", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %v", places[0].Lon, err)
	}
	c := models.Coordinates{Latitude: lat, Longitude: lon}
	if !c.Valid() {
		return nil, fmt.Errorf("coordinates out of range: %v, %v", lat, lon)
	}
	return &c, nil
}
