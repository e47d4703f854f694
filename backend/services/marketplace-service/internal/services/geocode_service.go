package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/bradfitz/latlong"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
	"googlemaps.github.io/maps"
)

// Geocoder resolves a postal address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (lat, lng float64, err error)
}

// GeocodeService is backed by the Google Maps Geocoding API. Without an API
// key every lookup fails, so callers must supply coordinates themselves.
type GeocodeService struct {
	client *maps.Client
}

func NewGeocodeService(apiKey string) (*GeocodeService, error) {
	if apiKey == "" {
		utils.Logger.Warn("GMAPS_API_KEY not set; flats must be created with coordinates")
		return &GeocodeService{}, nil
	}
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("init google maps client: %w", err)
	}
	return &GeocodeService{client: c}, nil
}

func (s *GeocodeService) Geocode(ctx context.Context, address string) (float64, float64, error) {
	if s.client == nil {
		return 0, 0, fmt.Errorf("%w: geocoding disabled", utils.ErrExternalServiceFailure)
	}
	res, err := s.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return 0, 0, fmt.Errorf("%w: geocode %q: %v", utils.ErrExternalServiceFailure, address, err)
	}
	if len(res) == 0 {
		return 0, 0, fmt.Errorf("%w: no geocoding result for %q", utils.ErrExternalServiceFailure, address)
	}
	loc := res[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}

// FormatAddress joins the address parts into a single geocodable line.
func FormatAddress(a *models.Address) string {
	parts := []string{a.Address, a.City, a.State, a.PostalCode, a.Country}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

// TimeZoneFor returns the IANA zone at the coordinates, or "" when unknown.
func TimeZoneFor(lat, lng float64) string {
	return latlong.LookupZoneName(lat, lng)
}
