package utils

import (
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/umahmood/haversine"
)

// DistanceKm is the great-circle distance between two points.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: lat1, Lon: lng1},
		haversine.Coord{Lat: lat2, Lon: lng2},
	)
	return km
}

// ValidCoordinates checks lat/lng range.
func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// WithinRadius keeps flats whose location lies within radiusKm of the point.
// Flats without coordinates are dropped.
func WithinRadius(flats []*models.Flat, lat, lng, radiusKm float64) []*models.Flat {
	out := make([]*models.Flat, 0, len(flats))
	for _, f := range flats {
		if f.Location == nil || !f.Location.HasCoordinates() {
			continue
		}
		if DistanceKm(lat, lng, f.Location.Latitude, f.Location.Longitude) <= radiusKm {
			out = append(out, f)
		}
	}
	return out
}
