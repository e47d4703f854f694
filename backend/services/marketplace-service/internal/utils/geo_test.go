package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceKm(t *testing.T) {
	// Pune to Mumbai is roughly 120 km as the crow flies.
	d := DistanceKm(18.5204, 73.8567, 19.0760, 72.8777)
	assert.InDelta(t, 120, d, 10)
	assert.InDelta(t, 0, DistanceKm(18.5, 73.8, 18.5, 73.8), 1e-9)
}

func TestWithinRadius(t *testing.T) {
	near := &models.Flat{ID: uuid.New(), Location: &models.Address{Latitude: 18.53, Longitude: 73.85}}
	far := &models.Flat{ID: uuid.New(), Location: &models.Address{Latitude: 19.07, Longitude: 72.87}}
	unknown := &models.Flat{ID: uuid.New(), Location: &models.Address{}}

	got := WithinRadius([]*models.Flat{near, far, unknown}, 18.52, 73.85, 10)
	require.Len(t, got, 1)
	assert.Equal(t, near.ID, got[0].ID)
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(18.5, 73.8))
	assert.False(t, ValidCoordinates(91, 0))
	assert.False(t, ValidCoordinates(0, -181))
}
