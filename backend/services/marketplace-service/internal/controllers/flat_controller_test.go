package controllers

import (
	"net/url"
	"testing"

	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListQuery(t *testing.T) {
	q, err := parseListQuery(url.Values{
		"city":     {"Pune"},
		"minPrice": {"5000"},
		"bhks":     {"2"},
		"lat":      {"18.52"},
		"lng":      {"73.85"},
		"radiusKm": {"3.5"},
		"offset":   {"10"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Pune", q.City)
	require.NotNil(t, q.MinPrice)
	assert.Equal(t, int64(5000), *q.MinPrice)
	assert.Nil(t, q.MaxPrice)
	require.NotNil(t, q.BHKs)
	assert.Equal(t, 2, *q.BHKs)
	require.NotNil(t, q.RadiusKm)
	assert.InDelta(t, 3.5, *q.RadiusKm, 1e-9)
	assert.Equal(t, constants.DefaultListLimit, q.Limit)
	assert.Equal(t, 10, q.Offset)

	_, err = parseListQuery(url.Values{"maxPrice": {"cheap"}})
	assert.Error(t, err)
	_, err = parseListQuery(url.Values{"lat": {"north"}})
	assert.Error(t, err)
}
