package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestParseDate(t *testing.T) {
	d := day(t, "2024-03-01")
	assert.Equal(t, time.UTC, d.Location())
	assert.Equal(t, 1, d.Day())

	_, err := ParseDate("2024-13-01")
	assert.Error(t, err)
}

func TestBookingConflictError(t *testing.T) {
	appErr := NewBookingConflict(day(t, "2024-03-01"))
	assert.Equal(t, 409, appErr.StatusCode)
	assert.Equal(t, "Flat already booked until 2024-03-01", appErr.Message)
	assert.True(t, errors.Is(appErr, ErrBookingConflict))
	assert.Equal(t, map[string]string{"endDate": "2024-03-01"}, appErr.Details)
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(200000), MinorUnits(2000, 100))
}
