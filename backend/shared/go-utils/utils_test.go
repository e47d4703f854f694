package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryCacheKeyIsOrderIndependent(t *testing.T) {
	a := QueryCacheKey("flats", map[string]string{"city": "Pune", "bhks": "2"})
	b := QueryCacheKey("flats", map[string]string{"bhks": "2", "city": "Pune"})
	c := QueryCacheKey("flats", map[string]string{"bhks": "3", "city": "Pune"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "flats:")
}

func TestHandleAppErrorWritesStatusAndDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleAppError(rec, NewConflict(ErrCodeBookingConflict, "Flat already booked until 2024-03-01", map[string]string{"endDate": "2024-03-01"}, nil))

	require.Equal(t, http.StatusConflict, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, ErrCodeBookingConflict, body.Code)
	assert.Equal(t, "Flat already booked until 2024-03-01", body.Message)
	assert.NotNil(t, body.Details)
}

func TestHandleAppErrorFallsBackToInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleAppError(rec, errors.New("boom"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, ErrCodeInternal, body.Code)
	assert.NotContains(t, body.Message, "boom")
}

func TestAppErrorUnwraps(t *testing.T) {
	err := NewInternal("failed", ErrExternalServiceFailure)
	assert.True(t, errors.Is(err, ErrExternalServiceFailure))
}

func TestValidationHelpers(t *testing.T) {
	assert.True(t, IsE164("+919876543210"))
	assert.False(t, IsE164("9876543210"))
	assert.True(t, IsValidEmail("owner@example.com"))
	assert.False(t, IsValidEmail("Owner <owner@example.com>"))
	assert.False(t, IsValidEmail("plainaddress"))
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret!", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestRedactDBURL(t *testing.T) {
	got := RedactDBURL("postgres://app:hunter2@db:5432/girha")
	assert.NotContains(t, got, "hunter2")
	assert.Contains(t, got, "app:")
}

func TestRandomStringLength(t *testing.T) {
	assert.Len(t, RandomString(7), 7)
	assert.Len(t, RandomString(16), 16)
}
