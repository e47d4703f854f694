package testhelpers

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/stretchr/testify/require"
)

// UniquePhone generates a unique Indian mobile number for testing.
func UniquePhone() string {
	return fmt.Sprintf("+9198%08d", rand.New(rand.NewSource(time.Now().UnixNano())).Int31n(1e8))
}

// UniqueEmail generates a unique email for testing.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@girhasetu.test", prefix, time.Now().UnixNano())
}

// CreateTestUser persists a user with the given role. Owners start
// unapproved unless approved is true.
func (h *TestHelper) CreateTestUser(name string, role models.Role, approved bool) *models.User {
	u := &models.User{
		ID:              uuid.New(),
		Name:            name,
		Email:           UniqueEmail(string(role)),
		Phone:           UniquePhone(),
		PasswordHash:    "not-a-real-hash",
		Role:            role,
		IsAdminApproved: approved,
	}
	require.NoError(h.T, h.Users.Create(h.Ctx, u), "Failed to create test user")
	return u
}

// CreateTestFlat persists a Pune apartment owned by owner.
func (h *TestHelper) CreateTestFlat(owner *models.User, title string, price int64) *models.Flat {
	f := &models.Flat{
		ID:        uuid.New(),
		Title:     title,
		Price:     price,
		Type:      models.FlatTypeApartment,
		OwnerID:   owner.ID,
		Amenities: []models.Amenity{models.AmenityParking},
		BHKs:      2,
		Area:      900,
		Location: &models.Address{
			ID:         uuid.New(),
			Address:    "1 Test Lane",
			City:       "Pune",
			State:      "Maharashtra",
			Country:    "India",
			PostalCode: "411001",
			Latitude:   18.52,
			Longitude:  73.85,
		},
	}
	require.NoError(h.T, h.Flats.CreateWithAddress(h.Ctx, f), "Failed to create test flat")
	return f
}
