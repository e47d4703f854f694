package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/constants"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/dtos"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlatRequest(title string, price int64) *dtos.CreateFlatRequest {
	return &dtos.CreateFlatRequest{
		Title:       title,
		Description: "Sunny, close to the metro",
		Price:       price,
		Type:        string(models.FlatTypeApartment),
		Amenities:   []string{"Parking", "WiFi", "Parking"},
		BHKs:        2,
		Area:        950,
		Images:      []string{"https://images.girhasetu.test/a.jpg"},
		Location: dtos.AddressInput{
			Address:    "12 MG Road",
			City:       "Pune",
			State:      "Maharashtra",
			Country:    "India",
			PostalCode: "411001",
			Latitude:   utils.Ptr(18.5204),
			Longitude:  utils.Ptr(73.8567),
		},
	}
}

func TestFlatCreate_ApprovedOwner(t *testing.T) {
	f := newFixture(t)
	owner := f.h.CreateTestUser("Owner", models.RoleOwner, true)
	buyer := f.h.CreateTestUser("Asha", models.RoleBuyer, true)

	flat, err := f.flats.Create(f.h.Ctx, Actor{ID: owner.ID, Role: owner.Role}, newFlatRequest("MG Road 2BHK", 30000))
	require.NoError(t, err)

	assert.Equal(t, owner.ID, flat.OwnerID)
	assert.Equal(t, []models.Amenity{models.AmenityParking, models.AmenityWifi}, flat.Amenities)
	assert.Equal(t, "https://images.girhasetu.test/a.jpg", flat.MainImage)
	assert.NotEmpty(t, flat.Location.TimeZone)
	assert.Zero(t, f.geocoder.calls, "coordinates were supplied")

	assert.Equal(t, 1, f.h.Store.InboxSize(buyer.ID), "buyers hear about new listings")
	assert.Equal(t, 0, f.h.Store.InboxSize(owner.ID))
	assert.Equal(t, 1, f.events.count(constants.EventFlatCreated))
}

func TestFlatCreate_Permissions(t *testing.T) {
	f := newFixture(t)
	pending := f.h.CreateTestUser("Pending", models.RoleOwner, false)
	buyer := f.h.CreateTestUser("Asha", models.RoleBuyer, true)

	_, err := f.flats.Create(f.h.Ctx, Actor{ID: pending.ID, Role: pending.Role}, newFlatRequest("Nope", 1))
	requireAppError(t, err, 403, utils.ErrCodeOwnerNotApproved)

	_, err = f.flats.Create(f.h.Ctx, Actor{ID: buyer.ID, Role: buyer.Role}, newFlatRequest("Nope", 1))
	requireAppError(t, err, 403, "")

	req := newFlatRequest("Bad type", 1)
	req.Type = "Castle"
	admin := f.h.CreateTestUser("Admin", models.RoleAdmin, true)
	_, err = f.flats.Create(f.h.Ctx, Actor{ID: admin.ID, Role: admin.Role}, req)
	requireAppError(t, err, 400, utils.ErrCodeValidation)
}

func TestFlatCreate_Geocodes(t *testing.T) {
	f := newFixture(t)
	owner := f.h.CreateTestUser("Owner", models.RoleOwner, true)
	actor := Actor{ID: owner.ID, Role: owner.Role}

	req := newFlatRequest("Geocoded", 10000)
	req.Location.Latitude, req.Location.Longitude = nil, nil
	flat, err := f.flats.Create(f.h.Ctx, actor, req)
	require.NoError(t, err)
	assert.Equal(t, 1, f.geocoder.calls)
	assert.InDelta(t, 18.5204, flat.Location.Latitude, 1e-9)

	f.geocoder.err = errors.New("no result")
	req = newFlatRequest("Nowhere", 10000)
	req.Location.Latitude, req.Location.Longitude = nil, nil
	_, err = f.flats.Create(f.h.Ctx, actor, req)
	requireAppError(t, err, 400, utils.ErrCodeValidation)
}

func TestFlatUpdate_PriceDropNotifiesFavoriters(t *testing.T) {
	f := newFixture(t)
	owner := f.h.CreateTestUser("Owner", models.RoleOwner, true)
	fan := f.h.CreateTestUser("Fan", models.RoleBuyer, true)
	flat := f.h.CreateTestFlat(owner, "Kharadi 2BHK", 22000)
	require.NoError(t, f.wishlist.Add(f.h.Ctx, fan.ID, flat.ID))
	actor := Actor{ID: owner.ID, Role: owner.Role}

	updated, err := f.flats.Update(f.h.Ctx, actor, flat.ID, &dtos.UpdateFlatRequest{Price: utils.Ptr(int64(25000))})
	require.NoError(t, err)
	assert.Equal(t, int64(25000), updated.Price)
	assert.Equal(t, 0, f.h.Store.InboxSize(fan.ID), "a price rise is not announced")

	updated, err = f.flats.Update(f.h.Ctx, actor, flat.ID, &dtos.UpdateFlatRequest{
		Price: utils.Ptr(int64(20000)),
		Title: utils.Ptr("Kharadi 2BHK, reduced"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Kharadi 2BHK, reduced", updated.Title)
	assert.Equal(t, 1, f.h.Store.InboxSize(fan.ID))

	stranger := f.h.CreateTestUser("Other Owner", models.RoleOwner, true)
	_, err = f.flats.Update(f.h.Ctx, Actor{ID: stranger.ID, Role: stranger.Role}, flat.ID, &dtos.UpdateFlatRequest{})
	requireAppError(t, err, 403, "")

	_, err = f.flats.Update(f.h.Ctx, actor, uuid.New(), &dtos.UpdateFlatRequest{})
	requireAppError(t, err, 404, "")
}

func TestFlatDelete_Cascades(t *testing.T) {
	f := newFixture(t)
	owner := f.h.CreateTestUser("Owner", models.RoleOwner, true)
	buyer := f.h.CreateTestUser("Asha", models.RoleBuyer, true)
	flat := f.h.CreateTestFlat(owner, "Magarpatta 3BHK", 35000)
	require.NoError(t, f.wishlist.Add(f.h.Ctx, buyer.ID, flat.ID))

	err := f.flats.Delete(f.h.Ctx, Actor{ID: buyer.ID, Role: buyer.Role}, flat.ID)
	requireAppError(t, err, 403, "")

	require.NoError(t, f.flats.Delete(f.h.Ctx, Actor{ID: owner.ID, Role: owner.Role}, flat.ID))
	assert.Equal(t, 0, f.h.Store.FavoriteCount(buyer.ID))
	assert.Equal(t, 1, f.events.count(constants.EventFlatDeleted))

	_, err = f.flats.Get(f.h.Ctx, flat.ID)
	requireAppError(t, err, 404, "")
}

func TestFlatRate(t *testing.T) {
	f := newFixture(t)
	owner := f.h.CreateTestUser("Owner", models.RoleOwner, true)
	b1 := f.h.CreateTestUser("Asha", models.RoleBuyer, true)
	b2 := f.h.CreateTestUser("Ravi", models.RoleBuyer, true)
	flat := f.h.CreateTestFlat(owner, "Baner 2BHK", 21000)

	_, err := f.flats.Rate(f.h.Ctx, owner.ID, flat.ID, &dtos.RateFlatRequest{Rating: 5})
	requireAppError(t, err, 403, "")

	_, err = f.flats.Rate(f.h.Ctx, b1.ID, flat.ID, &dtos.RateFlatRequest{Rating: 6})
	requireAppError(t, err, 400, utils.ErrCodeValidation)

	_, err = f.flats.Rate(f.h.Ctx, b1.ID, flat.ID, &dtos.RateFlatRequest{Rating: 2})
	require.NoError(t, err)
	// A second rating replaces the first.
	_, err = f.flats.Rate(f.h.Ctx, b1.ID, flat.ID, &dtos.RateFlatRequest{Rating: 4, Comment: "Quiet street"})
	require.NoError(t, err)
	_, err = f.flats.Rate(f.h.Ctx, b2.ID, flat.ID, &dtos.RateFlatRequest{Rating: 5})
	require.NoError(t, err)

	detail, err := f.flats.Get(f.h.Ctx, flat.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.RatingCount)
	assert.InDelta(t, 4.5, detail.AverageRating, 1e-9)
	assert.Len(t, detail.Ratings, 2)
}

func TestFlatList_FiltersAndRadius(t *testing.T) {
	f := newFixture(t)
	owner := f.h.CreateTestUser("Owner", models.RoleOwner, true)
	cheap := f.h.CreateTestFlat(owner, "Shivajinagar 1BHK", 9000)
	f.h.CreateTestFlat(owner, "Deccan 3BHK", 60000)

	resp, err := f.flats.List(f.h.Ctx, &dtos.ListFlatsQuery{MaxPrice: utils.Ptr(int64(10000))})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, cheap.ID, resp.Flats[0].ID)

	resp, err = f.flats.List(f.h.Ctx, &dtos.ListFlatsQuery{
		Lat: utils.Ptr(18.52), Lng: utils.Ptr(73.85), RadiusKm: utils.Ptr(5.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count, "both test flats sit in Pune")

	resp, err = f.flats.List(f.h.Ctx, &dtos.ListFlatsQuery{
		Lat: utils.Ptr(19.07), Lng: utils.Ptr(72.87), RadiusKm: utils.Ptr(5.0),
	})
	require.NoError(t, err)
	assert.Zero(t, resp.Count)
	assert.NotNil(t, resp.Flats)

	_, err = f.flats.List(f.h.Ctx, &dtos.ListFlatsQuery{Type: "Castle"})
	requireAppError(t, err, 400, utils.ErrCodeValidation)

	_, err = f.flats.List(f.h.Ctx, &dtos.ListFlatsQuery{
		Lat: utils.Ptr(18.52), Lng: utils.Ptr(73.85), RadiusKm: utils.Ptr(-1.0),
	})
	requireAppError(t, err, 400, utils.ErrCodeValidation)
}

func TestFlatList_CacheInvalidatedOnWrite(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewListingCacheWithClient(client, constants.ListingCachePrefix, time.Minute)
	t.Cleanup(func() { _ = cache.Close() })

	f := newFixture(t, withCache(cache))
	owner := f.h.CreateTestUser("Owner", models.RoleOwner, true)
	actor := Actor{ID: owner.ID, Role: owner.Role}
	_, err := f.flats.Create(f.h.Ctx, actor, newFlatRequest("First", 10000))
	require.NoError(t, err)

	resp, err := f.flats.List(f.h.Ctx, &dtos.ListFlatsQuery{City: "Pune"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)

	// Written behind the service's back, so the cached page is still served.
	f.h.CreateTestFlat(owner, "Sneaky", 5000)
	resp, err = f.flats.List(f.h.Ctx, &dtos.ListFlatsQuery{City: "pune"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)

	_, err = f.flats.Create(f.h.Ctx, actor, newFlatRequest("Second", 12000))
	require.NoError(t, err)
	resp, err = f.flats.List(f.h.Ctx, &dtos.ListFlatsQuery{City: "Pune"})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Count)
}

func TestFlatUploadImage(t *testing.T) {
	f := newFixture(t)
	owner := f.h.CreateTestUser("Owner", models.RoleOwner, true)
	flat := f.h.CreateTestFlat(owner, "Camp 1BHK", 14000)
	actor := Actor{ID: owner.ID, Role: owner.Role}

	_, err := f.flats.UploadImage(f.h.Ctx, actor, flat.ID, "a.jpg", strings.NewReader("jpeg"), 4, "image/jpeg")
	requireAppError(t, err, 503, utils.ErrCodeServiceDisabled)

	store := &fakeImageStore{}
	f = newFixture(t, withImages(store))
	owner = f.h.CreateTestUser("Owner", models.RoleOwner, true)
	flat = f.h.CreateTestFlat(owner, "Camp 1BHK", 14000)
	actor = Actor{ID: owner.ID, Role: owner.Role}

	_, err = f.flats.UploadImage(f.h.Ctx, actor, flat.ID, "notes.txt", strings.NewReader("text"), 4, "text/plain")
	requireAppError(t, err, 400, utils.ErrCodeValidation)

	resp, err := f.flats.UploadImage(f.h.Ctx, actor, flat.ID, "Living.JPG", strings.NewReader("jpeg"), 4, "image/jpeg")
	require.NoError(t, err)
	require.Len(t, store.keys, 1)
	assert.True(t, strings.HasPrefix(store.keys[0], "flats/"+flat.ID.String()+"/"))
	assert.True(t, strings.HasSuffix(store.keys[0], ".jpg"))
	assert.Contains(t, resp.Flat.Images, resp.URL)
}
