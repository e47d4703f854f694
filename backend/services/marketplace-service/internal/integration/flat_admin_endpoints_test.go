package integration

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/routes"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatBody(title string, price int64) map[string]any {
	return map[string]any{
		"title":       title,
		"description": "Two bedrooms, balcony facing the hills",
		"price":       price,
		"type":        "Apartment",
		"amenities":   []string{"Parking", "Lift"},
		"bhks":        2,
		"area":        1020,
		"location": map[string]any{
			"address":    "7 University Road",
			"city":       "Pune",
			"state":      "Maharashtra",
			"country":    "India",
			"postalCode": "411007",
		},
	}
}

func TestOwnerApprovalGatesListing(t *testing.T) {
	e := newEnv(t)
	admin := e.CreateTestUser("Admin", models.RoleAdmin, true)
	owner := e.CreateTestUser("Owner", models.RoleOwner, false)
	buyer := e.CreateTestUser("Asha", models.RoleBuyer, true)

	e.requireErrorCode(e.call(http.MethodPost, routes.Flats, owner, flatBody("Pashan 2BHK", 24000)),
		http.StatusForbidden, utils.ErrCodeOwnerNotApproved)

	body := e.requireStatus(e.call(http.MethodGet, routes.AdminPendingOwners, admin, nil), http.StatusOK)
	require.Len(t, body["owners"], 1)

	approveURL := "/api/admin/owners/" + owner.ID.String() + "/approve"
	e.requireStatus(e.call(http.MethodPost, approveURL, buyer, nil), http.StatusForbidden)
	e.requireStatus(e.call(http.MethodPost, approveURL, nil, nil), http.StatusUnauthorized)
	body = e.requireStatus(e.call(http.MethodPost, approveURL, admin, nil), http.StatusOK)
	assert.Equal(t, true, body["is_admin_approved"])

	body = e.requireStatus(e.call(http.MethodPost, routes.Flats, owner, flatBody("Pashan 2BHK", 24000)), http.StatusCreated)
	flatID := body["id"].(string)
	assert.NotEmpty(t, body["location"].(map[string]any)["timezone"])

	t.Log("The new listing reaches buyers")
	body = e.requireStatus(e.call(http.MethodGet, routes.Notifications, buyer, nil), http.StatusOK)
	notes := body["notifications"].([]any)
	require.Len(t, notes, 1)
	assert.Equal(t, string(models.NotificationNewListing), notes[0].(map[string]any)["type"])

	body = e.requireStatus(e.call(http.MethodGet, routes.Flats+"?city=pune&bhks=2", nil, nil), http.StatusOK)
	assert.EqualValues(t, 1, body["count"])
	e.requireStatus(e.call(http.MethodGet, routes.Flats+"?minPrice=abc", nil, nil), http.StatusBadRequest)

	body = e.requireStatus(e.call(http.MethodGet, "/api/flats/"+flatID, nil, nil), http.StatusOK)
	assert.Equal(t, "Pashan 2BHK", body["title"])
	assert.Empty(t, body["ratings"])
}

func TestFlatOwnerEndpoints(t *testing.T) {
	e := newEnv(t)
	owner := e.CreateTestUser("Owner", models.RoleOwner, true)
	buyer := e.CreateTestUser("Asha", models.RoleBuyer, true)
	flat := e.CreateTestFlat(owner, "Sus Road 2BHK", 19000)
	flatURL := "/api/flats/" + flat.ID.String()

	e.requireStatus(e.call(http.MethodPost, routes.WishlistAdd, buyer,
		map[string]any{"listingId": flat.ID.String(), "user": buyer.ID.String()}), http.StatusOK)

	e.requireStatus(e.call(http.MethodPut, flatURL, buyer, map[string]any{"price": 1}), http.StatusForbidden)
	body := e.requireStatus(e.call(http.MethodPut, flatURL, owner, map[string]any{"price": 17000}), http.StatusOK)
	assert.EqualValues(t, 17000, body["price"])
	assert.Equal(t, 1, e.Store.InboxSize(buyer.ID), "price drop reaches the wishlist")

	e.requireStatus(e.call(http.MethodPost, flatURL+"/ratings", buyer, map[string]any{"rating": 4, "comment": "Nice"}), http.StatusCreated)
	e.requireStatus(e.call(http.MethodPost, flatURL+"/ratings", owner, map[string]any{"rating": 5}), http.StatusForbidden)
	e.requireStatus(e.call(http.MethodPost, flatURL+"/ratings", buyer, map[string]any{"rating": 9}), http.StatusBadRequest)

	body = e.requireStatus(e.call(http.MethodGet, flatURL, nil, nil), http.StatusOK)
	assert.EqualValues(t, 4, body["averageRating"])

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "hall.jpg")
	require.NoError(t, err)
	_, _ = part.Write([]byte("not really a jpeg"))
	require.NoError(t, mw.Close())
	req := e.BuildAuthRequest(http.MethodPost, flatURL+"/images", e.CreateJWT(owner), buf.Bytes())
	req.Header.Set("Content-Type", mw.FormDataContentType())
	e.requireErrorCode(e.Do(e.router, req), http.StatusServiceUnavailable, utils.ErrCodeServiceDisabled)

	e.requireStatus(e.call(http.MethodDelete, flatURL, buyer, nil), http.StatusForbidden)
	e.requireStatus(e.call(http.MethodDelete, flatURL, owner, nil), http.StatusOK)
	e.requireStatus(e.call(http.MethodGet, flatURL, nil, nil), http.StatusNotFound)
}

func TestAdminEndpoints(t *testing.T) {
	e := newEnv(t)
	admin := e.CreateTestUser("Admin", models.RoleAdmin, true)
	owner := e.CreateTestUser("Owner", models.RoleOwner, true)
	buyer := e.CreateTestUser("Asha", models.RoleBuyer, true)
	flat := e.CreateTestFlat(owner, "Duplicate listing", 100)

	body := e.requireStatus(e.call(http.MethodPost, routes.AdminBroadcast, admin, map[string]any{"message": "Welcome to Girha Setu"}), http.StatusOK)
	assert.EqualValues(t, 3, body["delivered"])
	e.requireErrorCode(e.call(http.MethodPost, routes.AdminBroadcast, admin, map[string]any{}), http.StatusBadRequest, utils.ErrCodeMissingFields)
	e.requireStatus(e.call(http.MethodPost, routes.AdminBroadcast, owner, map[string]any{"message": "hi"}), http.StatusForbidden)

	e.requireStatus(e.call(http.MethodDelete, "/api/admin/flats/"+flat.ID.String(), admin, nil), http.StatusOK)

	body = e.requireStatus(e.call(http.MethodGet, routes.AdminStats, admin, nil), http.StatusOK)
	assert.EqualValues(t, 0, body["flats"])
	assert.EqualValues(t, 1, body["usersByRole"].(map[string]any)["buyer"])

	body = e.requireStatus(e.call(http.MethodGet, routes.AdminAuditLogs+"?limit=10", admin, nil), http.StatusOK)
	assert.Len(t, body["logs"], 2)
	e.requireStatus(e.call(http.MethodGet, routes.AdminAuditLogs+"?limit=x", admin, nil), http.StatusBadRequest)

	e.requireStatus(e.call(http.MethodGet, routes.AdminStats, buyer, nil), http.StatusForbidden)
}

func TestAssistantDisabled(t *testing.T) {
	e := newEnv(t)
	rr := e.call(http.MethodPost, routes.AssistantChat, nil, map[string]any{"message": "Show me flats near FC Road"})
	e.requireErrorCode(rr, http.StatusServiceUnavailable, utils.ErrCodeServiceDisabled)

	rr = e.call(http.MethodPost, routes.AssistantChat, nil, map[string]any{})
	e.requireErrorCode(rr, http.StatusBadRequest, utils.ErrCodeMissingFields)
}
