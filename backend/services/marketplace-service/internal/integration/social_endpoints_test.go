package integration

import (
	"net/http"
	"testing"

	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/routes"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistEndpoints(t *testing.T) {
	e := newEnv(t)
	owner := e.CreateTestUser("Owner", models.RoleOwner, true)
	buyer := e.CreateTestUser("Asha", models.RoleBuyer, true)
	flat := e.CreateTestFlat(owner, "Wakad 1BHK", 11000)
	req := map[string]any{"listingId": flat.ID.String(), "user": buyer.ID.String()}

	e.requireStatus(e.call(http.MethodPost, routes.WishlistAdd, nil, req), http.StatusOK)
	e.requireErrorCode(e.call(http.MethodPost, routes.WishlistAdd, buyer, req), http.StatusBadRequest, utils.ErrCodeAlreadyWishlisted)

	body := e.requireStatus(e.call(http.MethodGet, routes.Wishlist, buyer, nil), http.StatusOK)
	items := body["wishlist"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, flat.ID.String(), items[0].(map[string]any)["id"])

	e.requireStatus(e.call(http.MethodPost, routes.WishlistRemove, buyer, req), http.StatusOK)
	e.requireErrorCode(e.call(http.MethodPost, routes.WishlistRemove, buyer, req), http.StatusBadRequest, utils.ErrCodeNotWishlisted)

	body = e.requireStatus(e.call(http.MethodGet, routes.Wishlist, buyer, nil), http.StatusOK)
	assert.Empty(t, body["wishlist"])

	e.requireErrorCode(e.call(http.MethodPost, routes.WishlistAdd, nil, map[string]any{"user": buyer.ID.String()}),
		http.StatusBadRequest, utils.ErrCodeMissingFields)
	e.requireErrorCode(e.call(http.MethodPost, routes.WishlistAdd, owner, req), http.StatusForbidden, utils.ErrCodeForbidden)
}

func TestChatEndpoints(t *testing.T) {
	e := newEnv(t)
	owner := e.CreateTestUser("Owner", models.RoleOwner, true)
	buyer := e.CreateTestUser("Asha", models.RoleBuyer, true)
	stranger := e.CreateTestUser("Stranger", models.RoleBuyer, true)
	start := map[string]any{"userId": buyer.ID.String(), "ownerId": owner.ID.String()}

	first := e.requireStatus(e.call(http.MethodPost, routes.Chat, nil, start), http.StatusOK)
	assert.Equal(t, "Chat created", first["message"])
	chatID := first["chat"].(map[string]any)["id"].(string)

	again := e.requireStatus(e.call(http.MethodPost, routes.Chat, buyer, start), http.StatusOK)
	assert.Equal(t, "Chat found", again["message"])
	assert.Equal(t, chatID, again["chat"].(map[string]any)["id"])

	send := map[string]any{"chatId": chatID, "senderId": buyer.ID.String(), "content": "Is parking included?"}
	body := e.requireStatus(e.call(http.MethodPut, routes.ChatSendMessage, buyer, send), http.StatusOK)
	history := body["message"].([]any)
	require.Len(t, history, 1)
	assert.Equal(t, buyer.ID.String(), history[0].(map[string]any)["sender"])

	send = map[string]any{"chatId": chatID, "senderId": owner.ID.String(), "content": "Yes, one car."}
	body = e.requireStatus(e.call(http.MethodPut, routes.ChatSendMessage, owner, send), http.StatusOK)
	assert.Len(t, body["message"], 2)

	send = map[string]any{"chatId": chatID, "senderId": stranger.ID.String(), "content": "hi"}
	e.requireErrorCode(e.call(http.MethodPut, routes.ChatSendMessage, stranger, send), http.StatusForbidden, utils.ErrCodeForbidden)

	chatURL := "/api/chat/" + chatID
	body = e.requireStatus(e.call(http.MethodGet, chatURL, owner, nil), http.StatusOK)
	assert.Len(t, body["messages"], 2)
	e.requireStatus(e.call(http.MethodGet, chatURL, stranger, nil), http.StatusForbidden)
	e.requireStatus(e.call(http.MethodGet, chatURL, nil, nil), http.StatusUnauthorized)
	e.requireStatus(e.call(http.MethodGet, "/api/chat/not-a-uuid", owner, nil), http.StatusBadRequest)

	body = e.requireStatus(e.call(http.MethodGet, routes.Chats, buyer, nil), http.StatusOK)
	assert.Len(t, body["chats"], 1)
}

func TestNotificationEndpoints(t *testing.T) {
	e := newEnv(t)
	owner := e.CreateTestUser("Owner", models.RoleOwner, true)
	buyer := e.CreateTestUser("Asha", models.RoleBuyer, true)
	flat := e.CreateTestFlat(owner, "Kothrud 2BHK", 20000)

	rr := e.call(http.MethodPost, routes.BookingsAdd, buyer, bookingBody(buyer, flat, "2024-09-01", "2024-09-05", 400))
	e.requireStatus(rr, http.StatusCreated)

	body := e.requireStatus(e.call(http.MethodGet, routes.Notifications, owner, nil), http.StatusOK)
	notes := body["notifications"].([]any)
	require.Len(t, notes, 1)
	note := notes[0].(map[string]any)
	assert.Equal(t, string(models.NotificationBookingUpdate), note["type"])
	assert.Equal(t, flat.ID.String(), note["property"].(map[string]any)["id"])
	id := note["id"].(string)

	deleteURL := routes.NotificationDelete + "?id=" + id
	e.requireStatus(e.call(http.MethodDelete, deleteURL, owner, nil), http.StatusOK)
	e.requireErrorCode(e.call(http.MethodDelete, deleteURL, owner, nil), http.StatusNotFound, utils.ErrCodeNotFound)
	e.requireErrorCode(e.call(http.MethodDelete, routes.NotificationDelete, owner, nil), http.StatusBadRequest, utils.ErrCodeMissingFields)
	e.requireStatus(e.call(http.MethodDelete, routes.NotificationDelete+"?id=nope", owner, nil), http.StatusBadRequest)

	body = e.requireStatus(e.call(http.MethodGet, routes.Notifications, owner, nil), http.StatusOK)
	assert.Empty(t, body["notifications"])
}
