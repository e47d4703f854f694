package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyNewListing_ReachesBuyersOnly(t *testing.T) {
	f := newFixture(t)
	b1 := f.h.CreateTestUser("Asha", models.RoleBuyer, true)
	b2 := f.h.CreateTestUser("Ravi", models.RoleBuyer, true)
	owner := f.h.CreateTestUser("Owner", models.RoleOwner, true)
	flat := f.h.CreateTestFlat(owner, "Viman Nagar 1BHK", 15000)

	n, err := f.notifications.NotifyNewListing(f.h.Ctx, flat)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, 1, f.h.Store.InboxSize(b1.ID))
	assert.Equal(t, 1, f.h.Store.InboxSize(b2.ID))
	assert.Equal(t, 0, f.h.Store.InboxSize(owner.ID))

	resp, err := f.notifications.List(f.h.Ctx, b1.ID)
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 1)
	got := resp.Notifications[0]
	assert.Equal(t, models.NotificationNewListing, got.Type)
	assert.Contains(t, got.Message, "Pune")
	require.NotNil(t, got.Property)
	assert.Equal(t, flat.ID.String(), got.Property.ID)
}

func TestNotificationDelete(t *testing.T) {
	f := newFixture(t)
	b1 := f.h.CreateTestUser("Asha", models.RoleBuyer, true)
	b2 := f.h.CreateTestUser("Ravi", models.RoleBuyer, true)
	owner := f.h.CreateTestUser("Owner", models.RoleOwner, true)
	flat := f.h.CreateTestFlat(owner, "Aundh 3BHK", 40000)

	_, err := f.notifications.NotifyNewListing(f.h.Ctx, flat)
	require.NoError(t, err)
	resp, err := f.notifications.List(f.h.Ctx, b1.ID)
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 1)
	id := uuid.MustParse(resp.Notifications[0].ID)

	require.NoError(t, f.notifications.Delete(f.h.Ctx, b1.ID, id))
	assert.Equal(t, 0, f.h.Store.InboxSize(b1.ID))
	assert.True(t, f.h.Store.NotificationExists(id), "still referenced by another inbox")

	err = f.notifications.Delete(f.h.Ctx, b1.ID, id)
	requireAppError(t, err, 404, "")

	require.NoError(t, f.notifications.Delete(f.h.Ctx, b2.ID, id))
	assert.False(t, f.h.Store.NotificationExists(id))
}

func TestNotificationList_DeletedFlatResolvesToNull(t *testing.T) {
	f := newFixture(t)
	buyer := f.h.CreateTestUser("Asha", models.RoleBuyer, true)
	owner := f.h.CreateTestUser("Owner", models.RoleOwner, true)
	flat := f.h.CreateTestFlat(owner, "Hadapsar 2BHK", 18000)

	_, err := f.notifications.NotifyNewListing(f.h.Ctx, flat)
	require.NoError(t, err)
	require.NoError(t, f.h.Flats.Delete(f.h.Ctx, flat.ID))

	resp, err := f.notifications.List(f.h.Ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 1)
	assert.Nil(t, resp.Notifications[0].Property)
}

func TestNotifyPriceDrop_Favoriters(t *testing.T) {
	f := newFixture(t)
	fan := f.h.CreateTestUser("Fan", models.RoleBuyer, true)
	other := f.h.CreateTestUser("Other", models.RoleBuyer, true)
	owner := f.h.CreateTestUser("Owner", models.RoleOwner, true)
	flat := f.h.CreateTestFlat(owner, "Kothrud 2BHK", 20000)

	require.NoError(t, f.wishlist.Add(f.h.Ctx, fan.ID, flat.ID))

	flat.Price = 18000
	n, err := f.notifications.NotifyPriceDrop(f.h.Ctx, flat, 20000)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, f.h.Store.InboxSize(fan.ID))
	assert.Equal(t, 0, f.h.Store.InboxSize(other.ID))

	resp, err := f.notifications.List(f.h.Ctx, fan.ID)
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, models.NotificationPriceDrop, resp.Notifications[0].Type)
}

func TestBroadcastAdminMessage_AllUsers(t *testing.T) {
	f := newFixture(t)
	buyer := f.h.CreateTestUser("Asha", models.RoleBuyer, true)
	owner := f.h.CreateTestUser("Owner", models.RoleOwner, false)

	n, delivered, err := f.notifications.BroadcastAdminMessage(f.h.Ctx, "Maintenance tonight")
	require.NoError(t, err)
	assert.Equal(t, int64(2), delivered)
	assert.Nil(t, n.FlatID)
	assert.Equal(t, 1, f.h.Store.InboxSize(buyer.ID))
	assert.Equal(t, 1, f.h.Store.InboxSize(owner.ID))
}

func TestBroadcastToNobodyStoresNothing(t *testing.T) {
	f := newFixture(t)
	owner := f.h.CreateTestUser("Owner", models.RoleOwner, true)
	flat := f.h.CreateTestFlat(owner, "Hadapsar 1BHK", 9000)

	n, err := f.notifications.NotifyPriceDrop(f.h.Ctx, flat, 10000)
	require.NoError(t, err)
	assert.Zero(t, n)

	t.Log("No buyers exist yet, so the new-listing broadcast reaches no one")
	n, err = f.notifications.NotifyNewListing(f.h.Ctx, flat)
	require.NoError(t, err)
	assert.Zero(t, n)

	note, delivered, err := f.notifications.BroadcastAdminMessage(f.h.Ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, int64(1), delivered)
	assert.True(t, f.h.Store.NotificationExists(note.ID))
	assert.Equal(t, 1, f.h.Store.NotificationCount(), "only the delivered broadcast is stored")
}
