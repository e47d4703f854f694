package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveOwner(t *testing.T) {
	f := newFixture(t)
	admin := f.h.CreateTestUser("Admin", models.RoleAdmin, true)
	owner := f.h.CreateTestUser("Owner", models.RoleOwner, false)
	buyer := f.h.CreateTestUser("Asha", models.RoleBuyer, true)

	pending, err := f.admin.PendingOwners(f.h.Ctx)
	require.NoError(t, err)
	require.Len(t, pending.Owners, 1)
	assert.Equal(t, owner.ID.String(), pending.Owners[0].ID)

	summary, err := f.admin.ApproveOwner(f.h.Ctx, admin.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, summary.Approved)
	assert.Equal(t, 1, f.h.Store.InboxSize(owner.ID))

	pending, err = f.admin.PendingOwners(f.h.Ctx)
	require.NoError(t, err)
	assert.Empty(t, pending.Owners)

	// Approved owners can now list.
	_, err = f.flats.Create(f.h.Ctx, Actor{ID: owner.ID, Role: owner.Role}, newFlatRequest("Fresh listing", 9000))
	require.NoError(t, err)

	_, err = f.admin.ApproveOwner(f.h.Ctx, admin.ID, buyer.ID)
	requireAppError(t, err, 400, utils.ErrCodeValidation)
	_, err = f.admin.ApproveOwner(f.h.Ctx, admin.ID, uuid.New())
	requireAppError(t, err, 404, "")

	logs := f.h.Store.AuditLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, models.AuditApprove, logs[0].Action)
	assert.Equal(t, owner.ID, logs[0].TargetID)
	assert.Equal(t, admin.ID, logs[0].AdminID)
}

func TestAdminDeleteFlat(t *testing.T) {
	f := newFixture(t)
	admin := f.h.CreateTestUser("Admin", models.RoleAdmin, true)
	owner := f.h.CreateTestUser("Owner", models.RoleOwner, true)
	flat := f.h.CreateTestFlat(owner, "Spam listing", 1)

	require.NoError(t, f.admin.DeleteFlat(f.h.Ctx, admin.ID, flat.ID))
	requireAppError(t, f.admin.DeleteFlat(f.h.Ctx, admin.ID, flat.ID), 404, "")

	logs := f.h.Store.AuditLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, models.AuditDelete, logs[0].Action)
	assert.Equal(t, models.TargetFlat, logs[0].TargetType)
}

func TestAdminBroadcastAndStats(t *testing.T) {
	f := newFixture(t)
	admin := f.h.CreateTestUser("Admin", models.RoleAdmin, true)
	owner := f.h.CreateTestUser("Owner", models.RoleOwner, true)
	buyer := f.h.CreateTestUser("Asha", models.RoleBuyer, true)
	flat := f.h.CreateTestFlat(owner, "Pimple Saudagar 2BHK", 16000)

	resp, err := f.admin.Broadcast(f.h.Ctx, admin.ID, "Diwali offers are live")
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Delivered)
	assert.Equal(t, 1, f.h.Store.InboxSize(buyer.ID))

	_, err = f.bookings.CreateBooking(f.h.Ctx, CreateBookingInput{
		UserID:      buyer.ID,
		FlatID:      flat.ID,
		StartDate:   f.h.Date("2024-10-01"),
		EndDate:     f.h.Date("2024-10-10"),
		TotalAmount: 5000,
	})
	require.NoError(t, err)

	stats, err := f.admin.Stats(f.h.Ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Flats)
	assert.Equal(t, int64(1), stats.UsersByRole[models.RoleBuyer])
	assert.Equal(t, int64(1), stats.UsersByRole[models.RoleAdmin])
	assert.Equal(t, int64(1), stats.BookingsByPayment[models.PaymentStatusPending])

	logs, err := f.admin.AuditLogs(f.h.Ctx, 0)
	require.NoError(t, err)
	require.Len(t, logs.Logs, 1)
	assert.Equal(t, models.AuditBroadcast, logs.Logs[0].Action)
}
