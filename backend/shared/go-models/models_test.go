package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"buyer", "owner", "admin"} {
		r, err := ParseRole(s)
		require.NoError(t, err)
		assert.True(t, r.Valid())
	}
	_, err := ParseRole("superuser")
	assert.Error(t, err)
}

func TestRolePolicies(t *testing.T) {
	assert.True(t, RoleBuyer.CanBook())
	assert.False(t, RoleBuyer.CanList())
	assert.False(t, RoleBuyer.RequiresApproval())

	assert.True(t, RoleOwner.CanList())
	assert.False(t, RoleOwner.CanBook())
	assert.True(t, RoleOwner.RequiresApproval())

	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, Role("ghost").CanList())
}

func TestUserCanPublish(t *testing.T) {
	owner := &User{Role: RoleOwner}
	assert.False(t, owner.CanPublish())
	owner.IsAdminApproved = true
	assert.True(t, owner.CanPublish())
	assert.False(t, (&User{Role: RoleBuyer, IsAdminApproved: true}).CanPublish())
	assert.True(t, (&User{Role: RoleAdmin}).CanPublish())
}

func TestPaymentStatusTransitions(t *testing.T) {
	assert.True(t, PaymentStatusPending.CanTransitionTo(PaymentStatusCompleted))
	assert.True(t, PaymentStatusPending.CanTransitionTo(PaymentStatusFailed))
	assert.False(t, PaymentStatusPending.CanTransitionTo(PaymentStatusPending))
	assert.False(t, PaymentStatusCompleted.CanTransitionTo(PaymentStatusFailed))
	assert.False(t, PaymentStatusFailed.CanTransitionTo(PaymentStatusCompleted))

	assert.True(t, PaymentStatusPending.BlocksDates())
	assert.True(t, PaymentStatusCompleted.BlocksDates())
	assert.False(t, PaymentStatusFailed.BlocksDates())
}

func TestFlatTypeEnumHasTenValues(t *testing.T) {
	assert.Len(t, FlatTypes, 10)
	ft, err := ParseFlatType("Row House")
	require.NoError(t, err)
	assert.Equal(t, FlatTypeRowHouse, ft)
	_, err = ParseFlatType("Castle")
	assert.Error(t, err)
}

func TestOrderedPairIsSymmetric(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	l1, h1 := OrderedPair(a, b)
	l2, h2 := OrderedPair(b, a)
	assert.Equal(t, l1, l2)
	assert.Equal(t, h1, h2)
	assert.True(t, l1.String() < h1.String())
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestBookingOverlaps(t *testing.T) {
	b := &Booking{StartDate: date(t, "2024-01-01"), EndDate: date(t, "2024-03-01")}

	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"inside", "2024-02-15", "2024-02-20", true},
		{"starts on existing end", "2024-03-01", "2024-03-05", true},
		{"ends on existing start", "2023-12-20", "2024-01-01", true},
		{"day after end", "2024-03-02", "2024-03-10", false},
		{"entirely before", "2023-11-01", "2023-12-31", false},
		{"enclosing", "2023-12-01", "2024-04-01", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, b.Overlaps(date(t, tc.start), date(t, tc.end)))
		})
	}
}

func TestBookingBlocks(t *testing.T) {
	start, end := date(t, "2024-02-15"), date(t, "2024-02-25")
	for status, want := range map[PaymentStatus]bool{
		PaymentStatusPending:   true,
		PaymentStatusCompleted: true,
		PaymentStatusFailed:    false,
	} {
		b := &Booking{StartDate: date(t, "2024-02-20"), EndDate: date(t, "2024-03-10"), PaymentStatus: status}
		assert.Equal(t, want, b.Blocks(start, end), string(status))
	}
	far := &Booking{StartDate: date(t, "2024-04-01"), EndDate: date(t, "2024-04-05"), PaymentStatus: PaymentStatusCompleted}
	assert.False(t, far.Blocks(start, end))
}
