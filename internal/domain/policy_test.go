package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func TestBookingPolicy_Dates(t *testing.T) {
	policy := BookingPolicy{AdvanceBookingDays: 30}
	now := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)

	assert.True(t, policy.IsPastDate(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, policy.IsPastDate(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), now))

	assert.False(t, policy.IsTooFar(time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC), now))
	assert.True(t, policy.IsTooFar(time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC), now))

	unlimited := BookingPolicy{}
	assert.False(t, unlimited.IsTooFar(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), now))
}

func TestBookingPolicy_UsesSalonTimezone(t *testing.T) {
	tokyo := time.FixedZone("UTC+9", 9*60*60)
	policy := BookingPolicy{Location: tokyo}

	// 20:00 UTC 1 июня = 05:00 2 июня в салоне
	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	assert.True(t, policy.IsPastDate(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, tokyo), policy.Today(now))
	assert.False(t, policy.AllowsTime(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), types.MustParseTimeOfDay("4:30 AM"), now))
	assert.True(t, policy.AllowsTime(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), types.MustParseTimeOfDay("5:00 AM"), now))
}

func TestBookingPolicy_FilterSlots(t *testing.T) {
	policy := BookingPolicy{MinNoticeMinutes: 60}
	now := time.Date(2025, 6, 2, 10, 15, 0, 0, time.UTC)
	today := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	slots := []types.TimeOfDay{
		types.MustParseTimeOfDay("9:00 AM"),
		types.MustParseTimeOfDay("11:00 AM"),
		types.MustParseTimeOfDay("11:30 AM"),
		types.MustParseTimeOfDay("2:00 PM"),
	}

	got := policy.FilterSlots(today, slots, now)
	assert.Equal(t, slots[2:], got)

	tomorrow := today.AddDate(0, 0, 1)
	assert.Equal(t, slots, policy.FilterSlots(tomorrow, slots, now))

	yesterday := today.AddDate(0, 0, -1)
	assert.Empty(t, policy.FilterSlots(yesterday, slots, now))
}
