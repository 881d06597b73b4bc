package entity

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaselineObserveEvictsOldest(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	b := NewUserBehaviorBaseline("b-1", "user-1", start)

	for i := 0; i < 12; i++ {
		at := start.Add(time.Duration(i) * time.Hour)
		b.Observe(&LoginAttempt{
			IP:       fmt.Sprintf("10.0.0.%d", i),
			Location: GeoLocation{Country: "BR", Region: "SP", City: fmt.Sprintf("city-%d", i)},
			Device:   DeviceInfo{Fingerprint: fmt.Sprintf("device-%d", i)},
		}, at)
	}

	require.Len(t, b.RecentIPs, MaxRecentIPs)
	assert.Equal(t, "10.0.0.2", b.RecentIPs[0])
	assert.Equal(t, "10.0.0.11", b.RecentIPs[MaxRecentIPs-1])

	require.Len(t, b.Locations, MaxLocations)
	assert.Equal(t, "BR,SP,city-7", b.Locations[0])

	require.Len(t, b.Devices, MaxDevices)
	assert.Equal(t, "device-7", b.Devices[0])

	require.Len(t, b.TypicalHours, MaxTypicalHours)
	assert.Equal(t, []int{4, 5, 6, 7, 8, 9, 10, 11}, b.TypicalHours)
	assert.Len(t, b.TypicalDays, 1)
}

func TestBaselineObserveIgnoresKnownValues(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	b := NewUserBehaviorBaseline("b-1", "user-1", now)
	attempt := &LoginAttempt{
		IP:       "10.0.0.1",
		Location: GeoLocation{Country: "BR", Region: "SP", City: "Sao Paulo"},
		Device:   DeviceInfo{Fingerprint: "device-1"},
	}

	b.Observe(attempt, now)
	b.Observe(attempt, now.Add(10*time.Minute))

	assert.Equal(t, []string{"10.0.0.1"}, b.RecentIPs)
	assert.Equal(t, []string{"BR,SP,Sao Paulo"}, b.Locations)
	assert.Equal(t, []string{"device-1"}, b.Devices)
	assert.Equal(t, []int{9}, b.TypicalHours)
	assert.True(t, b.HasCountry("BR"))
	assert.False(t, b.HasCountry("US"))
}

func TestBaselineObserveSkipsUnknownLocation(t *testing.T) {
	now := time.Now()
	b := NewUserBehaviorBaseline("b-1", "user-1", now)

	b.Observe(&LoginAttempt{IP: "10.0.0.1"}, now)

	assert.Empty(t, b.Locations)
	assert.Empty(t, b.Devices)
}

func TestOtpSessionLifecycle(t *testing.T) {
	now := time.Now()
	s := &OtpSession{MaxAttempts: 3, CreatedAt: now, ExpiresAt: now.Add(10 * time.Minute)}

	assert.False(t, s.IsTerminal(now))
	assert.False(t, s.RecordFailure())
	assert.False(t, s.RecordFailure())
	assert.Equal(t, 1, s.RemainingAttempts())
	assert.True(t, s.RecordFailure())
	assert.Equal(t, 0, s.RemainingAttempts())
	assert.True(t, s.IsTerminal(now))

	s.Reissue("hash", now, 10*time.Minute)
	assert.False(t, s.IsBlocked)
	assert.Equal(t, 0, s.AttemptCount)
	assert.True(t, s.IsExpired(now.Add(11*time.Minute)))
}

func TestUserSessionExpiryReason(t *testing.T) {
	now := time.Now()
	s := &UserSession{
		IsActive:                 true,
		CreatedAt:                now,
		ExpiresAt:                now.Add(8 * time.Hour),
		LastActivityAt:           now,
		InactivityTimeoutMinutes: 30,
	}

	assert.Empty(t, s.ExpiryReason(now.Add(29*time.Minute)))
	assert.Equal(t, RevokeReasonInactivity, s.ExpiryReason(now.Add(31*time.Minute)))
	assert.Equal(t, RevokeReasonExpired, s.ExpiryReason(now.Add(9*time.Hour)))

	assert.True(t, s.Revoke(RevokeReasonLogout, now))
	assert.False(t, s.Revoke("again", now))
	assert.Equal(t, RevokeReasonLogout, s.RevokedReason)
}

func TestAnomalyResolve(t *testing.T) {
	a := &AnomalyRecord{Status: AnomalyStatusPending, Severity: SeverityHigh}
	now := time.Now()

	require.NoError(t, a.Resolve("admin-1", "confirmed by phone", now))
	assert.True(t, a.IsResolved())
	assert.Equal(t, "admin-1", *a.ResolvedBy)
	assert.ErrorIs(t, a.Resolve("admin-2", "", now), ErrAnomalyAlreadyResolved)
	assert.True(t, a.RequiresAction())
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "Critical", SeverityCritical.String())
	assert.Equal(t, "High", SeverityHigh.String())
	assert.Equal(t, "Medium", SeverityMedium.String())
	assert.Equal(t, "Low", SeverityLow.String())
	assert.Equal(t, "Minimal", SeverityMinimal.String())
}

func TestParseMFAMethod(t *testing.T) {
	m, ok := ParseMFAMethod(" SMS ")
	assert.True(t, ok)
	assert.Equal(t, MFAMethodSMS, m)

	_, ok = ParseMFAMethod("push")
	assert.False(t, ok)
}
