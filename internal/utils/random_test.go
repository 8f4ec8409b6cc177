package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
)

func TestGenerateRandomTrip(t *testing.T) {
	for i := 0; i < 20; i++ {
		trip := GenerateRandomTrip()

		require.NotEmpty(t, trip.Name)
		require.NotEmpty(t, trip.Location)
		require.False(t, trip.EndDate.Before(trip.StartDate))
		require.GreaterOrEqual(t, trip.TotalDays(), 2)
		require.LessOrEqual(t, trip.TotalDays(), 7)
	}
}

func TestGenerateRandomAvailability(t *testing.T) {
	trip := &domain.Trip{
		StartDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC),
	}

	for i := 0; i < 20; i++ {
		dates := GenerateRandomAvailability(trip)

		require.NotEmpty(t, dates)
		require.LessOrEqual(t, len(dates), trip.TotalDays())

		seen := make(map[time.Time]bool)
		for _, d := range dates {
			require.False(t, d.Before(trip.StartDate))
			require.False(t, d.After(trip.EndDate))
			require.False(t, seen[d], "空闲日期不应重复")
			seen[d] = true
		}
	}
}

func TestGenerateRandomParticipant(t *testing.T) {
	trip := GenerateRandomTrip()
	trip.ID = 42

	for i := 0; i < 20; i++ {
		p := GenerateRandomParticipant(trip, "example.com")

		require.Equal(t, int64(42), p.TripID)
		require.NotEmpty(t, p.Name)
		require.Contains(t, p.Email, "@example.com")
		require.GreaterOrEqual(t, p.CookingPreference, int32(-2))
		require.LessOrEqual(t, p.CookingPreference, int32(2))
		require.True(t, p.IsActive)
		require.NotEmpty(t, p.AvailabilityDates)
	}
}

func TestGenerateRandomOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		otp := GenerateRandomOTP()
		require.Len(t, otp, 6)
		for _, c := range otp {
			require.True(t, c >= '0' && c <= '9')
		}
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	require.Len(t, GenerateRandomPassword(12), 12)
	require.Empty(t, GenerateRandomPassword(0))
}
