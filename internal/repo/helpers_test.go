package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/repo"
	"github.com/pkordes/travelbook/testutil"
)

// newTestRepos returns pool-bound repositories on a fresh, migrated SQLite
// store. Each test gets its own file, so no cleanup SQL is needed.
func newTestRepos(t *testing.T) repo.Repos {
	t.Helper()
	return testutil.NewStore(t).Repos()
}

// tripFixture returns a domain.TripInput with sensible defaults for use in
// tests. Callers can override individual fields after calling this function.
func tripFixture() domain.TripInput {
	return domain.TripInput{
		Source:        "Delhi",
		Destination:   "Mumbai",
		Date:          "2025-01-25",
		Price:         domain.Units(1200),
		Mode:          domain.ModeTrain,
		Duration:      "16h 30m",
		DepartureTime: "22:30",
		ArrivalTime:   "15:00",
		Seats:         10,
	}
}

func userFixture(email string) domain.User {
	return domain.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "not-a-real-hash",
	}
}

func mustCreateTrip(t *testing.T, r repo.Repos, in domain.TripInput) domain.Trip {
	t.Helper()
	trip, err := r.Trips.Create(context.Background(), in)
	require.NoError(t, err, "create trip")
	return trip
}

func mustCreateUser(t *testing.T, r repo.Repos, email string) domain.User {
	t.Helper()
	u, err := r.Users.Create(context.Background(), userFixture(email))
	require.NoError(t, err, "create user")
	return u
}

func mustCreateBooking(t *testing.T, r repo.Repos, userID int64, trip domain.Trip, passengers int) domain.Booking {
	t.Helper()
	b, err := r.Bookings.Create(context.Background(), domain.Booking{
		UserID:      userID,
		TripID:      trip.ID,
		Passengers:  passengers,
		TotalAmount: trip.Price.Times(passengers),
		Status:      domain.StatusConfirmed,
	})
	require.NoError(t, err, "create booking")
	return b
}
