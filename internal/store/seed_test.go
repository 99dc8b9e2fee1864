package store_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/store"
	"github.com/pkordes/travelbook/testutil"
)

// seedAdmin returns a SeedAdmin whose Hash yields hash and counts its calls.
func seedAdmin(hash string, calls *int) store.SeedAdmin {
	return store.SeedAdmin{
		Name:  "Admin User",
		Email: "admin@travel.com",
		Hash: func() (string, error) {
			*calls++
			return hash, nil
		},
	}
}

func TestSeed_TwiceYieldsOneCopy(t *testing.T) {
	s := testutil.NewStore(t)
	ctx := context.Background()
	var hashes int
	admin := seedAdmin("hash", &hashes)

	first, err := s.Seed(ctx, admin)
	require.NoError(t, err)
	assert.True(t, first.AdminCreated)
	assert.Equal(t, store.SeedTripCount, first.TripsCreated)

	second, err := s.Seed(ctx, admin)
	require.NoError(t, err)
	assert.False(t, second.AdminCreated)
	assert.Zero(t, second.TripsCreated)
	assert.Equal(t, 1, hashes, "an existing admin is not hashed again")

	n, err := s.Repos().Trips.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	u, err := s.Repos().Users.GetByEmail(ctx, "admin@travel.com")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
	assert.Equal(t, "Admin User", u.Name)
}

func TestSeed_Trips(t *testing.T) {
	s := testutil.NewStore(t)
	ctx := context.Background()
	var hashes int

	_, err := s.Seed(ctx, seedAdmin("hash", &hashes))
	require.NoError(t, err)

	trips, err := s.Repos().Trips.List(ctx)
	require.NoError(t, err)
	require.Len(t, trips, 8)

	first := trips[0]
	assert.Equal(t, "Delhi → Mumbai", first.Route())
	assert.Equal(t, "2025-01-25", first.Date)
	assert.Equal(t, "06:00", first.DepartureTime)
	assert.Equal(t, domain.ModeFlight, first.Mode)
	assert.Equal(t, domain.Units(5500), first.Price)
	assert.Equal(t, 45, first.AvailableSeats)

	last := trips[len(trips)-1]
	assert.Equal(t, "Kolkata → Delhi", last.Route())
	assert.Equal(t, 100, last.AvailableSeats)
}

func TestSeed_KeepsExistingAdminPassword(t *testing.T) {
	s := testutil.NewStore(t)
	ctx := context.Background()

	var hashes int
	_, err := s.Seed(ctx, seedAdmin("hash", &hashes))
	require.NoError(t, err)

	_, err = s.Seed(ctx, seedAdmin("other", &hashes))
	require.NoError(t, err)

	u, err := s.Repos().Users.GetByEmail(ctx, "admin@travel.com")
	require.NoError(t, err)
	assert.Equal(t, "hash", u.PasswordHash)
}

func TestSeed_HashFailure(t *testing.T) {
	s := testutil.NewStore(t)
	ctx := context.Background()
	admin := store.SeedAdmin{
		Name:  "Admin User",
		Email: "admin@travel.com",
		Hash: func() (string, error) {
			return "", fmt.Errorf("%w: password must be at most 72 bytes", domain.ErrValidation)
		},
	}

	_, err := s.Seed(ctx, admin)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrStoreUnavailable)
	n, err := s.Repos().Trips.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "a failed seed rolls back")
}
