package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/repo"
)

func seatsOf(t *testing.T, r repo.Repos, id int64) int {
	t.Helper()
	trip, err := r.Trips.GetByID(context.Background(), id)
	require.NoError(t, err)
	return trip.AvailableSeats
}

func TestSeatLedger_ReserveAndRelease(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	trip := mustCreateTrip(t, r, tripFixture()) // 10 seats

	require.NoError(t, r.Seats.Reserve(ctx, trip.ID, 3))
	assert.Equal(t, 7, seatsOf(t, r, trip.ID))

	require.NoError(t, r.Seats.Release(ctx, trip.ID, 3))
	assert.Equal(t, 10, seatsOf(t, r, trip.ID))
}

func TestSeatLedger_Reserve_ExactlyAllSeats(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	trip := mustCreateTrip(t, r, tripFixture())

	require.NoError(t, r.Seats.Reserve(ctx, trip.ID, 10))
	assert.Equal(t, 0, seatsOf(t, r, trip.ID))
}

func TestSeatLedger_Reserve_OverCapacityLeavesSeatsUnchanged(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	trip := mustCreateTrip(t, r, tripFixture())

	err := r.Seats.Reserve(ctx, trip.ID, 11)

	assert.ErrorIs(t, err, domain.ErrInsufficientCapacity)
	assert.Equal(t, 10, seatsOf(t, r, trip.ID), "a rejected reserve must not partially decrement")
}

func TestSeatLedger_Reserve_NeverNegative(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	trip := mustCreateTrip(t, r, tripFixture())

	for i := 0; i < 10; i++ {
		require.NoError(t, r.Seats.Reserve(ctx, trip.ID, 1))
	}
	err := r.Seats.Reserve(ctx, trip.ID, 1)

	assert.ErrorIs(t, err, domain.ErrInsufficientCapacity)
	assert.Equal(t, 0, seatsOf(t, r, trip.ID))
}

func TestSeatLedger_Reserve_MissingTrip(t *testing.T) {
	r := newTestRepos(t)

	err := r.Seats.Reserve(context.Background(), 999, 1)

	assert.ErrorIs(t, err, domain.ErrInsufficientCapacity)
}

func TestSeatLedger_InvalidCount(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	trip := mustCreateTrip(t, r, tripFixture())

	for _, n := range []int{0, -2} {
		assert.ErrorIs(t, r.Seats.Reserve(ctx, trip.ID, n), domain.ErrValidation)
		assert.ErrorIs(t, r.Seats.Release(ctx, trip.ID, n), domain.ErrValidation)
	}
	assert.Equal(t, 10, seatsOf(t, r, trip.ID))
}

func TestSeatLedger_Release_HasNoUpperBound(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	trip := mustCreateTrip(t, r, tripFixture())

	require.NoError(t, r.Seats.Release(ctx, trip.ID, 5))
	assert.Equal(t, 15, seatsOf(t, r, trip.ID))
}

func TestSeatLedger_Release_MissingTrip(t *testing.T) {
	r := newTestRepos(t)

	err := r.Seats.Release(context.Background(), 999, 1)

	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}
