package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/repo"
)

// SeedAdmin describes the administrator account created on first start.
// Hash is called only when the account does not exist yet.
type SeedAdmin struct {
	Name  string
	Email string
	Hash  func() (string, error)
}

// SeedResult reports how many seed rows this run inserted. Both are zero
// when the store was already seeded.
type SeedResult struct {
	AdminCreated bool
	TripsCreated int
}

type seedTrip struct {
	key string
	in  domain.TripInput
}

var seedTrips = []seedTrip{
	{"seed-1", domain.TripInput{Source: "Delhi", Destination: "Mumbai", Date: "2025-01-25", Price: domain.Units(5500), Mode: domain.ModeFlight, Duration: "2h 15m", DepartureTime: "06:00", ArrivalTime: "08:15", Seats: 45}},
	{"seed-2", domain.TripInput{Source: "Delhi", Destination: "Mumbai", Date: "2025-01-25", Price: domain.Units(1200), Mode: domain.ModeTrain, Duration: "16h 30m", DepartureTime: "22:30", ArrivalTime: "15:00", Seats: 120}},
	{"seed-3", domain.TripInput{Source: "Mumbai", Destination: "Bangalore", Date: "2025-01-26", Price: domain.Units(4200), Mode: domain.ModeFlight, Duration: "1h 45m", DepartureTime: "14:30", ArrivalTime: "16:15", Seats: 30}},
	{"seed-4", domain.TripInput{Source: "Delhi", Destination: "Bangalore", Date: "2025-01-27", Price: domain.Units(800), Mode: domain.ModeBus, Duration: "24h 00m", DepartureTime: "20:00", ArrivalTime: "20:00", Seats: 25}},
	{"seed-5", domain.TripInput{Source: "Chennai", Destination: "Kolkata", Date: "2025-01-28", Price: domain.Units(6200), Mode: domain.ModeFlight, Duration: "2h 30m", DepartureTime: "09:15", ArrivalTime: "11:45", Seats: 60}},
	{"seed-6", domain.TripInput{Source: "Bangalore", Destination: "Chennai", Date: "2025-01-29", Price: domain.Units(3800), Mode: domain.ModeFlight, Duration: "1h 30m", DepartureTime: "11:00", ArrivalTime: "12:30", Seats: 50}},
	{"seed-7", domain.TripInput{Source: "Mumbai", Destination: "Delhi", Date: "2025-01-30", Price: domain.Units(5200), Mode: domain.ModeFlight, Duration: "2h 10m", DepartureTime: "16:45", ArrivalTime: "18:55", Seats: 40}},
	{"seed-8", domain.TripInput{Source: "Kolkata", Destination: "Delhi", Date: "2025-01-31", Price: domain.Units(900), Mode: domain.ModeTrain, Duration: "17h 15m", DepartureTime: "18:30", ArrivalTime: "11:45", Seats: 100}},
}

// SeedTripCount is the number of trips Seed provisions.
var SeedTripCount = len(seedTrips)

// Seed inserts the administrator and the seed trips unless they already
// exist. Every insert is keyed on a unique column, so running Seed any number
// of times, concurrently or not, leaves exactly one copy of each row.
func (s *Store) Seed(ctx context.Context, admin SeedAdmin) (SeedResult, error) {
	var res SeedResult
	err := s.InTx(ctx, func(r repo.Repos) error {
		created, err := seedAdmin(ctx, r.Users, admin)
		if err != nil {
			return err
		}
		res.AdminCreated = created

		for _, st := range seedTrips {
			ok, err := r.Trips.CreateSeed(ctx, st.key, st.in)
			if err != nil {
				return err
			}
			if ok {
				res.TripsCreated++
			}
		}
		return nil
	})
	if domain.IsBusiness(err) {
		return SeedResult{}, fmt.Errorf("store.Seed: %w", err)
	}
	if err != nil {
		return SeedResult{}, fmt.Errorf("store.Seed: %w: %w", domain.ErrStoreUnavailable, err)
	}

	slog.InfoContext(ctx, "store seeded", "admin_created", res.AdminCreated, "trips_created", res.TripsCreated)
	return res, nil
}

// seedAdmin creates the administrator unless its email is taken. The lookup
// spares the password hash on every start after the first.
func seedAdmin(ctx context.Context, users repo.UserRepo, admin SeedAdmin) (bool, error) {
	_, err := users.GetByEmail(ctx, admin.Email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}

	hash, err := admin.Hash()
	if err != nil {
		return false, err
	}
	return users.CreateIfAbsent(ctx, domain.User{
		Name:         admin.Name,
		Email:        admin.Email,
		PasswordHash: hash,
		IsAdmin:      true,
	})
}
