package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/repo"
)

// TripService implements the administrator's trip catalog operations and the
// public trip search.
type TripService struct {
	uow UnitOfWork
}

// NewTripService constructs a TripService over the given unit of work.
func NewTripService(uow UnitOfWork) *TripService {
	return &TripService{uow: uow}
}

// Add validates and persists a new trip whose available seats start at
// in.Seats. Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Add(ctx context.Context, in domain.TripInput) (domain.Trip, error) {
	in = trimTripInput(in)
	if err := validateTripInput(in); err != nil {
		return domain.Trip{}, err
	}
	trip, err := s.uow.Repos().Trips.Create(ctx, in)
	if err != nil {
		return domain.Trip{}, wrap("service.TripService.Add", err)
	}
	return trip, nil
}

// Delete removes a trip that no booking references, whatever the booking's
// status. Returns domain.ErrTripInUse if any booking exists and
// domain.ErrTripNotFound if the trip does not exist.
func (s *TripService) Delete(ctx context.Context, tripID int64) error {
	err := s.uow.InTx(ctx, func(r repo.Repos) error {
		n, err := r.Bookings.CountByTrip(ctx, tripID)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: %d booking(s) reference trip %d", domain.ErrTripInUse, n, tripID)
		}
		return translateNotFound(r.Trips.Delete(ctx, tripID), domain.ErrTripNotFound)
	})
	if err != nil {
		return wrap("service.TripService.Delete", err)
	}
	return nil
}

// Search returns bookable trips matching every non-empty field of f.
// Returns domain.ErrValidation for a malformed date or an unknown mode.
func (s *TripService) Search(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error) {
	f.Source = strings.TrimSpace(f.Source)
	f.Destination = strings.TrimSpace(f.Destination)
	f.Date = strings.TrimSpace(f.Date)

	if f.Date != "" {
		if _, err := time.Parse(domain.DateLayout, f.Date); err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
		}
	}
	if f.Mode != "" && !f.Mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown mode %q", domain.ErrValidation, f.Mode)
	}

	trips, err := s.uow.Repos().Trips.Search(ctx, f)
	if err != nil {
		return nil, wrap("service.TripService.Search", err)
	}
	return nonNil(trips), nil
}

// List returns every trip, sold-out ones included.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.uow.Repos().Trips.List(ctx)
	if err != nil {
		return nil, wrap("service.TripService.List", err)
	}
	return nonNil(trips), nil
}

// Get returns a single trip. Returns domain.ErrTripNotFound if it does not exist.
func (s *TripService) Get(ctx context.Context, tripID int64) (domain.Trip, error) {
	trip, err := s.uow.Repos().Trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, wrap("service.TripService.Get", translateNotFound(err, domain.ErrTripNotFound))
	}
	return trip, nil
}

func trimTripInput(in domain.TripInput) domain.TripInput {
	in.Source = strings.TrimSpace(in.Source)
	in.Destination = strings.TrimSpace(in.Destination)
	in.Date = strings.TrimSpace(in.Date)
	in.Mode = domain.Mode(strings.TrimSpace(string(in.Mode)))
	in.Duration = strings.TrimSpace(in.Duration)
	in.DepartureTime = strings.TrimSpace(in.DepartureTime)
	in.ArrivalTime = strings.TrimSpace(in.ArrivalTime)
	return in
}

// validateTripInput enforces the rules for a new trip:
//   - every text field is required,
//   - date parses as YYYY-MM-DD and mode is a known Mode,
//   - price and seats are positive.
func validateTripInput(in domain.TripInput) error {
	required := []struct {
		name, value string
	}{
		{"source", in.Source},
		{"destination", in.Destination},
		{"date", in.Date},
		{"mode", string(in.Mode)},
		{"duration", in.Duration},
		{"departure time", in.DepartureTime},
		{"arrival time", in.ArrivalTime},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrValidation, f.name)
		}
	}
	if _, err := time.Parse(domain.DateLayout, in.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}
	if !in.Mode.IsValid() {
		return fmt.Errorf("%w: mode must be one of flight, train, bus", domain.ErrValidation)
	}
	if in.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", domain.ErrValidation)
	}
	if in.Seats <= 0 {
		return fmt.Errorf("%w: seats must be positive", domain.ErrValidation)
	}
	return nil
}
