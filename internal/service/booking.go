package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/repo"
)

// BookingService owns the booking lifecycle and is the only caller of the
// seat ledger. Every mutation runs in one unit of work, so a booking row and
// its seat change commit together or not at all.
type BookingService struct {
	uow UnitOfWork
}

// NewBookingService constructs a BookingService over the given unit of work.
func NewBookingService(uow UnitOfWork) *BookingService {
	return &BookingService{uow: uow}
}

// Create books passengers seats on a trip for userID. The total is frozen
// at creation as the trip price times passengers.
// Returns domain.ErrValidation for a passenger count below 1 or a total
// too large to represent,
// domain.ErrTripNotFound for an unknown trip,
// domain.ErrInsufficientCapacity when the trip has too few seats left and
// domain.ErrUnauthenticated when userID names no account.
func (s *BookingService) Create(ctx context.Context, userID, tripID int64, passengers int) (domain.Booking, error) {
	if passengers < 1 {
		return domain.Booking{}, fmt.Errorf("%w: passengers must be at least 1", domain.ErrValidation)
	}

	var result domain.Booking
	err := s.uow.InTx(ctx, func(r repo.Repos) error {
		trip, err := r.Trips.GetByID(ctx, tripID)
		if err != nil {
			return translateNotFound(err, domain.ErrTripNotFound)
		}
		if passengers > trip.AvailableSeats {
			return fmt.Errorf("%w: requested %d, %d available", domain.ErrInsufficientCapacity, passengers, trip.AvailableSeats)
		}

		total, ok := trip.Price.CheckedTimes(passengers)
		if !ok {
			return fmt.Errorf("%w: total amount for %d passenger(s) is too large", domain.ErrValidation, passengers)
		}

		b, err := r.Bookings.Create(ctx, domain.Booking{
			UserID:      userID,
			TripID:      trip.ID,
			Passengers:  passengers,
			TotalAmount: total,
			Status:      domain.StatusConfirmed,
		})
		if errors.Is(err, domain.ErrNotFound) {
			// The trip was read above, so the missing reference is the user.
			return fmt.Errorf("%w: account %d no longer exists, sign in again", domain.ErrUnauthenticated, userID)
		}
		if err != nil {
			return err
		}
		if err := r.Seats.Reserve(ctx, trip.ID, passengers); err != nil {
			return err
		}
		result = b
		return nil
	})
	if err != nil {
		return domain.Booking{}, wrap("service.BookingService.Create", err)
	}
	return result, nil
}

// Cancel cancels a confirmed booking owned by userID and returns its seats to
// the trip. domain.ErrBookingNotFound covers an unknown id, a booking owned
// by someone else and a booking that is already cancelled.
func (s *BookingService) Cancel(ctx context.Context, bookingID, userID int64) (domain.Booking, error) {
	var result domain.Booking
	err := s.uow.InTx(ctx, func(r repo.Repos) error {
		b, err := r.Bookings.FindConfirmed(ctx, bookingID, userID)
		if err != nil {
			return translateNotFound(err, domain.ErrBookingNotFound)
		}
		if !b.Status.CanTransitionTo(domain.StatusCancelled) {
			return domain.ErrBookingNotFound
		}

		if err := r.Bookings.UpdateStatus(ctx, b.ID, b.Status, domain.StatusCancelled); err != nil {
			return translateNotFound(err, domain.ErrBookingNotFound)
		}
		if err := r.Seats.Release(ctx, b.TripID, b.Passengers); err != nil {
			return err
		}

		b.Status = domain.StatusCancelled
		result = b
		return nil
	})
	if err != nil {
		return domain.Booking{}, wrap("service.BookingService.Cancel", err)
	}
	return result, nil
}

// Get returns one booking owned by userID with its trip details.
// Returns domain.ErrBookingNotFound otherwise.
func (s *BookingService) Get(ctx context.Context, bookingID, userID int64) (domain.BookingView, error) {
	v, err := s.uow.Repos().Bookings.GetView(ctx, bookingID, userID)
	if err != nil {
		return domain.BookingView{}, wrap("service.BookingService.Get", translateNotFound(err, domain.ErrBookingNotFound))
	}
	return v, nil
}

// ListForUser returns every booking of userID, any status, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *BookingService) ListForUser(ctx context.Context, userID int64) ([]domain.BookingView, error) {
	views, err := s.uow.Repos().Bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, wrap("service.BookingService.ListForUser", err)
	}
	return nonNil(views), nil
}

// ListAll returns every booking of every user, newest first. Admin access is
// enforced by the caller.
func (s *BookingService) ListAll(ctx context.Context) ([]domain.BookingView, error) {
	views, err := s.uow.Repos().Bookings.ListAll(ctx)
	if err != nil {
		return nil, wrap("service.BookingService.ListAll", err)
	}
	return nonNil(views), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
