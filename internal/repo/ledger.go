package repo

import (
	"context"
	"fmt"

	"github.com/pkordes/travelbook/internal/domain"
)

// SeatLedger is the only writer of trips.available_seats.
// Both operations must run on the same transaction as the booking row write
// they accompany.
type SeatLedger interface {
	// Reserve removes count seats from the trip. It fails with
	// domain.ErrInsufficientCapacity, leaving the trip unchanged, when fewer
	// than count seats are available or the trip does not exist.
	Reserve(ctx context.Context, tripID int64, count int) error

	// Release returns count seats to the trip. There is no upper bound
	// against the trip's original capacity.
	// Returns domain.ErrTripNotFound if the trip does not exist.
	Release(ctx context.Context, tripID int64, count int) error
}

// sqlSeatLedger is the database/sql implementation of SeatLedger.
type sqlSeatLedger struct {
	c conn
}

// NewSeatLedger constructs a SeatLedger backed by the provided db handle.
func NewSeatLedger(db db, d Dialect) SeatLedger {
	return &sqlSeatLedger{c: conn{db: db, dialect: d}}
}

// Reserve is a compare-and-swap on available_seats: the guard in the WHERE
// clause and the decrement are one statement, so the count cannot go below
// zero even when two writers race on the same trip.
func (l *sqlSeatLedger) Reserve(ctx context.Context, tripID int64, count int) error {
	if count < 1 {
		return fmt.Errorf("repo.SeatLedger.Reserve: %w: seat count must be at least 1", domain.ErrValidation)
	}
	const q = `
		UPDATE trips
		SET available_seats = available_seats - ?
		WHERE id = ? AND available_seats >= ?`

	res, err := l.c.exec(ctx, q, count, tripID, count)
	if err != nil {
		return fmt.Errorf("repo.SeatLedger.Reserve: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repo.SeatLedger.Reserve: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("repo.SeatLedger.Reserve: %w", domain.ErrInsufficientCapacity)
	}
	return nil
}

func (l *sqlSeatLedger) Release(ctx context.Context, tripID int64, count int) error {
	if count < 1 {
		return fmt.Errorf("repo.SeatLedger.Release: %w: seat count must be at least 1", domain.ErrValidation)
	}
	const q = `
		UPDATE trips
		SET available_seats = available_seats + ?
		WHERE id = ?`

	res, err := l.c.exec(ctx, q, count, tripID)
	if err != nil {
		return fmt.Errorf("repo.SeatLedger.Release: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repo.SeatLedger.Release: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("repo.SeatLedger.Release: %w", domain.ErrTripNotFound)
	}
	return nil
}
