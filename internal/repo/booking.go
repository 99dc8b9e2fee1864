package repo

import (
	"context"
	"fmt"

	"github.com/pkordes/travelbook/internal/domain"
)

// BookingRepo defines the persistence operations for Bookings.
// Bookings are never deleted; the only mutation is a guarded status change.
type BookingRepo interface {
	// Create inserts a booking and returns the persisted record with the
	// DB-generated id and booking_date. Returns domain.ErrNotFound when the
	// trip or the user does not exist.
	Create(ctx context.Context, b domain.Booking) (domain.Booking, error)

	// FindConfirmed returns the booking with the given id only if it belongs
	// to userID and is still confirmed. Returns domain.ErrNotFound otherwise.
	FindConfirmed(ctx context.Context, bookingID, userID int64) (domain.Booking, error)

	// UpdateStatus moves a booking from one status to another. The update is
	// guarded by the current status; returns domain.ErrNotFound when no row
	// with that id is in status from.
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error

	// CountByTrip returns the number of bookings of any status on a trip.
	CountByTrip(ctx context.Context, tripID int64) (int, error)

	// GetView returns one booking owned by userID joined with its trip.
	// Returns domain.ErrNotFound otherwise.
	GetView(ctx context.Context, bookingID, userID int64) (domain.BookingView, error)

	// ListByUser returns all bookings of a user, any status, newest first.
	ListByUser(ctx context.Context, userID int64) ([]domain.BookingView, error)

	// ListAll returns every booking, newest first.
	ListAll(ctx context.Context) ([]domain.BookingView, error)
}

// sqlBookingRepo is the database/sql implementation of BookingRepo.
type sqlBookingRepo struct {
	c conn
}

// NewBookingRepo constructs a BookingRepo backed by the provided db handle.
func NewBookingRepo(db db, d Dialect) BookingRepo {
	return &sqlBookingRepo{c: conn{db: db, dialect: d}}
}

const bookingColumns = `id, user_id, trip_id, passengers, total_amount, booking_date, status`

// viewSelect joins a booking with its trip and owner. Callers append the
// WHERE clause and ordering.
const viewSelect = `
		SELECT b.id, b.user_id, b.trip_id, b.passengers, b.total_amount, b.booking_date, b.status,
		       t.source, t.destination, t.travel_date, t.mode, t.departure_time, t.arrival_time, t.duration,
		       u.name, u.email
		FROM bookings b
		JOIN trips t ON t.id = b.trip_id
		JOIN users u ON u.id = b.user_id`

// newestFirst orders by creation time; the id breaks ties between bookings
// created within the same timestamp resolution.
const newestFirst = ` ORDER BY b.booking_date DESC, b.id DESC`

func (r *sqlBookingRepo) Create(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	q := `
		INSERT INTO bookings (user_id, trip_id, passengers, total_amount, status)
		VALUES (?, ?, ?, ?, ?)
		RETURNING ` + bookingColumns

	row := r.c.queryRow(ctx, q, b.UserID, b.TripID, b.Passengers, int64(b.TotalAmount), string(b.Status))
	result, err := scanBooking(row)
	if isForeignKeyViolation(err) {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Create: %w: trip %d or user %d", domain.ErrNotFound, b.TripID, b.UserID)
	}
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Create: %w", err)
	}
	return result, nil
}

func (r *sqlBookingRepo) FindConfirmed(ctx context.Context, bookingID, userID int64) (domain.Booking, error) {
	q := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = ? AND user_id = ? AND status = ?`

	row := r.c.queryRow(ctx, q, bookingID, userID, string(domain.StatusConfirmed))
	result, err := scanBooking(row)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.FindConfirmed: %w", err)
	}
	return result, nil
}

func (r *sqlBookingRepo) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	const q = `UPDATE bookings SET status = ? WHERE id = ? AND status = ?`

	res, err := r.c.exec(ctx, q, string(to), id, string(from))
	if err != nil {
		return fmt.Errorf("repo.BookingRepo.UpdateStatus: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repo.BookingRepo.UpdateStatus: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("repo.BookingRepo.UpdateStatus: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *sqlBookingRepo) CountByTrip(ctx context.Context, tripID int64) (int, error) {
	var n int
	err := r.c.queryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE trip_id = ?`, tripID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("repo.BookingRepo.CountByTrip: %w", err)
	}
	return n, nil
}

func (r *sqlBookingRepo) GetView(ctx context.Context, bookingID, userID int64) (domain.BookingView, error) {
	q := viewSelect + ` WHERE b.id = ? AND b.user_id = ?`

	v, err := scanView(r.c.queryRow(ctx, q, bookingID, userID))
	if err != nil {
		return domain.BookingView{}, fmt.Errorf("repo.BookingRepo.GetView: %w", err)
	}
	return v, nil
}

func (r *sqlBookingRepo) ListByUser(ctx context.Context, userID int64) ([]domain.BookingView, error) {
	views, err := r.queryViews(ctx, viewSelect+` WHERE b.user_id = ?`+newestFirst, userID)
	if err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.ListByUser: %w", err)
	}
	return views, nil
}

func (r *sqlBookingRepo) ListAll(ctx context.Context) ([]domain.BookingView, error) {
	views, err := r.queryViews(ctx, viewSelect+newestFirst)
	if err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.ListAll: %w", err)
	}
	return views, nil
}

func (r *sqlBookingRepo) queryViews(ctx context.Context, q string, args ...any) ([]domain.BookingView, error) {
	rows, err := r.c.query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := []domain.BookingView{}
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return views, nil
}

func scanBooking(s scanner) (domain.Booking, error) {
	var (
		b      domain.Booking
		total  int64
		status string
	)
	err := s.Scan(&b.ID, &b.UserID, &b.TripID, &b.Passengers, &total, &b.BookedAt, &status)
	if err != nil {
		return domain.Booking{}, notFound(err)
	}
	b.TotalAmount = domain.Money(total)
	b.Status = domain.BookingStatus(status)
	return b, nil
}

func scanView(s scanner) (domain.BookingView, error) {
	var (
		v      domain.BookingView
		total  int64
		status string
		mode   string
	)
	err := s.Scan(&v.ID, &v.UserID, &v.TripID, &v.Passengers, &total, &v.BookedAt, &status,
		&v.Source, &v.Destination, &v.Date, &mode, &v.DepartureTime, &v.ArrivalTime, &v.Duration,
		&v.UserName, &v.UserEmail)
	if err != nil {
		return domain.BookingView{}, notFound(err)
	}
	v.TotalAmount = domain.Money(total)
	v.Status = domain.BookingStatus(status)
	v.Mode = domain.Mode(mode)
	return v, nil
}
