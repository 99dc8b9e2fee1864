package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/travelbook/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// It never changes available_seats after insert; that belongs to SeatLedger.
type TripRepo interface {
	// Create inserts a new trip with in.Seats as its available seats and
	// returns the persisted record.
	Create(ctx context.Context, in domain.TripInput) (domain.Trip, error)

	// CreateSeed inserts a seed trip identified by key unless a trip with the
	// same key already exists. Reports whether a row was inserted.
	CreateSeed(ctx context.Context, key string, in domain.TripInput) (bool, error)

	// GetByID retrieves a single trip by primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Trip, error)

	// List returns every trip, sold-out ones included, ordered by date and
	// departure time.
	List(ctx context.Context) ([]domain.Trip, error)

	// Search returns trips with at least one available seat matching every
	// non-empty field of f, ordered by date and departure time.
	Search(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error)

	// Count returns the number of trips.
	Count(ctx context.Context) (int, error)

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}

// sqlTripRepo is the database/sql implementation of TripRepo.
type sqlTripRepo struct {
	c conn
}

// NewTripRepo constructs a TripRepo backed by the provided db handle.
func NewTripRepo(db db, d Dialect) TripRepo {
	return &sqlTripRepo{c: conn{db: db, dialect: d}}
}

const tripColumns = `id, source, destination, travel_date, price, mode, duration,
		departure_time, arrival_time, available_seats, created_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *sqlTripRepo) Create(ctx context.Context, in domain.TripInput) (domain.Trip, error) {
	q := `
		INSERT INTO trips (source, destination, travel_date, price, mode, duration,
		                   departure_time, arrival_time, available_seats)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + tripColumns

	row := r.c.queryRow(ctx, q,
		in.Source, in.Destination, in.Date, int64(in.Price), string(in.Mode), in.Duration,
		in.DepartureTime, in.ArrivalTime, in.Seats,
	)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// CreateSeed inserts a keyed seed trip; an existing key is left untouched.
func (r *sqlTripRepo) CreateSeed(ctx context.Context, key string, in domain.TripInput) (bool, error) {
	const q = `
		INSERT INTO trips (source, destination, travel_date, price, mode, duration,
		                   departure_time, arrival_time, available_seats, seed_key)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (seed_key) DO NOTHING`

	res, err := r.c.exec(ctx, q,
		in.Source, in.Destination, in.Date, int64(in.Price), string(in.Mode), in.Duration,
		in.DepartureTime, in.ArrivalTime, in.Seats, key,
	)
	if err != nil {
		return false, fmt.Errorf("repo.TripRepo.CreateSeed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("repo.TripRepo.CreateSeed: rows affected: %w", err)
	}
	return n > 0, nil
}

// GetByID retrieves a trip by primary key.
func (r *sqlTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE id = ?`

	result, err := scanTrip(r.c.queryRow(ctx, q, id))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips ordered by date, then departure time.
func (r *sqlTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips ORDER BY travel_date, departure_time, id`

	trips, err := r.queryTrips(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	return trips, nil
}

// Search builds the WHERE clause from the non-empty filter fields. Source and
// destination match case-insensitively anywhere in the value; date and mode
// match exactly. Sold-out trips are always excluded.
func (r *sqlTripRepo) Search(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error) {
	where := []string{"available_seats > 0"}
	var args []any

	if f.Source != "" {
		where = append(where, `LOWER(source) LIKE ? ESCAPE '\'`)
		args = append(args, containsPattern(f.Source))
	}
	if f.Destination != "" {
		where = append(where, `LOWER(destination) LIKE ? ESCAPE '\'`)
		args = append(args, containsPattern(f.Destination))
	}
	if f.Date != "" {
		where = append(where, "travel_date = ?")
		args = append(args, f.Date)
	}
	if f.Mode != "" {
		where = append(where, "mode = ?")
		args = append(args, string(f.Mode))
	}

	q := `SELECT ` + tripColumns + ` FROM trips
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY travel_date, departure_time, id`

	trips, err := r.queryTrips(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.Search: %w", err)
	}
	return trips, nil
}

// Count returns the total number of trips.
func (r *sqlTripRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.c.queryRow(ctx, `SELECT COUNT(*) FROM trips`).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.TripRepo.Count: %w", err)
	}
	return n, nil
}

// Delete removes a trip by primary key.
func (r *sqlTripRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.c.exec(ctx, `DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *sqlTripRepo) queryTrips(ctx context.Context, q string, args ...any) ([]domain.Trip, error) {
	rows, err := r.c.query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return trips, nil
}

// scanTrip maps a single database row in tripColumns order into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t     domain.Trip
		price int64
		mode  string
	)
	err := s.Scan(&t.ID, &t.Source, &t.Destination, &t.Date, &price, &mode, &t.Duration,
		&t.DepartureTime, &t.ArrivalTime, &t.AvailableSeats, &t.CreatedAt)
	if err != nil {
		return domain.Trip{}, notFound(err)
	}
	t.Price = domain.Money(price)
	t.Mode = domain.Mode(mode)
	return t, nil
}

// containsPattern turns user input into a lower-cased LIKE pattern matching
// the input anywhere. LIKE metacharacters in the input are escaped with '\'.
func containsPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}
