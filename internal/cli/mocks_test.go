package cli_test

import (
	"context"

	"github.com/pkordes/travelbook/internal/cli"
	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/repo"
)

// Test doubles for the cli interfaces. Set only the method fields your test
// needs.

type mockTrips struct {
	add    func(ctx context.Context, in domain.TripInput) (domain.Trip, error)
	delete func(ctx context.Context, tripID int64) error
	search func(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error)
	list   func(ctx context.Context) ([]domain.Trip, error)
	get    func(ctx context.Context, tripID int64) (domain.Trip, error)
}

func (m *mockTrips) Add(ctx context.Context, in domain.TripInput) (domain.Trip, error) {
	return m.add(ctx, in)
}
func (m *mockTrips) Delete(ctx context.Context, tripID int64) error { return m.delete(ctx, tripID) }
func (m *mockTrips) Search(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error) {
	return m.search(ctx, f)
}
func (m *mockTrips) List(ctx context.Context) ([]domain.Trip, error) { return m.list(ctx) }
func (m *mockTrips) Get(ctx context.Context, tripID int64) (domain.Trip, error) {
	return m.get(ctx, tripID)
}

type mockBookings struct {
	create      func(ctx context.Context, userID, tripID int64, passengers int) (domain.Booking, error)
	cancel      func(ctx context.Context, bookingID, userID int64) (domain.Booking, error)
	get         func(ctx context.Context, bookingID, userID int64) (domain.BookingView, error)
	listForUser func(ctx context.Context, userID int64) ([]domain.BookingView, error)
	listAll     func(ctx context.Context) ([]domain.BookingView, error)
}

func (m *mockBookings) Create(ctx context.Context, userID, tripID int64, passengers int) (domain.Booking, error) {
	return m.create(ctx, userID, tripID, passengers)
}
func (m *mockBookings) Cancel(ctx context.Context, bookingID, userID int64) (domain.Booking, error) {
	return m.cancel(ctx, bookingID, userID)
}
func (m *mockBookings) Get(ctx context.Context, bookingID, userID int64) (domain.BookingView, error) {
	return m.get(ctx, bookingID, userID)
}
func (m *mockBookings) ListForUser(ctx context.Context, userID int64) ([]domain.BookingView, error) {
	return m.listForUser(ctx, userID)
}
func (m *mockBookings) ListAll(ctx context.Context) ([]domain.BookingView, error) {
	return m.listAll(ctx)
}

type mockAuth struct {
	register func(ctx context.Context, name, email, password string) (domain.User, error)
	login    func(ctx context.Context, email, password string) (domain.User, error)
}

func (m *mockAuth) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	return m.register(ctx, name, email, password)
}
func (m *mockAuth) Login(ctx context.Context, email, password string) (domain.User, error) {
	return m.login(ctx, email, password)
}

type mockStats struct {
	forUser func(ctx context.Context, userID int64) (domain.UserStats, error)
	admin   func(ctx context.Context) (domain.AdminStats, error)
}

func (m *mockStats) ForUser(ctx context.Context, userID int64) (domain.UserStats, error) {
	return m.forUser(ctx, userID)
}
func (m *mockStats) Admin(ctx context.Context) (domain.AdminStats, error) { return m.admin(ctx) }

// memSessions keeps the token in memory.
type memSessions struct {
	token string
}

func (m *memSessions) Save(token string) error {
	m.token = token
	return nil
}
func (m *memSessions) Load() (string, error) {
	if m.token == "" {
		return "", domain.ErrUnauthenticated
	}
	return m.token, nil
}
func (m *memSessions) Remove() error {
	m.token = ""
	return nil
}

type mockStatus struct {
	pingErr error
	version int64
}

func (m *mockStatus) Ping(context.Context) error { return m.pingErr }
func (m *mockStatus) SchemaVersion(context.Context) (int64, error) { return m.version, nil }
func (m *mockStatus) Dialect() repo.Dialect { return repo.SQLite }

// compile-time checks: the doubles must satisfy the cli interfaces.
var (
	_ cli.TripServicer    = (*mockTrips)(nil)
	_ cli.BookingServicer = (*mockBookings)(nil)
	_ cli.AuthServicer    = (*mockAuth)(nil)
	_ cli.StatsServicer   = (*mockStats)(nil)
	_ cli.SessionStore    = (*memSessions)(nil)
	_ cli.StoreStatus     = (*mockStatus)(nil)
)
