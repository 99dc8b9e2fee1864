package service_test

import (
	"context"

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/repo"
	"github.com/pkordes/travelbook/internal/service"
)

// The mocks below are hand-written test doubles. Each method is a function
// field; set only the ones your test needs. Calling an unset field panics,
// which fails the test loudly when the service touches something unexpected.

type mockTripRepo struct {
	create     func(ctx context.Context, in domain.TripInput) (domain.Trip, error)
	createSeed func(ctx context.Context, key string, in domain.TripInput) (bool, error)
	getByID    func(ctx context.Context, id int64) (domain.Trip, error)
	list       func(ctx context.Context) ([]domain.Trip, error)
	search     func(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error)
	count      func(ctx context.Context) (int, error)
	delete     func(ctx context.Context, id int64) error
}

func (m *mockTripRepo) Create(ctx context.Context, in domain.TripInput) (domain.Trip, error) {
	return m.create(ctx, in)
}
func (m *mockTripRepo) CreateSeed(ctx context.Context, key string, in domain.TripInput) (bool, error) {
	return m.createSeed(ctx, key, in)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) Search(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error) {
	return m.search(ctx, f)
}
func (m *mockTripRepo) Count(ctx context.Context) (int, error) {
	return m.count(ctx)
}
func (m *mockTripRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

type mockBookingRepo struct {
	create        func(ctx context.Context, b domain.Booking) (domain.Booking, error)
	findConfirmed func(ctx context.Context, bookingID, userID int64) (domain.Booking, error)
	updateStatus  func(ctx context.Context, id int64, from, to domain.BookingStatus) error
	countByTrip   func(ctx context.Context, tripID int64) (int, error)
	getView       func(ctx context.Context, bookingID, userID int64) (domain.BookingView, error)
	listByUser    func(ctx context.Context, userID int64) ([]domain.BookingView, error)
	listAll       func(ctx context.Context) ([]domain.BookingView, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	return m.create(ctx, b)
}
func (m *mockBookingRepo) FindConfirmed(ctx context.Context, bookingID, userID int64) (domain.Booking, error) {
	return m.findConfirmed(ctx, bookingID, userID)
}
func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	return m.updateStatus(ctx, id, from, to)
}
func (m *mockBookingRepo) CountByTrip(ctx context.Context, tripID int64) (int, error) {
	return m.countByTrip(ctx, tripID)
}
func (m *mockBookingRepo) GetView(ctx context.Context, bookingID, userID int64) (domain.BookingView, error) {
	return m.getView(ctx, bookingID, userID)
}
func (m *mockBookingRepo) ListByUser(ctx context.Context, userID int64) ([]domain.BookingView, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockBookingRepo) ListAll(ctx context.Context) ([]domain.BookingView, error) {
	return m.listAll(ctx)
}

type mockSeatLedger struct {
	reserve func(ctx context.Context, tripID int64, count int) error
	release func(ctx context.Context, tripID int64, count int) error
}

func (m *mockSeatLedger) Reserve(ctx context.Context, tripID int64, count int) error {
	return m.reserve(ctx, tripID, count)
}
func (m *mockSeatLedger) Release(ctx context.Context, tripID int64, count int) error {
	return m.release(ctx, tripID, count)
}

type mockUserRepo struct {
	create         func(ctx context.Context, u domain.User) (domain.User, error)
	createIfAbsent func(ctx context.Context, u domain.User) (bool, error)
	getByEmail     func(ctx context.Context, email string) (domain.User, error)
	getByID        func(ctx context.Context, id int64) (domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.create(ctx, u)
}
func (m *mockUserRepo) CreateIfAbsent(ctx context.Context, u domain.User) (bool, error) {
	return m.createIfAbsent(ctx, u)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return m.getByID(ctx, id)
}

// fakeUoW runs InTx callbacks directly against its repos and records the
// outcome so tests can assert whether a transaction would have committed.
type fakeUoW struct {
	repos     repo.Repos
	txCalls   int
	committed int
}

func (f *fakeUoW) Repos() repo.Repos { return f.repos }

func (f *fakeUoW) InTx(_ context.Context, fn func(r repo.Repos) error) error {
	f.txCalls++
	if err := fn(f.repos); err != nil {
		return err
	}
	f.committed++
	return nil
}

// compile-time checks: the doubles must satisfy the interfaces they replace.
var (
	_ repo.TripRepo      = (*mockTripRepo)(nil)
	_ repo.BookingRepo   = (*mockBookingRepo)(nil)
	_ repo.SeatLedger    = (*mockSeatLedger)(nil)
	_ repo.UserRepo      = (*mockUserRepo)(nil)
	_ service.UnitOfWork = (*fakeUoW)(nil)
)
