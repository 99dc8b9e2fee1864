package repo

// Repos bundles every repository bound to one db handle. The store hands out
// a pool-bound Repos for reads and a transaction-bound Repos per unit of work.
type Repos struct {
	Users    UserRepo
	Trips    TripRepo
	Bookings BookingRepo
	Seats    SeatLedger
}

// New constructs all repositories on the given handle and dialect.
// In production pass the store's *sql.DB or *sql.Tx.
func New(db db, d Dialect) Repos {
	return Repos{
		Users:    NewUserRepo(db, d),
		Trips:    NewTripRepo(db, d),
		Bookings: NewBookingRepo(db, d),
		Seats:    NewSeatLedger(db, d),
	}
}
