package domain

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	// StatusPending is accepted by the schema, but no operation produces it.
	StatusPending BookingStatus = "pending"
)

// transitions is the booking state machine. Confirmed is the only initial
// state and cancelled the only reachable terminal state.
var transitions = map[BookingStatus][]BookingStatus{
	StatusConfirmed: {StatusCancelled},
	StatusCancelled: {},
	StatusPending:   {},
}

// IsValid reports whether s is a recognised booking status.
func (s BookingStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether a booking in state s may move to target.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Booking is a reservation of Passengers seats on one trip by one user.
// TotalAmount is the trip price at booking time multiplied by Passengers and
// is never recomputed.
type Booking struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"user_id"`
	TripID      int64         `json:"trip_id"`
	Passengers  int           `json:"passengers"`
	TotalAmount Money         `json:"total_amount"`
	BookedAt    time.Time     `json:"booking_date"`
	Status      BookingStatus `json:"status"`
}

// BookingView is a booking joined with the trip fields shown in booking
// listings, plus the owner's name and email for the admin listing.
type BookingView struct {
	Booking
	Source        string `json:"source"`
	Destination   string `json:"destination"`
	Date          string `json:"date"`
	Mode          Mode   `json:"mode"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	Duration      string `json:"duration"`
	UserName      string `json:"user_name,omitempty"`
	UserEmail     string `json:"user_email,omitempty"`
}

// Route returns the display form "Source → Destination".
func (v BookingView) Route() string {
	return v.Source + " → " + v.Destination
}
