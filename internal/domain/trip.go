// Package domain contains the core data types for the TravelBook application.
// It depends on nothing outside the standard library and is imported by every
// other internal package (repo, service, cli).
package domain

import "time"

// DateLayout is the only accepted form of a trip date.
const DateLayout = "2006-01-02"

// Mode is the means of travel for a trip.
type Mode string

const (
	ModeFlight Mode = "flight"
	ModeTrain  Mode = "train"
	ModeBus    Mode = "bus"
)

// Modes lists every valid Mode in display order.
var Modes = []Mode{ModeFlight, ModeTrain, ModeBus}

// IsValid reports whether m is one of Modes.
func (m Mode) IsValid() bool {
	for _, v := range Modes {
		if m == v {
			return true
		}
	}
	return false
}

// Trip is a scheduled, bookable unit of travel capacity.
// AvailableSeats is the only field that changes after creation, and only the
// seat ledger changes it.
type Trip struct {
	ID             int64     `json:"id"`
	Source         string    `json:"source"`
	Destination    string    `json:"destination"`
	Date           string    `json:"date"` // DateLayout
	Price          Money     `json:"price"`
	Mode           Mode      `json:"mode"`
	Duration       string    `json:"duration"`
	DepartureTime  string    `json:"departure_time"`
	ArrivalTime    string    `json:"arrival_time"`
	AvailableSeats int       `json:"available_seats"`
	CreatedAt      time.Time `json:"created_at"`
}

// Route returns the display form "Source → Destination".
func (t Trip) Route() string {
	return t.Source + " → " + t.Destination
}

// TripInput carries the fields an administrator supplies when adding a trip.
// Seats becomes the trip's initial AvailableSeats.
type TripInput struct {
	Source        string
	Destination   string
	Date          string
	Price         Money
	Mode          Mode
	Duration      string
	DepartureTime string
	ArrivalTime   string
	Seats         int
}

// TripFilter holds the optional search criteria. Empty fields are ignored,
// and any subset may be combined.
type TripFilter struct {
	Source      string // case-insensitive substring
	Destination string // case-insensitive substring
	Date        string // exact, DateLayout
	Mode        Mode   // exact
}
