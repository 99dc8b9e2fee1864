package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo functions when the requested row does not
// exist. Services translate it into ErrTripNotFound or ErrBookingNotFound.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, malformed date).
// The user corrects the input and retries.
var ErrValidation = errors.New("validation error")

// ErrTripNotFound is returned when a referenced trip does not exist.
var ErrTripNotFound = fmt.Errorf("trip %w", ErrNotFound)

// ErrBookingNotFound is returned when no confirmed booking matches the id and
// the requesting user. It covers a wrong id, a booking owned by
// someone else, and a booking that is already cancelled.
var ErrBookingNotFound = fmt.Errorf("booking %w", ErrNotFound)

// ErrInsufficientCapacity is returned when a booking asks for more seats than
// the trip has available.
var ErrInsufficientCapacity = errors.New("not enough seats available")

// ErrTripInUse is returned when deleting a trip that bookings still reference.
var ErrTripInUse = errors.New("trip has existing bookings")

// ErrDuplicateEmail is returned when registering an email that already exists.
var ErrDuplicateEmail = errors.New("email already exists")

// ErrInvalidCredentials is returned by Login for an unknown email or a wrong
// password. The two cases are not distinguished.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnauthenticated is returned when a command needs a signed-in user and
// no valid session is present.
var ErrUnauthenticated = errors.New("not signed in")

// ErrForbidden is returned when a non-admin identity calls an admin command.
var ErrForbidden = errors.New("admin access required")

// ErrStoreUnavailable marks infrastructure failures: the store cannot be
// opened, or a read or write failed for a reason that is not a business rule.
// It is the only error class that should abort the caller outright.
var ErrStoreUnavailable = errors.New("store unavailable")

// kinds maps each sentinel to the stable code reported to callers.
// Order matters: the specific not-found sentinels come before ErrNotFound.
var kinds = []struct {
	err  error
	kind string
}{
	{ErrValidation, "validation_error"},
	{ErrTripNotFound, "trip_not_found"},
	{ErrBookingNotFound, "booking_not_found"},
	{ErrNotFound, "not_found"},
	{ErrInsufficientCapacity, "insufficient_capacity"},
	{ErrTripInUse, "trip_in_use"},
	{ErrDuplicateEmail, "duplicate_email"},
	{ErrInvalidCredentials, "invalid_credentials"},
	{ErrUnauthenticated, "unauthenticated"},
	{ErrForbidden, "forbidden"},
	{ErrStoreUnavailable, "store_unavailable"},
}

// KindOf returns the stable kind code for err, or "internal" when err does
// not wrap any domain sentinel. KindOf(nil) is "".
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "internal"
}

// IsBusiness reports whether err is a business-rule failure the user can act
// on, as opposed to an infrastructure failure.
func IsBusiness(err error) bool {
	switch KindOf(err) {
	case "", "internal", "store_unavailable":
		return false
	}
	return true
}
