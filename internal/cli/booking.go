package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/pkordes/travelbook/internal/domain"
)

// MaxPassengers bounds the seats one booking command may request.
const MaxPassengers = 10

func (a *App) book(ctx context.Context, id domain.Identity, args []string) error {
	fs := newFlags("book")
	tripFlag := fs.Int64("trip", 0, "trip id")
	passengers := fs.Int("passengers", 1, fmt.Sprintf("number of passengers, 1 to %d", MaxPassengers))
	if err := a.parse(fs, args); err != nil {
		return err
	}
	tripID, err := idArg(fs, *tripFlag, "trip")
	if err != nil {
		return err
	}
	if *passengers < 1 || *passengers > MaxPassengers {
		return usageError("passengers must be between 1 and %d", MaxPassengers)
	}

	b, err := a.deps.Bookings.Create(ctx, id.UserID, tripID, *passengers)
	if err != nil {
		return err
	}
	return a.emit(b, func(w io.Writer) {
		fmt.Fprintf(w, "Booking #%d confirmed: %d passenger(s), total %s.\n", b.ID, b.Passengers, b.TotalAmount)
	})
}

func (a *App) bookings(ctx context.Context, id domain.Identity, args []string) error {
	if err := a.parse(newFlags("bookings"), args); err != nil {
		return err
	}
	views, err := a.deps.Bookings.ListForUser(ctx, id.UserID)
	if err != nil {
		return err
	}
	return a.emit(views, func(w io.Writer) { bookingTable(w, views, false) })
}

func (a *App) booking(ctx context.Context, id domain.Identity, args []string) error {
	fs := newFlags("booking")
	idFlag := fs.Int64("id", 0, "booking id")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	bookingID, err := idArg(fs, *idFlag, "booking")
	if err != nil {
		return err
	}

	v, err := a.deps.Bookings.Get(ctx, bookingID, id.UserID)
	if err != nil {
		return err
	}
	return a.emit(v, func(w io.Writer) {
		row(w, "Booking:", fmt.Sprintf("#%d", v.ID))
		row(w, "Status:", v.Status)
		row(w, "Route:", v.Route())
		row(w, "Date:", v.Date)
		row(w, "Departure:", v.DepartureTime)
		row(w, "Arrival:", v.ArrivalTime)
		row(w, "Duration:", v.Duration)
		row(w, "Mode:", v.Mode)
		row(w, "Passengers:", v.Passengers)
		row(w, "Total:", v.TotalAmount)
		row(w, "Booked at:", formatTime(v.BookedAt))
	})
}

func (a *App) cancel(ctx context.Context, id domain.Identity, args []string) error {
	fs := newFlags("cancel")
	idFlag := fs.Int64("id", 0, "booking id")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	bookingID, err := idArg(fs, *idFlag, "booking")
	if err != nil {
		return err
	}

	b, err := a.deps.Bookings.Cancel(ctx, bookingID, id.UserID)
	if err != nil {
		return err
	}
	return a.emit(b, func(w io.Writer) {
		fmt.Fprintf(w, "Booking #%d cancelled; %d seat(s) released.\n", b.ID, b.Passengers)
	})
}

func (a *App) adminBookings(ctx context.Context, _ domain.Identity, args []string) error {
	if err := a.parse(newFlags("admin bookings"), args); err != nil {
		return err
	}
	views, err := a.deps.Bookings.ListAll(ctx)
	if err != nil {
		return err
	}
	return a.emit(views, func(w io.Writer) { bookingTable(w, views, true) })
}

func bookingTable(w io.Writer, views []domain.BookingView, withOwner bool) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No bookings found.")
		return
	}
	header := []any{"ID", "ROUTE", "DATE", "MODE", "PASSENGERS", "AMOUNT", "STATUS", "BOOKED"}
	if withOwner {
		header = append(header, "USER", "EMAIL")
	}
	row(w, header...)
	for _, v := range views {
		cells := []any{v.ID, v.Route(), v.Date, v.Mode, v.Passengers, v.TotalAmount, v.Status, formatTime(v.BookedAt)}
		if withOwner {
			cells = append(cells, v.UserName, v.UserEmail)
		}
		row(w, cells...)
	}
}
