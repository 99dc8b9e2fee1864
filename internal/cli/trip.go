package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/pkordes/travelbook/internal/domain"
)

func (a *App) search(ctx context.Context, _ domain.Identity, args []string) error {
	fs := newFlags("search")
	from := fs.String("from", "", "source city, matched anywhere and case-insensitively")
	to := fs.String("to", "", "destination city, matched anywhere and case-insensitively")
	date := fs.String("date", "", "travel date, YYYY-MM-DD")
	mode := fs.String("mode", "", "flight, train or bus")
	if err := a.parse(fs, args); err != nil {
		return err
	}

	trips, err := a.deps.Trips.Search(ctx, domain.TripFilter{
		Source:      *from,
		Destination: *to,
		Date:        *date,
		Mode:        domain.Mode(*mode),
	})
	if err != nil {
		return err
	}
	return a.emit(trips, func(w io.Writer) { tripTable(w, trips) })
}

func (a *App) adminTrips(ctx context.Context, _ domain.Identity, args []string) error {
	if err := a.parse(newFlags("admin trips"), args); err != nil {
		return err
	}
	trips, err := a.deps.Trips.List(ctx)
	if err != nil {
		return err
	}
	return a.emit(trips, func(w io.Writer) { tripTable(w, trips) })
}

func (a *App) adminAddTrip(ctx context.Context, _ domain.Identity, args []string) error {
	fs := newFlags("admin add-trip")
	in := domain.TripInput{}
	fs.StringVar(&in.Source, "from", "", "source city")
	fs.StringVar(&in.Destination, "to", "", "destination city")
	fs.StringVar(&in.Date, "date", "", "travel date, YYYY-MM-DD")
	mode := fs.String("mode", "", "flight, train or bus")
	price := fs.String("price", "", "price per passenger, e.g. 1200 or 1200.50")
	fs.StringVar(&in.Duration, "duration", "", "journey duration, e.g. 2h 15m")
	fs.StringVar(&in.DepartureTime, "depart", "", "departure time, e.g. 06:00")
	fs.StringVar(&in.ArrivalTime, "arrive", "", "arrival time, e.g. 08:15")
	fs.IntVar(&in.Seats, "seats", 0, "number of seats")
	if err := a.parse(fs, args); err != nil {
		return err
	}

	in.Mode = domain.Mode(*mode)
	p, err := domain.ParseMoney(*price)
	if err != nil {
		return usageError("price: %v", err)
	}
	in.Price = p

	trip, err := a.deps.Trips.Add(ctx, in)
	if err != nil {
		return err
	}
	return a.emit(trip, func(w io.Writer) {
		fmt.Fprintf(w, "Added trip #%d %s on %s with %d seats.\n", trip.ID, trip.Route(), trip.Date, trip.AvailableSeats)
	})
}

func (a *App) adminDeleteTrip(ctx context.Context, _ domain.Identity, args []string) error {
	fs := newFlags("admin delete-trip")
	idFlag := fs.Int64("id", 0, "trip id")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	tripID, err := idArg(fs, *idFlag, "trip")
	if err != nil {
		return err
	}

	if err := a.deps.Trips.Delete(ctx, tripID); err != nil {
		return err
	}
	return a.emit(map[string]int64{"deleted_trip_id": tripID}, func(w io.Writer) {
		fmt.Fprintf(w, "Deleted trip #%d.\n", tripID)
	})
}

func tripTable(w io.Writer, trips []domain.Trip) {
	if len(trips) == 0 {
		fmt.Fprintln(w, "No trips found.")
		return
	}
	row(w, "ID", "ROUTE", "DATE", "DEPART", "ARRIVE", "DURATION", "MODE", "PRICE", "SEATS")
	for _, t := range trips {
		row(w, t.ID, t.Route(), t.Date, t.DepartureTime, t.ArrivalTime, t.Duration, t.Mode, t.Price, t.AvailableSeats)
	}
}
