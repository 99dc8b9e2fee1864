package cli

import (
	"context"
	"io"

	"github.com/pkordes/travelbook/internal/domain"
)

func (a *App) userStats(ctx context.Context, id domain.Identity, args []string) error {
	if err := a.parse(newFlags("stats"), args); err != nil {
		return err
	}
	st, err := a.deps.Stats.ForUser(ctx, id.UserID)
	if err != nil {
		return err
	}
	return a.emit(st, func(w io.Writer) {
		row(w, "Total bookings:", st.Total)
		row(w, "Confirmed:", st.Confirmed)
		row(w, "Cancelled:", st.Cancelled)
		row(w, "Total spent:", st.Spent)
		row(w, "Passengers:", st.Passengers)
	})
}

func (a *App) adminStats(ctx context.Context, _ domain.Identity, args []string) error {
	if err := a.parse(newFlags("admin stats"), args); err != nil {
		return err
	}
	st, err := a.deps.Stats.Admin(ctx)
	if err != nil {
		return err
	}
	return a.emit(st, func(w io.Writer) {
		row(w, "Total trips:", st.Trips)
		row(w, "Total bookings:", st.Bookings)
		row(w, "Total revenue:", st.Revenue)
		row(w, "Total passengers:", st.Passengers)
		row(w, "Popular route:", st.PopularRoute)
		row(w, "Popular mode:", st.PopularMode)
	})
}
