package service

import (
	"context"
	"sort"

	"github.com/pkordes/travelbook/internal/domain"
)

// StatsService assembles the aggregate figures shown on the user and admin
// dashboards. Money and passenger sums count confirmed bookings only.
type StatsService struct {
	uow UnitOfWork
}

// NewStatsService constructs a StatsService over the given unit of work.
func NewStatsService(uow UnitOfWork) *StatsService {
	return &StatsService{uow: uow}
}

// ForUser summarises the bookings of one user.
func (s *StatsService) ForUser(ctx context.Context, userID int64) (domain.UserStats, error) {
	views, err := s.uow.Repos().Bookings.ListByUser(ctx, userID)
	if err != nil {
		return domain.UserStats{}, wrap("service.StatsService.ForUser", err)
	}

	st := domain.UserStats{Total: len(views)}
	for _, v := range views {
		switch v.Status {
		case domain.StatusConfirmed:
			st.Confirmed++
			st.Spent += v.TotalAmount
			st.Passengers += v.Passengers
		case domain.StatusCancelled:
			st.Cancelled++
		}
	}
	return st, nil
}

// Admin summarises the whole inventory. The popular route and mode are the
// most frequent among confirmed bookings, ties broken alphabetically, and
// domain.NotAvailable when there are none.
func (s *StatsService) Admin(ctx context.Context) (domain.AdminStats, error) {
	r := s.uow.Repos()

	trips, err := r.Trips.Count(ctx)
	if err != nil {
		return domain.AdminStats{}, wrap("service.StatsService.Admin", err)
	}
	views, err := r.Bookings.ListAll(ctx)
	if err != nil {
		return domain.AdminStats{}, wrap("service.StatsService.Admin", err)
	}

	st := domain.AdminStats{Trips: trips, Bookings: len(views)}
	routes := map[string]int{}
	modes := map[string]int{}
	for _, v := range views {
		if v.Status != domain.StatusConfirmed {
			continue
		}
		st.Revenue += v.TotalAmount
		st.Passengers += v.Passengers
		routes[v.Route()]++
		modes[string(v.Mode)]++
	}
	st.PopularRoute = mostFrequent(routes)
	st.PopularMode = mostFrequent(modes)
	return st, nil
}

// mostFrequent returns the key with the highest count, the alphabetically
// first one among equals, or domain.NotAvailable for an empty map.
func mostFrequent(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return domain.NotAvailable
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys[0]
}
