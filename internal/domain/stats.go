package domain

// NotAvailable is shown for a popularity statistic with no data behind it.
const NotAvailable = "N/A"

// UserStats summarises one user's bookings. Spent and Passengers count
// confirmed bookings only.
type UserStats struct {
	Total      int   `json:"total_bookings"`
	Confirmed  int   `json:"confirmed"`
	Cancelled  int   `json:"cancelled"`
	Spent      Money `json:"total_spent"`
	Passengers int   `json:"total_passengers"`
}

// AdminStats summarises the whole system. Revenue, Passengers and the
// popularity fields are computed over confirmed bookings only.
type AdminStats struct {
	Trips        int    `json:"total_trips"`
	Bookings     int    `json:"total_bookings"`
	Revenue      Money  `json:"total_revenue"`
	Passengers   int    `json:"total_passengers"`
	PopularRoute string `json:"popular_route"`
	PopularMode  string `json:"popular_mode"`
}
