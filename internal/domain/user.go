package domain

import "time"

// User is an account that can sign in and own bookings.
// PasswordHash is a bcrypt hash and is never rendered.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the caller identity supplied with every call into the booking
// and catalog services. Services trust it as given.
type Identity struct {
	UserID  int64  `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// IdentityOf returns the Identity of u.
func IdentityOf(u User) Identity {
	return Identity{UserID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
}
