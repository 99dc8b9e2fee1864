// Package middleware provides command middleware for the TravelBook CLI.
// A command runs as a Handler; middleware wraps it the way HTTP middleware
// wraps an http.Handler.
package middleware

import "context"

// Handler runs one CLI command. cmd is the command path, e.g. "admin trips".
type Handler func(ctx context.Context, cmd string, args []string) error

// Middleware decorates a Handler.
type Middleware func(Handler) Handler

// Chain wraps h so that the first middleware is the outermost.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
