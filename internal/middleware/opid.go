package middleware

import (
	"context"

	"github.com/google/uuid"
)

type opIDKey struct{}

// OpID stores a fresh random UUID in the context of every command so all log
// lines of one invocation can be correlated.
func OpID(next Handler) Handler {
	return func(ctx context.Context, cmd string, args []string) error {
		return next(WithOpID(ctx, uuid.NewString()), cmd, args)
	}
}

// WithOpID returns a copy of ctx carrying id.
func WithOpID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, opIDKey{}, id)
}

// GetOpID returns the op id stored by OpID, or "" if there is none.
func GetOpID(ctx context.Context) string {
	id, _ := ctx.Value(opIDKey{}).(string)
	return id
}
