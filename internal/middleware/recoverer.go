package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// Recoverer turns a panic inside a command into an error so the process can
// still report a failure and exit with a status code.
func Recoverer(log *slog.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, cmd string, args []string) (err error) {
			defer func() {
				if p := recover(); p != nil {
					log.ErrorContext(ctx, "panic",
						"command", cmd,
						"panic", fmt.Sprint(p),
						"stack", string(debug.Stack()),
						"op_id", GetOpID(ctx),
					)
					err = fmt.Errorf("internal error: %v", p)
				}
			}()
			return next(ctx, cmd, args)
		}
	}
}
