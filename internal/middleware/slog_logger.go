package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkordes/travelbook/internal/domain"
)

// NewSlogLogger returns a middleware that logs each command as a structured
// JSON line via the provided slog.Logger. It captures the command, its
// outcome ("ok" or the error kind), duration, and the op id set by OpID.
//
// Wire it after OpID so the op id is available.
func NewSlogLogger(log *slog.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, cmd string, args []string) error {
			start := time.Now()

			err := next(ctx, cmd, args)

			outcome, level := "ok", slog.LevelInfo
			if err != nil {
				outcome = domain.KindOf(err)
				if !domain.IsBusiness(err) {
					level = slog.LevelError
				}
			}
			attrs := []any{
				"command", cmd,
				"outcome", outcome,
				"duration_ms", time.Since(start).Milliseconds(),
				"op_id", GetOpID(ctx),
			}
			if level == slog.LevelError {
				attrs = append(attrs, "error", err.Error())
			}
			log.Log(ctx, level, "command", attrs...)
			return err
		}
	}
}
