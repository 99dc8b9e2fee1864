// Package main is the entry point for the travelbook CLI.
// Its sole responsibility is wiring dependencies together and running one
// command. No business logic belongs here.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkordes/travelbook/internal/cli"
	"github.com/pkordes/travelbook/internal/config"
	"github.com/pkordes/travelbook/internal/middleware"
	"github.com/pkordes/travelbook/internal/service"
	"github.com/pkordes/travelbook/internal/session"
	"github.com/pkordes/travelbook/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		return cli.ExitFailure
	}

	// --- Logger -----------------------------------------------------------
	// Logs go to stderr so stdout carries only command output.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Store ------------------------------------------------------------
	// Open migrates the schema; seeding is idempotent and runs every start.
	st, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		cli.Report(os.Stderr, err)
		return cli.ExitCode(err)
	}
	defer st.Close()

	auth := service.NewAuthService(st.Repos().Users, cfg.BcryptCost)
	if _, err := st.Seed(ctx, store.SeedAdmin{
		Name:  "Admin User",
		Email: cfg.SeedAdminEmail,
		Hash:  func() (string, error) { return auth.HashPassword(cfg.SeedAdminPassword) },
	}); err != nil {
		cli.Report(os.Stderr, err)
		return cli.ExitCode(err)
	}

	// --- Commands ---------------------------------------------------------
	// Middleware order: OpID → SlogLogger → Recoverer, so a recovered panic
	// is still logged with its operation id.
	app := cli.New(cli.Deps{
		Trips:    service.NewTripService(st),
		Bookings: service.NewBookingService(st),
		Auth:     auth,
		Stats:    service.NewStatsService(st),
		Issuer:   session.NewIssuer(cfg.SessionSecret, cfg.SessionTTL),
		Sessions: session.NewFile(cfg.SessionFile),
		Status:   st,
		Middleware: []middleware.Middleware{
			middleware.OpID,
			middleware.NewSlogLogger(logger),
			middleware.Recoverer(logger),
		},
	}, os.Stdout, os.Stderr)

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		cli.Report(os.Stderr, err)
		return cli.ExitCode(err)
	}
	return cli.ExitOK
}
