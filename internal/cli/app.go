// Package cli implements the travelbook command-line interface.
// Every command is a method on App, which resolves the caller identity from
// the saved session, calls one service operation and renders the result.
// Commands are split into domain-specific files (account.go, trip.go, etc.)
// but all share the same App struct so they can access its dependencies.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/middleware"
	"github.com/pkordes/travelbook/internal/repo"
)

// TripServicer defines the trip operations the commands depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets command
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Add(ctx context.Context, in domain.TripInput) (domain.Trip, error)
	Delete(ctx context.Context, tripID int64) error
	Search(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Get(ctx context.Context, tripID int64) (domain.Trip, error)
}

// BookingServicer defines the booking operations the commands depend on.
type BookingServicer interface {
	Create(ctx context.Context, userID, tripID int64, passengers int) (domain.Booking, error)
	Cancel(ctx context.Context, bookingID, userID int64) (domain.Booking, error)
	Get(ctx context.Context, bookingID, userID int64) (domain.BookingView, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.BookingView, error)
	ListAll(ctx context.Context) ([]domain.BookingView, error)
}

// AuthServicer defines the account operations the commands depend on.
type AuthServicer interface {
	Register(ctx context.Context, name, email, password string) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
}

// StatsServicer defines the dashboard aggregates the commands depend on.
type StatsServicer interface {
	ForUser(ctx context.Context, userID int64) (domain.UserStats, error)
	Admin(ctx context.Context) (domain.AdminStats, error)
}

// TokenIssuer signs and verifies session tokens.
type TokenIssuer interface {
	Issue(id domain.Identity) (string, error)
	Parse(token string) (domain.Identity, error)
}

// SessionStore persists the session token between invocations.
type SessionStore interface {
	Save(token string) error
	Load() (string, error)
	Remove() error
}

// StoreStatus reports on the underlying store for the status command.
type StoreStatus interface {
	Ping(ctx context.Context) error
	SchemaVersion(ctx context.Context) (int64, error)
	Dialect() repo.Dialect
}

// Deps are the collaborators of App. Middleware wraps every command, the
// first entry outermost.
type Deps struct {
	Trips      TripServicer
	Bookings   BookingServicer
	Auth       AuthServicer
	Stats      StatsServicer
	Issuer     TokenIssuer
	Sessions   SessionStore
	Status     StoreStatus
	Middleware []middleware.Middleware
}

// access is who may run a command.
type access int

const (
	public access = iota // no session needed
	user                 // any signed-in user
	admin                // signed-in administrator
)

type command struct {
	summary string
	access  access
	run     func(a *App, ctx context.Context, id domain.Identity, args []string) error
}

// commands maps each command path to its implementation.
var commands = map[string]command{
	"register":          {"create an account", public, (*App).register},
	"login":             {"sign in and save the session", public, (*App).login},
	"logout":            {"forget the saved session", public, (*App).logout},
	"whoami":            {"show the signed-in user", user, (*App).whoami},
	"status":            {"check the store", public, (*App).status},
	"search":            {"search bookable trips", user, (*App).search},
	"book":              {"book seats on a trip", user, (*App).book},
	"bookings":          {"list your bookings", user, (*App).bookings},
	"booking":           {"show one of your bookings", user, (*App).booking},
	"cancel":            {"cancel one of your bookings", user, (*App).cancel},
	"stats":             {"show your booking statistics", user, (*App).userStats},
	"admin trips":       {"list every trip", admin, (*App).adminTrips},
	"admin add-trip":    {"add a trip", admin, (*App).adminAddTrip},
	"admin delete-trip": {"delete an unbooked trip", admin, (*App).adminDeleteTrip},
	"admin bookings":    {"list every booking", admin, (*App).adminBookings},
	"admin stats":       {"show system statistics", admin, (*App).adminStats},
}

// App is the command-line application.
type App struct {
	deps    Deps
	out     io.Writer
	errOut  io.Writer
	json    bool
	handler middleware.Handler
}

// New constructs an App writing results to out and usage text to errOut.
func New(deps Deps, out, errOut io.Writer) *App {
	a := &App{deps: deps, out: out, errOut: errOut}
	a.handler = middleware.Chain(a.dispatch, deps.Middleware...)
	return a
}

// Run parses the global flags and runs the command named by args.
func (a *App) Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("travelbook", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	jsonOut := fs.Bool("json", false, "print results as JSON")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			a.usage()
			return nil
		}
		return usageError("%v", err)
	}
	a.json = *jsonOut

	rest := fs.Args()
	if len(rest) == 0 {
		a.usage()
		return usageError("missing command")
	}
	name, cmdArgs := rest[0], rest[1:]
	if name == "help" {
		a.usage()
		return nil
	}
	if name == "admin" && len(cmdArgs) > 0 {
		name, cmdArgs = "admin "+cmdArgs[0], cmdArgs[1:]
	}
	return a.handler(ctx, name, cmdArgs)
}

// dispatch resolves the caller identity the command needs and runs it.
func (a *App) dispatch(ctx context.Context, name string, args []string) error {
	cmd, ok := commands[name]
	if !ok {
		return usageError("unknown command %q, run \"travelbook help\"", name)
	}

	var id domain.Identity
	if cmd.access != public {
		var err error
		if id, err = a.identity(); err != nil {
			return err
		}
		if cmd.access == admin && !id.IsAdmin {
			return domain.ErrForbidden
		}
	}
	if err := cmd.run(a, ctx, id, args); err != nil && !errors.Is(err, errHelpShown) {
		return err
	}
	return nil
}

// identity returns the caller identity carried by the saved session.
func (a *App) identity() (domain.Identity, error) {
	token, err := a.deps.Sessions.Load()
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return domain.Identity{}, fmt.Errorf("%w: run \"travelbook login\" first", domain.ErrUnauthenticated)
		}
		return domain.Identity{}, err
	}
	return a.deps.Issuer.Parse(token)
}

func (a *App) usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.errOut, "usage: travelbook [-json] <command> [flags]")
	fmt.Fprintln(a.errOut)
	fmt.Fprintln(a.errOut, "commands:")
	for _, name := range names {
		fmt.Fprintf(a.errOut, "  %-18s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(a.errOut)
	fmt.Fprintln(a.errOut, `run "travelbook <command> -h" for the flags of a command`)
}

// newFlags returns a FlagSet for one command. Parse errors are reported by
// the caller, so the set itself prints nothing.
func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parse parses args into fs. It returns errHelpShown after printing the flag
// defaults for -h.
func (a *App) parse(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(a.errOut, "usage of %s:\n", fs.Name())
		fs.SetOutput(a.errOut)
		fs.PrintDefaults()
		return errHelpShown
	}
	if err != nil {
		return usageError("%s: %v", fs.Name(), err)
	}
	return nil
}

// errHelpShown stops a command after its help text was printed.
var errHelpShown = errors.New("help shown")

// idArg returns the value of an -id style flag, falling back to the first
// positional argument.
func idArg(fs *flag.FlagSet, flagValue int64, what string) (int64, error) {
	if flagValue == 0 && fs.NArg() > 0 {
		v, err := strconv.ParseInt(strings.TrimPrefix(fs.Arg(0), "#"), 10, 64)
		if err != nil {
			return 0, usageError("%s id must be a number", what)
		}
		flagValue = v
	}
	if flagValue <= 0 {
		return 0, usageError("%s id is required", what)
	}
	return flagValue, nil
}
