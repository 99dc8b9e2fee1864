package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/pkordes/travelbook/internal/domain"
)

func (a *App) register(ctx context.Context, _ domain.Identity, args []string) error {
	fs := newFlags("register")
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password, at least 6 characters")
	if err := a.parse(fs, args); err != nil {
		return err
	}

	u, err := a.deps.Auth.Register(ctx, *name, *email, *password)
	if err != nil {
		return err
	}
	return a.emit(u, func(w io.Writer) {
		fmt.Fprintf(w, "Registered %s (%s). Sign in with \"travelbook login\".\n", u.Name, u.Email)
	})
}

func (a *App) login(ctx context.Context, _ domain.Identity, args []string) error {
	fs := newFlags("login")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := a.parse(fs, args); err != nil {
		return err
	}

	u, err := a.deps.Auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	id := domain.IdentityOf(u)
	token, err := a.deps.Issuer.Issue(id)
	if err != nil {
		return err
	}
	if err := a.deps.Sessions.Save(token); err != nil {
		return err
	}
	return a.emit(id, func(w io.Writer) {
		fmt.Fprintf(w, "Signed in as %s (%s)%s.\n", id.Name, id.Email, adminSuffix(id))
	})
}

func (a *App) logout(_ context.Context, _ domain.Identity, args []string) error {
	if err := a.parse(newFlags("logout"), args); err != nil {
		return err
	}
	if err := a.deps.Sessions.Remove(); err != nil {
		return err
	}
	return a.emit(map[string]bool{"signed_out": true}, func(w io.Writer) {
		fmt.Fprintln(w, "Signed out.")
	})
}

func (a *App) whoami(_ context.Context, id domain.Identity, args []string) error {
	if err := a.parse(newFlags("whoami"), args); err != nil {
		return err
	}
	return a.emit(id, func(w io.Writer) {
		fmt.Fprintf(w, "%s (%s)%s\n", id.Name, id.Email, adminSuffix(id))
	})
}

type statusReport struct {
	Store         string `json:"store"`
	Dialect       string `json:"dialect"`
	SchemaVersion int64  `json:"schema_version"`
}

func (a *App) status(ctx context.Context, _ domain.Identity, args []string) error {
	if err := a.parse(newFlags("status"), args); err != nil {
		return err
	}
	if err := a.deps.Status.Ping(ctx); err != nil {
		return err
	}
	v, err := a.deps.Status.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	st := statusReport{Store: "ok", Dialect: a.deps.Status.Dialect().String(), SchemaVersion: v}
	return a.emit(st, func(w io.Writer) {
		row(w, "store:", st.Store)
		row(w, "dialect:", st.Dialect)
		row(w, "schema version:", st.SchemaVersion)
	})
}

func adminSuffix(id domain.Identity) string {
	if id.IsAdmin {
		return ", administrator"
	}
	return ""
}
