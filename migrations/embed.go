// Package migrations embeds the SQL migration files so they can be applied
// by the goose programmatic API during store initialization and in tests.
package migrations

import (
	"embed"
	"io/fs"
)

// FS holds the migration files for every supported dialect, one directory
// per dialect.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

// SQLite returns the migrations for the SQLite dialect.
func SQLite() fs.FS {
	return mustSub("sqlite")
}

// Postgres returns the migrations for the Postgres dialect.
func Postgres() fs.FS {
	return mustSub("postgres")
}

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(FS, dir)
	if err != nil {
		panic("migrations: " + err.Error())
	}
	return sub
}
