// Package store owns the database handle: it selects the driver from the DSN,
// provisions the schema with the embedded goose migrations and hands out
// repositories bound either to the pool or to a single transaction.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver for database/sql

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/repo"
	"github.com/pkordes/travelbook/migrations"
)

// DefaultDSN is the SQLite file used when no DSN is configured.
const DefaultDSN = "travelbook.db"

// sqlitePragmas enables foreign keys, waits on a locked file instead of
// failing immediately and starts every transaction as a writer.
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"

// Store is the single owner of the *sql.DB.
type Store struct {
	db      *sql.DB
	dialect repo.Dialect
	repos   repo.Repos
}

// New wraps an already opened handle. It does not migrate; use Open for that.
func New(db *sql.DB, d repo.Dialect) *Store {
	return &Store{db: db, dialect: d, repos: repo.New(db, d)}
}

// Open connects to dsn, verifies the connection and applies every pending
// migration. Any failure is returned wrapped in domain.ErrStoreUnavailable.
func Open(ctx context.Context, dsn string) (*Store, error) {
	driver, source, dialect := resolve(dsn)

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("store.Open: open: %w: %w", domain.ErrStoreUnavailable, err)
	}
	if dialect == repo.SQLite {
		// One connection serializes writers; SQLite allows only one anyway.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store.Open: ping: %w: %w", domain.ErrStoreUnavailable, err)
	}

	s := New(db, dialect)
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store.Open: %w: %w", domain.ErrStoreUnavailable, err)
	}

	slog.InfoContext(ctx, "store opened", "dialect", dialect.String())
	return s, nil
}

// resolve maps a DSN to the database/sql driver name, the driver-specific
// data source and the SQL dialect.
func resolve(dsn string) (driver, source string, d repo.Dialect) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "pgx", dsn, repo.Postgres
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return "sqlite", dsn + sep + sqlitePragmas, repo.SQLite
}

func (s *Store) migrate(ctx context.Context) error {
	provider, err := s.provider()
	if err != nil {
		return err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	for _, r := range results {
		slog.InfoContext(ctx, "migration applied", "version", r.Source.Version, "duration_ms", r.Duration.Milliseconds())
	}
	return nil
}

// provider builds a goose provider over the migration set of the store's dialect.
func (s *Store) provider() (*goose.Provider, error) {
	var (
		dialect goose.Dialect = goose.DialectSQLite3
		fsys    fs.FS         = migrations.SQLite()
	)
	if s.dialect == repo.Postgres {
		dialect, fsys = goose.DialectPostgres, migrations.Postgres()
	}
	p, err := goose.NewProvider(dialect, s.db, fsys)
	if err != nil {
		return nil, fmt.Errorf("goose provider: %w", err)
	}
	return p, nil
}

// Close releases the underlying pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dialect reports which SQL dialect the store speaks.
func (s *Store) Dialect() repo.Dialect {
	return s.dialect
}

// Repos returns repositories bound to the pool. Each call acquires a
// connection for the duration of one statement.
func (s *Store) Repos() repo.Repos {
	return s.repos
}

// InTx runs fn with repositories bound to one transaction. The transaction
// commits when fn returns nil and rolls back when fn returns an error or
// panics; the panic is re-raised after the rollback.
func (s *Store) InTx(ctx context.Context, fn func(r repo.Repos) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store.InTx: begin: %w: %w", domain.ErrStoreUnavailable, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(repo.New(tx, s.dialect)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.ErrorContext(ctx, "rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store.InTx: commit: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("store.Ping: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int64, error) {
	provider, err := s.provider()
	if err != nil {
		return 0, fmt.Errorf("store.SchemaVersion: %w: %w", domain.ErrStoreUnavailable, err)
	}
	v, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("store.SchemaVersion: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return v, nil
}
