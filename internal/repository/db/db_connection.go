package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"

//go:embed migrations/*.sql
var embedMigrations embed.FS

var pragmas = []string{
	"PRAGMA journal_mode = WAL;",
	"PRAGMA foreign_keys = ON;",
	"PRAGMA busy_timeout = 5000;",
}

// InitDB opens/creates a SQLite DB file and applies pending migrations.
// log may be nil, in which case goose output is discarded.
func InitDB(ctx context.Context, path string, log goose.Logger) (*sql.DB, error) {
	db, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db, log); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Open opens the database and applies connection pragmas without migrating.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// A single connection serialises writers, which is also what keeps an
	// in-memory database alive across calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", p, err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// Migrate runs every embedded migration that has not been applied yet and
// returns the versions it applied.
func Migrate(ctx context.Context, db *sql.DB, log goose.Logger) error {
	_, err := migrateUp(ctx, db, log)
	return err
}

func migrateUp(ctx context.Context, db *sql.DB, log goose.Logger) ([]int64, error) {
	provider, err := newProvider(db, log)
	if err != nil {
		return nil, err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	applied := make([]int64, 0, len(results))
	for _, r := range results {
		applied = append(applied, r.Source.Version)
	}
	return applied, nil
}

// Version reports the current schema version.
func Version(ctx context.Context, db *sql.DB) (int64, error) {
	provider, err := newProvider(db, nil)
	if err != nil {
		return 0, err
	}
	v, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

func newProvider(db *sql.DB, log goose.Logger) (*goose.Provider, error) {
	fsys, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	var opts []goose.ProviderOption
	if log != nil {
		opts = append(opts, goose.WithLogger(log), goose.WithVerbose(true))
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys, opts...)
	if err != nil {
		return nil, fmt.Errorf("create migration provider: %w", err)
	}
	return provider, nil
}
