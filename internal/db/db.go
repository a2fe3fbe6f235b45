// Package db opens the local carpool database and applies the embedded
// migrations. SQLite is the default; a postgres:// DSN selects Postgres
// through the pgx database/sql driver.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/carpool/internal/filex"
	"github.com/dmitrijs2005/carpool/internal/kv"
	"github.com/dmitrijs2005/carpool/internal/migrations"
)

// Dialect ties a database/sql driver to its goose dialect and migration dir.
type Dialect struct {
	Driver string
	Goose  string
	Dir    string
}

var (
	SQLite   = Dialect{Driver: "sqlite", Goose: "sqlite3", Dir: "sqlite"}
	Postgres = Dialect{Driver: "pgx", Goose: "postgres", Dir: "postgres"}
)

// DialectFor picks the dialect from the DSN scheme.
func DialectFor(dsn string) Dialect {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return Postgres
	}
	return SQLite
}

// Database is an opened, migrated database with its key-value store.
type Database struct {
	DB      *sql.DB
	Dialect Dialect
	Store   *kv.SQLStore
}

func (d *Database) Close() error {
	return d.DB.Close()
}

// RunMigrations applies every pending migration for dialect.
func RunMigrations(ctx context.Context, db *sql.DB, dialect Dialect) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect.Goose); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, dialect.Dir)
}

// InitDatabase opens dsn, runs migrations and returns the ready store.
func InitDatabase(ctx context.Context, dsn string) (*Database, error) {
	dialect := DialectFor(dsn)

	if dialect == SQLite && isSQLiteFile(dsn) {
		if err := filex.EnsureParentDir(dsn); err != nil {
			return nil, fmt.Errorf("failed to prepare database directory: %w", err)
		}
	}

	db, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dialect == SQLite {
		// one writer; also keeps ":memory:" on a single connection
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	if err := RunMigrations(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Database{DB: db, Dialect: dialect, Store: kv.NewSQLStore(db, dialect.Driver)}, nil
}

// isSQLiteFile reports whether dsn is a plain file path rather than
// ":memory:" or a "file:" URI.
func isSQLiteFile(dsn string) bool {
	return dsn != "" && !strings.HasPrefix(dsn, ":memory:") && !strings.HasPrefix(dsn, "file:")
}
