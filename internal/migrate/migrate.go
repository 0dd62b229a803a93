package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/beheryahmed1991/subscription-tracker/internal/db"
	"github.com/beheryahmed1991/subscription-tracker/migrations"
)

func newProvider(database *sql.DB, dialect db.Dialect) (*goose.Provider, error) {
	var gd goose.Dialect
	switch dialect {
	case db.DialectPostgres:
		gd = goose.DialectPostgres
	case db.DialectSQLite:
		gd = goose.DialectSQLite3
	default:
		return nil, fmt.Errorf("no migrations for dialect %q", dialect)
	}

	sub, err := fs.Sub(migrations.Files, string(dialect))
	if err != nil {
		return nil, fmt.Errorf("migrations fs: %w", err)
	}

	p, err := goose.NewProvider(gd, database, sub)
	if err != nil {
		return nil, fmt.Errorf("goose provider: %w", err)
	}
	return p, nil
}

// Up applies all pending embedded migrations for the dialect.
func Up(ctx context.Context, database *sql.DB, dialect db.Dialect) error {
	p, err := newProvider(database, dialect)
	if err != nil {
		return err
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Down rolls back the most recently applied migration.
func Down(ctx context.Context, database *sql.DB, dialect db.Dialect) error {
	p, err := newProvider(database, dialect)
	if err != nil {
		return err
	}
	if _, err := p.Down(ctx); err != nil {
		return fmt.Errorf("goose down: %w", err)
	}
	return nil
}

// Version reports the current schema version.
func Version(ctx context.Context, database *sql.DB, dialect db.Dialect) (int64, error) {
	p, err := newProvider(database, dialect)
	if err != nil {
		return 0, err
	}
	v, err := p.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("goose version: %w", err)
	}
	return v, nil
}
