package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"archiveboard/internal/dialect"
)

// Catalog is the relational store backed by a single dialect-selected
// *sql.DB connection pool.
type Catalog struct {
	db      *sql.DB
	dialect dialect.Dialect
}

// Open opens driverName/dsn, applies the dialect's migrations, and returns
// a ready Catalog. driverName is "sqlite" (modernc.org/sqlite) or "pgx"
// (jackc/pgx/v5/stdlib).
func Open(ctx context.Context, driverName, dsn string, d dialect.Dialect) (*Catalog, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", driverName, err)
	}

	if sqliteDialect, ok := d.(dialect.SQLite); ok && sqliteDialect.MigrationLockPath == "" {
		// Without a migration lock path, keep SQLite to a single pool
		// connection so writers are serialized by the pool instead of
		// racing connections against each other.
		db.SetMaxOpenConns(1)
	}

	if err := d.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("catalog: migrate: %w", err)
	}

	return &Catalog{db: db, dialect: d}, nil
}

// Close closes the underlying connection pool.
func (c *Catalog) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}
