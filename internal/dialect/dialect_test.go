package dialect_test

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"archiveboard/internal/dialect"
)

func TestSQLitePlaceholder(t *testing.T) {
	d := dialect.SQLite{}
	if got := d.Placeholder(1); got != "?" {
		t.Fatalf("Placeholder(1) = %q, want %q", got, "?")
	}
	if got := d.Placeholder(42); got != "?" {
		t.Fatalf("Placeholder(42) = %q, want %q", got, "?")
	}
}

func TestPostgresPlaceholder(t *testing.T) {
	d := dialect.Postgres{}
	if got := d.Placeholder(1); got != "$1" {
		t.Fatalf("Placeholder(1) = %q, want %q", got, "$1")
	}
	if got := d.Placeholder(3); got != "$3" {
		t.Fatalf("Placeholder(3) = %q, want %q", got, "$3")
	}
}

func TestPostgresSchemaPrefix(t *testing.T) {
	d := dialect.Postgres{SchemaPrefix: "archive"}
	stmt := d.ExistsImageStatement()
	if !contains(stmt, "archive.images") {
		t.Fatalf("statement = %q, want table qualified with schema prefix", stmt)
	}
}

func TestSQLiteMigrateIsIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	defer db.Close()

	d := dialect.SQLite{}
	ctx := context.Background()
	if err := d.Migrate(ctx, db); err != nil {
		t.Fatalf("first Migrate: %v", err)
	}
	if err := d.Migrate(ctx, db); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(1) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("query schema_migrations: %v", err)
	}
	if count == 0 {
		t.Fatal("expected at least one recorded migration")
	}

	if _, err := db.ExecContext(ctx, "SELECT 1 FROM images LIMIT 0"); err != nil {
		t.Fatalf("images table missing after migrate: %v", err)
	}
	if _, err := db.ExecContext(ctx, "SELECT 1 FROM image_with_metadata LIMIT 0"); err != nil {
		t.Fatalf("image_with_metadata view missing after migrate: %v", err)
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
