package dialect

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

//go:embed migrations/sqlite/*.sql
var sqliteMigrationFS embed.FS

//go:embed migrations/postgres/*.sql
var postgresMigrationFS embed.FS

type migration struct {
	version string
	sql     string
}

func loadMigrations(fsys embed.FS, dir string) ([]migration, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir %q: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	migrations := make([]migration, 0, len(names))
	for _, name := range names {
		data, err := fsys.ReadFile(dir + "/" + name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		migrations = append(migrations, migration{
			version: strings.TrimSuffix(name, ".sql"),
			sql:     string(data),
		})
	}
	return migrations, nil
}

// applyMigrations applies every not-yet-recorded migration in a single
// transaction, tracked by a schema_migrations(version) table. lockPath,
// when non-empty, serializes migration across processes sharing one
// database file (relevant to SQLite, where concurrent "CREATE TABLE IF NOT
// EXISTS" from two processes can race on some filesystems). ph renders the
// backend's placeholder syntax for the version-tracking statements.
func applyMigrations(ctx context.Context, db *sql.DB, fsys embed.FS, dir, lockPath string, ph func(int) string) error {
	if lockPath != "" {
		lock := flock.New(lockPath)
		locked, err := lock.TryLockContext(ctx, 100*time.Millisecond)
		if err != nil {
			return fmt.Errorf("acquire migration lock %q: %w", lockPath, err)
		}
		if locked {
			defer lock.Unlock()
		}
	}

	migrations, err := loadMigrations(fsys, dir)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)"); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	selectStmt := fmt.Sprintf("SELECT COUNT(1) FROM schema_migrations WHERE version = %s", ph(1))
	insertStmt := fmt.Sprintf("INSERT INTO schema_migrations (version) VALUES (%s)", ph(1))

	for _, m := range migrations {
		var count int
		if err := tx.QueryRowContext(ctx, selectStmt, m.version).Scan(&count); err != nil {
			return fmt.Errorf("scan migration version: %w", err)
		}
		if count > 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.version, err)
		}
		if _, err := tx.ExecContext(ctx, insertStmt, m.version); err != nil {
			return fmt.Errorf("record migration %s: %w", m.version, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migrations: %w", err)
	}
	return nil
}
