package dialect

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLite is the modernc.org/sqlite-backed dialect: "?" placeholders,
// "INSERT OR IGNORE" upsert-if-absent.
type SQLite struct {
	// MigrationLockPath guards concurrent schema migration across
	// processes sharing one database file. Empty disables the guard.
	MigrationLockPath string
}

func (SQLite) Name() string { return "sqlite" }

func (SQLite) Placeholder(idx int) string { return "?" }

func (d SQLite) Migrate(ctx context.Context, db *sql.DB) error {
	return applyMigrations(ctx, db, sqliteMigrationFS, "migrations/sqlite", d.MigrationLockPath, d.Placeholder)
}

func (SQLite) ExistsImageStatement() string {
	return "SELECT EXISTS ( SELECT 1 FROM images WHERE hash = ? )"
}

func (SQLite) EnsureImageStatement() string {
	return "INSERT OR IGNORE INTO images (hash) VALUES (?)"
}

func (SQLite) EnsureTagStatement() string {
	return "INSERT OR IGNORE INTO tags (name) VALUES (?)"
}

func (SQLite) EnsureMetadataStatement() string {
	return `INSERT OR IGNORE INTO image_metadatas
		(image_hash, width, height, format, color_type, file_size, created_at, duration)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
}

func (SQLite) UpdateSourceStatement() string {
	return "UPDATE images SET source = ? WHERE hash = ?"
}

func (SQLite) QuerySourceStatement() string {
	return "SELECT source FROM images WHERE hash = ?"
}

func (SQLite) EnsureImageTagStatement() string {
	return "INSERT OR IGNORE INTO image_tags (image_hash, tag_name) VALUES (?, ?)"
}

func (SQLite) QueryMetadataStatement() string {
	return "SELECT width, height, format, color_type, file_size, created_at, duration FROM image_metadatas WHERE image_hash = ?"
}

func (SQLite) QueryTagsByImageStatement() string {
	return "SELECT tag_name FROM image_tags WHERE image_hash = ?"
}

func (SQLite) DeleteImageTagStatement() string {
	return "DELETE FROM image_tags WHERE image_hash = ? AND tag_name = ?"
}

func (SQLite) DeleteImageStatement() string {
	return "DELETE FROM images WHERE hash = ?"
}

func (SQLite) DeleteTagsByImageStatement() string {
	return "DELETE FROM image_tags WHERE image_hash = ?"
}

func (SQLite) TruncateTagCountsStatement() string {
	return "DELETE FROM tag_counts"
}

func (SQLite) RefreshTagCountsStatement() string {
	return "INSERT INTO tag_counts SELECT tag_name, COUNT(*) FROM image_tags GROUP BY tag_name"
}

func (SQLite) CountImageByTagStatement() string {
	return "SELECT count FROM tag_counts WHERE tag_name = ?"
}

func (SQLite) QueryImageStatement(condition string) string {
	return fmt.Sprintf("SELECT hash FROM image_with_metadata %s", condition)
}

func (SQLite) CountImageStatement(condition string) string {
	return fmt.Sprintf("SELECT COUNT(hash) FROM image_with_metadata %s", condition)
}

func (SQLite) QueryTagStatement(condition string) string {
	return fmt.Sprintf("SELECT name FROM tags %s", condition)
}

func (SQLite) ExistsTagCondition(idx int) string {
	return fmt.Sprintf("EXISTS (SELECT 1 FROM image_tags WHERE image_tags.image_hash = image_with_metadata.hash AND image_tags.tag_name = %s)", SQLite{}.Placeholder(idx))
}

func (SQLite) ExistsDateUntilCondition(idx int) string {
	return fmt.Sprintf("EXISTS (SELECT 1 FROM image_metadatas WHERE image_metadatas.image_hash = image_with_metadata.hash AND image_metadatas.created_at <= %s)", SQLite{}.Placeholder(idx))
}

func (SQLite) ExistsDateSinceCondition(idx int) string {
	return fmt.Sprintf("EXISTS (SELECT 1 FROM image_metadatas WHERE image_metadatas.image_hash = image_with_metadata.hash AND image_metadatas.created_at >= %s)", SQLite{}.Placeholder(idx))
}

func (SQLite) CastInt(placeholder string) string {
	return fmt.Sprintf("CAST(%s AS INTEGER)", placeholder)
}
