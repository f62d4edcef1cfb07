package dialect

import (
	"context"
	"database/sql"
	"fmt"
)

// Postgres is the pgx/v5-backed dialect: "$N" placeholders, "INSERT ... ON
// CONFLICT DO NOTHING" upsert-if-absent.
type Postgres struct {
	// SchemaPrefix, when non-empty, qualifies every table reference
	// (e.g. "archive" -> "archive.images").
	SchemaPrefix string
}

func (Postgres) Name() string { return "postgres" }

func (Postgres) Placeholder(idx int) string { return fmt.Sprintf("$%d", idx) }

func (d Postgres) Migrate(ctx context.Context, db *sql.DB) error {
	return applyMigrations(ctx, db, postgresMigrationFS, "migrations/postgres", "", d.Placeholder)
}

func (d Postgres) table(name string) string {
	if d.SchemaPrefix == "" {
		return name
	}
	return d.SchemaPrefix + "." + name
}

func (d Postgres) ExistsImageStatement() string {
	return fmt.Sprintf("SELECT EXISTS ( SELECT 1 FROM %s WHERE hash = $1 )", d.table("images"))
}

func (d Postgres) EnsureImageStatement() string {
	return fmt.Sprintf("INSERT INTO %s (hash) VALUES ($1) ON CONFLICT DO NOTHING", d.table("images"))
}

func (d Postgres) EnsureTagStatement() string {
	return fmt.Sprintf("INSERT INTO %s (name) VALUES ($1) ON CONFLICT DO NOTHING", d.table("tags"))
}

func (d Postgres) EnsureMetadataStatement() string {
	return fmt.Sprintf(`INSERT INTO %s
		(image_hash, width, height, format, color_type, file_size, created_at, duration)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) ON CONFLICT DO NOTHING`, d.table("image_metadatas"))
}

func (d Postgres) UpdateSourceStatement() string {
	return fmt.Sprintf("UPDATE %s SET source = $1 WHERE hash = $2", d.table("images"))
}

func (d Postgres) QuerySourceStatement() string {
	return fmt.Sprintf("SELECT source FROM %s WHERE hash = $1", d.table("images"))
}

func (d Postgres) EnsureImageTagStatement() string {
	return fmt.Sprintf("INSERT INTO %s (image_hash, tag_name) VALUES ($1, $2) ON CONFLICT DO NOTHING", d.table("image_tags"))
}

func (d Postgres) QueryMetadataStatement() string {
	return fmt.Sprintf("SELECT width, height, format, color_type, file_size, created_at, duration FROM %s WHERE image_hash = $1", d.table("image_metadatas"))
}

func (d Postgres) QueryTagsByImageStatement() string {
	return fmt.Sprintf("SELECT tag_name FROM %s WHERE image_hash = $1", d.table("image_tags"))
}

func (d Postgres) DeleteImageTagStatement() string {
	return fmt.Sprintf("DELETE FROM %s WHERE image_hash = $1 AND tag_name = $2", d.table("image_tags"))
}

func (d Postgres) DeleteImageStatement() string {
	return fmt.Sprintf("DELETE FROM %s WHERE hash = $1", d.table("images"))
}

func (d Postgres) DeleteTagsByImageStatement() string {
	return fmt.Sprintf("DELETE FROM %s WHERE image_hash = $1", d.table("image_tags"))
}

func (d Postgres) TruncateTagCountsStatement() string {
	return fmt.Sprintf("TRUNCATE %s", d.table("tag_counts"))
}

func (d Postgres) RefreshTagCountsStatement() string {
	return fmt.Sprintf("INSERT INTO %s SELECT tag_name, COUNT(*) FROM %s GROUP BY tag_name", d.table("tag_counts"), d.table("image_tags"))
}

func (d Postgres) CountImageByTagStatement() string {
	return fmt.Sprintf("SELECT count FROM %s WHERE tag_name = $1", d.table("tag_counts"))
}

func (d Postgres) QueryImageStatement(condition string) string {
	return fmt.Sprintf("SELECT hash FROM %s %s", d.table("image_with_metadata"), condition)
}

func (d Postgres) CountImageStatement(condition string) string {
	return fmt.Sprintf("SELECT COUNT(hash) FROM %s %s", d.table("image_with_metadata"), condition)
}

func (d Postgres) QueryTagStatement(condition string) string {
	return fmt.Sprintf("SELECT name FROM %s %s", d.table("tags"), condition)
}

func (d Postgres) ExistsTagCondition(idx int) string {
	return fmt.Sprintf("EXISTS (SELECT 1 FROM %s WHERE image_tags.image_hash = image_with_metadata.hash AND image_tags.tag_name = %s)", d.table("image_tags"), d.Placeholder(idx))
}

func (d Postgres) ExistsDateUntilCondition(idx int) string {
	return fmt.Sprintf("EXISTS (SELECT 1 FROM %s WHERE image_metadatas.image_hash = image_with_metadata.hash AND image_metadatas.created_at <= %s)", d.table("image_metadatas"), d.Placeholder(idx))
}

func (d Postgres) ExistsDateSinceCondition(idx int) string {
	return fmt.Sprintf("EXISTS (SELECT 1 FROM %s WHERE image_metadatas.image_hash = image_with_metadata.hash AND image_metadatas.created_at >= %s)", d.table("image_metadatas"), d.Placeholder(idx))
}

func (Postgres) CastInt(placeholder string) string {
	return fmt.Sprintf("CAST(%s AS INTEGER)", placeholder)
}
