package catalog

import (
	"context"
	"database/sql"
	"time"

	"archiveboard/internal/fingerprint"
)

// GetTags returns the tags attached to fp, in whatever order the backend
// yields them. An absent image returns an empty slice, not an error.
func (c *Catalog) GetTags(ctx context.Context, fp fingerprint.Fingerprint) ([]string, error) {
	stmt := c.dialect.QueryTagsByImageStatement()
	return retry(ctx, func() ([]string, error) {
		rows, err := c.db.QueryContext(ctx, stmt, fp.String())
		if err != nil {
			return nil, &QueryFailed{Operation: "get_tags", SQL: stmt, Cause: err}
		}
		defer rows.Close()

		tags := make([]string, 0)
		for rows.Next() {
			var tag string
			if err := rows.Scan(&tag); err != nil {
				return nil, &QueryFailed{Operation: "get_tags", SQL: stmt, Cause: err}
			}
			tags = append(tags, tag)
		}
		if err := rows.Err(); err != nil {
			return nil, &QueryFailed{Operation: "get_tags", SQL: stmt, Cause: err}
		}
		return tags, nil
	})
}

// GetMetadata returns fp's metadata row, or nil if none exists.
func (c *Catalog) GetMetadata(ctx context.Context, fp fingerprint.Fingerprint) (*ImageMetadata, error) {
	stmt := c.dialect.QueryMetadataStatement()
	return retry(ctx, func() (*ImageMetadata, error) {
		var meta ImageMetadata
		var createdAt string
		var duration sql.NullFloat64

		row := c.db.QueryRowContext(ctx, stmt, fp.String())
		err := row.Scan(&meta.Width, &meta.Height, &meta.Format, &meta.ColorModel,
			&meta.FileSize, &createdAt, &duration)
		if err == sql.ErrNoRows {
			return nil, nil
		}
		if err != nil {
			return nil, &QueryFailed{Operation: "get_metadata", SQL: stmt, Cause: err}
		}

		if parsed, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			meta.CreatedAt = &parsed
		}
		if duration.Valid {
			meta.DurationSeconds = &duration.Float64
		}
		return &meta, nil
	})
}

// GetSource returns fp's source URL, or nil if unset or the image is
// absent.
func (c *Catalog) GetSource(ctx context.Context, fp fingerprint.Fingerprint) (*string, error) {
	stmt := c.dialect.QuerySourceStatement()
	return retry(ctx, func() (*string, error) {
		var source sql.NullString
		err := c.db.QueryRowContext(ctx, stmt, fp.String()).Scan(&source)
		if err == sql.ErrNoRows {
			return nil, nil
		}
		if err != nil {
			return nil, &QueryFailed{Operation: "get_source", SQL: stmt, Cause: err}
		}
		if !source.Valid {
			return nil, nil
		}
		return &source.String, nil
	})
}

// CountImageByTag reads the denormalized tag_counts table. An absent tag
// (including one never covered by RefreshImageCount) returns zero.
func (c *Catalog) CountImageByTag(ctx context.Context, tag string) (uint64, error) {
	stmt := c.dialect.CountImageByTagStatement()
	return retry(ctx, func() (uint64, error) {
		var count int64
		err := c.db.QueryRowContext(ctx, stmt, tag).Scan(&count)
		if err == sql.ErrNoRows {
			return 0, nil
		}
		if err != nil {
			return 0, &QueryFailed{Operation: "count_image_by_tag", SQL: stmt, Cause: err}
		}
		return uint64(count), nil
	})
}
