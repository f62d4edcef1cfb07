package catalog

import (
	"context"
	"database/sql"
	"time"

	"archiveboard/internal/fingerprint"
)

// ImageExists reports whether fp has a row in images.
func (c *Catalog) ImageExists(ctx context.Context, fp fingerprint.Fingerprint) (bool, error) {
	stmt := c.dialect.ExistsImageStatement()
	return retry(ctx, func() (bool, error) {
		var exists bool
		if err := c.db.QueryRowContext(ctx, stmt, fp.String()).Scan(&exists); err != nil {
			return false, &QueryFailed{Operation: "image_exists", SQL: stmt, Cause: err}
		}
		return exists, nil
	})
}

// EnsureImage inserts fp into images if absent. Idempotent.
func (c *Catalog) EnsureImage(ctx context.Context, fp fingerprint.Fingerprint) error {
	stmt := c.dialect.EnsureImageStatement()
	_, err := retry(ctx, func() (struct{}, error) {
		_, err := c.db.ExecContext(ctx, stmt, fp.String())
		if err != nil {
			return struct{}{}, &QueryFailed{Operation: "ensure_image", SQL: stmt, Cause: err}
		}
		return struct{}{}, nil
	})
	return err
}

// EnsureImageHasMetadata implies EnsureImage, then inserts metadata if
// absent. A missing CreatedAt is coerced to the current UTC time.
func (c *Catalog) EnsureImageHasMetadata(ctx context.Context, fp fingerprint.Fingerprint, meta ImageMetadata) error {
	if err := c.EnsureImage(ctx, fp); err != nil {
		return err
	}

	createdAt := time.Now().UTC()
	if meta.CreatedAt != nil {
		createdAt = meta.CreatedAt.UTC()
	}

	stmt := c.dialect.EnsureMetadataStatement()
	_, err := retry(ctx, func() (struct{}, error) {
		_, err := c.db.ExecContext(ctx, stmt,
			fp.String(), meta.Width, meta.Height, meta.Format, meta.ColorModel,
			meta.FileSize, createdAt.Format(time.RFC3339Nano), durationParam(meta.DurationSeconds),
		)
		if err != nil {
			return struct{}{}, &QueryFailed{Operation: "ensure_image_has_metadata", SQL: stmt, Cause: err}
		}
		return struct{}{}, nil
	})
	return err
}

func durationParam(d *float64) any {
	if d == nil {
		return nil
	}
	return *d
}

// EnsureTags inserts every tag if absent, within a single transaction.
func (c *Catalog) EnsureTags(ctx context.Context, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	stmt := c.dialect.EnsureTagStatement()
	_, err := retry(ctx, func() (struct{}, error) {
		return struct{}{}, c.withTx(ctx, func(tx *sql.Tx) error {
			for _, tag := range tags {
				if _, err := tx.ExecContext(ctx, stmt, tag); err != nil {
					return &QueryFailed{Operation: "ensure_tags", SQL: stmt, Cause: err}
				}
			}
			return nil
		})
	})
	return err
}

// EnsureImageHasTags implies EnsureImage and EnsureTags(tags), then inserts
// every (fp, tag) pair within a single transaction.
func (c *Catalog) EnsureImageHasTags(ctx context.Context, fp fingerprint.Fingerprint, tags []string) error {
	if err := c.EnsureImage(ctx, fp); err != nil {
		return err
	}
	if err := c.EnsureTags(ctx, tags); err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}

	stmt := c.dialect.EnsureImageTagStatement()
	_, err := retry(ctx, func() (struct{}, error) {
		return struct{}{}, c.withTx(ctx, func(tx *sql.Tx) error {
			for _, tag := range tags {
				if _, err := tx.ExecContext(ctx, stmt, fp.String(), tag); err != nil {
					return &QueryFailed{Operation: "ensure_image_has_tags", SQL: stmt, Cause: err}
				}
			}
			return nil
		})
	})
	return err
}

// EnsureImageHasSource implies EnsureImage, then updates the source column.
func (c *Catalog) EnsureImageHasSource(ctx context.Context, fp fingerprint.Fingerprint, source string) error {
	if err := c.EnsureImage(ctx, fp); err != nil {
		return err
	}
	stmt := c.dialect.UpdateSourceStatement()
	_, err := retry(ctx, func() (struct{}, error) {
		_, err := c.db.ExecContext(ctx, stmt, source, fp.String())
		if err != nil {
			return struct{}{}, &QueryFailed{Operation: "ensure_image_has_source", SQL: stmt, Cause: err}
		}
		return struct{}{}, nil
	})
	return err
}

// EnsureTagsRemoved deletes each (fp, tag) pair, one statement per tag.
// Idempotent: absent pairs are a no-op.
func (c *Catalog) EnsureTagsRemoved(ctx context.Context, fp fingerprint.Fingerprint, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	stmt := c.dialect.DeleteImageTagStatement()
	_, err := retry(ctx, func() (struct{}, error) {
		return struct{}{}, c.withTx(ctx, func(tx *sql.Tx) error {
			for _, tag := range tags {
				if _, err := tx.ExecContext(ctx, stmt, fp.String(), tag); err != nil {
					return &QueryFailed{Operation: "ensure_tags_removed", SQL: stmt, Cause: err}
				}
			}
			return nil
		})
	})
	return err
}

// EnsureImageRemoved deletes all image-tag rows for fp, then the image row,
// in a single transaction. Idempotent: an absent image is a success.
func (c *Catalog) EnsureImageRemoved(ctx context.Context, fp fingerprint.Fingerprint) error {
	deleteTags := c.dialect.DeleteTagsByImageStatement()
	deleteImage := c.dialect.DeleteImageStatement()

	_, err := retry(ctx, func() (struct{}, error) {
		return struct{}{}, c.withTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, deleteTags, fp.String()); err != nil {
				return &QueryFailed{Operation: "ensure_image_removed", SQL: deleteTags, Cause: err}
			}
			if _, err := tx.ExecContext(ctx, deleteImage, fp.String()); err != nil {
				return &QueryFailed{Operation: "ensure_image_removed", SQL: deleteImage, Cause: err}
			}
			return nil
		})
	})
	return err
}

// RefreshImageCount truncates tag_counts and repopulates it from a
// group-by over image_tags, within a single transaction.
func (c *Catalog) RefreshImageCount(ctx context.Context) error {
	truncate := c.dialect.TruncateTagCountsStatement()
	refresh := c.dialect.RefreshTagCountsStatement()

	_, err := retry(ctx, func() (struct{}, error) {
		return struct{}{}, c.withTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, truncate); err != nil {
				return &QueryFailed{Operation: "refresh_image_count", SQL: truncate, Cause: err}
			}
			if _, err := tx.ExecContext(ctx, refresh); err != nil {
				return &QueryFailed{Operation: "refresh_image_count", SQL: refresh, Cause: err}
			}
			return nil
		})
	})
	return err
}

func (c *Catalog) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return &TransactionFailed{Cause: err}
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return &TransactionFailed{Cause: err}
	}
	return nil
}
