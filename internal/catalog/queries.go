package catalog

import (
	"context"
	"database/sql"

	"archiveboard/internal/fingerprint"
	"archiveboard/internal/queryimage"
	"archiveboard/internal/querytag"
)

// QueryImage runs q against the image catalog, returning matching
// fingerprints in the order the backend yields them. A hash that fails to
// parse back into a Fingerprint is skipped rather than failing the whole
// query: the catalog schema should never produce one, but a row surviving
// from an older format must not take down every query.
func (c *Catalog) QueryImage(ctx context.Context, q queryimage.Query) ([]fingerprint.Fingerprint, error) {
	condition, params := q.ToSQL(c.dialect)
	stmt := c.dialect.QueryImageStatement(condition)

	return retry(ctx, func() ([]fingerprint.Fingerprint, error) {
		rows, err := c.db.QueryContext(ctx, stmt, params...)
		if err != nil {
			return nil, &QueryFailed{Operation: "query_image", SQL: stmt, Cause: err}
		}
		defer rows.Close()

		results := make([]fingerprint.Fingerprint, 0)
		for rows.Next() {
			var hash string
			if err := rows.Scan(&hash); err != nil {
				return nil, &QueryFailed{Operation: "query_image", SQL: stmt, Cause: err}
			}
			fp, err := fingerprint.Parse(hash)
			if err != nil {
				continue
			}
			results = append(results, fp)
		}
		if err := rows.Err(); err != nil {
			return nil, &QueryFailed{Operation: "query_image", SQL: stmt, Cause: err}
		}
		return results, nil
	})
}

// CountImage mirrors QueryImage, returning only the match count (ignoring
// any Limit/Offset on q, matching the semantics of a COUNT(*) query).
func (c *Catalog) CountImage(ctx context.Context, q queryimage.Query) (uint64, error) {
	q.Limit = nil
	q.Offset = nil
	condition, params := q.ToSQL(c.dialect)
	stmt := c.dialect.CountImageStatement(condition)

	return retry(ctx, func() (uint64, error) {
		var count int64
		err := c.db.QueryRowContext(ctx, stmt, params...).Scan(&count)
		if err == sql.ErrNoRows {
			return 0, nil
		}
		if err != nil {
			return 0, &QueryFailed{Operation: "count_image", SQL: stmt, Cause: err}
		}
		return uint64(count), nil
	})
}

// QueryTags runs q against the tag catalog, returning matching tag names.
func (c *Catalog) QueryTags(ctx context.Context, q querytag.Query) ([]string, error) {
	condition, params := q.ToSQL(c.dialect)
	stmt := c.dialect.QueryTagStatement(condition)

	return retry(ctx, func() ([]string, error) {
		rows, err := c.db.QueryContext(ctx, stmt, params...)
		if err != nil {
			return nil, &QueryFailed{Operation: "query_tags", SQL: stmt, Cause: err}
		}
		defer rows.Close()

		names := make([]string, 0)
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				return nil, &QueryFailed{Operation: "query_tags", SQL: stmt, Cause: err}
			}
			names = append(names, name)
		}
		if err := rows.Err(); err != nil {
			return nil, &QueryFailed{Operation: "query_tags", SQL: stmt, Cause: err}
		}
		return names, nil
	})
}
