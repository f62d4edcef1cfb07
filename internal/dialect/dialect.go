// Package dialect abstracts the parameterized SQL one backend expects:
// placeholder style, upsert-if-absent syntax, and schema migration. Exactly
// one implementation is selected per catalog instance; neither the catalog
// nor the query packages hand-roll backend-specific SQL.
package dialect

import (
	"context"
	"database/sql"
)

// Dialect is a capability bag of pure functions returning SQL strings, plus
// a migration routine, for one backend.
type Dialect interface {
	// Name identifies the backend ("sqlite" or "postgres").
	Name() string

	// Placeholder returns the backend's parameter placeholder for the
	// 1-based index idx ("?" for sqlite, "$N" for postgres).
	Placeholder(idx int) string

	// Migrate creates, if absent, the catalog schema and the
	// image_with_metadata view.
	Migrate(ctx context.Context, db *sql.DB) error

	ExistsImageStatement() string
	EnsureImageStatement() string
	EnsureTagStatement() string
	EnsureMetadataStatement() string
	UpdateSourceStatement() string
	QuerySourceStatement() string
	EnsureImageTagStatement() string
	QueryMetadataStatement() string
	QueryTagsByImageStatement() string
	DeleteImageTagStatement() string
	DeleteImageStatement() string
	DeleteTagsByImageStatement() string
	TruncateTagCountsStatement() string
	RefreshTagCountsStatement() string
	CountImageByTagStatement() string

	// QueryImageStatement composes a full SELECT over image_with_metadata
	// using the caller-supplied boolean fragment (empty when unconditional).
	QueryImageStatement(condition string) string

	// CountImageStatement mirrors QueryImageStatement for COUNT queries.
	CountImageStatement(condition string) string

	// QueryTagStatement composes a full SELECT over tags using the
	// caller-supplied boolean fragment.
	QueryTagStatement(condition string) string

	// ExistsTagCondition returns the WHERE-clause fragment testing whether
	// an image carries the tag bound at parameter index idx.
	ExistsTagCondition(idx int) string

	// ExistsDateUntilCondition/ExistsDateSinceCondition mirror
	// ExistsTagCondition for the image_metadatas.created_at bound.
	ExistsDateUntilCondition(idx int) string
	ExistsDateSinceCondition(idx int) string

	// CastInt wraps a placeholder in whatever cast the backend needs to
	// tolerate string-typed drivers binding LIMIT/OFFSET parameters.
	CastInt(placeholder string) string
}
