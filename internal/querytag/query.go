package querytag

import (
	"fmt"
	"strings"

	"archiveboard/internal/dialect"
)

// Query wraps an optional filter expression plus pagination. A nil Filter
// means "all tags".
type Query struct {
	Filter Expr
	Limit  *uint32
	Offset *uint32
}

// WithLimit returns a copy of q with Limit set.
func (q Query) WithLimit(limit uint32) Query {
	q.Limit = &limit
	return q
}

// WithOffset returns a copy of q with Offset set.
func (q Query) WithOffset(offset uint32) Query {
	q.Offset = &offset
	return q
}

// ToSQL lowers the query to a dialect-specific condition fragment plus its
// ordered bound parameters.
func (q Query) ToSQL(d dialect.Dialect) (string, []any) {
	var params []any
	var clause string
	if q.Filter != nil {
		clause = "WHERE " + q.Filter.lower(d, &params)
	}

	parts := make([]string, 0, 2)
	if clause != "" {
		parts = append(parts, clause)
	}
	if q.Limit != nil {
		params = append(params, int64(*q.Limit))
		parts = append(parts, fmt.Sprintf("LIMIT %s", d.CastInt(d.Placeholder(len(params)))))
	}
	if q.Offset != nil {
		params = append(params, int64(*q.Offset))
		parts = append(parts, fmt.Sprintf("OFFSET %s", d.CastInt(d.Placeholder(len(params)))))
	}
	return strings.Join(parts, " "), params
}
