package queryimage

import (
	"fmt"
	"strings"

	"archiveboard/internal/dialect"
)

// Order selects the sequence images are returned in.
type Order int

const (
	// OrderCreatedAtDesc is the default when no order is specified.
	OrderCreatedAtDesc Order = iota
	OrderCreatedAtAsc
	OrderFileSizeAsc
	OrderFileSizeDesc
	OrderRandom
)

func (o Order) sql() string {
	switch o {
	case OrderCreatedAtAsc:
		return "ORDER BY created_at ASC"
	case OrderFileSizeAsc:
		return "ORDER BY file_size ASC"
	case OrderFileSizeDesc:
		return "ORDER BY file_size DESC"
	case OrderRandom:
		return "ORDER BY RANDOM()"
	default:
		return "ORDER BY created_at DESC"
	}
}

// Query wraps an optional filter expression plus pagination and ordering.
// A nil Filter means "all images", and the WHERE clause is omitted
// entirely.
type Query struct {
	Filter Expr
	Limit  *uint32
	Offset *uint32
	Order  Order
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

// WithOrder returns a copy of q with Order set.
func (q Query) WithOrder(order Order) Query {
	q.Order = order
	return q
}

// ToSQL lowers the query to a dialect-specific condition fragment (WHERE
// ... ORDER BY ... LIMIT ... OFFSET ...) plus its ordered bound parameters.
// Parameter indices are assigned left-to-right in the order values are
// appended, matching the order placeholders appear in the returned SQL.
func (q Query) ToSQL(d dialect.Dialect) (string, []any) {
	var params []any
	var clause string

	if q.Filter != nil {
		clause = "WHERE " + q.Filter.lower(d, &params)
	}

	parts := make([]string, 0, 3)
	if clause != "" {
		parts = append(parts, clause)
	}
	parts = append(parts, q.Order.sql())

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
