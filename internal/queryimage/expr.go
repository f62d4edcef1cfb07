package queryimage

import (
	"fmt"
	"time"

	"archiveboard/internal/dialect"
)

// Expr is the image filter AST: Tag, And, Or, Not, DateUntil, DateSince.
type Expr interface {
	lower(d dialect.Dialect, params *[]any) string
}

// Tag matches images carrying the named tag.
type Tag struct {
	Name string
}

func (e Tag) lower(d dialect.Dialect, params *[]any) string {
	*params = append(*params, e.Name)
	return d.ExistsTagCondition(len(*params))
}

// And is the logical conjunction of two subexpressions.
type And struct {
	Left, Right Expr
}

func (e And) lower(d dialect.Dialect, params *[]any) string {
	left := e.Left.lower(d, params)
	right := e.Right.lower(d, params)
	return fmt.Sprintf("(%s AND %s)", left, right)
}

// Or is the logical disjunction of two subexpressions.
type Or struct {
	Left, Right Expr
}

func (e Or) lower(d dialect.Dialect, params *[]any) string {
	left := e.Left.lower(d, params)
	right := e.Right.lower(d, params)
	return fmt.Sprintf("(%s OR %s)", left, right)
}

// Not negates a subexpression. It does not parenthesise: NOT binds tighter
// than AND/OR in every dialect this package targets.
type Not struct {
	Inner Expr
}

func (e Not) lower(d dialect.Dialect, params *[]any) string {
	return "NOT " + e.Inner.lower(d, params)
}

// DateUntil matches images whose metadata creation time is at or before At.
type DateUntil struct {
	At time.Time
}

func (e DateUntil) lower(d dialect.Dialect, params *[]any) string {
	*params = append(*params, e.At.UTC().Format(time.RFC3339Nano))
	return d.ExistsDateUntilCondition(len(*params))
}

// DateSince matches images whose metadata creation time is at or after At.
type DateSince struct {
	At time.Time
}

func (e DateSince) lower(d dialect.Dialect, params *[]any) string {
	*params = append(*params, e.At.UTC().Format(time.RFC3339Nano))
	return d.ExistsDateSinceCondition(len(*params))
}
