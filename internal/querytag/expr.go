package querytag

import (
	"fmt"

	"archiveboard/internal/dialect"
)

// Expr is the tag filter AST: Exact, Prefix, Contains, And, Or, Not.
type Expr interface {
	lower(d dialect.Dialect, params *[]any) string
}

// Exact matches a tag equal to Value.
type Exact struct {
	Value string
}

func (e Exact) lower(d dialect.Dialect, params *[]any) string {
	*params = append(*params, e.Value)
	return fmt.Sprintf("name = %s", d.Placeholder(len(*params)))
}

// Prefix matches tags starting with Value.
type Prefix struct {
	Value string
}

func (e Prefix) lower(d dialect.Dialect, params *[]any) string {
	*params = append(*params, e.Value+"%")
	return fmt.Sprintf("name LIKE %s", d.Placeholder(len(*params)))
}

// Contains matches tags containing Value as a substring.
type Contains struct {
	Value string
}

func (e Contains) lower(d dialect.Dialect, params *[]any) string {
	*params = append(*params, "%"+e.Value+"%")
	return fmt.Sprintf("name LIKE %s", d.Placeholder(len(*params)))
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

// Not negates a subexpression, parenthesised (tag filters have no bare
// identifier ambiguity to exploit, unlike image filters).
type Not struct {
	Inner Expr
}

func (e Not) lower(d dialect.Dialect, params *[]any) string {
	return "NOT (" + e.Inner.lower(d, params) + ")"
}
