// Package querytag is the tag filter/query AST and its lowering to
// parameterized SQL: Exact/Prefix/Contains/And/Or/Not filters, wrapped in a
// Query carrying pagination.
package querytag
