// Package queryimage is the image filter/query AST and its lowering to
// parameterized SQL: Tag/And/Or/Not/DateUntil/DateSince filters, wrapped in
// a Query carrying pagination and ordering. The same AST reaches any
// dialect unchanged; only the dialect decides placeholder syntax and the
// exact EXISTS-subquery text.
package queryimage
