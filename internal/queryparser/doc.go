// Package queryparser is a recursive-descent parser for the image query
// surface syntax:
//
//	query   := or
//	or      := and ( "OR"  and  )*
//	and     := not ( "AND" not  )*
//	not     := [ "NOT" ] primary
//	primary := date | "(" query ")" | tag
//	date    := "date" ( ">=" | "<=" ) <rfc3339>
//	tag     := [A-Za-z0-9_]+
//
// Whitespace between tokens is insignificant. AND/OR are left-associative;
// NOT binds tighter than AND, which binds tighter than OR. It produces
// queryimage.Expr values.
package queryparser
