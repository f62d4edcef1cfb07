package querytag_test

import (
	"testing"

	"archiveboard/internal/dialect"
	"archiveboard/internal/querytag"
)

func TestToSQLNoFilter(t *testing.T) {
	q := querytag.Query{}
	clause, params := q.ToSQL(dialect.SQLite{})
	if clause != "" {
		t.Fatalf("clause = %q, want empty", clause)
	}
	if len(params) != 0 {
		t.Fatalf("params = %v", params)
	}
}

func TestToSQLExactPrefixContains(t *testing.T) {
	cases := []struct {
		name   string
		expr   querytag.Expr
		want   string
		params []any
	}{
		{"exact", querytag.Exact{Value: "cat"}, "WHERE name = ?", []any{"cat"}},
		{"prefix", querytag.Prefix{Value: "ca"}, "WHERE name LIKE ?", []any{"ca%"}},
		{"contains", querytag.Contains{Value: "at"}, "WHERE name LIKE ?", []any{"%at%"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := querytag.Query{Filter: tc.expr}
			clause, params := q.ToSQL(dialect.SQLite{})
			if clause != tc.want {
				t.Fatalf("clause = %q, want %q", clause, tc.want)
			}
			if len(params) != 1 || params[0] != tc.params[0] {
				t.Fatalf("params = %v, want %v", params, tc.params)
			}
		})
	}
}

func TestToSQLNotIsParenthesized(t *testing.T) {
	q := querytag.Query{Filter: querytag.Not{Inner: querytag.Exact{Value: "cat"}}}
	clause, _ := q.ToSQL(dialect.SQLite{})
	if clause != "WHERE NOT (name = ?)" {
		t.Fatalf("clause = %q", clause)
	}
}

func TestToSQLPaginationCasts(t *testing.T) {
	limit := uint32(20)
	q := querytag.Query{}.WithLimit(limit)
	clause, params := q.ToSQL(dialect.SQLite{})
	if clause != "LIMIT CAST(? AS INTEGER)" {
		t.Fatalf("clause = %q", clause)
	}
	if len(params) != 1 || params[0] != int64(20) {
		t.Fatalf("params = %v", params)
	}
}

func TestToSQLAndOr(t *testing.T) {
	q := querytag.Query{Filter: querytag.And{
		Left:  querytag.Exact{Value: "a"},
		Right: querytag.Or{Left: querytag.Exact{Value: "b"}, Right: querytag.Exact{Value: "c"}},
	}}
	clause, params := q.ToSQL(dialect.SQLite{})
	want := "WHERE (name = ? AND (name = ? OR name = ?))"
	if clause != want {
		t.Fatalf("clause = %q, want %q", clause, want)
	}
	if len(params) != 3 {
		t.Fatalf("params = %v", params)
	}
}
