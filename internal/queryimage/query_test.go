package queryimage_test

import (
	"testing"
	"time"

	"archiveboard/internal/dialect"
	"archiveboard/internal/queryimage"
)

func TestToSQLAllImages(t *testing.T) {
	q := queryimage.Query{}
	clause, params := q.ToSQL(dialect.SQLite{})
	if clause != "ORDER BY created_at DESC" {
		t.Fatalf("clause = %q", clause)
	}
	if len(params) != 0 {
		t.Fatalf("params = %v, want none", params)
	}
}

func TestToSQLTagFilter(t *testing.T) {
	q := queryimage.Query{Filter: queryimage.Tag{Name: "cat"}}
	clause, params := q.ToSQL(dialect.SQLite{})
	want := "WHERE EXISTS (SELECT 1 FROM image_tags WHERE image_tags.image_hash = image_with_metadata.hash AND image_tags.tag_name = ?) ORDER BY created_at DESC"
	if clause != want {
		t.Fatalf("clause = %q, want %q", clause, want)
	}
	if len(params) != 1 || params[0] != "cat" {
		t.Fatalf("params = %v", params)
	}
}

func TestToSQLAndOrNot(t *testing.T) {
	q := queryimage.Query{
		Filter: queryimage.And{
			Left:  queryimage.Tag{Name: "cat"},
			Right: queryimage.Not{Inner: queryimage.Tag{Name: "dog"}},
		},
	}
	clause, params := q.ToSQL(dialect.SQLite{})
	if len(params) != 2 || params[0] != "cat" || params[1] != "dog" {
		t.Fatalf("params = %v", params)
	}
	if clause == "" {
		t.Fatal("expected non-empty clause")
	}
}

func TestToSQLPostgresPlaceholders(t *testing.T) {
	q := queryimage.Query{Filter: queryimage.Tag{Name: "cat"}}
	clause, _ := q.ToSQL(dialect.Postgres{})
	if !containsAll(clause, "$1") {
		t.Fatalf("clause = %q, want $1 placeholder", clause)
	}
}

func TestToSQLPaginationCastsToInteger(t *testing.T) {
	limit := uint32(10)
	offset := uint32(5)
	q := queryimage.Query{Limit: &limit, Offset: &offset}
	clause, params := q.ToSQL(dialect.SQLite{})
	want := "ORDER BY created_at DESC LIMIT CAST(? AS INTEGER) OFFSET CAST(? AS INTEGER)"
	if clause != want {
		t.Fatalf("clause = %q, want %q", clause, want)
	}
	if len(params) != 2 || params[0] != int64(10) || params[1] != int64(5) {
		t.Fatalf("params = %v", params)
	}
}

func TestOrderVariants(t *testing.T) {
	cases := []struct {
		order queryimage.Order
		want  string
	}{
		{queryimage.OrderCreatedAtAsc, "ORDER BY created_at ASC"},
		{queryimage.OrderFileSizeAsc, "ORDER BY file_size ASC"},
		{queryimage.OrderFileSizeDesc, "ORDER BY file_size DESC"},
		{queryimage.OrderRandom, "ORDER BY RANDOM()"},
	}
	for _, tc := range cases {
		q := queryimage.Query{Order: tc.order}
		clause, _ := q.ToSQL(dialect.SQLite{})
		if clause != tc.want {
			t.Fatalf("order %v: clause = %q, want %q", tc.order, clause, tc.want)
		}
	}
}

func TestDateFiltersBindRFC3339(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	q := queryimage.Query{Filter: queryimage.DateSince{At: at}}
	_, params := q.ToSQL(dialect.SQLite{})
	if len(params) != 1 || params[0] != "2025-01-02T03:04:05Z" {
		t.Fatalf("params = %v", params)
	}
}

func containsAll(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
