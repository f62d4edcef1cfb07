package queryparser_test

import (
	"errors"
	"testing"
	"time"

	"archiveboard/internal/queryimage"
	"archiveboard/internal/queryparser"
)

func TestParseTag(t *testing.T) {
	expr, err := queryparser.Parse("cat")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tag, ok := expr.(queryimage.Tag)
	if !ok || tag.Name != "cat" {
		t.Fatalf("got %#v, want Tag{cat}", expr)
	}
}

func TestParseKeywordPrefixedTag(t *testing.T) {
	cases := []string{"NOTICE", "ORANGE", "ANDROID"}
	for _, name := range cases {
		expr, err := queryparser.Parse(name)
		if err != nil {
			t.Fatalf("Parse(%q): %v", name, err)
		}
		tag, ok := expr.(queryimage.Tag)
		if !ok || tag.Name != name {
			t.Fatalf("Parse(%q) = %#v, want Tag{%s}", name, expr, name)
		}
	}
}

func TestParseComplexExpr(t *testing.T) {
	input := "cat AND (cute OR NOT dog) AND date >= 2025-05-02T01:18:49.678809123Z"
	expr, err := queryparser.Parse(input)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want, err := time.Parse(time.RFC3339Nano, "2025-05-02T01:18:49.678809123Z")
	if err != nil {
		t.Fatalf("reference parse: %v", err)
	}

	expected := queryimage.And{
		Left: queryimage.And{
			Left: queryimage.Tag{Name: "cat"},
			Right: queryimage.Or{
				Left:  queryimage.Tag{Name: "cute"},
				Right: queryimage.Not{Inner: queryimage.Tag{Name: "dog"}},
			},
		},
		Right: queryimage.DateSince{At: want},
	}
	if expr != expected {
		t.Fatalf("got %#v, want %#v", expr, expected)
	}
}

func TestParseParentheses(t *testing.T) {
	expr, err := queryparser.Parse("(cat OR dog) AND cute")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	and, ok := expr.(queryimage.And)
	if !ok {
		t.Fatalf("got %#v, want And", expr)
	}
	if _, ok := and.Left.(queryimage.Or); !ok {
		t.Fatalf("left side got %#v, want Or", and.Left)
	}
}

func TestParseDateUntil(t *testing.T) {
	expr, err := queryparser.Parse("date<=2024-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := expr.(queryimage.DateUntil); !ok {
		t.Fatalf("got %#v, want DateUntil", expr)
	}
}

func TestParseInvalidDateFormat(t *testing.T) {
	_, err := queryparser.Parse("date >= not-a-date")
	var invalid *queryparser.InvalidDateFormat
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want *InvalidDateFormat", err)
	}
}

func TestParseUnexpectedTrailingInput(t *testing.T) {
	_, err := queryparser.Parse("cat )")
	var unexpected *queryparser.UnexpectedToken
	if !errors.As(err, &unexpected) {
		t.Fatalf("got %v, want *UnexpectedToken", err)
	}
}

func TestParseUnclosedParen(t *testing.T) {
	_, err := queryparser.Parse("(cat AND dog")
	var unexpected *queryparser.UnexpectedToken
	if !errors.As(err, &unexpected) {
		t.Fatalf("got %v, want *UnexpectedToken", err)
	}
}

func TestParseEmptyInput(t *testing.T) {
	_, err := queryparser.Parse("")
	var expected *queryparser.ExpectedExpr
	if !errors.As(err, &expected) {
		t.Fatalf("got %v, want *ExpectedExpr", err)
	}
}

func TestParseWhitespaceInsignificant(t *testing.T) {
	a, err := queryparser.Parse("cat  AND   dog")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b, err := queryparser.Parse("cat AND dog")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if a != b {
		t.Fatalf("whitespace variants produced different ASTs: %#v vs %#v", a, b)
	}
}
