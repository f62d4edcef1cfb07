package queryparser

import (
	"strings"
	"time"

	"archiveboard/internal/queryimage"
)

// Parse parses input as an image filter expression per the grammar in the
// package doc comment.
func Parse(input string) (queryimage.Expr, error) {
	p := &parser{input: input}
	expr, err := p.orExpr()
	if err != nil {
		return nil, err
	}
	if rest := strings.TrimSpace(p.rest()); rest != "" {
		return nil, &UnexpectedToken{Location: rest}
	}
	return expr, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) rest() string { return p.input[p.pos:] }

func (p *parser) skipWS() {
	for p.pos < len(p.input) && isSpace(p.input[p.pos]) {
		p.pos++
	}
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func isTagChar(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDateTimeChar(c byte) bool {
	return (c >= '0' && c <= '9') || c == '-' || c == ':' || c == '.' || c == 'T' || c == 'Z'
}

// tryKeyword consumes leading whitespace then a case-sensitive literal
// keyword, requiring a non-tag-char (or end of input) immediately after so a
// tag like "NOTICE" or "ORANGE" isn't misread as the keyword "NOT"/"OR"
// followed by a shorter tag. It leaves pos unchanged and reports false when
// the keyword isn't next.
func (p *parser) tryKeyword(kw string) bool {
	save := p.pos
	p.skipWS()
	if strings.HasPrefix(p.input[p.pos:], kw) {
		end := p.pos + len(kw)
		if end < len(p.input) && isTagChar(p.input[end]) {
			p.pos = save
			return false
		}
		p.pos = end
		return true
	}
	p.pos = save
	return false
}

func (p *parser) orExpr() (queryimage.Expr, error) {
	left, err := p.andExpr()
	if err != nil {
		return nil, err
	}
	for p.tryKeyword("OR") {
		right, err := p.andExpr()
		if err != nil {
			return nil, err
		}
		left = queryimage.Or{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) andExpr() (queryimage.Expr, error) {
	left, err := p.notExpr()
	if err != nil {
		return nil, err
	}
	for p.tryKeyword("AND") {
		right, err := p.notExpr()
		if err != nil {
			return nil, err
		}
		left = queryimage.And{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) notExpr() (queryimage.Expr, error) {
	if p.tryKeyword("NOT") {
		inner, err := p.primary()
		if err != nil {
			return nil, err
		}
		return queryimage.Not{Inner: inner}, nil
	}
	return p.primary()
}

func (p *parser) primary() (queryimage.Expr, error) {
	p.skipWS()
	if p.pos >= len(p.input) {
		return nil, &ExpectedExpr{Location: "<end of input>"}
	}
	if expr, ok, err := p.tryDateExpr(); ok || err != nil {
		return expr, err
	}
	if p.input[p.pos] == '(' {
		return p.parenExpr()
	}
	return p.tagExpr()
}

// tryDateExpr attempts the "date" ("("| ">=" | "<=") <rfc3339> production.
// If the "date" keyword isn't present, or is present but not followed by a
// comparison operator, it backtracks fully and reports !ok so the caller
// falls through to trying a plain tag (a tag literally named "date" is valid
// when not followed by a comparison). A missing or malformed RFC 3339
// literal after a committed operator is a hard InvalidDateFormat error.
func (p *parser) tryDateExpr() (queryimage.Expr, bool, error) {
	save := p.pos
	if !p.tryKeyword("date") {
		return nil, false, nil
	}

	p.skipWS()
	var op string
	switch {
	case strings.HasPrefix(p.rest(), ">="):
		op = ">="
	case strings.HasPrefix(p.rest(), "<="):
		op = "<="
	default:
		p.pos = save
		return nil, false, nil
	}
	p.pos += len(op)
	p.skipWS()

	litStart := p.pos
	for p.pos < len(p.input) && isDateTimeChar(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == litStart {
		return nil, true, &InvalidDateFormat{Location: p.rest()}
	}

	literal := p.input[litStart:p.pos]
	at, err := time.Parse(time.RFC3339Nano, literal)
	if err != nil {
		return nil, true, &InvalidDateFormat{Location: literal}
	}
	if op == ">=" {
		return queryimage.DateSince{At: at}, true, nil
	}
	return queryimage.DateUntil{At: at}, true, nil
}

func (p *parser) parenExpr() (queryimage.Expr, error) {
	p.pos++ // consume '('
	expr, err := p.orExpr()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if p.pos >= len(p.input) || p.input[p.pos] != ')' {
		return nil, &UnexpectedToken{Location: p.rest()}
	}
	p.pos++
	return expr, nil
}

func (p *parser) tagExpr() (queryimage.Expr, error) {
	p.skipWS()
	start := p.pos
	for p.pos < len(p.input) && isTagChar(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return nil, &ExpectedTag{Location: p.rest()}
	}
	return queryimage.Tag{Name: p.input[start:p.pos]}, nil
}
