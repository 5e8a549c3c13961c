package parser

import (
	gerr "github.com/gura-conf/gura/pkgs/errors"
	"github.com/gura-conf/gura/pkgs/value"
)

// Character classes of the lexical grammar.
const (
	identFirstChars = "A-Za-z_"
	identRestChars  = "0-9A-Za-z_"
)

// ws consumes horizontal whitespace: blanks and tabs between tokens on a
// line. It never fails.
func (p *parser) ws() {
	p.chars(" \t")
}

// wsIndent consumes the indentation prefix of a line and returns its width.
// Only spaces may indent; a tab anywhere in the prefix (including mixed with
// spaces) is InvalidIndent.
func (p *parser) wsIndent() (int, error) {
	n := 0
	for {
		switch p.peek() {
		case ' ':
			p.advance()
			n++
		case '\t':
			return 0, gerr.New(gerr.InvalidIndent, p.line, p.col,
				"tabs are not allowed in indentation")
		default:
			return n, nil
		}
	}
}

// maybeNewline consumes one line ending, LF or CRLF, if one is next.
func (p *parser) maybeNewline() bool {
	_, ok := p.maybeKeyword("\r\n", "\n")
	return ok
}

// maybeComment consumes a '#' comment up to and including its line ending.
func (p *parser) maybeComment() bool {
	if p.peek() != '#' {
		return false
	}
	for !p.atEnd() {
		if p.advance() == '\n' {
			break
		}
	}
	return true
}

// uselessLine matches a line holding only whitespace and/or a comment. Such
// lines are transparent everywhere: between pairs, inside arrays and between
// an object's children.
func (p *parser) uselessLine() (*value.Value, error) {
	p.ws()
	hadComment := p.maybeComment()
	startLine := p.line
	p.maybeNewline()
	if !hadComment && p.line == startLine {
		return nil, p.parseErr("expected a blank or comment line")
	}
	return nil, nil
}

// skipUselessLines consumes every blank/comment line at the cursor.
func (p *parser) skipUselessLines() {
	// uselessLine cannot raise semantic errors, so many never fails here.
	_, _ = p.many(p.uselessLine)
}

// eatWsAndNewlines consumes spaces and line endings, used after a
// line-ending backslash in multiline strings and at end of document.
func (p *parser) eatWsAndNewlines() {
	p.chars(" \r\n")
}

// ident matches a key or variable name: [A-Za-z_][0-9A-Za-z_]*.
func (p *parser) ident() (string, error) {
	first, err := p.char(identFirstChars)
	if err != nil {
		return "", err
	}
	return string(first) + p.chars(identRestChars), nil
}

// identChars collects an identifier if one starts here, or "" otherwise.
// Used for interpolation, where a missing name is a resolution error rather
// than a syntax error.
func (p *parser) identChars() string {
	first, ok := p.maybeChar(identFirstChars)
	if !ok {
		return ""
	}
	return string(first) + p.chars(identRestChars)
}

// key matches an identifier immediately followed by a colon.
func (p *parser) key() (string, error) {
	name, err := p.ident()
	if err != nil {
		return "", err
	}
	if _, err := p.keyword(":"); err != nil {
		return "", err
	}
	return name, nil
}

// keywordBoundary fails when the next rune would extend an identifier,
// preventing literals like "null" from matching the prefix of "nullable".
func (p *parser) keywordBoundary() error {
	return p.not(func() (*value.Value, error) {
		_, err := p.char(identRestChars)
		return nil, err
	})
}
