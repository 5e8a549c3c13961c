package parser

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	gerr "github.com/gura-conf/gura/pkgs/errors"
	"github.com/gura-conf/gura/pkgs/value"
)

// escapeSequences maps the escape letter of a basic string to its
// replacement.
var escapeSequences = map[rune]rune{
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'"':  '"',
	'\\': '\\',
	'$':  '$',
}

// basicString matches a basic or multiline basic string: escapes are decoded
// and $name / ${name} references are interpolated. A newline immediately
// following the opening """ is trimmed.
func (p *parser) basicString() (*value.Value, error) {
	quote, err := p.keyword(`"""`, `"`)
	if err != nil {
		return nil, err
	}
	multiline := quote == `"""`
	if multiline {
		p.maybeNewline()
	}

	var sb strings.Builder
	for {
		if _, ok := p.maybeKeyword(quote); ok {
			break
		}
		if p.atEnd() {
			return nil, p.parseErr("unterminated string")
		}
		escLine, escCol := p.line, p.col
		c := p.advance()
		switch c {
		case '\\':
			if p.atEnd() {
				return nil, p.parseErr("unterminated string")
			}
			esc := p.advance()
			switch {
			case multiline && (esc == '\n' || esc == '\r'):
				// A line-ending backslash swallows the newline and
				// all following spaces and line endings.
				p.eatWsAndNewlines()
			case esc == 'u' || esc == 'U':
				r, err := p.unicodeEscape(esc, escLine, escCol)
				if err != nil {
					return nil, err
				}
				sb.WriteRune(r)
			default:
				rep, ok := escapeSequences[esc]
				if !ok {
					return nil, gerr.New(gerr.InvalidEscape, escLine, escCol,
						"unknown escape sequence '\\%c'", esc)
				}
				sb.WriteRune(rep)
			}
		case '$':
			s, err := p.interpolate()
			if err != nil {
				return nil, err
			}
			sb.WriteString(s)
		default:
			sb.WriteRune(c)
		}
	}

	return value.NewString(sb.String()), nil
}

// unicodeEscape decodes the digits of a \uXXXX or \UXXXXXXXX escape.
func (p *parser) unicodeEscape(kind rune, line, col int) (rune, error) {
	digits := 4
	if kind == 'U' {
		digits = 8
	}
	code := 0
	for i := 0; i < digits; i++ {
		r, ok := p.maybeChar("0-9A-Fa-f")
		if !ok {
			return 0, gerr.New(gerr.InvalidEscape, line, col,
				"escape '\\%c' needs %d hexadecimal digits", kind, digits)
		}
		code = code*16 + hexDigit(r)
	}
	if code > unicode.MaxRune || (code >= 0xD800 && code <= 0xDFFF) {
		return 0, gerr.New(gerr.InvalidEscape, line, col,
			"'\\%c%0*X' is not a valid code point", kind, digits, code)
	}
	return rune(code), nil
}

func hexDigit(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	default:
		return int(r-'A') + 10
	}
}

// literalString matches a literal or multiline literal string. No escaping
// and no interpolation happen; a newline right after the opening ''' is
// trimmed.
func (p *parser) literalString() (*value.Value, error) {
	quote, err := p.keyword(`'''`, `'`)
	if err != nil {
		return nil, err
	}
	if quote == `'''` {
		p.maybeNewline()
	}

	var sb strings.Builder
	for {
		if _, ok := p.maybeKeyword(quote); ok {
			break
		}
		if p.atEnd() {
			return nil, p.parseErr("unterminated string")
		}
		sb.WriteRune(p.advance())
	}

	return value.NewString(sb.String()), nil
}

// interpolate resolves a $name or ${name} reference inside a basic string or
// import path and returns its textual form.
func (p *parser) interpolate() (string, error) {
	line, col := p.line, p.col
	var name string
	if p.peek() == '{' {
		p.advance()
		name = p.identChars()
		if _, err := p.keyword("}"); err != nil {
			return "", err
		}
	} else {
		name = p.identChars()
	}

	v, err := p.env.lookupVar(name, line, col)
	if err != nil {
		return "", err
	}
	switch v.Type {
	case value.StringType:
		return v.Str, nil
	case value.IntType:
		return strconv.FormatInt(v.Int, 10), nil
	case value.FloatType:
		return interpolatedFloat(v.Float), nil
	default:
		return "", gerr.New(gerr.InvalidVariableType, line, col,
			"variable '%s' holds a %s; only strings and numbers can be interpolated",
			name, v.Type)
	}
}

func interpolatedFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// importPathString matches the quoted path of an import sentence: delimited
// by double quotes, interpolation allowed, no escape processing.
func (p *parser) importPathString() (string, error) {
	if _, err := p.keyword(`"`); err != nil {
		return "", err
	}
	var sb strings.Builder
	for {
		if p.atEnd() {
			return "", p.parseErr("unterminated import path")
		}
		c := p.advance()
		if c == '"' {
			break
		}
		if c == '$' {
			s, err := p.interpolate()
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
			continue
		}
		sb.WriteRune(c)
	}
	return sb.String(), nil
}
