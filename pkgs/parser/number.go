package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/gura-conf/gura/pkgs/value"
)

// numberChars are the runes a numeric literal may contain: decimal digits,
// hex digits and base prefixes, the letters of inf/nan, exponent markers,
// sign, dot and the underscore separator. '-' must be last so it reads as a
// literal rather than a range.
const numberChars = "0-9A-Fa-fxobinEe+._-"

// number matches an integer or float literal, deciding the type from the
// characters seen: a '.' or exponent marker makes it a float, a 0x/0o/0b
// prefix makes it an integer of that base, and inf/nan are float keywords.
func (p *parser) number() (*value.Value, error) {
	startLine, startCol := p.line, p.col

	first, err := p.char(numberChars)
	if err != nil {
		return nil, err
	}
	var raw strings.Builder
	raw.WriteRune(first)
	isFloat := first == '.' || first == 'e' || first == 'E'
	for {
		r, ok := p.maybeChar(numberChars)
		if !ok {
			break
		}
		if r == '.' || r == 'e' || r == 'E' {
			isFloat = true
		}
		raw.WriteRune(r)
	}

	lit := raw.String()
	invalid := func() (*value.Value, error) {
		return nil, p.parseErrAt(startLine, startCol, "'%s' is not a valid number", lit)
	}

	// Underscore separators must sit between two alphanumerics: never
	// leading, trailing or doubled.
	runes := []rune(lit)
	for i, r := range runes {
		if r != '_' {
			continue
		}
		if i == 0 || i == len(runes)-1 || !isAlnum(runes[i-1]) || !isAlnum(runes[i+1]) {
			return invalid()
		}
	}
	clean := strings.ReplaceAll(lit, "_", "")

	// Base-prefixed integers. A sign is only valid on decimal literals, so
	// a signed 0x/0o/0b never reaches ParseInt with its base prefix intact
	// and fails below like any other malformed literal.
	if len(clean) >= 2 {
		var base int
		switch clean[:2] {
		case "0x":
			base = 16
		case "0o":
			base = 8
		case "0b":
			base = 2
		}
		if base != 0 {
			// The separator may not lead the digits that follow the prefix.
			if strings.HasPrefix(lit[2:], "_") {
				return invalid()
			}
			n, err := strconv.ParseInt(clean[2:], base, 64)
			if err != nil {
				return invalid()
			}
			return value.NewInt(n), nil
		}
	}

	// inf and nan, optionally signed.
	if len(clean) >= 3 {
		switch clean[len(clean)-3:] {
		case "inf":
			if clean == "inf" || clean == "+inf" {
				return value.NewFloat(math.Inf(1)), nil
			}
			if clean == "-inf" {
				return value.NewFloat(math.Inf(-1)), nil
			}
			return invalid()
		case "nan":
			if clean == "nan" || clean == "+nan" || clean == "-nan" {
				return value.NewFloat(math.NaN()), nil
			}
			return invalid()
		}
	}

	if !isFloat {
		n, err := strconv.ParseInt(clean, 10, 64)
		if err != nil {
			return invalid()
		}
		return value.NewInt(n), nil
	}

	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return invalid()
	}
	return value.NewFloat(f), nil
}

func isAlnum(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
