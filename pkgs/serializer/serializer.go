// Package serializer renders a value tree back to canonical Gura text:
// two-space indentation, insertion order preserved, basic strings with
// minimal escaping. Round-trips preserve structure and values, never the
// original formatting or comments.
package serializer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/gura-conf/gura/pkgs/value"
)

const indent = "  "

// Dump renders a value tree as Gura text. It cannot fail for trees produced
// by the parser. An empty top-level object renders as the empty document,
// not the `empty` keyword, so that dumping always round-trips.
func Dump(v *value.Value) string {
	if v.Type == value.ObjectType && v.Obj.Len() == 0 {
		return ""
	}
	return strings.TrimSpace(dumpValue(v))
}

func dumpValue(v *value.Value) string {
	switch v.Type {
	case value.NullType:
		return "null"
	case value.BoolType:
		return strconv.FormatBool(v.Bool)
	case value.IntType:
		return strconv.FormatInt(v.Int, 10)
	case value.FloatType:
		return formatFloat(v.Float)
	case value.StringType:
		return quoteString(v.Str)
	case value.ArrayType:
		return dumpArray(v.Items)
	case value.ObjectType:
		return dumpObject(v.Obj)
	}
	return ""
}

func dumpObject(o *value.Object) string {
	if o.Len() == 0 {
		return "empty"
	}
	var sb strings.Builder
	for i := 0; i < o.Len(); i++ {
		k, v := o.At(i)
		sb.WriteString(k)
		sb.WriteString(":")
		if v.Type == value.ObjectType && v.Obj.Len() > 0 {
			// Non-empty child objects get an indented block of their own.
			sb.WriteString("\n")
			body := strings.TrimRight(dumpObject(v.Obj), "\n")
			for _, line := range strings.Split(body, "\n") {
				sb.WriteString(indent)
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		} else {
			sb.WriteString(" ")
			sb.WriteString(dumpValue(v))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func dumpArray(items []*value.Value) string {
	// Arrays of scalars and nested arrays stay on one line; an array
	// holding a non-empty object switches to one element per line.
	multiline := false
	for _, it := range items {
		if it.Type == value.ObjectType && it.Obj.Len() > 0 {
			multiline = true
			break
		}
	}

	if !multiline {
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = dumpValue(it)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}

	var sb strings.Builder
	sb.WriteString("[")
	for i, it := range items {
		sb.WriteString("\n")
		body := strings.TrimRight(dumpValue(it), "\n")
		for j, line := range strings.Split(body, "\n") {
			if j > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(indent)
			sb.WriteString(line)
		}
		if i < len(items)-1 {
			sb.WriteString(",")
		}
	}
	sb.WriteString("\n]")
	return sb.String()
}

// escapePairs maps the characters that must be escaped in a basic string.
// '$' is included so the output never reads as interpolation.
var escapePairs = map[rune]string{
	'\b': `\b`,
	'\f': `\f`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
	'"':  `\"`,
	'\\': `\\`,
	'$':  `\$`,
}

func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteString(`"`)
	for _, r := range s {
		if esc, ok := escapePairs[r]; ok {
			sb.WriteString(esc)
			continue
		}
		if unicode.IsControl(r) {
			sb.WriteString(fmt.Sprintf(`\u%04X`, r))
			continue
		}
		sb.WriteRune(r)
	}
	sb.WriteString(`"`)
	return sb.String()
}

// formatFloat renders the shortest representation that round-trips, forcing
// a fractional part onto integral floats so they re-parse as floats.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
