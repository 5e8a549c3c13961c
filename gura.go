package gura

import (
	"github.com/gura-conf/gura/pkgs/parser"
	"github.com/gura-conf/gura/pkgs/serializer"
	"github.com/gura-conf/gura/pkgs/value"
)

// Parse parses Gura text into its top-level object. Imports with relative
// paths fail because no base directory is set; use ParseWith or ParseFile
// when the document imports other files.
func Parse(text string) (*value.Value, error) {
	return parser.Parse(text)
}

// ParseWith parses Gura text, resolving relative imports against baseDir.
func ParseWith(text, baseDir string) (*value.Value, error) {
	return parser.ParseWith(text, baseDir)
}

// ParseFile reads and parses a Gura file, resolving relative imports against
// the file's own directory.
func ParseFile(path string) (*value.Value, error) {
	return parser.ParseFile(path)
}

// Dump serializes a value tree to canonical Gura text.
func Dump(v *value.Value) string {
	return serializer.Dump(v)
}
