// Package parser implements the Gura lexical and semantic grammar: a
// backtracking combinator engine over a rune cursor, the document grammar
// with its indentation protocol, and the import/variable evaluation that
// runs during parsing.
package parser

import (
	"os"
	"path/filepath"

	gerr "github.com/gura-conf/gura/pkgs/errors"
	"github.com/gura-conf/gura/pkgs/value"
)

// Parse parses Gura text with an empty base directory: imports with relative
// paths fail unless ParseWith or ParseFile is used instead.
func Parse(text string) (*value.Value, error) {
	return ParseWith(text, "")
}

// ParseWith parses Gura text resolving relative imports against baseDir.
func ParseWith(text, baseDir string) (*value.Value, error) {
	p := newParser(text, newEnv(baseDir))
	obj, err := p.document()
	if err != nil {
		return nil, err
	}
	return value.FromObject(obj), nil
}

// ParseFile reads and parses one Gura file. Relative imports resolve against
// the file's directory, and the file itself counts as imported so that a
// direct self-import reports DuplicateImport.
func ParseFile(path string) (*value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, gerr.Wrap(gerr.FileError, 1, 1, err, "cannot read file '%s'", path)
	}
	env := newEnv(filepath.Dir(path))
	if abs, err := filepath.Abs(path); err == nil {
		env.imported[abs] = true
	}
	p := newParser(string(data), env)
	obj, err := p.document()
	if err != nil {
		return nil, err
	}
	return value.FromObject(obj), nil
}
