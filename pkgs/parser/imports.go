package parser

import (
	"os"
	"path/filepath"

	gerr "github.com/gura-conf/gura/pkgs/errors"
	"github.com/gura-conf/gura/pkgs/value"
)

// maybeImport matches a top-level `import "path"` sentence and merges the
// imported document's keys into result. Exactly one space separates the
// keyword from the quoted path.
func (p *parser) maybeImport(result *value.Object) (bool, error) {
	snap := p.snapshot()
	stmtLine, stmtCol := p.line, p.col
	if _, err := p.keyword("import"); err != nil {
		return false, nil
	}
	if _, err := p.keyword(" "); err != nil {
		p.restore(snap)
		return false, nil
	}
	path, err := p.importPathString()
	if err != nil {
		if isParseErr(err) {
			p.restore(snap)
			return false, nil
		}
		return false, err
	}
	p.ws()
	p.maybeNewline()

	if err := p.runImport(result, path, stmtLine, stmtCol); err != nil {
		return false, err
	}
	return true, nil
}

// runImport resolves, reads, parses and merges one imported file. The
// imported document shares this parse call's variables and import set but
// resolves its own imports against its own directory.
func (p *parser) runImport(result *value.Object, path string, line, col int) error {
	target := path
	if !filepath.IsAbs(target) {
		if p.env.baseDir == "" {
			return gerr.New(gerr.FileError, line, col,
				"cannot import relative path '%s' without a base directory", path)
		}
		target = filepath.Join(p.env.baseDir, target)
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return gerr.Wrap(gerr.FileError, line, col, err, "cannot resolve import '%s'", path)
	}

	if p.env.imported[abs] {
		return gerr.New(gerr.DuplicateImport, line, col,
			"the file '%s' has been already imported", path)
	}
	if p.env.depth+1 > maxImportDepth {
		return gerr.New(gerr.ImportDepthExceeded, line, col,
			"import chain deeper than %d files at '%s'", maxImportDepth, path)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return gerr.New(gerr.FileError, line, col, "the file '%s' does not exist", path)
		}
		return gerr.Wrap(gerr.FileError, line, col, err, "cannot read imported file '%s'", path)
	}
	p.env.imported[abs] = true

	child := newParser(string(data), p.env.child(filepath.Dir(abs)))
	sub, err := child.document()
	if err != nil {
		// Surface the inner failure at the import sentence so the position
		// stays within the importing document; the cause keeps the
		// imported file's own location.
		kind := gerr.ParseError
		if inner, ok := gerr.AsError(err); ok {
			kind = inner.Kind
		}
		return gerr.Wrap(kind, line, col, err, "error in imported file '%s'", path)
	}

	for i := 0; i < sub.Len(); i++ {
		k, v := sub.At(i)
		if !result.Put(k, v) {
			return gerr.New(gerr.DuplicateKey, line, col,
				"the key '%s' imported from '%s' has been already defined", k, path)
		}
	}
	return nil
}
