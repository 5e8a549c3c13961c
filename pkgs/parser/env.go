package parser

import (
	"os"

	gerr "github.com/gura-conf/gura/pkgs/errors"
	"github.com/gura-conf/gura/pkgs/value"
)

// maxImportDepth bounds the import recursion so that a deep (but acyclic)
// include graph cannot blow the stack.
const maxImportDepth = 64

// Env is the environment of a single parse call: the variable bindings, the
// set of files already imported and the directory against which relative
// imports resolve. Variables and the imported set are shared across the whole
// import closure; the base directory and depth are per file.
type Env struct {
	vars     map[string]*value.Value
	imported map[string]bool
	baseDir  string
	depth    int
}

func newEnv(baseDir string) *Env {
	return &Env{
		vars:     make(map[string]*value.Value),
		imported: make(map[string]bool),
		baseDir:  baseDir,
	}
}

// child derives the environment for an imported file: shared variables and
// import set, its own base directory, one level deeper.
func (e *Env) child(baseDir string) *Env {
	return &Env{
		vars:     e.vars,
		imported: e.imported,
		baseDir:  baseDir,
		depth:    e.depth + 1,
	}
}

func (e *Env) hasVar(name string) bool {
	_, ok := e.vars[name]
	return ok
}

func (e *Env) setVar(name string, v *value.Value) {
	e.vars[name] = v
}

// lookupVar resolves a variable reference: document bindings first, then the
// process environment (always a string there).
func (e *Env) lookupVar(name string, line, col int) (*value.Value, error) {
	if v, ok := e.vars[name]; ok {
		return v, nil
	}
	if s, ok := os.LookupEnv(name); ok {
		return value.NewString(s), nil
	}
	return nil, gerr.New(gerr.VariableNotDefined, line, col,
		"variable '%s' is not defined in the document nor as an environment variable", name)
}
