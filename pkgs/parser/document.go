package parser

import (
	gerr "github.com/gura-conf/gura/pkgs/errors"
	"github.com/gura-conf/gura/pkgs/value"
)

// pairResult is a parsed key-value pair, or a break marker when a dedent
// closed the enclosing object instead.
type pairResult struct {
	key    string
	val    *value.Value
	indent int
	line   int
	col    int
	brk    bool
}

// exprResult is the outcome of anyType: a value, plus block-object metadata
// when the value came from an indented body rather than an inline
// expression. brk marks "nothing here", which closes the surrounding
// construct.
type exprResult struct {
	val       *value.Value
	objIndent int
	blockObj  bool
	brk       bool
}

// primitive matches a scalar expression: null, booleans, the four string
// kinds, numbers, variable references and the empty-object keyword.
func (p *parser) primitive() (*value.Value, error) {
	p.ws()
	return p.matches(
		p.null,
		p.boolean,
		p.basicString,
		p.literalString,
		p.number,
		p.variableValue,
		p.emptyObject,
	)
}

func (p *parser) null() (*value.Value, error) {
	if _, err := p.keyword("null"); err != nil {
		return nil, err
	}
	if err := p.keywordBoundary(); err != nil {
		return nil, err
	}
	return value.Null(), nil
}

func (p *parser) boolean() (*value.Value, error) {
	kw, err := p.keyword("true", "false")
	if err != nil {
		return nil, err
	}
	if err := p.keywordBoundary(); err != nil {
		return nil, err
	}
	return value.NewBool(kw == "true"), nil
}

// emptyObject matches the `empty` keyword, the explicit form of an object
// with no pairs. The word stays available as a key name.
func (p *parser) emptyObject() (*value.Value, error) {
	if _, err := p.keyword("empty"); err != nil {
		return nil, err
	}
	if err := p.keywordBoundary(); err != nil {
		return nil, err
	}
	return value.EmptyObject(), nil
}

// variableValue matches a $name reference in expression position and yields
// the referenced value.
func (p *parser) variableValue() (*value.Value, error) {
	if _, err := p.keyword("$"); err != nil {
		return nil, err
	}
	line, col := p.line, p.col
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	return p.env.lookupVar(name, line, col)
}

// anyType matches any expression: a primitive, an array, or an object body.
func (p *parser) anyType() (exprResult, error) {
	v, matched, err := p.maybe(p.primitive)
	if err != nil {
		return exprResult{}, err
	}
	if matched {
		return exprResult{val: v}, nil
	}
	return p.complexType()
}

// complexType matches an array or an object body. An object body that
// yields no pairs is not a value at all; brk tells the caller to close.
func (p *parser) complexType() (exprResult, error) {
	snap := p.snapshot()
	v, err := p.list()
	if err == nil {
		return exprResult{val: v}, nil
	}
	if !isParseErr(err) {
		return exprResult{}, err
	}
	p.restore(snap)

	obj := value.NewObject()
	indent, err := p.objectBody(obj, false)
	if err != nil {
		return exprResult{}, err
	}
	if obj.Len() == 0 {
		return exprResult{brk: true}, nil
	}
	return exprResult{val: value.FromObject(obj), objIndent: indent, blockObj: true}, nil
}

// list matches an array: elements separated by commas, blank/comment lines
// transparent, trailing comma allowed. Consecutive pairs inside the brackets
// form object elements; a comma closes one object and starts the next.
func (p *parser) list() (*value.Value, error) {
	items := []*value.Value{}
	p.ws()
	if _, err := p.keyword("["); err != nil {
		return nil, err
	}
	for {
		p.skipUselessLines()
		res, err := p.anyType()
		if err != nil {
			return nil, err
		}
		if !res.brk {
			items = append(items, res.val)
		}
		p.skipUselessLines()
		p.ws()
		if _, ok := p.maybeKeyword(","); !ok {
			break
		}
	}
	p.skipUselessLines()
	p.ws()
	if _, err := p.keyword("]"); err != nil {
		return nil, err
	}
	return value.NewArray(items...), nil
}

// pair matches one `key: value` line, enforcing the indentation protocol.
// When the line dedents below the enclosing block, the consumed indentation
// is handed back and brk is set so the parent closes.
func (p *parser) pair() (*pairResult, error) {
	before := p.snapshot()
	indent, err := p.wsIndent()
	if err != nil {
		return nil, err
	}
	keyLine, keyCol := p.line, p.col
	key, err := p.key()
	if err != nil {
		return nil, err
	}
	p.ws()

	if err := p.checkIndentUnit(indent, keyLine); err != nil {
		return nil, err
	}
	if last, ok := p.lastIndent(); ok {
		switch {
		case indent > last:
			p.pushIndent(indent)
		case indent < last:
			p.popIndent()
			p.restore(before)
			return &pairResult{brk: true}, nil
		}
	} else {
		p.pushIndent(indent)
	}

	res, err := p.anyType()
	if err != nil {
		return nil, err
	}
	if res.brk {
		return nil, p.parseErr("missing value for key '%s'", key)
	}
	if res.blockObj {
		if res.objIndent == indent {
			return nil, gerr.New(gerr.InvalidIndent, keyLine, keyCol,
				"the children of key '%s' must be indented further than the key", key)
		}
		diff := res.objIndent - indent
		if diff < 0 {
			diff = -diff
		}
		if diff != p.unit {
			return nil, gerr.New(gerr.InvalidIndent, keyLine, keyCol,
				"indentation below key '%s' must deepen by exactly %d spaces", key, p.unit)
		}
	}

	p.maybeNewline()
	return &pairResult{
		key:    key,
		val:    res.val,
		indent: indent,
		line:   keyLine,
		col:    keyCol,
	}, nil
}

// maybePair backtracks on syntax errors so the caller can try other
// statement forms; semantic errors propagate.
func (p *parser) maybePair() (*pairResult, error) {
	snap := p.snapshot()
	pr, err := p.pair()
	if err != nil {
		if isParseErr(err) {
			p.restore(snap)
			return nil, nil
		}
		return nil, err
	}
	return pr, nil
}

// objectBody parses consecutive pairs at one indentation depth into result.
// At the top level it also accepts variable declarations and import
// sentences between pairs. The return value is the indentation of the pairs
// collected, used by the caller to validate the parent/child step.
func (p *parser) objectBody(result *value.Object, topLevel bool) (int, error) {
	// Whatever this block and its children push on the indentation stack is
	// scoped to the block: the caller sees the stack it started with.
	startLen := len(p.indents)
	defer func() {
		if len(p.indents) > startLen {
			p.indents = p.indents[:startLen]
		}
	}()

	blockIndent := -1
	for !p.atEnd() {
		p.skipUselessLines()

		// A closing bracket or comma ends an object element inside an
		// array; the enclosing list consumes the token itself.
		if r := p.peek(); r == ']' || r == ',' {
			break
		}
		if p.atEnd() {
			break
		}

		if topLevel {
			handled, err := p.maybeImport(result)
			if err != nil {
				return 0, err
			}
			if handled {
				continue
			}
			handled, err = p.maybeVariable()
			if err != nil {
				return 0, err
			}
			if handled {
				continue
			}
		}

		pr, err := p.maybePair()
		if err != nil {
			return 0, err
		}
		if pr == nil || pr.brk {
			break
		}

		if blockIndent < 0 {
			blockIndent = pr.indent
			if topLevel && blockIndent != 0 {
				return 0, gerr.New(gerr.InvalidIndent, pr.line, pr.col,
					"top-level keys must not be indented")
			}
		} else if pr.indent != blockIndent {
			return 0, gerr.New(gerr.InvalidIndent, pr.line, pr.col,
				"key '%s' is indented by %d spaces but its siblings use %d",
				pr.key, pr.indent, blockIndent)
		}

		if !result.Put(pr.key, pr.val) {
			return 0, gerr.New(gerr.DuplicateKey, pr.line, pr.col,
				"the key '%s' has been already defined", pr.key)
		}
	}
	if blockIndent < 0 {
		blockIndent = 0
	}
	return blockIndent, nil
}

// maybeVariable matches a top-level `$name: expr` declaration and binds it
// in the environment. Declarations never appear in the output object.
func (p *parser) maybeVariable() (bool, error) {
	snap := p.snapshot()
	declLine, declCol := p.line, p.col
	if _, err := p.keyword("$"); err != nil {
		return false, nil
	}
	name, err := p.key()
	if err != nil {
		p.restore(snap)
		return false, nil
	}
	p.ws()

	// Only scalars can be bound: strings, numbers or another variable.
	v, err := p.matches(p.basicString, p.literalString, p.number, p.variableValue)
	if err != nil {
		if isParseErr(err) {
			p.restore(snap)
			return false, nil
		}
		return false, err
	}

	if p.env.hasVar(name) {
		return false, gerr.New(gerr.DuplicateVariable, declLine, declCol,
			"variable '%s' has been already declared", name)
	}
	p.env.setVar(name, v)
	return true, nil
}

// indentation stack helpers

func (p *parser) lastIndent() (int, bool) {
	if len(p.indents) == 0 {
		return 0, false
	}
	return p.indents[len(p.indents)-1], true
}

func (p *parser) pushIndent(n int) {
	p.indents = append(p.indents, n)
}

func (p *parser) popIndent() {
	if len(p.indents) > 0 {
		p.indents = p.indents[:len(p.indents)-1]
	}
}

// checkIndentUnit validates an indentation width against the document's
// indentation unit. The first indented block fixes the unit at 2 or 4
// spaces; afterwards every width must be a multiple of it.
func (p *parser) checkIndentUnit(indent, line int) error {
	if indent == 0 {
		return nil
	}
	if p.unit == 0 {
		if indent != 2 && indent != 4 {
			return gerr.New(gerr.InvalidIndent, line, indent+1,
				"indentation blocks must use 2 or 4 spaces, got %d", indent)
		}
		p.unit = indent
		return nil
	}
	if indent%p.unit != 0 {
		return gerr.New(gerr.InvalidIndent, line, indent+1,
			"indentation of %d spaces is not a multiple of the document's %d-space unit",
			indent, p.unit)
	}
	return nil
}

// document parses a whole top-level document into an object.
func (p *parser) document() (*value.Object, error) {
	result := value.NewObject()
	if _, err := p.objectBody(result, true); err != nil {
		return nil, err
	}
	p.eatWsAndNewlines()
	if !p.atEnd() {
		end := gerr.New(gerr.ParseError, p.line, p.col,
			"expected end of input but got %q", p.peek())
		if p.furthest != nil && rightOf(p.furthest, end) {
			return nil, p.furthest
		}
		return nil, end
	}
	return result, nil
}
