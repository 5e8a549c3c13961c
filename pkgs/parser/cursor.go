package parser

import (
	"strings"

	gerr "github.com/gura-conf/gura/pkgs/errors"
	"github.com/gura-conf/gura/pkgs/value"
)

// snapshot captures a cursor position so combinators can backtrack. It is a
// plain value; taking and restoring one is cheap.
type snapshot struct {
	offset int
	line   int
	col    int
}

// cursor walks the input text one rune at a time, tracking the 1-based line
// and column of the next rune and the furthest parse error seen so far.
type cursor struct {
	src    []rune
	offset int
	line   int
	col    int

	// furthest is the rightmost ParseError recorded across all
	// backtracking alternatives. When the whole parse fails this is the
	// most informative diagnostic.
	furthest *gerr.Error
}

func newCursor(text string) *cursor {
	// A leading BOM is accepted and discarded.
	text = strings.TrimPrefix(text, "\ufeff")
	return &cursor{src: []rune(text), line: 1, col: 1}
}

func (c *cursor) atEnd() bool {
	return c.offset >= len(c.src)
}

// peek returns the next rune without consuming it, or 0 at end of input.
func (c *cursor) peek() rune {
	if c.atEnd() {
		return 0
	}
	return c.src[c.offset]
}

// advance consumes one rune. It must not be called at end of input. Line and
// column bookkeeping lives here and nowhere else: LF starts a new line, every
// other rune (including CR) advances the column.
func (c *cursor) advance() rune {
	r := c.src[c.offset]
	c.offset++
	if r == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return r
}

func (c *cursor) snapshot() snapshot {
	return snapshot{offset: c.offset, line: c.line, col: c.col}
}

func (c *cursor) restore(s snapshot) {
	c.offset = s.offset
	c.line = s.line
	c.col = s.col
}

// rightOf reports whether a is further into the input than b.
func rightOf(a, b *gerr.Error) bool {
	if b == nil {
		return true
	}
	if a.Line != b.Line {
		return a.Line > b.Line
	}
	return a.Column > b.Column
}

// record keeps e as the furthest error if it is a ParseError beyond the
// current one. Semantic errors (duplicates, indentation, ...) abort the parse
// outright and are never subject to this max-merge.
func (c *cursor) record(e *gerr.Error) *gerr.Error {
	if e.Kind == gerr.ParseError && rightOf(e, c.furthest) {
		c.furthest = e
	}
	return e
}

// parseErr creates and records a ParseError at the current position.
func (c *cursor) parseErr(format string, args ...interface{}) *gerr.Error {
	return c.record(gerr.New(gerr.ParseError, c.line, c.col, format, args...))
}

// parseErrAt creates and records a ParseError at an explicit position.
func (c *cursor) parseErrAt(line, col int, format string, args ...interface{}) *gerr.Error {
	return c.record(gerr.New(gerr.ParseError, line, col, format, args...))
}

// isParseErr reports whether err is a backtrackable syntax error, as opposed
// to a semantic error that must propagate untouched.
func isParseErr(err error) bool {
	return gerr.IsKind(err, gerr.ParseError)
}

// charRange is one element of a parsed character class: either a single rune
// (lo == hi) or an inclusive range.
type charRange struct {
	lo, hi rune
}

// rule is a grammar production. Rules that match structure rather than a
// value return a nil Value on success.
type rule func() (*value.Value, error)

// parser couples the cursor with the parse environment and the grammar
// state: the indentation stack and the per-document indentation unit.
type parser struct {
	*cursor
	env *Env

	indents []int
	unit    int // spaces per indentation step; 0 until the first nested block

	classCache map[string][]charRange
}

func newParser(text string, env *Env) *parser {
	return &parser{
		cursor:     newCursor(text),
		env:        env,
		classCache: make(map[string][]charRange),
	}
}

// classRanges parses a character class such as "0-9A-Fa-f_" into ranges. A
// '-' that does not sit between two other characters is a literal.
func (p *parser) classRanges(class string) []charRange {
	if cached, ok := p.classCache[class]; ok {
		return cached
	}
	runes := []rune(class)
	var ranges []charRange
	for i := 0; i < len(runes); {
		if i+2 < len(runes) && runes[i+1] == '-' {
			ranges = append(ranges, charRange{lo: runes[i], hi: runes[i+2]})
			i += 3
		} else {
			ranges = append(ranges, charRange{lo: runes[i], hi: runes[i]})
			i++
		}
	}
	p.classCache[class] = ranges
	return ranges
}

// char consumes one rune matching the class. An empty class matches any rune.
func (p *parser) char(class string) (rune, error) {
	if p.atEnd() {
		if class == "" {
			return 0, p.parseErr("expected a character but got end of input")
		}
		return 0, p.parseErr("expected [%s] but got end of input", class)
	}
	r := p.peek()
	if class == "" {
		return p.advance(), nil
	}
	for _, cr := range p.classRanges(class) {
		if r >= cr.lo && r <= cr.hi {
			return p.advance(), nil
		}
	}
	return 0, p.parseErr("expected [%s] but got %q", class, r)
}

// maybeChar is char without failure: ok reports whether a rune was consumed.
func (p *parser) maybeChar(class string) (rune, bool) {
	snap := p.snapshot()
	r, err := p.char(class)
	if err != nil {
		p.restore(snap)
		return 0, false
	}
	return r, true
}

// chars greedily consumes runes of the class and returns them.
func (p *parser) chars(class string) string {
	var sb strings.Builder
	for {
		r, ok := p.maybeChar(class)
		if !ok {
			return sb.String()
		}
		sb.WriteRune(r)
	}
}

// keyword consumes the first literal that matches at the current position.
// Longer alternatives must be listed first.
func (p *parser) keyword(kws ...string) (string, error) {
	if p.atEnd() {
		return "", p.parseErr("expected '%s' but got end of input", strings.Join(kws, "', '"))
	}
	for _, kw := range kws {
		runes := []rune(kw)
		if p.offset+len(runes) > len(p.src) {
			continue
		}
		if string(p.src[p.offset:p.offset+len(runes)]) != kw {
			continue
		}
		for range runes {
			p.advance()
		}
		return kw, nil
	}
	return "", p.parseErr("expected '%s' but got %q", strings.Join(kws, "', '"), p.peek())
}

// maybeKeyword is keyword without failure.
func (p *parser) maybeKeyword(kws ...string) (string, bool) {
	snap := p.snapshot()
	kw, err := p.keyword(kws...)
	if err != nil {
		p.restore(snap)
		return "", false
	}
	return kw, true
}

// matches is ordered choice: the first rule that succeeds wins. When every
// alternative fails with a syntax error, the rightmost of those errors
// surfaces. Semantic errors abort immediately.
func (p *parser) matches(rules ...rule) (*value.Value, error) {
	var best *gerr.Error
	for _, r := range rules {
		snap := p.snapshot()
		v, err := r()
		if err == nil {
			return v, nil
		}
		ge, ok := gerr.AsError(err)
		if !ok || ge.Kind != gerr.ParseError {
			return nil, err
		}
		p.restore(snap)
		if best == nil || rightOf(ge, best) {
			best = ge
		}
	}
	return nil, best
}

// maybe makes a rule optional: a syntax failure restores the cursor and
// reports no match (nil value, nil error, matched false).
func (p *parser) maybe(r rule) (*value.Value, bool, error) {
	snap := p.snapshot()
	v, err := r()
	if err == nil {
		return v, true, nil
	}
	if !isParseErr(err) {
		return nil, false, err
	}
	p.restore(snap)
	return nil, false, nil
}

// many applies a rule greedily, zero or more times.
func (p *parser) many(r rule) ([]*value.Value, error) {
	var out []*value.Value
	for {
		v, matched, err := p.maybe(r)
		if err != nil {
			return nil, err
		}
		if !matched {
			return out, nil
		}
		out = append(out, v)
	}
}

// many1 is many that fails unless the rule matches at least once.
func (p *parser) many1(r rule) ([]*value.Value, error) {
	first, err := r()
	if err != nil {
		return nil, err
	}
	rest, err := p.many(r)
	if err != nil {
		return nil, err
	}
	return append([]*value.Value{first}, rest...), nil
}

// not is negative lookahead: it succeeds exactly when the rule would fail,
// and never consumes input.
func (p *parser) not(r rule) error {
	snap := p.snapshot()
	_, err := r()
	p.restore(snap)
	if err == nil {
		return p.parseErr("unexpected input")
	}
	if !isParseErr(err) {
		return err
	}
	return nil
}
