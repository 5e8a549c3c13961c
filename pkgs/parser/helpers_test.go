package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	gerr "github.com/gura-conf/gura/pkgs/errors"
	"github.com/gura-conf/gura/pkgs/value"
)

// valueCmp lets go-cmp compare value trees through the model's own equality,
// which is order-sensitive for objects and treats NaN as equal to itself.
var valueCmp = cmp.Comparer(func(a, b *value.Value) bool {
	return value.Equal(a, b)
})

// obj builds an object value from alternating keys and values.
func obj(pairs ...interface{}) *value.Value {
	o := value.NewObject()
	for i := 0; i < len(pairs); i += 2 {
		o.Put(pairs[i].(string), pairs[i+1].(*value.Value))
	}
	return value.FromObject(o)
}

func arr(items ...*value.Value) *value.Value { return value.NewArray(items...) }
func str(s string) *value.Value              { return value.NewString(s) }
func i64(n int64) *value.Value               { return value.NewInt(n) }
func f64(f float64) *value.Value             { return value.NewFloat(f) }
func boolean(b bool) *value.Value            { return value.NewBool(b) }
func null() *value.Value                     { return value.Null() }

// mustParse fails the test on any parse error.
func mustParse(t *testing.T, src string) *value.Value {
	t.Helper()
	v, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return v
}

// wantErrKind asserts that parsing fails with the given kind and, when
// line > 0, at the given position.
func wantErrKind(t *testing.T, src string, kind gerr.Kind, line, col int) *gerr.Error {
	t.Helper()
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("Parse(%q) succeeded, want %v error", src, kind)
	}
	ge, ok := gerr.AsError(err)
	if !ok {
		t.Fatalf("Parse(%q) returned %T, want *errors.Error", src, err)
	}
	if ge.Kind != kind {
		t.Fatalf("Parse(%q) = %v error, want %v (message: %s)", src, ge.Kind, kind, ge.Message)
	}
	if line > 0 && (ge.Line != line || ge.Column != col) {
		t.Fatalf("Parse(%q) error at %d:%d, want %d:%d", src, ge.Line, ge.Column, line, col)
	}
	return ge
}
