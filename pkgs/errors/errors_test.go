package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	e := New(DuplicateKey, 3, 7, "the key '%s' has been already defined", "host")
	got := e.Error()
	for _, want := range []string{"duplicated key", "3:7", "'host'"} {
		if !strings.Contains(got, want) {
			t.Errorf("Error() = %q, missing %q", got, want)
		}
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	e := Wrap(FileError, 1, 1, cause, "cannot read '%s'", "x.ura")
	if !stderrors.Is(e, cause) {
		t.Error("wrapped cause lost")
	}
	if !strings.Contains(e.Error(), "disk on fire") {
		t.Errorf("Error() = %q, cause missing", e.Error())
	}
}

func TestIsKind(t *testing.T) {
	e := New(InvalidIndent, 2, 1, "tabs are not allowed in indentation")
	wrapped := fmt.Errorf("context: %w", e)

	if !IsKind(wrapped, InvalidIndent) {
		t.Error("IsKind failed through wrapping")
	}
	if IsKind(wrapped, DuplicateKey) {
		t.Error("IsKind matched the wrong kind")
	}
	if IsKind(fmt.Errorf("plain"), ParseError) {
		t.Error("IsKind matched a non-Error")
	}

	got, ok := AsError(wrapped)
	if !ok || got.Line != 2 {
		t.Errorf("AsError = %+v, %v", got, ok)
	}
}
