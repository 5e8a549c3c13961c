package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	gerr "github.com/gura-conf/gura/pkgs/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportMergesKeys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.ura", "from_file_one: 1\n")
	writeFile(t, dir, "two.ura", "from_file_two:\n  name: \"Troilo\"\n  year: 1914\n")

	input := "import \"one.ura\"\nimport \"two.ura\"\nlocal: false\n"
	got, err := ParseWith(input, dir)
	if err != nil {
		t.Fatalf("ParseWith failed: %v", err)
	}
	want := obj(
		"from_file_one", i64(1),
		"from_file_two", obj("name", str("Troilo"), "year", i64(1914)),
		"local", boolean(false),
	)
	if diff := cmp.Diff(want, got, valueCmp); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestImportInSourceOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mid.ura", "b: 2\n")

	got, err := ParseWith("a: 1\nimport \"mid.ura\"\nc: 3\n", dir)
	if err != nil {
		t.Fatalf("ParseWith failed: %v", err)
	}
	want := obj("a", i64(1), "b", i64(2), "c", i64(3))
	if diff := cmp.Diff(want, got, valueCmp); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestImportSharesVariables(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vars.ura", "$host: \"h\"\n$port: 80\n")
	main := writeFile(t, dir, "main.ura", "import \"vars.ura\"\nurl: \"$host:$port\"\n")

	got, err := ParseFile(main)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if diff := cmp.Diff(obj("url", str("h:80")), got, valueCmp); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestImportPathWithVariable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vars.ura", "shared: true\n")

	got, err := ParseWith("$name: \"vars\"\nimport \"$name.ura\"\n", dir)
	if err != nil {
		t.Fatalf("ParseWith failed: %v", err)
	}
	if diff := cmp.Diff(obj("shared", boolean(true)), got, valueCmp); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestTransitiveImports(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	// inner.ura sits next to middle.ura; its path must resolve against
	// middle's directory, not the root document's.
	writeFile(t, sub, "inner.ura", "inner: 1\n")
	writeFile(t, sub, "middle.ura", "import \"inner.ura\"\nmiddle: 2\n")

	got, err := ParseWith("import \"sub/middle.ura\"\nouter: 3\n", dir)
	if err != nil {
		t.Fatalf("ParseWith failed: %v", err)
	}
	want := obj("inner", i64(1), "middle", i64(2), "outer", i64(3))
	if diff := cmp.Diff(want, got, valueCmp); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestImportErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ParseWith("import \"nope.ura\"", t.TempDir())
		if !gerr.IsKind(err, gerr.FileError) {
			t.Fatalf("got %v, want FileError", err)
		}
	})

	t.Run("relative path without base directory", func(t *testing.T) {
		_, err := Parse("import \"some.ura\"")
		if !gerr.IsKind(err, gerr.FileError) {
			t.Fatalf("got %v, want FileError", err)
		}
	})

	t.Run("duplicated import", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "dup.ura", "a: 1\n")
		_, err := ParseWith("import \"dup.ura\"\nimport \"dup.ura\"\n", dir)
		if !gerr.IsKind(err, gerr.DuplicateImport) {
			t.Fatalf("got %v, want DuplicateImport", err)
		}
	})

	t.Run("self import cycle", func(t *testing.T) {
		dir := t.TempDir()
		main := writeFile(t, dir, "main.ura", "import \"main.ura\"\n")
		_, err := ParseFile(main)
		if !gerr.IsKind(err, gerr.DuplicateImport) {
			t.Fatalf("got %v, want DuplicateImport", err)
		}
	})

	t.Run("two file cycle", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.ura", "import \"b.ura\"\n")
		writeFile(t, dir, "b.ura", "import \"a.ura\"\n")
		_, err := ParseFile(filepath.Join(dir, "a.ura"))
		if !gerr.IsKind(err, gerr.DuplicateImport) {
			t.Fatalf("got %v, want DuplicateImport", err)
		}
	})

	t.Run("key conflict with importer", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "k.ura", "a: 1\n")
		_, err := ParseWith("import \"k.ura\"\na: 2\n", dir)
		if !gerr.IsKind(err, gerr.DuplicateKey) {
			t.Fatalf("got %v, want DuplicateKey", err)
		}
	})

	t.Run("key conflict between imports", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "k1.ura", "a: 1\n")
		writeFile(t, dir, "k2.ura", "a: 2\n")
		_, err := ParseWith("import \"k1.ura\"\nimport \"k2.ura\"\n", dir)
		if !gerr.IsKind(err, gerr.DuplicateKey) {
			t.Fatalf("got %v, want DuplicateKey", err)
		}
	})

	t.Run("duplicated variable across files", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "v.ura", "$host: \"a\"\n")
		_, err := ParseWith("$host: \"b\"\nimport \"v.ura\"\n", dir)
		if !gerr.IsKind(err, gerr.DuplicateVariable) {
			t.Fatalf("got %v, want DuplicateVariable", err)
		}
	})

	t.Run("import must start at column one", func(t *testing.T) {
		_, err := Parse("  import \"x.ura\"")
		if !gerr.IsKind(err, gerr.ParseError) {
			t.Fatalf("got %v, want ParseError", err)
		}
	})

	t.Run("only one space before the path", func(t *testing.T) {
		_, err := Parse("import   \"x.ura\"")
		if !gerr.IsKind(err, gerr.ParseError) {
			t.Fatalf("got %v, want ParseError", err)
		}
	})

	t.Run("imports are top level only", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "x.ura", "a: 1\n")
		_, err := ParseWith("outer:\n  import \"x.ura\"\n", dir)
		if err == nil {
			t.Fatal("nested import parsed, want error")
		}
	})
}

func TestImportDepthGuard(t *testing.T) {
	dir := t.TempDir()
	// A chain one link longer than the guard allows.
	last := maxImportDepth + 1
	for i := 0; i <= last; i++ {
		content := fmt.Sprintf("key_%d: %d\n", i, i)
		if i < last {
			content = fmt.Sprintf("import \"f%d.ura\"\n", i+1) + content
		}
		writeFile(t, dir, fmt.Sprintf("f%d.ura", i), content)
	}

	_, err := ParseFile(filepath.Join(dir, "f0.ura"))
	if !gerr.IsKind(err, gerr.ImportDepthExceeded) {
		t.Fatalf("got %v, want ImportDepthExceeded", err)
	}

	// One link shorter parses fine.
	short := filepath.Join(dir, fmt.Sprintf("f%d.ura", 1))
	if _, err := ParseFile(short); err != nil {
		t.Fatalf("chain within the limit failed: %v", err)
	}
}

func TestImportAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "abs.ura", "from_abs: true\n")

	got, err := Parse(fmt.Sprintf("import \"%s\"\nlocal: 1\n", target))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := obj("from_abs", boolean(true), "local", i64(1))
	if diff := cmp.Diff(want, got, valueCmp); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
