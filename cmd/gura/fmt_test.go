package main

import (
	"os"
	"strings"
	"testing"
)

func TestFmtPrintsCanonicalForm(t *testing.T) {
	path := writeTempFile(t, "messy.ura",
		"# comment\ntitle:    \"Gura\"\nuser:\n  name:  \"Ada\"\nhosts: [\n  \"a\",\n  \"b\"\n]\n")

	out, errOut, err := runCmd(t, "fmt", path)
	if err != nil {
		t.Fatalf("fmt failed: %v\nstderr: %s", err, errOut)
	}
	want := "title: \"Gura\"\nuser:\n  name: \"Ada\"\nhosts: [\"a\", \"b\"]\n"
	if out != want {
		t.Errorf("fmt output:\n%q\nwant:\n%q", out, want)
	}
}

func TestFmtWriteInPlace(t *testing.T) {
	path := writeTempFile(t, "rewrite.ura", "a:   1\nb:\n  c:   2\n")

	out, _, err := runCmd(t, "fmt", "-w", path)
	if err != nil {
		t.Fatalf("fmt -w failed: %v", err)
	}
	if out != "" {
		t.Errorf("fmt -w printed %q, want nothing", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "a: 1\nb:\n  c: 2\n"
	if string(data) != want {
		t.Errorf("rewritten file:\n%q\nwant:\n%q", data, want)
	}
}

func TestFmtEmptyDocument(t *testing.T) {
	path := writeTempFile(t, "empty.ura", "# nothing but a comment\n")
	out, _, err := runCmd(t, "fmt", path)
	if err != nil {
		t.Fatalf("fmt failed: %v", err)
	}
	if out != "" {
		t.Errorf("fmt of an empty document printed %q", out)
	}
}

func TestFmtParseError(t *testing.T) {
	path := writeTempFile(t, "broken.ura", "a: [1,\n")

	_, _, err := runCmd(t, "fmt", path)
	if err == nil {
		t.Fatal("fmt succeeded on a broken file")
	}
	if exitCodeFor(err) != exitParse {
		t.Errorf("exit code = %d, want %d", exitCodeFor(err), exitParse)
	}
	if !strings.Contains(err.Error(), "parse error") {
		t.Errorf("error = %q, want a parse error", err)
	}
}
