package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func mustNew(t *testing.T, patterns ...string) Matcher {
	t.Helper()
	m, err := New(patterns)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestMatch_Literals(t *testing.T) {
	m := mustNew(t, "secret.env", "build/")

	cases := []struct {
		rel   string
		isDir bool
		want  bool
	}{
		{"secret.env", false, true},
		{"sub/secret.env", false, true},
		{"build", true, true},
		{"build", false, false}, // dir-only pattern, plain file named build
		{"build/out.bin", false, true},
		{"src/app.go", false, false},
	}
	for _, c := range cases {
		if got := m.Match(c.rel, c.isDir); got != c.want {
			t.Fatalf("Match(%q, dir=%v)=%v want %v", c.rel, c.isDir, got, c.want)
		}
	}
}

func TestMatch_Globs(t *testing.T) {
	m := mustNew(t, "*.pem", "?emp", "logs/**/archive")

	cases := []struct {
		rel  string
		want bool
	}{
		{"certs/key.pem", true},
		{"key.pem", true},
		{"temp", true},
		{"temperature", false},
		{"logs/2024/archive/a.gz", true},
		{"logs/archive", true}, // ** also matches zero segments
	}
	for _, c := range cases {
		if got := m.Match(c.rel, false); got != c.want {
			t.Fatalf("Match(%q)=%v want %v", c.rel, got, c.want)
		}
	}
}

func TestMatch_AnchoredPattern(t *testing.T) {
	m := mustNew(t, "/dist/")

	if !m.Match("dist", true) {
		t.Fatal("anchored dist/ should match root dist dir")
	}
	if !m.Match("dist/bundle.js", false) {
		t.Fatal("file under anchored ignored dir should match")
	}
	if m.Match("pkg/dist", true) {
		t.Fatal("anchored pattern must not match nested dist")
	}
}

func TestMatch_NoNegation(t *testing.T) {
	// '!' has no special meaning; it is just a literal that matches nothing
	// useful. A path matching any rule stays ignored.
	m := mustNew(t, "*.log", "!keep.log")
	if !m.Match("keep.log", false) {
		t.Fatal("negation is not supported; keep.log must remain ignored")
	}
}

func TestLoad_DefaultsPlusFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, IgnoreFileName)
	content := "# local rules\n\ncache/\n*.tmp\n"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for rel, want := range map[string]bool{
		".git/config":      true, // default
		"node_modules/x":   true, // default
		"cache/obj.o":      true, // custom
		"report.tmp":       true, // custom
		"src/main.go":      false,
		"docs/readme.md":   false,
		"sub/.DS_Store":    true, // default, nested
		"driftwatch.baseline.json": true,
	} {
		if got := m.Match(rel, false); got != want {
			t.Fatalf("Match(%q)=%v want %v", rel, got, want)
		}
	}
}

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !m.Match(".git/HEAD", false) {
		t.Fatal("defaults should apply when the ignore file is missing")
	}
	if m.Match("main.go", false) {
		t.Fatal("unmatched path reported as ignored")
	}
}

func TestNew_SkipsCommentsAndBlanks(t *testing.T) {
	m := mustNew(t, "# just a comment", "", "   ", "real")
	if m.Len() != 1 {
		t.Fatalf("expected 1 compiled rule, got %d", m.Len())
	}
}

func TestNew_InvalidPattern(t *testing.T) {
	if _, err := New([]string{"[unclosed"}); err == nil {
		t.Fatal("expected error for invalid glob")
	}
}
